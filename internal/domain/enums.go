package domain

// PaymentStatus represents the settlement state of a transaction as reported
// by the backend.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusExpired PaymentStatus = "expired"
)

// IsValid checks if the payment status is one the invoice view knows about.
// Unknown statuses are still rendered, with a fallback label.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusFailed, PaymentStatusExpired:
		return true
	default:
		return false
	}
}

// PaymentMethodCash is the synthetic tender that is always offered and needs
// no gateway. Any gateway entry with this key is filtered out of the
// backend-supplied list to avoid duplication.
const PaymentMethodCash = "cash"
