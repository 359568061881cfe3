package invoice

import (
	"strings"

	"github.com/tokosinar/posfront/internal/domain"
)

// Finite label tables with documented defaults: every key has a defined
// outcome, including unknown ones.

var paymentMethodLabels = map[string]string{
	domain.PaymentMethodCash: "Tunai",
	"midtrans":               "Midtrans",
	"xendit":                 "Xendit",
}

var paymentStatusLabels = map[string]string{
	string(domain.PaymentStatusPaid):    "Lunas",
	string(domain.PaymentStatusPending): "Menunggu",
	string(domain.PaymentStatusFailed):  "Gagal",
	string(domain.PaymentStatusExpired): "Kedaluwarsa",
}

// normalizeMethod lower-cases the method key and treats a missing one as cash.
func normalizeMethod(method string) string {
	m := strings.ToLower(strings.TrimSpace(method))
	if m == "" {
		return domain.PaymentMethodCash
	}
	return m
}

// PaymentMethodLabel resolves the display label for a payment method key.
// Unrecognized keys fall back to the cash label.
func PaymentMethodLabel(method string) string {
	if label, ok := paymentMethodLabels[normalizeMethod(method)]; ok {
		return label
	}
	return paymentMethodLabels[domain.PaymentMethodCash]
}

// PaymentStatusLabel resolves the display label for a payment status key.
// Unrecognized keys fall back to "paid" for cash sales and "pending"
// otherwise, since cash settles at the register and gateways settle later.
func PaymentStatusLabel(status, method string) string {
	key := strings.ToLower(strings.TrimSpace(status))
	if label, ok := paymentStatusLabels[key]; ok {
		return label
	}
	if normalizeMethod(method) == domain.PaymentMethodCash {
		return paymentStatusLabels[string(domain.PaymentStatusPaid)]
	}
	return paymentStatusLabels[string(domain.PaymentStatusPending)]
}
