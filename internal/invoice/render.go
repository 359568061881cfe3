package invoice

import (
	"fmt"
	"strings"

	"github.com/tokosinar/posfront/internal/domain"
)

// Line is one sold product on the rendered invoice. UnitPrice is derived
// from the line subtotal, never stored.
type Line struct {
	Title     string `json:"title"`
	Barcode   string `json:"barcode,omitempty"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// Summary is the human-readable view of a completed transaction. Building it
// never fails: missing fields render as zero/empty defaults.
type Summary struct {
	Invoice         string `json:"invoice"`
	IssuedAt        string `json:"issued_at"`
	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address,omitempty"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	CashierName     string `json:"cashier_name"`
	MethodKey       string `json:"payment_method"`
	MethodLabel     string `json:"payment_method_label"`
	StatusLabel     string `json:"payment_status_label"`
	Lines           []Line `json:"lines"`
	Subtotal        int64  `json:"subtotal"`
	Discount        int64  `json:"discount"`
	Total           int64  `json:"total"`
	IsCash          bool   `json:"is_cash"`
	Cash            int64  `json:"cash,omitempty"`
	Change          int64  `json:"change,omitempty"`
	PaymentURL      string `json:"payment_url,omitempty"`
	ShowPaymentLink bool   `json:"show_payment_link"`
}

// Summarize maps a transaction record into its invoice view.
func Summarize(tx domain.Transaction) Summary {
	method := normalizeMethod(tx.PaymentMethod)
	isCash := method == domain.PaymentMethodCash

	s := Summary{
		Invoice:      tx.Invoice,
		IssuedAt:     FormatDateTime(tx.CreatedAt),
		CustomerName: "Umum",
		CashierName:  "-",
		MethodKey:    method,
		MethodLabel:  PaymentMethodLabel(tx.PaymentMethod),
		StatusLabel:  PaymentStatusLabel(tx.PaymentStatus, tx.PaymentMethod),
		// The record stores the discounted total; the gross subtotal is
		// reconstructed for display.
		Subtotal:        tx.GrandTotal + tx.Discount,
		Discount:        tx.Discount,
		Total:           tx.GrandTotal,
		IsCash:          isCash,
		ShowPaymentLink: !isCash && tx.PaymentURL != "",
	}

	if tx.Customer != nil {
		if tx.Customer.Name != "" {
			s.CustomerName = tx.Customer.Name
		}
		if tx.Customer.Address != nil {
			s.CustomerAddress = *tx.Customer.Address
		}
		if tx.Customer.Phone != nil {
			s.CustomerPhone = *tx.Customer.Phone
		}
	}
	if tx.Cashier != nil && tx.Cashier.Name != "" {
		s.CashierName = tx.Cashier.Name
	}

	if isCash {
		s.Cash = tx.Cash
		s.Change = tx.Change
	}
	if s.ShowPaymentLink {
		s.PaymentURL = tx.PaymentURL
	}

	s.Lines = make([]Line, 0, len(tx.Details))
	for _, d := range tx.Details {
		qty := d.Qty
		if qty <= 0 {
			qty = 1
		}
		barcode := ""
		if d.Product.Barcode != nil {
			barcode = *d.Product.Barcode
		}
		s.Lines = append(s.Lines, Line{
			Title:     d.Product.Title,
			Barcode:   barcode,
			Qty:       qty,
			UnitPrice: d.Price / int64(qty),
			Subtotal:  d.Price,
		})
	}

	return s
}

const receiptWidth = 40

// RenderText renders the summary as a fixed-width receipt for terminal
// display or plain-text printing.
func RenderText(s Summary) string {
	var b strings.Builder
	rule := strings.Repeat("=", receiptWidth)
	thin := strings.Repeat("-", receiptWidth)

	b.WriteString(rule + "\n")
	b.WriteString(center("INVOICE") + "\n")
	if s.Invoice != "" {
		b.WriteString(center(s.Invoice) + "\n")
	}
	b.WriteString(center(s.IssuedAt) + "\n")
	b.WriteString(rule + "\n")

	b.WriteString(row("Pelanggan", s.CustomerName) + "\n")
	if s.CustomerAddress != "" {
		b.WriteString(row("Alamat", s.CustomerAddress) + "\n")
	}
	if s.CustomerPhone != "" {
		b.WriteString(row("Telepon", s.CustomerPhone) + "\n")
	}
	b.WriteString(row("Kasir", s.CashierName) + "\n")
	b.WriteString(row("Pembayaran", s.MethodLabel) + "\n")
	b.WriteString(row("Status", s.StatusLabel) + "\n")
	b.WriteString(thin + "\n")

	for _, line := range s.Lines {
		b.WriteString(line.Title + "\n")
		if line.Barcode != "" {
			b.WriteString("  " + line.Barcode + "\n")
		}
		left := fmt.Sprintf("  %d x %s", line.Qty, FormatPrice(line.UnitPrice))
		b.WriteString(row(left, FormatPrice(line.Subtotal)) + "\n")
	}
	b.WriteString(thin + "\n")

	b.WriteString(row("Subtotal", FormatPrice(s.Subtotal)) + "\n")
	b.WriteString(row("Diskon", "- "+FormatPrice(s.Discount)) + "\n")
	b.WriteString(row("Total", FormatPrice(s.Total)) + "\n")
	if s.IsCash {
		b.WriteString(row("Tunai", FormatPrice(s.Cash)) + "\n")
		b.WriteString(row("Kembali", FormatPrice(s.Change)) + "\n")
	}
	if s.ShowPaymentLink {
		b.WriteString(thin + "\n")
		b.WriteString("Link pembayaran:\n" + s.PaymentURL + "\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString(center("TERIMA KASIH TELAH BERBELANJA") + "\n")

	return b.String()
}

// row left-aligns a label and right-aligns its value on one receipt line.
func row(left, right string) string {
	pad := receiptWidth - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func center(s string) string {
	if len(s) >= receiptWidth {
		return s
	}
	return strings.Repeat(" ", (receiptWidth-len(s))/2) + s
}
