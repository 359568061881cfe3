package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{5000, "Rp5.000"},
		{10000, "Rp10.000"},
		{1250000, "Rp1.250.000"},
		{-2000, "Rp-2.000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrice(tc.amount))
	}
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "28 Agu 2026 14.30",
		FormatDateTime(time.Date(2026, time.August, 28, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "05 Mei 2026 09.05",
		FormatDateTime(time.Date(2026, time.May, 5, 9, 5, 0, 0, time.UTC)))
	assert.Equal(t, "01 Des 2025 00.00",
		FormatDateTime(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatDateTimeZero(t *testing.T) {
	assert.Equal(t, "-", FormatDateTime(time.Time{}))
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "Tunai", PaymentMethodLabel("cash"))
	assert.Equal(t, "Midtrans", PaymentMethodLabel("midtrans"))
	assert.Equal(t, "Xendit", PaymentMethodLabel("Xendit"))
	assert.Equal(t, "Tunai", PaymentMethodLabel(""))
	assert.Equal(t, "Tunai", PaymentMethodLabel("stripe"), "unknown keys fall back to cash")
}

func TestPaymentStatusLabel(t *testing.T) {
	assert.Equal(t, "Lunas", PaymentStatusLabel("paid", "cash"))
	assert.Equal(t, "Menunggu", PaymentStatusLabel("pending", "midtrans"))
	assert.Equal(t, "Gagal", PaymentStatusLabel("failed", "midtrans"))
	assert.Equal(t, "Kedaluwarsa", PaymentStatusLabel("EXPIRED", "xendit"))

	// Unknown status: settled for cash, pending for gateways.
	assert.Equal(t, "Lunas", PaymentStatusLabel("weird", "cash"))
	assert.Equal(t, "Lunas", PaymentStatusLabel("", ""))
	assert.Equal(t, "Menunggu", PaymentStatusLabel("weird", "midtrans"))
}
