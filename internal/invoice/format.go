package invoice

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// idPrinter renders numbers with Indonesian grouping ("10.000").
var idPrinter = message.NewPrinter(language.Indonesian)

// FormatPrice renders an integer rupiah amount, no fractional subunits.
func FormatPrice(amount int64) string {
	return idPrinter.Sprintf("Rp%d", amount)
}

// Indonesian short month names; x/text does not localize dates.
var monthAbbrev = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// FormatDateTime renders the id-ID short date + time, e.g. "28 Agu 2026 14.30".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d %s %d %02d.%02d",
		t.Day(), monthAbbrev[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
