package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatDays renders a day count with the right plural.
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatQuantity renders a decimal quantity with its unit, dropping the
// fractional part when it is zero so "5.000 kg" prints as "5 kg".
func FormatQuantity(q decimal.Decimal, unit string) string {
	if q.Equal(q.Truncate(0)) {
		q = q.Truncate(0)
	}
	s := q.String()
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// TruncateText shortens s to at most maxLen runes, appending an ellipsis when
// it had to cut.
func TruncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
