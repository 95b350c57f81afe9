package service

import (
	"math"
	"strconv"
	"strings"
)

// FormatMoney renders an optional dollar amount for display. Finite values
// become a fixed two-decimal, comma-grouped string like "$1,234.50"; a nil,
// NaN, or infinite amount becomes the "(n/a)" placeholder. The function is
// total and never panics.
func FormatMoney(amount *float64) string {
	if amount == nil || math.IsNaN(*amount) || math.IsInf(*amount, 0) {
		return "(n/a)"
	}

	s := strconv.FormatFloat(*amount, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteByte(intPart[i])
	}

	return "$" + sign + grouped.String() + "." + fracPart
}
