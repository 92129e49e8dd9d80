package reportparser

import (
	"strconv"
	"strings"
)

// ParseCurrency converts an amount string like "1,234.56" or "$1,234.56"
// to a float. Every rune that is not a digit, period or minus sign is
// stripped first, so currency symbols and thousands separators are
// tolerated. Malformed input parses to 0 rather than failing: field-level
// extraction prefers availability over strictness.
func ParseCurrency(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
