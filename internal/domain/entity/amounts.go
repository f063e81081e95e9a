package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user-entered numeric field. Blank or unparseable input
// is treated as zero, matching the form's lenient numeric handling: a junk
// quantity never raises a format error, it simply contributes nothing to the
// totals and reads as missing to the validator.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders a monetary amount with exactly two fractional digits
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
