package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount with two decimals, thousands separators
// and the given currency symbol. Symbols longer than one rune are followed
// by a space ("ARS 1,200.00").
func FormatCurrency(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	if len([]rune(symbol)) > 1 {
		symbol += " "
	}
	return sign + symbol + sb.String() + "." + frac
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
