// Package money holds the currency formatting used across the storefront.
// Prices travel as shopspring decimals; only display code turns them into
// strings.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a decimal amount the Brazilian way: "R$ 1234,50".
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + FormatAmount(d)
}

// FormatAmount renders the bare amount with two decimal places and a comma
// separator ("30,00").
func FormatAmount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// ParseAmount accepts either "12,50" or "12.50" from form input.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, ",", ".", 1)
	return decimal.NewFromString(s)
}
