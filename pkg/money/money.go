package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are fixed-point decimals with two fractional digits, matching the
// NUMERIC(14,2) columns they are stored in.
const Scale = 2

// DefaultCurrency is applied when a budget is created without an explicit
// currency.
const DefaultCurrency = "AED"

// ParseAmount parses a monetary amount and rejects anything that is not a
// positive value representable at the ledger's scale.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount %q must be greater than zero", s)
	}
	if d.Exponent() < -Scale {
		return decimal.Zero, fmt.Errorf("amount %q has more than %d decimal places", s, Scale)
	}
	return d, nil
}

// ValidCurrency reports whether code looks like an ISO 4217 currency code.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Format renders an amount with its currency code, e.g. "1000.00 AED".
func Format(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(Scale) + " " + currency
}
