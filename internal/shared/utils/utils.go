package utils

import (
	"github.com/shopspring/decimal"
)

// ParseFloatToDecimal converts an optional JSON number into the decimal
// type money fields are stored as. Nil passes through.
func ParseFloatToDecimal(number *float64) *decimal.Decimal {
	if number == nil {
		return nil
	}
	d := decimal.NewFromFloat(*number)
	return &d
}

// StringPtr maps an empty string to nil for optional columns
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
