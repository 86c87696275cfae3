package model

import "github.com/shopspring/decimal"

// Nil-safe comparison helpers used by the diff recorder.
// A nil pointer and a zero value are distinct: clearing a field is a
// recordable change.

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrValue(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrValue(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Decimals are recorded as strings so the jsonb column round-trips
// without float precision loss.
func decimalPtrValue(p *decimal.Decimal) interface{} {
	if p == nil {
		return nil
	}
	return p.String()
}

func urgencyPtrEqual(a, b *UrgencyLevel) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func urgencyPtrValue(p *UrgencyLevel) interface{} {
	if p == nil {
		return nil
	}
	return string(*p)
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
