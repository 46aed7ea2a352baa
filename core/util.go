package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanStrings cleans every element of `ss`, dropping the blank ones.
func CleanStrings(ss []string, lower ...bool) []string {
	if ss == nil {
		return nil
	}
	cleaned := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = CleanString(s, lower...); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}

var half = decimal.New(5, -1)

// RoundHalfUp rounds d to `places` decimals, halves going toward +Inf.
func RoundHalfUp(d decimal.Decimal, places int32) float64 {
	f, _ := d.Mul(decimal.New(1, places)).Add(half).Floor().Mul(decimal.New(1, -places)).Float64()
	return f
}
