// Package money holds the fixed-point arithmetic shared by every
// aggregation routine. All monetary math in the project goes through
// decimal.Decimal; float64 must never carry an amount, a percentage or
// a balance.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundHalfUp rounds to the given number of fractional digits using
// round-half-away-from-zero, so monetary half-cent cases always round
// the same predictable way (2.005 -> 2.01, not banker's 2.00).
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// Round rounds a monetary value to two fractional digits, half away
// from zero. This is the display precision used everywhere.
func Round(d decimal.Decimal) decimal.Decimal {
	return RoundHalfUp(d, 2)
}

// PercentOf returns amount/total*100 rounded to two places.
// A zero total yields exactly zero rather than an error: empty-history
// responses are routine and must not propagate a division fault.
func PercentOf(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}

	return Round(amount.Div(total).Mul(hundred))
}
