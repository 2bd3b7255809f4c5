// Package pricing computes final prices for catalog and cart flows.
// All amounts are integer COP.
package pricing

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Quote is the result of pricing a single unit.
type Quote struct {
	PreDiscount     int64 `json:"pre_discount"`
	Final           int64 `json:"final"`
	AppliedDiscount int64 `json:"applied_discount"`
}

// ClampDiscount coerces a stored discount percent into [0,100]. Values are
// clamped at read time so out-of-range rows price deterministically.
func ClampDiscount(percent int64) int64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Compute prices one unit: base plus size surcharge, then the clamped
// discount, rounded half-up to a whole peso. Negative inputs are treated
// as zero so a quote can never go below zero.
func Compute(basePrice, sizeExtra, discountPercent int64) Quote {
	if basePrice < 0 {
		basePrice = 0
	}
	if sizeExtra < 0 {
		sizeExtra = 0
	}
	applied := ClampDiscount(discountPercent)

	pre := basePrice + sizeExtra
	if applied == 0 {
		return Quote{PreDiscount: pre, Final: pre, AppliedDiscount: 0}
	}

	factor := oneHundred.Sub(decimal.NewFromInt(applied)).Div(oneHundred)
	final := decimal.NewFromInt(pre).Mul(factor).Round(0).IntPart()
	if final < 0 {
		final = 0
	}

	return Quote{PreDiscount: pre, Final: final, AppliedDiscount: applied}
}

// MinFinal returns the lowest final unit price across the given size
// surcharges. An empty list means the product has no explicit sizes and is
// priced on the base alone.
func MinFinal(basePrice, discountPercent int64, sizeExtras []int64) int64 {
	if len(sizeExtras) == 0 {
		return Compute(basePrice, 0, discountPercent).Final
	}

	min := Compute(basePrice, sizeExtras[0], discountPercent).Final
	for _, extra := range sizeExtras[1:] {
		if final := Compute(basePrice, extra, discountPercent).Final; final < min {
			min = final
		}
	}
	return min
}
