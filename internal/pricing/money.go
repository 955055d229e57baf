// Package pricing computes order amounts with fixed-point money.
//
// Every derived amount is quantized to two fractional digits at the point it
// is produced, so totals accumulate the same rounding as the individual lines.
package pricing

import "github.com/shopspring/decimal"

// Scale is the number of fractional digits kept for money.
const Scale = 2

var hundred = decimal.NewFromInt(100)

// Quantize rounds d to two fractional digits, ties away from zero.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}
