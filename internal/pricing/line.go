package pricing

import "github.com/shopspring/decimal"

type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
	// Subtotal is unit price times quantity, not quantized.
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// PriceLine prices quantity units of a product. taxRate is a percentage.
// Callers must reject inactive products and non-positive quantities first.
func PriceLine(unitPrice, taxRate decimal.Decimal, quantity int) Line {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	tax := Quantize(subtotal.Mul(taxRate.Div(hundred)))

	return Line{
		Quantity:  quantity,
		UnitPrice: Quantize(unitPrice),
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     Quantize(subtotal.Add(tax)),
	}
}

// Totals accumulates order-level amounts over priced lines.
type Totals struct {
	Subtotal decimal.Decimal
	TaxTotal decimal.Decimal
}

func (t *Totals) Add(l Line) {
	t.Subtotal = Quantize(t.Subtotal.Add(l.Subtotal))
	t.TaxTotal = Quantize(t.TaxTotal.Add(l.Tax))
}

func (t Totals) Total() decimal.Decimal {
	return Quantize(t.Subtotal.Add(t.TaxTotal))
}
