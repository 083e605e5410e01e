package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var percentToken = regexp.MustCompile(`(\d+)%`)

var hundred = decimal.NewFromInt(100)

// Totals holds the derived values of an invoice. They are never persisted.
type Totals struct {
	Lines      []decimal.Decimal
	SubTotal   decimal.Decimal
	TaxRate    decimal.Decimal
	SaleTax    decimal.Decimal
	GrandTotal decimal.Decimal
}

// LineAmount is quantity × rate, or zero when either operand is unparsable or
// zero.
func LineAmount(l LineItem) decimal.Decimal {
	q, ok := DecimalAmount(l.Quantity)
	if !ok || q.IsZero() {
		return decimal.Zero
	}
	r, ok := DecimalAmount(l.Rate)
	if !ok || r.IsZero() {
		return decimal.Zero
	}
	return q.Mul(r)
}

// TaxRate extracts the first integer percentage from a discount label, or zero.
func TaxRate(label string) decimal.Decimal {
	m := percentToken.FindStringSubmatch(label)
	if m == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ComputeTotals derives line amounts and the summary block. The subtotal sums
// unrounded products; rounding happens once, at display.
func ComputeTotals(inv Invoice) Totals {
	t := Totals{
		Lines:    make([]decimal.Decimal, len(inv.ProductLines)),
		SubTotal: decimal.Zero,
		TaxRate:  TaxRate(inv.DiscountLabel),
	}
	for i, l := range inv.ProductLines {
		a := LineAmount(l)
		t.Lines[i] = a
		t.SubTotal = t.SubTotal.Add(a)
	}
	t.SaleTax = t.SubTotal.Mul(t.TaxRate).Div(hundred)
	t.GrandTotal = t.SubTotal.Sub(t.SaleTax)
	return t
}

// Money formats a derived value with exactly two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
