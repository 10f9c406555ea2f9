package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingPlaces is the number of decimals used for every displayed amount
const RoundingPlaces = 2

// Form inputs outside these bounds are read as zero. The exponent is checked
// before the magnitude because comparing rescales to the larger exponent.
const (
	maxAmountExponent = 20
	minAmountExponent = -20
)

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.New(1, 15)
)

// LineAmounts holds the unrounded amounts of one line
type LineAmounts struct {
	PreTax decimal.Decimal
	Tax    decimal.Decimal
}

// Total is the tax inclusive amount of the line
func (a LineAmounts) Total() decimal.Decimal {
	return a.PreTax.Add(a.Tax)
}

// Amounts computes quantity x unit price and the tax on it, without rounding
func (l LineItem) Amounts() LineAmounts {
	preTax := l.Quantity.Mul(l.UnitPrice)
	return LineAmounts{
		PreTax: preTax,
		Tax:    preTax.Mul(l.TaxRatePercent).Div(hundred),
	}
}

// Totals is the result of CalculateTotals
type Totals struct {
	LineItems  []LineItem
	Subtotal   decimal.Decimal // HT
	TaxTotal   decimal.Decimal // TVA
	GrandTotal decimal.Decimal // TTC
}

// CalculateTotals returns a copy of items with corrected line totals together
// with the invoice aggregates. Aggregates are sums of the unrounded per-line
// amounts, each rounded once at the end; line totals are rounded on their own.
// The two can therefore disagree by a cent, and the aggregate is the one kept.
func CalculateTotals(items []LineItem) Totals {
	out := make([]LineItem, len(items))
	subtotal := decimal.Zero
	taxTotal := decimal.Zero

	for i, item := range items {
		amounts := item.Amounts()
		item.LineTotal = amounts.Total().Round(RoundingPlaces)
		out[i] = item

		subtotal = subtotal.Add(amounts.PreTax)
		taxTotal = taxTotal.Add(amounts.Tax)
	}

	return Totals{
		LineItems:  out,
		Subtotal:   subtotal.Round(RoundingPlaces),
		TaxTotal:   taxTotal.Round(RoundingPlaces),
		GrandTotal: subtotal.Add(taxTotal).Round(RoundingPlaces),
	}
}

// ParseAmount reads a numeric form input. Anything that is not a number,
// including an empty field being typed into, counts as zero. So does a
// number too large or too precise to be an amount.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < minAmountExponent {
		return decimal.Zero
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero
	}
	return d
}
