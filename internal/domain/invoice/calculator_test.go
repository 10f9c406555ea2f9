package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(qty, price, rate string) LineItem {
	return LineItem{
		Description:    "item",
		Quantity:       decimal.RequireFromString(qty),
		UnitPrice:      decimal.RequireFromString(price),
		TaxRatePercent: decimal.RequireFromString(rate),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name           string
		items          []LineItem
		wantLineTotals []string
		wantSubtotal   string
		wantTaxTotal   string
		wantGrandTotal string
	}{
		{
			name:           "empty invoice",
			items:          nil,
			wantLineTotals: []string{},
			wantSubtotal:   "0",
			wantTaxTotal:   "0",
			wantGrandTotal: "0",
		},
		{
			name:           "two units at 100 with 5% tax",
			items:          []LineItem{line("2", "100", "5")},
			wantLineTotals: []string{"210"},
			wantSubtotal:   "200",
			wantTaxTotal:   "10",
			wantGrandTotal: "210",
		},
		{
			name:           "mixed tax rates",
			items:          []LineItem{line("1", "100", "5"), line("2", "50", "10")},
			wantLineTotals: []string{"105", "110"},
			wantSubtotal:   "200",
			wantTaxTotal:   "15",
			wantGrandTotal: "215",
		},
		{
			name:           "zero tax",
			items:          []LineItem{line("3", "19.99", "0")},
			wantLineTotals: []string{"59.97"},
			wantSubtotal:   "59.97",
			wantTaxTotal:   "0",
			wantGrandTotal: "59.97",
		},
		{
			name:           "quebec rate with repeating cents",
			items:          []LineItem{line("1", "10.99", "14.975")},
			wantLineTotals: []string{"12.64"},
			wantSubtotal:   "10.99",
			wantTaxTotal:   "1.65",
			wantGrandTotal: "12.64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(tt.items)

			require.Len(t, got.LineItems, len(tt.wantLineTotals))
			for i, want := range tt.wantLineTotals {
				assertDecimal(t, want, got.LineItems[i].LineTotal)
			}
			assertDecimal(t, tt.wantSubtotal, got.Subtotal)
			assertDecimal(t, tt.wantTaxTotal, got.TaxTotal)
			assertDecimal(t, tt.wantGrandTotal, got.GrandTotal)
		})
	}
}

func TestCalculateTotals_IgnoresStaleLineTotal(t *testing.T) {
	item := line("2", "100", "5")
	item.LineTotal = decimal.NewFromInt(999)

	got := CalculateTotals([]LineItem{item})

	assertDecimal(t, "210", got.LineItems[0].LineTotal)
	assertDecimal(t, "999", item.LineTotal)
}

func TestCalculateTotals_Idempotent(t *testing.T) {
	items := []LineItem{line("1", "100", "5"), line("3", "0.333", "7.5")}

	first := CalculateTotals(items)
	second := CalculateTotals(first.LineItems)

	assert.Equal(t, first.Subtotal.String(), second.Subtotal.String())
	assert.Equal(t, first.TaxTotal.String(), second.TaxTotal.String())
	assert.Equal(t, first.GrandTotal.String(), second.GrandTotal.String())
	for i := range first.LineItems {
		assert.True(t, first.LineItems[i].LineTotal.Equal(second.LineItems[i].LineTotal))
	}
}

// Aggregates come from unrounded line amounts, so they can be a cent away from
// the sum of the displayed line totals.
func TestCalculateTotals_AggregatesUseUnroundedAmounts(t *testing.T) {
	items := []LineItem{
		line("1", "0.10", "5"),
		line("1", "0.10", "5"),
		line("1", "0.10", "5"),
	}

	got := CalculateTotals(items)

	sumOfLines := decimal.Zero
	for _, item := range got.LineItems {
		assertDecimal(t, "0.11", item.LineTotal)
		sumOfLines = sumOfLines.Add(item.LineTotal)
	}
	assertDecimal(t, "0.33", sumOfLines)
	assertDecimal(t, "0.3", got.Subtotal)
	assertDecimal(t, "0.02", got.TaxTotal)
	assertDecimal(t, "0.32", got.GrandTotal)
	assertDecimal(t, "0.01", sumOfLines.Sub(got.GrandTotal))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12.5", "12.5"},
		{" 3 ", "3"},
		{"12,5", "12.5"},
		{"", "0"},
		{"abc", "0"},
		{"1.2.3", "0"},
		{"-4", "-4"},
		{"1e3", "1000"},
		{"0.0125", "0.0125"},
		{"999999999999999", "999999999999999"},
		{"1000000000000000", "0"},
		{"-1e15", "0"},
		{"1e21", "0"},
		{"1e3000000", "0"},
		{"1e2147483647", "0"},
		{"1e-21", "0"},
		{"123456789012345678901234567890", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assertDecimal(t, tt.want, ParseAmount(tt.raw))
		})
	}
}
