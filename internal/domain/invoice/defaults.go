package invoice

import (
	"time"

	"github.com/phenixmation/payables/internal/types"
	"github.com/shopspring/decimal"
)

// Defaults are the values a blank invoice form starts with
type Defaults struct {
	Currency       string
	TaxRatePercent decimal.Decimal
	DueInDays      int
	PaymentMethod  types.PaymentMethod
	SupplierID     string
	UserID         string
}

// SeedDescription is the description of the line a blank invoice starts with
const SeedDescription = "Service de base"

// NewBlankInvoice returns the invoice shown by an empty create form: issued
// today, due DueInDays later, pending, with one seeded 100.00 line.
func NewBlankInvoice(d Defaults, now time.Time) *Invoice {
	today := types.TruncateToDate(now)
	seed := NewLineItem(SeedDescription, d.TaxRatePercent)
	seed.UnitPrice = decimal.NewFromInt(100)

	inv := &Invoice{
		IssueDate:     today,
		DueDate:       today.AddDate(0, 0, d.DueInDays),
		SupplierID:    d.SupplierID,
		UserID:        d.UserID,
		LineItems:     []LineItem{seed},
		Currency:      d.Currency,
		Status:        types.InvoiceStatusPending,
		PaymentMethod: d.PaymentMethod,
	}
	inv.Recalculate()
	return inv
}
