package invoice

import (
	"strings"
	"time"
	"unicode/utf8"

	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem is a single billed article of an invoice.
// LineTotal is derived and always recomputed from the other fields.
type LineItem struct {
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// NewLineItem returns the neutral line seeded when the user adds an article:
// one unit at zero price with the given tax rate.
func NewLineItem(description string, taxRatePercent decimal.Decimal) LineItem {
	item := LineItem{
		Description:    description,
		Quantity:       decimal.NewFromInt(1),
		UnitPrice:      decimal.Zero,
		TaxRatePercent: taxRatePercent,
	}
	item.LineTotal = item.Amounts().Total().Round(RoundingPlaces)
	return item
}

// Validate checks the constraints enforced when an invoice is submitted
func (l LineItem) Validate() error {
	if strings.TrimSpace(l.Description) == "" {
		return ierr.NewError("line item validation failed").
			WithHint("Every line item needs a description").
			Mark(ierr.ErrValidation)
	}
	if !l.Quantity.IsPositive() {
		return ierr.NewError("line item validation failed").
			WithHint("Quantity must be greater than zero").
			WithReportableDetails(map[string]any{"quantity": l.Quantity.String()}).
			Mark(ierr.ErrValidation)
	}
	if l.UnitPrice.IsNegative() {
		return ierr.NewError("line item validation failed").
			WithHint("Unit price must be non negative").
			WithReportableDetails(map[string]any{"unit_price": l.UnitPrice.String()}).
			Mark(ierr.ErrValidation)
	}
	if l.TaxRatePercent.IsNegative() {
		return ierr.NewError("line item validation failed").
			WithHint("Tax rate must be non negative").
			WithReportableDetails(map[string]any{"tax_rate_percent": l.TaxRatePercent.String()}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Invoice is the in-memory copy of an invoice owned by the remote API.
// Number is assigned by the API on creation; zero means unassigned.
type Invoice struct {
	ID            string              `json:"id,omitempty"`
	Number        int64               `json:"number"`
	IssueDate     time.Time           `json:"issue_date"`
	DueDate       time.Time           `json:"due_date"`
	SupplierID    string              `json:"supplier_id,omitempty"`
	UserID        string              `json:"user_id,omitempty"`
	LineItems     []LineItem          `json:"line_items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxTotal      decimal.Decimal     `json:"tax_total"`
	GrandTotal    decimal.Decimal     `json:"grand_total"`
	Currency      string              `json:"currency"`
	Status        types.InvoiceStatus `json:"status"`
	PaymentMethod types.PaymentMethod `json:"payment_method"`
	Notes         string              `json:"notes,omitempty"`
}

// Recalculate refreshes every line total and the aggregates from the line inputs
func (i *Invoice) Recalculate() {
	totals := CalculateTotals(i.LineItems)
	i.LineItems = totals.LineItems
	i.Subtotal = totals.Subtotal
	i.TaxTotal = totals.TaxTotal
	i.GrandTotal = totals.GrandTotal
}

// Clone returns a deep copy so that drafts never share line item storage
func (i *Invoice) Clone() *Invoice {
	if i == nil {
		return nil
	}
	c := *i
	c.LineItems = append([]LineItem(nil), i.LineItems...)
	return &c
}

// Validate checks the invoice before it is sent to the API
func (i *Invoice) Validate() error {
	if i.Number < 0 {
		return ierr.NewError("invoice validation failed").
			WithHint("Invoice number must not be negative").
			Mark(ierr.ErrValidation)
	}
	if i.IssueDate.IsZero() {
		return ierr.NewError("invoice validation failed").
			WithHint("Invoice date is required").
			Mark(ierr.ErrValidation)
	}
	if i.DueDate.IsZero() {
		return ierr.NewError("invoice validation failed").
			WithHint("Due date is required").
			Mark(ierr.ErrValidation)
	}
	if strings.TrimSpace(i.Currency) == "" {
		return ierr.NewError("invoice validation failed").
			WithHint("Currency is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.Status.Validate(); err != nil {
		return err
	}
	if err := i.PaymentMethod.Validate(); err != nil {
		return err
	}
	if utf8.RuneCountInString(i.Notes) > types.InvoiceNotesMaxLength {
		return ierr.NewError("invoice validation failed").
			WithHintf("Notes must not exceed %d characters", types.InvoiceNotesMaxLength).
			Mark(ierr.ErrValidation)
	}
	for idx, item := range i.LineItems {
		if err := item.Validate(); err != nil {
			return ierr.WithError(err).
				WithReportableDetails(map[string]any{"line": idx}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// Summary is the subset of invoice fields returned by the list endpoint
type Summary struct {
	ID         string              `json:"id"`
	Number     int64               `json:"number"`
	IssueDate  time.Time           `json:"issue_date"`
	Status     types.InvoiceStatus `json:"status"`
	GrandTotal *decimal.Decimal    `json:"grand_total,omitempty"`
	Currency   string              `json:"currency"`
}
