package invoice

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/types"
	"github.com/shopspring/decimal"
)

// DraftMode tells whether submitting a draft creates or updates an invoice
type DraftMode string

const (
	DraftModeCreate DraftMode = "create"
	DraftModeUpdate DraftMode = "update"
)

// Header fields accepted by Draft.SetField
const (
	FieldNumber        = "number"
	FieldIssueDate     = "issue_date"
	FieldDueDate       = "due_date"
	FieldStatus        = "status"
	FieldPaymentMethod = "payment_method"
	FieldCurrency      = "currency"
	FieldNotes         = "notes"
)

// Line item fields accepted by Draft.UpdateLineItem
const (
	LineFieldDescription    = "description"
	LineFieldQuantity       = "quantity"
	LineFieldUnitPrice      = "unit_price"
	LineFieldTaxRatePercent = "tax_rate_percent"
)

// Draft is the editable state of the create and edit forms.
// It can only be changed through its methods, and each of them leaves the
// line totals and aggregates consistent with the line inputs.
type Draft struct {
	ID        string    `json:"id"`
	Mode      DraftMode `json:"mode"`
	Invoice   *Invoice  `json:"invoice"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	lineTaxRate decimal.Decimal
	location    *time.Location
}

// NewDraft wraps inv in a draft. The draft owns a private copy of inv.
// lineTaxRate seeds the tax rate of lines added later.
func NewDraft(id string, mode DraftMode, inv *Invoice, lineTaxRate decimal.Decimal) *Draft {
	now := time.Now().UTC()
	d := &Draft{
		ID:          id,
		Mode:        mode,
		Invoice:     inv.Clone(),
		CreatedAt:   now,
		UpdatedAt:   now,
		lineTaxRate: lineTaxRate,
		location:    time.Local,
	}
	if d.Invoice == nil {
		d.Invoice = &Invoice{}
	}
	d.Invoice.Recalculate()
	return d
}

// Clone returns an independent copy of the draft
func (d *Draft) Clone() *Draft {
	c := *d
	c.Invoice = d.Invoice.Clone()
	return &c
}

// SetField updates one header field from its form value
func (d *Draft) SetField(field, value string) error {
	inv := d.Invoice
	switch field {
	case FieldNumber:
		if d.Mode == DraftModeUpdate {
			return ierr.NewError("invoice number is immutable").
				WithHint("The number of an existing invoice cannot be changed").
				Mark(ierr.ErrInvalidOperation)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			n = 0
		}
		if n < 0 {
			return ierr.NewError("invalid invoice number").
				WithHint("Invoice number must not be negative").
				Mark(ierr.ErrValidation)
		}
		inv.Number = n
	case FieldIssueDate, FieldDueDate:
		t, err := types.ParseDate(value, d.location)
		if err != nil {
			return ierr.WithError(err).
				WithHintf("Invalid date %q, expected YYYY-MM-DD", value).
				Mark(ierr.ErrValidation)
		}
		if field == FieldIssueDate {
			inv.IssueDate = t
		} else {
			inv.DueDate = t
		}
	case FieldStatus:
		status := types.ParseInvoiceStatus(value)
		if err := status.Validate(); err != nil {
			return err
		}
		inv.Status = status
	case FieldPaymentMethod:
		method := types.PaymentMethod(strings.TrimSpace(value))
		if err := method.Validate(); err != nil {
			return err
		}
		inv.PaymentMethod = method
	case FieldCurrency:
		inv.Currency = strings.ToUpper(strings.TrimSpace(value))
	case FieldNotes:
		if utf8.RuneCountInString(value) > types.InvoiceNotesMaxLength {
			return ierr.NewError("notes too long").
				WithHintf("Notes must not exceed %d characters", types.InvoiceNotesMaxLength).
				Mark(ierr.ErrValidation)
		}
		inv.Notes = value
	default:
		return unknownFieldError(field)
	}
	d.touch()
	return nil
}

// SetFields applies several header fields at once. Either all of them are
// applied or, on the first failure, none is.
func (d *Draft) SetFields(fields map[string]string) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	staged := d.Clone()
	for _, k := range keys {
		if err := staged.SetField(k, fields[k]); err != nil {
			return err
		}
	}
	*d = *staged
	return nil
}

// AddLineItem appends a neutral line and returns it
func (d *Draft) AddLineItem() LineItem {
	item := NewLineItem("", d.lineTaxRate)
	d.Invoice.LineItems = append(d.Invoice.LineItems, item)
	d.recalculate()
	return item
}

// UpdateLineItem changes one field of the line at index.
// Numeric values that do not parse are taken as zero.
func (d *Draft) UpdateLineItem(index int, field, value string) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	item := &d.Invoice.LineItems[index]
	switch field {
	case LineFieldDescription:
		item.Description = value
	case LineFieldQuantity:
		item.Quantity = ParseAmount(value)
	case LineFieldUnitPrice:
		item.UnitPrice = ParseAmount(value)
	case LineFieldTaxRatePercent:
		item.TaxRatePercent = ParseAmount(value)
	default:
		return unknownFieldError(field)
	}
	d.recalculate()
	return nil
}

// UpdateLineItemFields applies several line fields with the same all-or-nothing
// behaviour as SetFields
func (d *Draft) UpdateLineItemFields(index int, fields map[string]string) error {
	staged := d.Clone()
	for k, v := range fields {
		if err := staged.UpdateLineItem(index, k, v); err != nil {
			return err
		}
	}
	*d = *staged
	return nil
}

// RemoveLineItem drops the line at index. Removing the last line leaves a
// zero total invoice.
func (d *Draft) RemoveLineItem(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	items := d.Invoice.LineItems
	d.Invoice.LineItems = append(items[:index:index], items[index+1:]...)
	d.recalculate()
	return nil
}

// Recalculate recomputes every line total and the aggregates
func (d *Draft) Recalculate() {
	d.recalculate()
}

// Validate checks the draft as it would be submitted
func (d *Draft) Validate() error {
	inv := d.Submission()
	if d.Mode == DraftModeUpdate && inv.Number <= 0 {
		return ierr.NewError("invoice number missing").
			WithHint("An existing invoice must keep its number").
			Mark(ierr.ErrValidation)
	}
	return inv.Validate()
}

// Submission returns the invoice to send to the API, recalculated once more
// so that the stored totals are the ones last displayed.
func (d *Draft) Submission() *Invoice {
	inv := d.Invoice.Clone()
	inv.Recalculate()
	return inv
}

func (d *Draft) recalculate() {
	d.Invoice.Recalculate()
	d.touch()
}

func (d *Draft) touch() {
	d.UpdatedAt = time.Now().UTC()
}

func (d *Draft) checkIndex(index int) error {
	if index < 0 || index >= len(d.Invoice.LineItems) {
		return ierr.NewError("line item index out of range").
			WithHintf("Line %d does not exist", index).
			WithReportableDetails(map[string]any{
				"index": index,
				"lines": len(d.Invoice.LineItems),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func unknownFieldError(field string) error {
	return ierr.NewError("unknown field").
		WithHintf("Field %q cannot be edited", field).
		Mark(ierr.ErrValidation)
}
