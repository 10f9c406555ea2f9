package dto

import (
	"time"

	"github.com/phenixmation/payables/internal/domain/invoice"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/types"
)

type LineItemResponse struct {
	Description    string `json:"description"`
	Quantity       string `json:"quantity"`
	UnitPrice      string `json:"unit_price"`
	TaxRatePercent string `json:"tax_rate_percent"`
	LineTotal      string `json:"line_total"`
}

// InvoiceResponse is an invoice as shown on the detail and form screens.
// Amounts are decimal strings with two decimals, dates are YYYY-MM-DD.
type InvoiceResponse struct {
	ID            string              `json:"id,omitempty"`
	Number        int64               `json:"number"`
	IssueDate     string              `json:"issue_date"`
	DueDate       string              `json:"due_date"`
	SupplierID    string              `json:"supplier_id,omitempty"`
	UserID        string              `json:"user_id,omitempty"`
	LineItems     []LineItemResponse  `json:"line_items"`
	Subtotal      string              `json:"subtotal"`
	TaxTotal      string              `json:"tax_total"`
	GrandTotal    string              `json:"grand_total"`
	Currency      string              `json:"currency"`
	Status        types.InvoiceStatus `json:"status"`
	PaymentMethod types.PaymentMethod `json:"payment_method"`
	Notes         string              `json:"notes,omitempty"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	items := make([]LineItemResponse, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		items = append(items, LineItemResponse{
			Description:    item.Description,
			Quantity:       item.Quantity.String(),
			UnitPrice:      Money(item.UnitPrice),
			TaxRatePercent: item.TaxRatePercent.String(),
			LineTotal:      Money(item.LineTotal),
		})
	}

	return &InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		IssueDate:     types.FormatDate(inv.IssueDate),
		DueDate:       types.FormatDate(inv.DueDate),
		SupplierID:    inv.SupplierID,
		UserID:        inv.UserID,
		LineItems:     items,
		Subtotal:      Money(inv.Subtotal),
		TaxTotal:      Money(inv.TaxTotal),
		GrandTotal:    Money(inv.GrandTotal),
		Currency:      inv.Currency,
		Status:        inv.Status,
		PaymentMethod: inv.PaymentMethod,
		Notes:         inv.Notes,
	}
}

// InvoiceSummaryResponse is a row of the invoice list
type InvoiceSummaryResponse struct {
	ID         string              `json:"id,omitempty"`
	Number     int64               `json:"number"`
	IssueDate  string              `json:"issue_date"`
	Status     types.InvoiceStatus `json:"status"`
	GrandTotal *string             `json:"grand_total"`
	Currency   string              `json:"currency,omitempty"`
}

func NewInvoiceSummaryResponse(s *invoice.Summary) *InvoiceSummaryResponse {
	resp := &InvoiceSummaryResponse{
		ID:        s.ID,
		Number:    s.Number,
		IssueDate: types.FormatDate(s.IssueDate),
		Status:    s.Status,
		Currency:  s.Currency,
	}
	if s.GrandTotal != nil {
		total := Money(*s.GrandTotal)
		resp.GrandTotal = &total
	}
	return resp
}

type ListInvoicesResponse = ListResponse[*InvoiceSummaryResponse]

type SearchInvoicesResponse = ListResponse[*InvoiceResponse]

// UpdateDraftRequest sets header fields of a draft. Omitted fields are left unchanged.
type UpdateDraftRequest struct {
	Number        *FormValue `json:"number,omitempty"`
	IssueDate     *FormValue `json:"issue_date,omitempty"`
	DueDate       *FormValue `json:"due_date,omitempty"`
	Status        *FormValue `json:"status,omitempty"`
	PaymentMethod *FormValue `json:"payment_method,omitempty"`
	Currency      *FormValue `json:"currency,omitempty"`
	Notes         *FormValue `json:"notes,omitempty"`
}

func (r *UpdateDraftRequest) Fields() map[string]string {
	return fieldsOf(map[string]*FormValue{
		invoice.FieldNumber:        r.Number,
		invoice.FieldIssueDate:     r.IssueDate,
		invoice.FieldDueDate:       r.DueDate,
		invoice.FieldStatus:        r.Status,
		invoice.FieldPaymentMethod: r.PaymentMethod,
		invoice.FieldCurrency:      r.Currency,
		invoice.FieldNotes:         r.Notes,
	})
}

func (r *UpdateDraftRequest) Validate() error {
	if len(r.Fields()) == 0 {
		return ierr.NewError("no field to update").
			WithHint("Please provide at least one field to update").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// UpdateLineItemRequest changes fields of one line. Numeric values that do
// not parse are taken as zero.
type UpdateLineItemRequest struct {
	Description    *FormValue `json:"description,omitempty"`
	Quantity       *FormValue `json:"quantity,omitempty"`
	UnitPrice      *FormValue `json:"unit_price,omitempty"`
	TaxRatePercent *FormValue `json:"tax_rate_percent,omitempty"`
}

func (r *UpdateLineItemRequest) Fields() map[string]string {
	return fieldsOf(map[string]*FormValue{
		invoice.LineFieldDescription:    r.Description,
		invoice.LineFieldQuantity:       r.Quantity,
		invoice.LineFieldUnitPrice:      r.UnitPrice,
		invoice.LineFieldTaxRatePercent: r.TaxRatePercent,
	})
}

func (r *UpdateLineItemRequest) Validate() error {
	if len(r.Fields()) == 0 {
		return ierr.NewError("no field to update").
			WithHint("Please provide at least one line field to update").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type DraftResponse struct {
	ID        string            `json:"id"`
	Mode      invoice.DraftMode `json:"mode"`
	Invoice   *InvoiceResponse  `json:"invoice"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewDraftResponse(d *invoice.Draft) *DraftResponse {
	return &DraftResponse{
		ID:        d.ID,
		Mode:      d.Mode,
		Invoice:   NewInvoiceResponse(d.Invoice),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// SubmitDraftResponse is the invoice as stored by the API after a submit
type SubmitDraftResponse struct {
	Created bool             `json:"created"`
	Invoice *InvoiceResponse `json:"invoice"`
}
