package types

import (
	"strings"

	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the payment state of an invoice.
// Values are the labels the invoice API stores.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "En attente"
	InvoiceStatusPaid      InvoiceStatus = "Payée"
	InvoiceStatusCancelled InvoiceStatus = "Annulée"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusPending,
		InvoiceStatusPaid,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

var invoiceStatusAliases = map[string]InvoiceStatus{
	"en attente": InvoiceStatusPending,
	"pending":    InvoiceStatusPending,
	"payée":      InvoiceStatusPaid,
	"payee":      InvoiceStatusPaid,
	"paid":       InvoiceStatusPaid,
	"annulée":    InvoiceStatusCancelled,
	"annulee":    InvoiceStatusCancelled,
	"cancelled":  InvoiceStatusCancelled,
	"canceled":   InvoiceStatusCancelled,
}

// ParseInvoiceStatus normalizes the French and English labels found in stored
// invoices. Unknown labels are returned unchanged so they can still be displayed.
func ParseInvoiceStatus(raw string) InvoiceStatus {
	if s, ok := invoiceStatusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return InvoiceStatus(raw)
}

// PaymentMethod is the tag describing how an invoice is settled
type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "Virement"
	PaymentMethodCard     PaymentMethod = "Carte"
	PaymentMethodCheque   PaymentMethod = "Chèque"
	PaymentMethodCash     PaymentMethod = "Espèces"
)

func (p PaymentMethod) String() string {
	return string(p)
}

func (p PaymentMethod) Validate() error {
	allowed := []PaymentMethod{
		PaymentMethodTransfer,
		PaymentMethodCard,
		PaymentMethodCheque,
		PaymentMethodCash,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid payment method").
			WithHint("Please provide a valid payment method").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

const (
	// InvoiceDefaultDueDays is the number of days between issue and due date on a new invoice
	InvoiceDefaultDueDays = 30
	// InvoiceDefaultCurrency is the currency preselected on a new invoice
	InvoiceDefaultCurrency = "CAD"
	// InvoiceNotesMaxLength bounds the free-text notes
	InvoiceNotesMaxLength = 500
)
