package types

import (
	"testing"

	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseInvoiceStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want InvoiceStatus
	}{
		{"En attente", InvoiceStatusPending},
		{"Payée", InvoiceStatusPaid},
		{"Paid", InvoiceStatusPaid},
		{" paid ", InvoiceStatusPaid},
		{"Annulée", InvoiceStatusCancelled},
		{"Cancelled", InvoiceStatusCancelled},
		{"Archivée", InvoiceStatus("Archivée")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInvoiceStatus(tt.raw))
		})
	}
}

func TestInvoiceStatusValidate(t *testing.T) {
	assert.NoError(t, InvoiceStatusPending.Validate())
	assert.NoError(t, InvoiceStatusPaid.Validate())
	assert.NoError(t, InvoiceStatusCancelled.Validate())

	err := InvoiceStatus("Paid").Validate()
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestPaymentMethodValidate(t *testing.T) {
	assert.NoError(t, PaymentMethodTransfer.Validate())
	assert.NoError(t, PaymentMethodCheque.Validate())

	err := PaymentMethod("Bitcoin").Validate()
	assert.True(t, ierr.IsValidation(err))
}
