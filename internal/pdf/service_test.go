package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/phenixmation/payables/internal/config"
	"github.com/phenixmation/payables/internal/domain/invoice"
	"github.com/phenixmation/payables/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoicePdf(t *testing.T) {
	inv := invoice.NewBlankInvoice(invoice.Defaults{
		Currency:       "CAD",
		TaxRatePercent: decimal.NewFromInt(5),
		DueInDays:      30,
		PaymentMethod:  types.PaymentMethodCheque,
	}, time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC))
	inv.Number = 17
	inv.Notes = "Payable à réception"

	out, err := NewGenerator(config.GetDefaultConfig()).RenderInvoicePdf(context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}
