package testutil

import (
	"context"

	"github.com/phenixmation/payables/internal/domain/invoice"
	"github.com/phenixmation/payables/internal/pdf"
	"github.com/stretchr/testify/mock"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

type MockPDFGenerator struct {
	mock.Mock
}

// RenderInvoicePdf implements pdf.Generator.
func (m *MockPDFGenerator) RenderInvoicePdf(ctx context.Context, inv *invoice.Invoice) ([]byte, error) {
	args := m.Called(ctx, inv)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func NewMockPDFGenerator() *MockPDFGenerator {
	return &MockPDFGenerator{}
}
