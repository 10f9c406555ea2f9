package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/phenixmation/payables/internal/api/dto"
	"github.com/phenixmation/payables/internal/domain/invoice"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/samber/lo"
)

// InvoiceService backs the read-only invoice screens: list, detail, search and PDF
type InvoiceService interface {
	ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error)
	GetInvoice(ctx context.Context, number int64) (*dto.InvoiceResponse, error)
	SearchInvoices(ctx context.Context, rawNumber string) (*dto.SearchInvoicesResponse, error)
	RenderInvoicePDF(ctx context.Context, number int64) ([]byte, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error) {
	summaries, err := s.InvoiceRepo.List(ctx)
	if err != nil {
		return nil, s.Session.HandleAuthError(ctx, err)
	}

	items := lo.Map(summaries, func(sum *invoice.Summary, _ int) *dto.InvoiceSummaryResponse {
		return dto.NewInvoiceSummaryResponse(sum)
	})
	return dto.NewListResponse(items), nil
}

// GetInvoice returns an invoice with its totals recomputed from its lines, so
// the detail screen never shows stale stored aggregates.
func (s *invoiceService) GetInvoice(ctx context.Context, number int64) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, number)
	if err != nil {
		return nil, s.Session.HandleAuthError(ctx, err)
	}
	inv.Recalculate()
	return dto.NewInvoiceResponse(inv), nil
}

// SearchInvoices looks invoices up by the number typed in the filter box.
// An unknown number is an empty result, not an error.
func (s *invoiceService) SearchInvoices(ctx context.Context, rawNumber string) (*dto.SearchInvoicesResponse, error) {
	number, err := ParseInvoiceNumber(rawNumber)
	if err != nil {
		return nil, err
	}

	found, err := s.InvoiceRepo.Search(ctx, number)
	if err != nil {
		return nil, s.Session.HandleAuthError(ctx, err)
	}

	items := lo.Map(found, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
		inv.Recalculate()
		return dto.NewInvoiceResponse(inv)
	})
	return dto.NewListResponse(items), nil
}

func (s *invoiceService) RenderInvoicePDF(ctx context.Context, number int64) ([]byte, error) {
	inv, err := s.InvoiceRepo.Get(ctx, number)
	if err != nil {
		return nil, s.Session.HandleAuthError(ctx, err)
	}

	out, err := s.PDFGenerator.RenderInvoicePdf(ctx, inv)
	if err != nil {
		s.Logger.Errorw("failed to render invoice pdf", "number", number, "error", err)
		return nil, err
	}
	return out, nil
}

// ParseInvoiceNumber accepts a strictly positive integer
func ParseInvoiceNumber(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return 0, ierr.NewErrorf("invalid invoice number %q", raw).
			WithHint("Please enter a valid invoice number").
			WithReportableDetails(map[string]any{"numero": raw}).
			Mark(ierr.ErrValidation)
	}
	return n, nil
}
