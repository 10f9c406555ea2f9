package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	domainInvoice "github.com/phenixmation/payables/internal/domain/invoice"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/logger"
)

type invoiceRepository struct {
	client *Client
	logger *logger.Logger
	loc    *time.Location
}

// NewInvoiceRepository creates an invoice repository backed by the invoice API
func NewInvoiceRepository(client *Client, logger *logger.Logger) domainInvoice.Repository {
	return &invoiceRepository{
		client: client,
		logger: logger,
		loc:    time.Local,
	}
}

func (r *invoiceRepository) List(ctx context.Context) ([]*domainInvoice.Summary, error) {
	r.logger.Debugw("listing invoices")

	var env factureEnvelope
	err := r.client.do(ctx, call{
		method:        http.MethodGet,
		path:          "/factures",
		authenticated: true,
	}, &env)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domainInvoice.Summary, 0, len(env.Factures))
	for i := range env.Factures {
		summaries = append(summaries, env.Factures[i].toSummary(r.loc))
	}
	return summaries, nil
}

func (r *invoiceRepository) Get(ctx context.Context, number int64) (*domainInvoice.Invoice, error) {
	r.logger.Debugw("getting invoice", "number", number)

	var env factureEnvelope
	err := r.client.do(ctx, call{
		method:        http.MethodGet,
		path:          fmt.Sprintf("/factures/%d", number),
		authenticated: true,
		notFound:      []int{http.StatusNotFound, http.StatusBadRequest},
	}, &env)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, notFoundError(number)
		}
		return nil, err
	}

	switch {
	case env.Facture != nil:
		return env.Facture.toInvoice(r.loc), nil
	case len(env.Factures) > 0:
		return env.Factures[0].toInvoice(r.loc), nil
	default:
		return nil, notFoundError(number)
	}
}

// Search looks an invoice up by number. The API answers either a single
// invoice or a list; a missing invoice is an empty result.
func (r *invoiceRepository) Search(ctx context.Context, number int64) ([]*domainInvoice.Invoice, error) {
	r.logger.Debugw("searching invoices", "number", number)

	var env factureEnvelope
	err := r.client.do(ctx, call{
		method:        http.MethodGet,
		path:          fmt.Sprintf("/factures/%d", number),
		authenticated: true,
		notFound:      []int{http.StatusNotFound},
	}, &env)
	if err != nil {
		if ierr.IsNotFound(err) {
			return []*domainInvoice.Invoice{}, nil
		}
		return nil, err
	}

	if len(env.Factures) > 0 {
		result := make([]*domainInvoice.Invoice, 0, len(env.Factures))
		for i := range env.Factures {
			result = append(result, env.Factures[i].toInvoice(r.loc))
		}
		return result, nil
	}
	if env.Facture != nil {
		return []*domainInvoice.Invoice{env.Facture.toInvoice(r.loc)}, nil
	}
	return []*domainInvoice.Invoice{}, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domainInvoice.Invoice) (*domainInvoice.Invoice, error) {
	r.logger.Debugw("creating invoice", "lines", len(inv.LineItems), "grand_total", inv.GrandTotal.StringFixed(2))

	payload := toFactureDTO(inv)
	var env factureEnvelope
	err := r.client.do(ctx, call{
		method:        http.MethodPost,
		path:          "/factures",
		body:          factureEnvelope{Facture: &payload},
		authenticated: true,
	}, &env)
	if err != nil {
		return nil, err
	}

	if env.Facture == nil {
		return inv.Clone(), nil
	}
	created := env.Facture.toInvoice(r.loc)
	r.logger.Infow("invoice created", "number", created.Number)
	return created, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *domainInvoice.Invoice) error {
	r.logger.Debugw("updating invoice", "number", inv.Number)

	payload := toFactureDTO(inv)
	err := r.client.do(ctx, call{
		method:        http.MethodPut,
		path:          "/factures",
		body:          factureEnvelope{Facture: &payload},
		authenticated: true,
		notFound:      []int{http.StatusNotFound},
	}, nil)
	if err != nil {
		if ierr.IsNotFound(err) {
			return notFoundError(inv.Number)
		}
		return err
	}

	r.logger.Infow("invoice updated", "number", inv.Number)
	return nil
}

func notFoundError(number int64) error {
	return ierr.NewErrorf("invoice %d not found", number).
		WithHintf("Invoice %d not found", number).
		WithReportableDetails(map[string]any{
			"number": number,
		}).
		Mark(ierr.ErrNotFound)
}
