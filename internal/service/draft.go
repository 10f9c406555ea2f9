package service

import (
	"context"
	"sync"
	"time"

	"github.com/phenixmation/payables/internal/api/dto"
	"github.com/phenixmation/payables/internal/domain/invoice"
	"github.com/phenixmation/payables/internal/types"
)

// DraftService backs the create and edit forms. A draft lives in the draft
// store from the moment a form opens until it is discarded, expires or is
// submitted successfully.
type DraftService interface {
	NewDraft(ctx context.Context) (*dto.DraftResponse, error)
	EditDraft(ctx context.Context, number int64) (*dto.DraftResponse, error)
	GetDraft(ctx context.Context, id string) (*dto.DraftResponse, error)
	UpdateDraft(ctx context.Context, id string, req *dto.UpdateDraftRequest) (*dto.DraftResponse, error)
	AddLine(ctx context.Context, id string) (*dto.DraftResponse, error)
	UpdateLine(ctx context.Context, id string, index int, req *dto.UpdateLineItemRequest) (*dto.DraftResponse, error)
	RemoveLine(ctx context.Context, id string, index int) (*dto.DraftResponse, error)
	DiscardDraft(ctx context.Context, id string) error
	SubmitDraft(ctx context.Context, id string) (*dto.SubmitDraftResponse, error)
}

type draftService struct {
	ServiceParams
	// serialises read-modify-write of drafts between concurrent requests
	mu sync.Mutex
}

func NewDraftService(params ServiceParams) DraftService {
	return &draftService{
		ServiceParams: params,
	}
}

// NewDraft opens a blank create form
func (s *draftService) NewDraft(ctx context.Context) (*dto.DraftResponse, error) {
	defaults := s.InvoiceDefaults()
	d := invoice.NewDraft(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DRAFT),
		invoice.DraftModeCreate,
		invoice.NewBlankInvoice(defaults, s.now()),
		defaults.TaxRatePercent,
	)
	s.Drafts.Save(ctx, d)

	s.Logger.Debugw("draft opened", "draft_id", d.ID, "mode", d.Mode)
	return dto.NewDraftResponse(d), nil
}

// EditDraft opens the edit form of an existing invoice
func (s *draftService) EditDraft(ctx context.Context, number int64) (*dto.DraftResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, number)
	if err != nil {
		return nil, s.Session.HandleAuthError(ctx, err)
	}

	d := invoice.NewDraft(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DRAFT),
		invoice.DraftModeUpdate,
		inv,
		s.InvoiceDefaults().TaxRatePercent,
	)
	s.Drafts.Save(ctx, d)

	s.Logger.Debugw("draft opened", "draft_id", d.ID, "mode", d.Mode, "number", number)
	return dto.NewDraftResponse(d), nil
}

func (s *draftService) GetDraft(ctx context.Context, id string) (*dto.DraftResponse, error) {
	d, err := s.Drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewDraftResponse(d), nil
}

func (s *draftService) UpdateDraft(ctx context.Context, id string, req *dto.UpdateDraftRequest) (*dto.DraftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(d *invoice.Draft) error {
		return d.SetFields(req.Fields())
	})
}

func (s *draftService) AddLine(ctx context.Context, id string) (*dto.DraftResponse, error) {
	return s.mutate(ctx, id, func(d *invoice.Draft) error {
		d.AddLineItem()
		return nil
	})
}

func (s *draftService) UpdateLine(ctx context.Context, id string, index int, req *dto.UpdateLineItemRequest) (*dto.DraftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(d *invoice.Draft) error {
		return d.UpdateLineItemFields(index, req.Fields())
	})
}

func (s *draftService) RemoveLine(ctx context.Context, id string, index int) (*dto.DraftResponse, error) {
	return s.mutate(ctx, id, func(d *invoice.Draft) error {
		return d.RemoveLineItem(index)
	})
}

func (s *draftService) DiscardDraft(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.Drafts.Get(ctx, id); err != nil {
		return err
	}
	s.Drafts.Delete(ctx, id)
	s.Logger.Debugw("draft discarded", "draft_id", id)
	return nil
}

// SubmitDraft recalculates and validates the draft, then creates or updates
// the invoice remotely. The draft is only dropped once the API accepted it,
// so a failed submit can be corrected and retried.
func (s *draftService) SubmitDraft(ctx context.Context, id string) (*dto.SubmitDraftResponse, error) {
	s.mu.Lock()
	d, err := s.Drafts.Get(ctx, id)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	inv := d.Submission()

	resp := &dto.SubmitDraftResponse{}
	switch d.Mode {
	case invoice.DraftModeUpdate:
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return nil, s.Session.HandleAuthError(ctx, err)
		}
		resp.Invoice = dto.NewInvoiceResponse(inv)
	default:
		created, err := s.InvoiceRepo.Create(ctx, inv)
		if err != nil {
			return nil, s.Session.HandleAuthError(ctx, err)
		}
		resp.Created = true
		resp.Invoice = dto.NewInvoiceResponse(created)
	}

	s.mu.Lock()
	s.Drafts.Delete(ctx, id)
	s.mu.Unlock()

	s.Logger.Infow("invoice submitted",
		"draft_id", id,
		"mode", d.Mode,
		"number", resp.Invoice.Number,
		"grand_total", resp.Invoice.GrandTotal,
	)
	return resp, nil
}

// mutate applies fn to a copy of the draft and stores the result only when fn succeeds
func (s *draftService) mutate(ctx context.Context, id string, fn func(d *invoice.Draft) error) (*dto.DraftResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.Drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	s.Drafts.Save(ctx, d)
	return dto.NewDraftResponse(d), nil
}

func (s *draftService) now() time.Time {
	return time.Now()
}
