package cache

import (
	"context"
	"time"

	goCache "github.com/patrickmn/go-cache"
	"github.com/phenixmation/payables/internal/config"
	"github.com/phenixmation/payables/internal/domain/invoice"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/logger"
)

// DraftStore keeps the open invoice forms. Drafts are not remote answers, so
// the store ignores cache.enabled and always holds them until they expire.
type DraftStore struct {
	cache  *goCache.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewDraftStore creates a store whose drafts expire after cache.draft_ttl of inactivity
func NewDraftStore(cfg *config.Configuration, logger *logger.Logger) *DraftStore {
	ttl := cfg.Cache.DraftTTL
	if ttl <= 0 {
		ttl = goCache.NoExpiration
	}
	return &DraftStore{
		cache:  goCache.New(ttl, DefaultCleanupInterval),
		ttl:    ttl,
		logger: logger,
	}
}

// Save stores a copy of d and restarts its expiry
func (s *DraftStore) Save(ctx context.Context, d *invoice.Draft) {
	span := StartCacheSpan(ctx, "draft", "save", map[string]interface{}{"draft_id": d.ID})
	defer FinishSpan(span)

	s.cache.Set(GenerateKey(PrefixDraft, d.ID), d.Clone(), s.ttl)
}

// Get returns a copy of the draft, so that changes only land through Save
func (s *DraftStore) Get(ctx context.Context, id string) (*invoice.Draft, error) {
	span := StartCacheSpan(ctx, "draft", "get", map[string]interface{}{"draft_id": id})
	defer FinishSpan(span)

	v, ok := s.cache.Get(GenerateKey(PrefixDraft, id))
	if !ok {
		err := ierr.NewErrorf("draft %s not found", id).
			WithHint("This form has expired or was already submitted").
			WithReportableDetails(map[string]any{"draft_id": id}).
			Mark(ierr.ErrNotFound)
		SetSpanError(span, err)
		return nil, err
	}
	SetSpanSuccess(span)
	return v.(*invoice.Draft).Clone(), nil
}

// Delete forgets the draft. Deleting an unknown draft is a no-op.
func (s *DraftStore) Delete(ctx context.Context, id string) {
	s.cache.Delete(GenerateKey(PrefixDraft, id))
}

// Count returns the number of live drafts
func (s *DraftStore) Count() int {
	return s.cache.ItemCount()
}
