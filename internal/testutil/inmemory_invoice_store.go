package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/phenixmation/payables/internal/domain/invoice"
	ierr "github.com/phenixmation/payables/internal/errors"
)

var _ invoice.Repository = (*InMemoryInvoiceStore)(nil)

// InMemoryInvoiceStore implements invoice.Repository. Numbers are assigned on
// Create the way the remote API does, and errors can be injected per operation.
type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	invoices map[int64]*invoice.Invoice
	next     int64
	errs     map[string]error
	calls    map[string]int
}

// Operation names accepted by FailOn and Calls
const (
	OpList   = "list"
	OpGet    = "get"
	OpSearch = "search"
	OpCreate = "create"
	OpUpdate = "update"
)

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[int64]*invoice.Invoice),
		next:     1,
		errs:     make(map[string]error),
		calls:    make(map[string]int),
	}
}

// FailOn makes every later call of op return err until Clear
func (s *InMemoryInvoiceStore) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[op] = err
}

// Calls returns how many times op was called
func (s *InMemoryInvoiceStore) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

// Seed stores inv as is, keeping its number
func (s *InMemoryInvoiceStore) Seed(inv *invoice.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[inv.Number] = inv.Clone()
	if inv.Number >= s.next {
		s.next = inv.Number + 1
	}
}

func (s *InMemoryInvoiceStore) List(ctx context.Context) ([]*invoice.Summary, error) {
	if err := s.enter(OpList); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*invoice.Summary, 0, len(s.invoices))
	for _, inv := range s.invoices {
		total := inv.GrandTotal
		out = append(out, &invoice.Summary{
			ID:         inv.ID,
			Number:     inv.Number,
			IssueDate:  inv.IssueDate,
			Status:     inv.Status,
			GrandTotal: &total,
			Currency:   inv.Currency,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, number int64) (*invoice.Invoice, error) {
	if err := s.enter(OpGet); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[number]
	if !ok {
		return nil, ierr.NewErrorf("invoice %d not found", number).
			WithHintf("Invoice %d not found", number).
			Mark(ierr.ErrNotFound)
	}
	return inv.Clone(), nil
}

func (s *InMemoryInvoiceStore) Search(ctx context.Context, number int64) ([]*invoice.Invoice, error) {
	if err := s.enter(OpSearch); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if inv, ok := s.invoices[number]; ok {
		return []*invoice.Invoice{inv.Clone()}, nil
	}
	return []*invoice.Invoice{}, nil
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	if err := s.enter(OpCreate); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	created := inv.Clone()
	if created.Number == 0 {
		created.Number = s.next
	}
	if created.Number >= s.next {
		s.next = created.Number + 1
	}
	s.invoices[created.Number] = created
	return created.Clone(), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := s.enter(OpUpdate); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[inv.Number]; !ok {
		return ierr.NewErrorf("invoice %d not found", inv.Number).
			WithHintf("Invoice %d not found", inv.Number).
			Mark(ierr.ErrNotFound)
	}
	s.invoices[inv.Number] = inv.Clone()
	return nil
}

// Clear drops invoices, injected errors and call counts
func (s *InMemoryInvoiceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = make(map[int64]*invoice.Invoice)
	s.next = 1
	s.errs = make(map[string]error)
	s.calls = make(map[string]int)
}

func (s *InMemoryInvoiceStore) enter(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	return s.errs[op]
}
