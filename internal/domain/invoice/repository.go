package invoice

import (
	"context"
)

// Repository is the remote invoice store. The API owns invoice data and
// assigns numbers; this process only holds copies.
type Repository interface {
	// List returns the invoice summaries shown on the list screen
	List(ctx context.Context) ([]*Summary, error)

	// Get retrieves the full invoice with the given number
	Get(ctx context.Context, number int64) (*Invoice, error)

	// Search returns every invoice matching number. An unknown number yields
	// an empty result rather than an error.
	Search(ctx context.Context, number int64) ([]*Invoice, error)

	// Create stores a new invoice and returns it with its assigned number
	Create(ctx context.Context, invoice *Invoice) (*Invoice, error)

	// Update replaces the invoice identified by invoice.Number
	Update(ctx context.Context, invoice *Invoice) error
}
