package tmdb

import (
	"context"
)

// API defines the lookup operations the rest of the application depends on
type API interface {
	// SearchByTitle returns movies matching a title query. A blank query
	// returns an empty slice without contacting the provider.
	SearchByTitle(ctx context.Context, query string) ([]Summary, error)

	// ListTrending returns the first page of the provider's popularity listing
	ListTrending(ctx context.Context) ([]Summary, error)

	// GetByID returns the full record for one movie
	GetByID(ctx context.Context, id string) (*Detail, error)
}

var _ API = (*Client)(nil)
