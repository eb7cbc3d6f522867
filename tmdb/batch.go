package tmdb

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MaxConcurrentLookups bounds the number of detail requests GetMany keeps in flight
const MaxConcurrentLookups = 5

// GetMany fetches several movies concurrently. Results keep the order of ids
// and each carries its own error; one failed lookup does not cancel the others.
func (c *Client) GetMany(ctx context.Context, ids []string) []DetailResult {
	results := make([]DetailResult, len(ids))
	if len(ids) == 0 {
		return results
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentLookups)

	for i, id := range ids {
		g.Go(func() error {
			detail, err := c.GetByID(ctx, id)
			results[i] = DetailResult{ID: id, Detail: detail, Err: err}
			return nil // Don't stop on individual errors
		})
	}

	g.Wait()

	return results
}
