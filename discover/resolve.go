package discover

import (
	"context"
	"strings"

	"github.com/s0up4200/flickhunt/tmdb"
)

// ResolveTrending performs one trending lookup and returns the resulting view
func ResolveTrending(ctx context.Context, api tmdb.API) SearchState {
	movies, err := api.ListTrending(ctx)
	return trendingState(movies, err)
}

// ResolveSearch performs one search and returns the resulting view. A blank
// query resolves to the trending view without searching.
func ResolveSearch(ctx context.Context, api tmdb.API, query string) SearchState {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		state := ResolveTrending(ctx, api)
		state.Query = query
		return state
	}

	movies, err := api.SearchByTitle(ctx, trimmed)
	state := searchState(trimmed, movies, err)
	state.Query = query
	return state
}

// ResolveDetail performs one detail lookup and returns the resulting view
func ResolveDetail(ctx context.Context, api tmdb.API, id string) DetailState {
	id = strings.TrimSpace(id)
	movie, err := api.GetByID(ctx, id)
	return detailState(id, movie, err)
}

// DetailFromResult returns the view of a lookup that has already completed
func DetailFromResult(r tmdb.DetailResult) DetailState {
	return detailState(r.ID, r.Detail, r.Err)
}
