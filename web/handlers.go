package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/s0up4200/flickhunt/discover"
	"github.com/s0up4200/flickhunt/filter"
)

// searchParams are the query parameters accepted by search endpoints
type searchParams struct {
	Query  string `validate:"max=200"`
	Filter string `validate:"max=500"`
	Preset string `validate:"omitempty,max=64"`
}

// movieParams are the route parameters of detail endpoints
type movieParams struct {
	ID string `validate:"required,number,max=12"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := searchParams{Query: r.URL.Query().Get("q")}

	if err := s.validate.StructCtx(ctx, params); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("Rejected search query")
		s.badRequest(w, r, "Search query is too long.")
		return
	}

	blank := strings.TrimSpace(params.Query) == ""

	if r.URL.Query().Get("partial") == "1" {
		// The page keeps its own trending panel; a blank query never reaches the provider
		if blank {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		state := discover.ResolveSearch(ctx, s.api, params.Query)
		s.render(w, r, http.StatusOK, "home", "results", newResultsView(state))
		return
	}

	// Trending is looked up once per page load and kept for when the query is cleared
	trending := newResultsView(discover.ResolveTrending(ctx, s.api))
	results := trending
	if !blank {
		results = newResultsView(discover.ResolveSearch(ctx, s.api, params.Query))
	}

	s.render(w, r, http.StatusOK, "home", "layout", homePage{
		Title:      "FlickHunt",
		Query:      params.Query,
		DebounceMS: s.debounce.Milliseconds(),
		Results:    results,
		Trending:   trending,
	})
}

func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := movieParams{ID: mux.Vars(r)["id"]}

	// The provider's identifiers are numeric; anything else cannot exist
	if err := s.validate.StructCtx(ctx, params); err != nil {
		state := discover.DetailState{ID: params.ID, View: discover.NotFound, Message: discover.NotFoundMessage}
		s.render(w, r, http.StatusNotFound, "movie", "layout", newMoviePage(state))
		return
	}

	state := discover.ResolveDetail(ctx, s.api, params.ID)
	s.render(w, r, detailStatus(state), "movie", "layout", newMoviePage(state))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "available",
		"version": s.version,
	})
}

// searchStatus maps a search view to its HTTP status
func searchStatus(state discover.SearchState) int {
	if state.View.IsError() {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

// detailStatus maps a detail view to its HTTP status
func detailStatus(state discover.DetailState) int {
	switch state.View {
	case discover.Ready:
		return http.StatusOK
	case discover.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// applyFilter narrows a listing and keeps the view consistent with what is left
func (s *Server) applyFilter(state discover.SearchState, f filter.Filter) discover.SearchState {
	if f == nil || len(state.Movies) == 0 {
		return state
	}

	state.Movies = s.filters.Apply(f, state.Movies)
	if len(state.Movies) > 0 {
		return state
	}

	if state.View.IsTrending() {
		state.View = discover.TrendingEmpty
		state.Message = discover.TrendingEmptyMessage
	} else {
		state.View = discover.NoResults
		state.Message = discover.NoResultsMessage(state.Query)
	}
	return state
}
