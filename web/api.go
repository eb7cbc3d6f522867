package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/s0up4200/flickhunt/discover"
	"github.com/s0up4200/flickhunt/filter"
)

// listingParams validates and resolves the shared search/trending parameters.
// It writes the error response itself and returns ok=false on failure.
func (s *Server) listingParams(w http.ResponseWriter, r *http.Request) (searchParams, filter.Filter, bool) {
	ctx := r.Context()
	query := r.URL.Query()
	params := searchParams{
		Query:  query.Get("q"),
		Filter: query.Get("filter"),
		Preset: query.Get("preset"),
	}

	if err := s.validate.StructCtx(ctx, params); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("Rejected listing parameters")
		s.badRequest(w, r, "Invalid parameters: "+err.Error())
		return params, nil, false
	}

	f, err := s.filters.Resolve(params.Preset, params.Filter)
	if err != nil {
		var compErr *filter.CompilationError
		switch {
		case errors.Is(err, filter.ErrUnknownPreset):
			s.badRequest(w, r, err.Error())
		case errors.As(err, &compErr):
			s.badRequest(w, r, "Invalid filter: "+compErr.Error())
		default:
			s.serverError(w, r, err)
		}
		return params, nil, false
	}

	return params, f, true
}

func (s *Server) handleAPITrending(w http.ResponseWriter, r *http.Request) {
	_, f, ok := s.listingParams(w, r)
	if !ok {
		return
	}

	state := s.applyFilter(discover.ResolveTrending(r.Context(), s.api), f)
	s.writeJSON(w, r, searchStatus(state), state)
}

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	params, f, ok := s.listingParams(w, r)
	if !ok {
		return
	}

	if strings.TrimSpace(params.Query) == "" {
		s.badRequest(w, r, "The q parameter is required.")
		return
	}

	state := s.applyFilter(discover.ResolveSearch(r.Context(), s.api, params.Query), f)
	s.writeJSON(w, r, searchStatus(state), state)
}

func (s *Server) handleAPIMovie(w http.ResponseWriter, r *http.Request) {
	params := movieParams{ID: mux.Vars(r)["id"]}

	if err := s.validate.StructCtx(r.Context(), params); err != nil {
		state := discover.DetailState{ID: params.ID, View: discover.NotFound, Message: discover.NotFoundMessage}
		s.writeJSON(w, r, http.StatusNotFound, state)
		return
	}

	state := discover.ResolveDetail(r.Context(), s.api, params.ID)
	s.writeJSON(w, r, detailStatus(state), state)
}
