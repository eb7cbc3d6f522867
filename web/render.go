package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/flickhunt/discover"
	"github.com/s0up4200/flickhunt/tmdb"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "movie", "status"}

// parseTemplates builds one template set per page, each with the shared layout and partials
func parseTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// homePage is the data of the search and trending page
type homePage struct {
	Title      string
	Query      string
	DebounceMS int64
	Results    resultsView
	Trending   resultsView
}

// resultsView is the single visible panel of the search view
type resultsView struct {
	View    string
	Heading string
	Movies  []tmdb.Summary
	Message string
	Loading bool
	IsError bool
}

func newResultsView(state discover.SearchState) resultsView {
	v := resultsView{
		View:    state.View.String(),
		Movies:  state.Movies,
		Message: state.Message,
		IsError: state.View.IsError(),
	}

	switch state.View {
	case discover.Trending:
		v.Heading = "Trending Movies"
	case discover.Results:
		v.Heading = "Search Results"
	case discover.TrendingLoading, discover.Searching:
		v.Loading = true
	}

	return v
}

// moviePage is the data of a detail page
type moviePage struct {
	Title    string
	View     string
	Movie    *tmdb.Detail
	NotFound bool
	Message  string
}

func newMoviePage(state discover.DetailState) moviePage {
	p := moviePage{
		Title:   "Movie not found",
		View:    state.View.String(),
		Movie:   state.Movie,
		Message: state.Message,
	}

	switch state.View {
	case discover.Ready:
		p.Title = state.Movie.Title
	case discover.NotFound:
		p.NotFound = true
	default:
		p.Title = "Error"
	}

	return p
}

// statusPage is a plain message page with a link back home
type statusPage struct {
	Title   string
	Message string
}

// render executes tmpl from the page's template set, buffering so a template
// error never leaves a half-written response
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page, tmpl string, data any) {
	t, ok := s.pages[page]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown page %q", page))
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, tmpl, data); err != nil {
		s.serverError(w, r, fmt.Errorf("render %s/%s: %w", page, tmpl, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write response")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if isAPIRequest(r) {
		s.writeJSON(w, r, status, map[string]string{"error": message})
		return
	}
	s.render(w, r, status, "status", "layout", statusPage{Title: http.StatusText(status), Message: message})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")

	if isAPIRequest(r) {
		s.writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": "the server encountered a problem and could not process your request"})
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	s.writeError(w, r, http.StatusBadRequest, message)
}

func (s *Server) rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusTooManyRequests, "Rate limit exceeded. Please slow down.")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusNotFound, "Page not found.")
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("The %s method is not supported for this resource.", r.Method))
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}
