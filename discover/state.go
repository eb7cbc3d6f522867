// Package discover holds the view logic shared by the web and terminal fronts:
// the search and detail state machines, the debounce timer that paces search
// lookups, and the user-facing failure messages.
package discover

import (
	"slices"

	"github.com/s0up4200/flickhunt/tmdb"
)

// SearchView is the single visible state of the search view
type SearchView int

const (
	TrendingLoading SearchView = iota
	Trending
	TrendingEmpty
	TrendingError
	Searching
	Results
	NoResults
	SearchError
)

var searchViewNames = map[SearchView]string{
	TrendingLoading: "trending_loading",
	Trending:        "trending",
	TrendingEmpty:   "trending_empty",
	TrendingError:   "trending_error",
	Searching:       "searching",
	Results:         "results",
	NoResults:       "no_results",
	SearchError:     "search_error",
}

func (v SearchView) String() string {
	if name, ok := searchViewNames[v]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the view by name in JSON responses
func (v SearchView) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// IsTrending reports whether the view belongs to the no-query side of the page
func (v SearchView) IsTrending() bool {
	return v <= TrendingError
}

// IsError reports whether the view is an error panel
func (v SearchView) IsError() bool {
	return v == TrendingError || v == SearchError
}

// SearchState is a snapshot of the search view. Exactly one of the trending
// list, the search results or a status message is meant to be shown, and View
// says which.
type SearchState struct {
	Query   string         `json:"query"`
	View    SearchView     `json:"view"`
	Movies  []tmdb.Summary `json:"movies"`
	Message string         `json:"message,omitempty"`
}

// DetailView is the single visible state of the detail view
type DetailView int

const (
	Loading DetailView = iota
	Ready
	NotFound
	Error
)

var detailViewNames = map[DetailView]string{
	Loading:  "loading",
	Ready:    "ready",
	NotFound: "not_found",
	Error:    "error",
}

func (v DetailView) String() string {
	if name, ok := detailViewNames[v]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the view by name in JSON responses
func (v DetailView) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// DetailState is a snapshot of the detail view for one identifier
type DetailState struct {
	ID      string       `json:"id"`
	View    DetailView   `json:"view"`
	Movie   *tmdb.Detail `json:"movie,omitempty"`
	Message string       `json:"message,omitempty"`
}

// trendingState maps a finished trending lookup to its view
func trendingState(movies []tmdb.Summary, err error) SearchState {
	switch {
	case err != nil:
		return SearchState{View: TrendingError, Movies: []tmdb.Summary{}, Message: Message(err, OpMovies)}
	case len(movies) == 0:
		return SearchState{View: TrendingEmpty, Movies: []tmdb.Summary{}, Message: TrendingEmptyMessage}
	default:
		return SearchState{View: Trending, Movies: slices.Clone(movies)}
	}
}

// searchState maps a finished search lookup for query to its view
func searchState(query string, movies []tmdb.Summary, err error) SearchState {
	switch {
	case err != nil:
		return SearchState{Query: query, View: SearchError, Movies: []tmdb.Summary{}, Message: Message(err, OpMovies)}
	case len(movies) == 0:
		return SearchState{Query: query, View: NoResults, Movies: []tmdb.Summary{}, Message: NoResultsMessage(query)}
	default:
		return SearchState{Query: query, View: Results, Movies: slices.Clone(movies)}
	}
}

// detailState maps a finished detail lookup to its view
func detailState(id string, movie *tmdb.Detail, err error) DetailState {
	switch tmdb.Classify(err) {
	case tmdb.KindNone:
		if movie == nil {
			return DetailState{ID: id, View: NotFound, Message: NotFoundMessage}
		}
		return DetailState{ID: id, View: Ready, Movie: movie}
	case tmdb.KindNotFound:
		return DetailState{ID: id, View: NotFound, Message: Message(err, OpDetail)}
	default:
		return DetailState{ID: id, View: Error, Message: Message(err, OpDetail)}
	}
}
