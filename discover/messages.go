package discover

import (
	"errors"
	"fmt"
	"strings"

	"github.com/s0up4200/flickhunt/tmdb"
)

// Op names the kind of lookup a failure message is written for
type Op int

const (
	// OpMovies covers search and trending lookups
	OpMovies Op = iota
	// OpDetail covers single-movie lookups
	OpDetail
)

// User-facing texts
const (
	NetworkMoviesMessage = "Failed to fetch movies. Please try again later."
	NetworkDetailMessage = "Failed to fetch movie details. Please try again later."
	RemoteMoviesMessage  = "An error occurred while fetching movies."
	RemoteDetailMessage  = "An error occurred while fetching movie details."
	NotFoundMessage      = "Movie not found."
	TrendingEmptyMessage = "No trending movies right now. Try searching for a title."
)

// NoResultsMessage is shown when a search succeeds without matches
func NoResultsMessage(query string) string {
	return fmt.Sprintf("No movies found for \"%s\". Try a different search term.", query)
}

// Message turns a classified lookup failure into the text shown to the user.
// Remote messages are passed through verbatim; network failures never expose
// transport details.
func Message(err error, op Op) string {
	switch tmdb.Classify(err) {
	case tmdb.KindNone:
		return ""
	case tmdb.KindNotFound:
		var nf *tmdb.NotFoundError
		if errors.As(err, &nf) && strings.TrimSpace(nf.Message) != "" {
			return nf.Message
		}
		return NotFoundMessage
	case tmdb.KindRemote:
		var apiErr *tmdb.APIError
		if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
			return apiErr.Message
		}
		if op == OpDetail {
			return RemoteDetailMessage
		}
		return RemoteMoviesMessage
	default:
		if op == OpDetail {
			return NetworkDetailMessage
		}
		return NetworkMoviesMessage
	}
}
