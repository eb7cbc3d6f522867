package discover

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/flickhunt/metrics"
	"github.com/s0up4200/flickhunt/tmdb"
)

type slotStatus int

const (
	slotIdle slotStatus = iota
	slotPending
	slotDone
)

// lookupSlot holds the outcome of the latest accepted lookup of one kind
type lookupSlot struct {
	status slotStatus
	query  string
	movies []tmdb.Summary
	err    error
}

// SearchOption configures a Search
type SearchOption func(*Search)

// WithDebounce sets the pause after the last query change before searching
func WithDebounce(d time.Duration) SearchOption {
	return func(s *Search) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithSearchListener registers fn to receive every state change. Calls are
// serialized and always carry the latest state. fn must not call back into
// the Search.
func WithSearchListener(fn func(SearchState)) SearchOption {
	return func(s *Search) {
		s.listener = fn
	}
}

// Search drives the search view: it owns the query text, decides when to
// query the provider and which single state the view shows.
type Search struct {
	api      tmdb.API
	logger   zerolog.Logger
	delay    time.Duration
	listener func(SearchState)

	debouncer *Debouncer
	ctx       context.Context
	cancel    context.CancelFunc
	inflight  sync.WaitGroup

	mu       sync.Mutex
	query    string
	seq      uint64
	trending lookupSlot
	search   lookupSlot
	started  bool
	closed   bool

	emitMu sync.Mutex
}

// NewSearch creates a search orchestrator. Call Start to begin the trending load.
func NewSearch(api tmdb.API, logger zerolog.Logger, opts ...SearchOption) *Search {
	s := &Search{
		api:    api,
		logger: logger.With().Str("view", "search").Logger(),
		delay:  DefaultDebounce,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.debouncer = NewDebouncer(s.delay, s.fire)

	return s
}

// Start begins loading the trending list. Later calls do nothing.
func (s *Search) Start() {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.trending = lookupSlot{status: slotPending}
	s.inflight.Add(1)
	s.mu.Unlock()

	s.emit()

	go func() {
		defer s.inflight.Done()

		movies, err := s.api.ListTrending(s.ctx)

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			s.dropStale("trending", "")
			return
		}
		s.trending = lookupSlot{status: slotDone, movies: movies, err: err}
		s.mu.Unlock()

		s.emit()
	}()
}

// SetQuery records the current search text and rearms the debounce timer.
// The text itself is never delayed: State reflects it immediately.
func (s *Search) SetQuery(text string) {
	s.mu.Lock()
	if s.closed || text == s.query {
		s.mu.Unlock()
		return
	}
	s.query = text
	s.seq++
	s.mu.Unlock()

	s.debouncer.Trigger()
	s.emit()
}

// Query returns the current search text
func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// fire runs when the debounce delay elapses, using the query as it is now
func (s *Search) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	query := strings.TrimSpace(s.query)
	if query == "" {
		s.search = lookupSlot{}
		s.mu.Unlock()
		s.emit()
		return
	}

	seq := s.seq
	s.search = lookupSlot{status: slotPending, query: query}
	s.inflight.Add(1)
	s.mu.Unlock()

	s.emit()

	go func() {
		defer s.inflight.Done()

		movies, err := s.api.SearchByTitle(s.ctx, query)

		s.mu.Lock()
		if s.closed || seq != s.seq {
			s.mu.Unlock()
			s.dropStale("search", query)
			return
		}
		s.search = lookupSlot{status: slotDone, query: query, movies: movies, err: err}
		s.mu.Unlock()

		s.emit()
	}()
}

func (s *Search) dropStale(kind, query string) {
	metrics.StaleResponses.WithLabelValues(kind).Inc()
	s.logger.Debug().Str("kind", kind).Str("query", query).Msg("Ignoring superseded response")
}

// State returns the current view state
func (s *Search) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.query) == "" {
		if s.trending.status != slotDone {
			return SearchState{Query: s.query, View: TrendingLoading, Movies: []tmdb.Summary{}}
		}
		state := trendingState(s.trending.movies, s.trending.err)
		state.Query = s.query
		return state
	}

	if s.search.status != slotDone {
		return SearchState{Query: s.query, View: Searching, Movies: []tmdb.Summary{}}
	}

	state := searchState(s.search.query, s.search.movies, s.search.err)
	state.Query = s.query
	return state
}

func (s *Search) emit() {
	if s.listener == nil {
		return
	}

	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.listener(s.State())
}

// Close stops the timer, cancels outstanding lookups and waits for them.
// Their results are discarded.
func (s *Search) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.debouncer.Stop()
	s.cancel()
	s.inflight.Wait()
}
