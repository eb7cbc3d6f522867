package discover

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/flickhunt/metrics"
	"github.com/s0up4200/flickhunt/tmdb"
)

// DetailOption configures a Detail
type DetailOption func(*Detail)

// WithDetailListener registers fn to receive every state change. fn must not
// call back into the Detail.
func WithDetailListener(fn func(DetailState)) DetailOption {
	return func(d *Detail) {
		d.listener = fn
	}
}

// Detail drives the detail view for the identifier currently routed to
type Detail struct {
	api      tmdb.API
	logger   zerolog.Logger
	listener func(DetailState)

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup

	mu     sync.Mutex
	seq    uint64
	state  DetailState
	closed bool

	emitMu sync.Mutex
}

// NewDetail creates a detail orchestrator
func NewDetail(api tmdb.API, logger zerolog.Logger, opts ...DetailOption) *Detail {
	d := &Detail{
		api:    api,
		logger: logger.With().Str("view", "detail").Logger(),
		state:  DetailState{View: Loading},
	}

	for _, opt := range opts {
		opt(d)
	}

	d.ctx, d.cancel = context.WithCancel(context.Background())
	return d
}

// Load shows the movie with the given identifier. A new identifier always
// re-enters Loading and refetches; loading the current one again only
// retries after an error.
func (d *Detail) Load(id string) {
	id = strings.TrimSpace(id)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.seq > 0 && id == d.state.ID && d.state.View != Error {
		d.mu.Unlock()
		return
	}

	d.seq++
	seq := d.seq
	d.state = DetailState{ID: id, View: Loading}
	d.inflight.Add(1)
	d.mu.Unlock()

	d.emit()

	go func() {
		defer d.inflight.Done()

		movie, err := d.api.GetByID(d.ctx, id)

		d.mu.Lock()
		if d.closed || seq != d.seq {
			d.mu.Unlock()
			metrics.StaleResponses.WithLabelValues("detail").Inc()
			d.logger.Debug().Str("id", id).Msg("Ignoring superseded response")
			return
		}
		d.state = detailState(id, movie, err)
		d.mu.Unlock()

		d.emit()
	}()
}

// State returns the current view state
func (d *Detail) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Detail) emit() {
	if d.listener == nil {
		return
	}

	d.emitMu.Lock()
	defer d.emitMu.Unlock()
	d.listener(d.State())
}

// Close cancels the outstanding lookup, if any, and waits for it
func (d *Detail) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.inflight.Wait()
}
