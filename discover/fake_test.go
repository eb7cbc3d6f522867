package discover

import (
	"context"
	"slices"
	"sync"

	"github.com/s0up4200/flickhunt/tmdb"
)

// fakeAPI is a scripted tmdb.API. Calls for a gated key block until the gate
// is released or the context is cancelled.
type fakeAPI struct {
	mu            sync.Mutex
	searches      []string
	details       []string
	trendingCalls int
	gates         map[string]chan struct{}

	trending func() ([]tmdb.Summary, error)
	search   func(query string) ([]tmdb.Summary, error)
	detail   func(id string) (*tmdb.Detail, error)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		gates: make(map[string]chan struct{}),
		trending: func() ([]tmdb.Summary, error) {
			return []tmdb.Summary{{ID: "1", Title: "Popular"}}, nil
		},
		search: func(query string) ([]tmdb.Summary, error) {
			return []tmdb.Summary{{ID: query, Title: query}}, nil
		},
		detail: func(id string) (*tmdb.Detail, error) {
			return &tmdb.Detail{Summary: tmdb.Summary{ID: id, Title: "Movie " + id}}, nil
		},
	}
}

func (f *fakeAPI) gate(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gates[key] = make(chan struct{})
}

func (f *fakeAPI) release(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.gates[key]; ok {
		close(ch)
		delete(f.gates, key)
	}
}

func (f *fakeAPI) wait(ctx context.Context, key string) error {
	f.mu.Lock()
	ch, ok := f.gates[key]
	f.mu.Unlock()
	if !ok {
		return nil
	}

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeAPI) SearchByTitle(ctx context.Context, query string) ([]tmdb.Summary, error) {
	f.mu.Lock()
	f.searches = append(f.searches, query)
	f.mu.Unlock()

	if err := f.wait(ctx, query); err != nil {
		return nil, err
	}
	return f.search(query)
}

func (f *fakeAPI) ListTrending(ctx context.Context) ([]tmdb.Summary, error) {
	f.mu.Lock()
	f.trendingCalls++
	f.mu.Unlock()

	if err := f.wait(ctx, "trending"); err != nil {
		return nil, err
	}
	return f.trending()
}

func (f *fakeAPI) GetByID(ctx context.Context, id string) (*tmdb.Detail, error) {
	f.mu.Lock()
	f.details = append(f.details, id)
	f.mu.Unlock()

	if err := f.wait(ctx, "detail:"+id); err != nil {
		return nil, err
	}
	return f.detail(id)
}

func (f *fakeAPI) searchCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.searches)
}

func (f *fakeAPI) detailCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.details)
}

func (f *fakeAPI) trendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trendingCalls
}
