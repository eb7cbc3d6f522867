package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/flickhunt/tmdb"
)

// Manager holds named filter presets and resolves ad-hoc expressions
type Manager struct {
	compiler Compiler
	logger   zerolog.Logger
	presets  map[string]Filter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithLogger sets the logger used to report evaluation errors
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewExprCompiler(),
		logger:   zerolog.Nop(),
		presets:  make(map[string]Filter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterPresets compiles and registers named filters. Nothing is registered
// unless every expression compiles.
func (m *Manager) RegisterPresets(presets map[string]string) error {
	compiled := make(map[string]Filter, len(presets))

	for name, expression := range presets {
		f, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = f
	}

	m.mu.Lock()
	maps.Copy(m.presets, compiled)
	m.mu.Unlock()

	return nil
}

// Preset returns a registered filter by name
func (m *Manager) Preset(name string) (Filter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.presets[name]
	return f, ok
}

// Presets returns the registered preset names in sorted order
func (m *Manager) Presets() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.presets))
}

// Resolve builds the filter for an optional preset name and an optional
// expression. When both are given a movie must satisfy both. A nil filter
// with a nil error means no filtering was requested.
func (m *Manager) Resolve(preset, expression string) (Filter, error) {
	preset = strings.TrimSpace(preset)
	expression = strings.TrimSpace(expression)

	if preset == "" && expression == "" {
		return nil, nil
	}

	if preset != "" {
		f, ok := m.Preset(preset)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
		}
		if expression == "" {
			return f, nil
		}
		expression = fmt.Sprintf("(%s) && (%s)", f.Expression(), expression)
	}

	return m.compiler.Compile(expression)
}

// Apply returns the movies matching f, keeping their order. A nil filter keeps
// everything. Movies the filter cannot be evaluated against are dropped.
func (m *Manager) Apply(f Filter, movies []tmdb.Summary) []tmdb.Summary {
	if f == nil {
		return movies
	}

	matches := make([]tmdb.Summary, 0, len(movies))
	for _, movie := range movies {
		ok, err := f.Match(movie)
		if err != nil {
			m.logger.Debug().Err(err).Str("movie", movie.ID).Msg("Skipping movie that failed filter evaluation")
			continue
		}
		if ok {
			matches = append(matches, movie)
		}
	}

	return matches
}
