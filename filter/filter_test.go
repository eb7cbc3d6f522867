package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/flickhunt/tmdb"
)

var testMovies = []tmdb.Summary{
	{ID: "603", Title: "The Matrix", Year: "1999", VoteAverage: 8.2, Popularity: 80},
	{ID: "604", Title: "The Matrix Reloaded", Year: "2003", VoteAverage: 7.0, Popularity: 50},
	{ID: "605", Title: "The Matrix Revolutions", Year: "2003", VoteAverage: 6.7, Popularity: 45},
	{ID: "999", Title: "Untitled", Year: tmdb.NotAvailable},
}

func ids(movies []tmdb.Summary) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{name: "valid expression", expression: `Movie.VoteAverage > 7`},
		{name: "helpers", expression: `year() >= 2000 && includes(Movie.Title, "matrix")`},
		{name: "empty expression", expression: "  ", wantErr: true, errContains: "empty expression"},
		{name: "invalid syntax", expression: `includes(Movie.Title, "unclosed`, wantErr: true},
		{name: "unknown field", expression: `Movie.Runtime > 100`, wantErr: true},
		{name: "non boolean", expression: `Movie.Title`, wantErr: true},
	}

	c := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := c.Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		expected   []string
	}{
		{"rating", `Movie.VoteAverage > 7`, []string{"603"}},
		{"year helper", `year() == 2003`, []string{"604", "605"}},
		{"unknown year is zero", `year() == 0`, []string{"999"}},
		{"case insensitive includes", `includes(Movie.Title, "REVOLUTIONS")`, []string{"605"}},
		{"lower", `lower(Movie.Title) == "untitled"`, []string{"999"}},
		{"upper", `upper(Movie.Title) startsWith "THE"`, []string{"603", "604", "605"}},
		{"hasPrefix helper", `hasPrefix(Movie.Title, "the matrix r")`, []string{"604", "605"}},
	}

	m := NewManager()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := m.Resolve("", tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(m.Apply(f, testMovies)))
		})
	}
}

func TestCompilerCache(t *testing.T) {
	c := NewExprCompiler(WithCache(2))

	first, err := c.Compile(`Movie.VoteAverage > 7`)
	require.NoError(t, err)
	second, err := c.Compile(` Movie.VoteAverage > 7 `)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Cached())

	_, err = c.Compile(`year() > 2000`)
	require.NoError(t, err)
	_, err = c.Compile(`year() < 2000`)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Cached())

	uncached := NewExprCompiler(WithCache(0))
	_, err = uncached.Compile(`year() > 2000`)
	require.NoError(t, err)
	assert.Zero(t, uncached.Cached())
}

func TestLRUEviction(t *testing.T) {
	cache := newLRUCache[int](2)
	cache.Put("a", 1)
	cache.Put("b", 2)

	// touch a so b is the eviction candidate
	_, ok := cache.Get("a")
	require.True(t, ok)
	cache.Put("c", 3)

	_, ok = cache.Get("b")
	assert.False(t, ok)
	v, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, cache.Len())

	cache.Clear()
	assert.Zero(t, cache.Len())
}

func TestPresets(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.RegisterPresets(map[string]string{
		"acclaimed": `Movie.VoteAverage >= 7`,
		"modern":    `year() >= 2000`,
	}))
	assert.Equal(t, []string{"acclaimed", "modern"}, m.Presets())

	t.Run("preset alone", func(t *testing.T) {
		f, err := m.Resolve("modern", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"604", "605"}, ids(m.Apply(f, testMovies)))
	})

	t.Run("preset and expression combine", func(t *testing.T) {
		f, err := m.Resolve("acclaimed", "year() >= 2000")
		require.NoError(t, err)
		assert.Equal(t, []string{"604"}, ids(m.Apply(f, testMovies)))
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := m.Resolve("missing", "")
		assert.True(t, errors.Is(err, ErrUnknownPreset))
	})

	t.Run("nothing requested", func(t *testing.T) {
		f, err := m.Resolve("", " ")
		require.NoError(t, err)
		assert.Nil(t, f)
		assert.Equal(t, testMovies, m.Apply(f, testMovies))
	})

	t.Run("bad preset registers nothing", func(t *testing.T) {
		err := m.RegisterPresets(map[string]string{"broken": `Movie.Nope`})
		require.Error(t, err)
		_, ok := m.Preset("broken")
		assert.False(t, ok)
	})
}

func TestCustomFunctions(t *testing.T) {
	c := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isClassic": func(year int) bool { return year > 0 && year < 2000 },
	}))
	m := NewManager(WithCompiler(c))

	f, err := m.Resolve("", `isClassic(year())`)
	require.NoError(t, err)
	assert.Equal(t, []string{"603"}, ids(m.Apply(f, testMovies)))
}
