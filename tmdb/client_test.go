package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)

	return client, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestNewClient(t *testing.T) {
	t.Run("empty api key is accepted", func(t *testing.T) {
		client, err := NewClient("", zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.baseURL)
		assert.Empty(t, client.apiKey)
	})

	t.Run("invalid base url", func(t *testing.T) {
		_, err := NewClient("key", zerolog.Nop(), WithBaseURL("not a url"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid tmdb base URL")
	})

	t.Run("options", func(t *testing.T) {
		custom := &http.Client{Timeout: 3 * time.Second}
		client, err := NewClient("key", zerolog.Nop(),
			WithBaseURL("http://localhost:9999/3/"),
			WithImageBaseURL("http://img.local/t/p/"),
			WithImageSize("w342"),
			WithLanguage("de-DE"),
			WithRegion("de"),
			WithHTTPClient(custom),
		)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9999/3", client.baseURL)
		assert.Equal(t, "http://img.local/t/p", client.images.baseURL)
		assert.Equal(t, "w342", client.images.size)
		assert.Equal(t, "de-DE", client.language)
		assert.Equal(t, "DE", client.region)
		assert.Same(t, custom, client.httpClient)
	})

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("key", zerolog.Nop(), WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("default timeout", func(t *testing.T) {
		client, err := NewClient("key", zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	})

	t.Run("custom client is not modified in either order", func(t *testing.T) {
		for name, opts := range map[string][]Option{
			"timeout first": {WithTimeout(5 * time.Second), WithHTTPClient(&http.Client{Timeout: 3 * time.Second})},
			"client first":  {WithHTTPClient(&http.Client{Timeout: 3 * time.Second}), WithTimeout(5 * time.Second)},
		} {
			client, err := NewClient("key", zerolog.Nop(), opts...)
			require.NoError(t, err, name)
			assert.Equal(t, 3*time.Second, client.httpClient.Timeout, name)
		}
	})
}

func TestSearchByTitle(t *testing.T) {
	t.Run("maps results", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/movie", r.URL.Path)
			assert.Equal(t, "matrix", r.URL.Query().Get("query"))
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			assert.Equal(t, "en-US", r.URL.Query().Get("language"))
			writeJSON(t, w, http.StatusOK, map[string]any{
				"page": 1,
				"results": []map[string]any{
					{"id": 603, "title": "The Matrix", "release_date": "1999-03-30", "poster_path": "/matrix.jpg", "vote_average": 8.2},
					{"id": 604, "title": "The Matrix Reloaded", "release_date": "", "poster_path": nil},
				},
				"total_results": 2,
			})
		})

		movies, err := client.SearchByTitle(context.Background(), "  matrix ")
		require.NoError(t, err)
		require.Len(t, movies, 2)

		assert.Equal(t, Summary{
			ID:          "603",
			Title:       "The Matrix",
			Year:        "1999",
			PosterURL:   "https://image.tmdb.org/t/p/w500/matrix.jpg",
			VoteAverage: 8.2,
		}, movies[0])
		assert.Equal(t, "604", movies[1].ID)
		assert.Equal(t, NotAvailable, movies[1].Year)
		assert.Equal(t, PlaceholderPoster, movies[1].PosterURL)
	})

	t.Run("blank query makes no request", func(t *testing.T) {
		var calls atomic.Int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		})

		for _, query := range []string{"", "   ", "\t\n"} {
			movies, err := client.SearchByTitle(context.Background(), query)
			require.NoError(t, err)
			assert.NotNil(t, movies)
			assert.Empty(t, movies)
		}
		assert.Zero(t, calls.Load())
	})

	t.Run("empty result set is not an error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"page": 1, "results": []any{}, "total_results": 0})
		})

		movies, err := client.SearchByTitle(context.Background(), "zzzqqqnonexistent")
		require.NoError(t, err)
		assert.NotNil(t, movies)
		assert.Empty(t, movies)
	})

	t.Run("remote error carries the remote message", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{
				"success":        false,
				"status_code":    7,
				"status_message": "Invalid API key: You must be granted a valid key.",
			})
		})

		_, err := client.SearchByTitle(context.Background(), "matrix")
		require.Error(t, err)
		assert.Equal(t, KindRemote, Classify(err))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.IsUnauthorized())
		assert.Equal(t, 7, apiErr.Code)
		assert.Equal(t, "Invalid API key: You must be granted a valid key.", apiErr.Message)
	})

	t.Run("success false with status 200 is a remote error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"success": false})
		})

		_, err := client.SearchByTitle(context.Background(), "matrix")
		require.Error(t, err)
		assert.Equal(t, KindRemote, Classify(err))
	})

	t.Run("malformed body is a network failure", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("<html>not json</html>"))
		})

		_, err := client.SearchByTitle(context.Background(), "matrix")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNetwork)
		assert.Equal(t, KindNetwork, Classify(err))
	})

	t.Run("non-json gateway failure is a network failure", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("bad gateway"))
		})

		_, err := client.SearchByTitle(context.Background(), "matrix")
		assert.Equal(t, KindNetwork, Classify(err))
	})

	t.Run("unreachable server is a network failure", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		client, err := NewClient("secret-key", zerolog.Nop(), WithBaseURL(server.URL))
		require.NoError(t, err)

		_, err = client.SearchByTitle(context.Background(), "matrix")
		require.Error(t, err)
		assert.Equal(t, KindNetwork, Classify(err))
		assert.NotContains(t, err.Error(), "secret-key")
	})
}

func TestListTrending(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"page": 1,
			"results": []map[string]any{
				{"id": 1, "title": "Popular One", "release_date": "2024-05-01", "poster_path": "/one.jpg", "popularity": 99.5},
			},
		})
	})

	movies, err := client.ListTrending(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Popular One", movies[0].Title)
	assert.Equal(t, "2024", movies[0].Year)
	assert.Equal(t, 99.5, movies[0].Popularity)
}

func TestGetByID(t *testing.T) {
	detailBody := map[string]any{
		"id":                603,
		"imdb_id":           "tt0133093",
		"title":             "The Matrix",
		"overview":          "A hacker learns the truth.",
		"release_date":      "1999-03-30",
		"runtime":           136,
		"poster_path":       "/matrix.jpg",
		"backdrop_path":     "/backdrop.jpg",
		"original_language": "en",
		"vote_average":      8.219,
		"vote_count":        26150,
		"genres":            []map[string]any{{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}},
		"production_countries": []map[string]any{
			{"iso_3166_1": "US", "name": "United States of America"},
		},
		"credits": map[string]any{
			"cast": []map[string]any{
				{"name": "Keanu Reeves"}, {"name": "Laurence Fishburne"}, {"name": "Carrie-Anne Moss"},
				{"name": "Hugo Weaving"}, {"name": "Joe Pantoliano"}, {"name": "Marcus Chong"},
			},
			"crew": []map[string]any{
				{"name": "Bill Pope", "job": "Director of Photography"},
				{"name": "Lana Wachowski", "job": "Director"},
				{"name": "Lilly Wachowski", "job": "Director"},
			},
		},
		"release_dates": map[string]any{
			"results": []map[string]any{
				{"iso_3166_1": "DE", "release_dates": []map[string]any{{"certification": "16"}}},
				{"iso_3166_1": "US", "release_dates": []map[string]any{{"certification": ""}, {"certification": "R"}}},
			},
		},
	}

	t.Run("normalizes detail", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/movie/603", r.URL.Path)
			assert.Equal(t, "credits,release_dates", r.URL.Query().Get("append_to_response"))
			writeJSON(t, w, http.StatusOK, detailBody)
		})

		movie, err := client.GetByID(context.Background(), "603")
		require.NoError(t, err)

		assert.Equal(t, "603", movie.ID)
		assert.Equal(t, "The Matrix", movie.Title)
		assert.Equal(t, "1999", movie.Year)
		assert.Equal(t, "https://image.tmdb.org/t/p/w500/matrix.jpg", movie.PosterURL)
		assert.Equal(t, "https://image.tmdb.org/t/p/w500/backdrop.jpg", movie.BackdropURL)
		assert.Equal(t, "A hacker learns the truth.", movie.Plot)
		assert.Equal(t, "R", movie.Rated)
		assert.Equal(t, "136 min", movie.Runtime)
		assert.Equal(t, "Action, Science Fiction", movie.Genre)
		assert.Equal(t, "Lana Wachowski", movie.Director)
		assert.Equal(t, "Keanu Reeves, Laurence Fishburne, Carrie-Anne Moss, Hugo Weaving, Joe Pantoliano", movie.Cast)
		assert.Equal(t, "1999-03-30", movie.Released)
		assert.Equal(t, "EN", movie.Language)
		assert.Equal(t, "United States of America", movie.Country)
		assert.Equal(t, "8.2", movie.Rating)
		assert.Equal(t, "26,150", movie.Votes)
		assert.Equal(t, "tt0133093", movie.IMDbID)
	})

	t.Run("repeated lookups are identical", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, detailBody)
		})

		first, err := client.GetByID(context.Background(), "603")
		require.NoError(t, err)
		second, err := client.GetByID(context.Background(), "603")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("not found envelope", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]any{
				"success":        false,
				"status_code":    34,
				"status_message": "The resource you requested could not be found.",
			})
		})

		_, err := client.GetByID(context.Background(), "999999999")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, KindNotFound, Classify(err))

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "999999999", nf.ID)
		assert.Equal(t, "The resource you requested could not be found.", nf.Message)
	})

	t.Run("blank id is not found without a request", func(t *testing.T) {
		var calls atomic.Int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		})

		_, err := client.GetByID(context.Background(), " ")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Zero(t, calls.Load())
	})

	t.Run("remote failure is distinct from not found", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{
				"success": false, "status_code": 7, "status_message": "Invalid API key",
			})
		})

		_, err := client.GetByID(context.Background(), "603")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, KindRemote, Classify(err))
	})

	t.Run("network failure is distinct from not found", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{truncated"))
		})

		_, err := client.GetByID(context.Background(), "603")
		assert.Equal(t, KindNetwork, Classify(err))
	})
}

func TestGetMany(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/1":
			writeJSON(t, w, http.StatusOK, map[string]any{"id": 1, "title": "One"})
		case "/movie/2":
			writeJSON(t, w, http.StatusOK, map[string]any{"id": 2, "title": "Two"})
		default:
			writeJSON(t, w, http.StatusNotFound, map[string]any{"success": false, "status_code": 34})
		}
	})

	results := client.GetMany(context.Background(), []string{"2", "missing", "1"})
	require.Len(t, results, 3)

	assert.Equal(t, "2", results[0].ID)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "Two", results[0].Detail.Title)

	assert.Equal(t, "missing", results[1].ID)
	assert.ErrorIs(t, results[1].Err, ErrNotFound)
	assert.Nil(t, results[1].Detail)

	assert.Equal(t, "One", results[2].Detail.Title)

	assert.Empty(t, client.GetMany(context.Background(), nil))
}

func TestTestConnection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/configuration", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"images": map[string]any{"secure_base_url": "https://image.tmdb.org/t/p/"},
		})
	})

	require.NoError(t, client.TestConnection(context.Background()))
}
