// Package tmdb provides a client for The Movie Database (TMDB) v3 API.
//
// The client issues three kinds of lookups and normalizes the responses into
// display-ready records:
//
//   - SearchByTitle: title search, returning Summary records
//   - ListTrending: the provider's popularity listing, returning Summary records
//   - GetByID: a single movie with credits and release certifications, returning a Detail
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		os.Getenv("TMDB_API_KEY"),
//		logger,
//		tmdb.WithTimeout(10*time.Second),
//		tmdb.WithLanguage("en-US"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.SearchByTitle(ctx, "matrix")
//
// # Normalization
//
// Missing remote attributes never produce errors. They are replaced with
// sentinels: NotAvailable ("N/A") for text and a fixed placeholder image URL
// for posters and backdrops. An empty result set is an empty slice with a nil
// error.
//
// # Error Handling
//
// Failures are classified into three kinds, see Classify:
//
//   - KindNetwork: the request could not complete or the envelope was malformed (wraps ErrNetwork)
//   - KindRemote: the provider answered with a failure envelope (*APIError)
//   - KindNotFound: a detail lookup for an unknown identifier (wraps ErrNotFound)
//
//	var apiErr *tmdb.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle a bad API key
//	}
package tmdb
