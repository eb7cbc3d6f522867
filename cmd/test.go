package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/flickhunt/discover"
	"github.com/s0up4200/flickhunt/tmdb"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to TMDB",
	Long:  `Test the connection to The Movie Database and verify the configured API key.`,
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)

	if cfg.TMDB.APIKey == "" {
		fmt.Println("! No API key configured (set TMDB_API_KEY or tmdb.api_key)")
	}

	if err := tmdbClient.TestConnection(cmd.Context()); err != nil {
		fmt.Printf("✗ %s\n", discover.Message(err, discover.OpMovies))
		var apiErr *tmdb.APIError
		if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
			fmt.Println("  The API key was rejected.")
		}
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Println("✓ Connection successful!")

	movies, err := tmdbClient.ListTrending(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list trending movies: %w", err)
	}

	fmt.Printf("\nTMDB:\n")
	fmt.Printf("- Language: %s\n", cfg.TMDB.Language)
	fmt.Printf("- Region: %s\n", cfg.TMDB.Region)
	fmt.Printf("- Trending movies available: %d\n", len(movies))

	if presets := filters.Presets(); len(presets) > 0 {
		fmt.Printf("\nFilter presets:\n")
		for _, name := range presets {
			f, _ := filters.Preset(name)
			fmt.Printf("  • %s: %s\n", name, f.Expression())
		}
	}

	return nil
}
