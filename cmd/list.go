package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/flickhunt/discover"
	"github.com/s0up4200/flickhunt/tmdb"
)

var showOverview bool

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Search movies by title",
	Long: `Search movies by title and print the first page of results.

Results can be narrowed with an expression or a preset from config, e.g.
  flickhunt search matrix --filter 'year() < 2000 && Movie.VoteAverage > 7'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// trendingCmd represents the trending command
var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List popular movies",
	Long:  `List the movies that are popular right now.`,
	Args:  cobra.NoArgs,
	RunE:  runTrending,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(trendingCmd)

	for _, c := range []*cobra.Command{searchCmd, trendingCmd} {
		c.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
		c.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
		c.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
		c.Flags().BoolVar(&showOverview, "overview", false, "include each movie's overview")
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("a search title is required")
	}

	logger.Debug().Str("query", query).Msg("Searching movies")
	state := discover.ResolveSearch(cmd.Context(), tmdbClient, query)
	return printListing(state, "Search Results")
}

func runTrending(cmd *cobra.Command, args []string) error {
	logger.Debug().Msg("Listing trending movies")
	state := discover.ResolveTrending(cmd.Context(), tmdbClient)
	return printListing(state, "Trending Movies")
}

// printListing applies the selected filter and prints the state
func printListing(state discover.SearchState, heading string) error {
	f, err := filters.Resolve(preset, filterExpr)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	if f != nil && len(state.Movies) > 0 {
		state.Movies = filters.Apply(f, state.Movies)
		if len(state.Movies) == 0 {
			fmt.Fprintln(os.Stderr, "No movies matched the filter.")
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}

	if state.View.IsError() {
		return errors.New(state.Message)
	}
	if jsonOutput {
		return nil
	}

	if len(state.Movies) == 0 {
		if state.Message != "" {
			fmt.Println(state.Message)
		}
		return nil
	}

	formatter := tmdb.NewConsoleFormatter()
	formatter.ShowOverview = showOverview
	fmt.Print(formatter.FormatSummaryList(heading, state.Movies))
	return nil
}
