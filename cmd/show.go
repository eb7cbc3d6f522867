package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/flickhunt/discover"
	"github.com/s0up4200/flickhunt/tmdb"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show the full record of one or more movies",
	Long: `Show the full record of one or more movies by TMDB identifier.

Several identifiers are looked up concurrently and printed in the order given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the records as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	results := tmdbClient.GetMany(cmd.Context(), args)

	states := make([]discover.DetailState, 0, len(results))
	var failed int
	for _, r := range results {
		state := discover.DetailFromResult(r)
		if state.View != discover.Ready {
			failed++
			logger.Debug().Err(r.Err).Str("id", r.ID).Msg("Lookup failed")
		}
		states = append(states, state)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(states); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		formatter := tmdb.NewConsoleFormatter()
		for _, state := range states {
			if state.View == discover.Ready {
				fmt.Print(formatter.FormatDetail(state.Movie))
				continue
			}
			fmt.Printf("\n%s: %s\n", state.ID, state.Message)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(results))
	}
	return nil
}
