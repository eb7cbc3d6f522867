package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/s0up4200/flickhunt/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse movies in an interactive terminal UI",
	Long: `Open the interactive terminal UI.

Type to search (results update after a short pause), use the arrow keys to
move through the list, Enter to open a movie, Esc to go back and Ctrl+C to quit.
Logs are written to logging.file when set and discarded otherwise.`,
	Annotations: map[string]string{annotationInteractive: "true"},
	RunE:        runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return tui.Run(ctx, tmdbClient, logger, cfg.Search.Debounce)
}
