package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/flickhunt/web"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front",
	Long: `Serve the search page, movie detail pages and the JSON API.

The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	opts := []web.Option{
		web.WithDebounce(cfg.Search.Debounce),
		web.WithFilters(filters),
		web.WithVersion(version),
	}
	if cfg.Server.RateLimit.Enabled {
		opts = append(opts, web.WithRateLimit(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst))
	}

	srv, err := web.New(tmdbClient, logger, opts...)
	if err != nil {
		return err
	}

	return srv.Run(ctx, addr)
}
