package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/tasknotes/internal/instrumentation"
	"github.com/teemow/tasknotes/internal/render"
)

func newWatchCmd() *cobra.Command {
	var (
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch <note.md>",
		Short: "Re-render the task blocks of a note on an interval",
		Long: `Mount the task blocks of a note and re-render them periodically,
printing each refreshed checklist to stdout. A failing pass is logged
and the loop keeps going. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			notePath := args[0]
			note, err := os.ReadFile(notePath)
			if err != nil {
				return fmt.Errorf("reading note: %w", err)
			}
			blocks := render.ExtractBlocks(string(note))
			if len(blocks) == 0 {
				return fmt.Errorf("no task blocks found in %s", notePath)
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.shutdown(context.Background())

			if cfg, err := a.settings.Load(); err == nil {
				interval = watchInterval(cmd.Flags().Changed("interval"), interval, cfg.RefreshIntervalSec)
			}

			if a.provider.Enabled() && metricsAddr != "" {
				metricsServer := instrumentation.NewMetricsServer(metricsAddr)
				go func() {
					if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
						a.logger.Warn("metrics server stopped", "error", err.Error())
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := metricsServer.Shutdown(shutdownCtx); err != nil {
						a.logger.Warn("metrics server shutdown failed", "error", err.Error())
					}
				}()
				fmt.Fprintf(cmd.OutOrStdout(), "Metrics available on %s/metrics\n", metricsServer.Addr())
			}

			for _, b := range blocks {
				a.controller.Mount(ctx, notePath, b.Body)
			}

			// Render everything once up front so the watch does not sit
			// silent until the first tick.
			for _, id := range a.controller.Mounted() {
				result, err := a.controller.Render(ctx, id)
				if err == nil && !result.Stale {
					fmt.Fprint(cmd.OutOrStdout(), result.Markdown)
				}
			}

			a.controller.Watch(ctx, interval, func(result render.Result) {
				fmt.Fprintf(cmd.OutOrStdout(), "\n--- %s (pass %d) ---\n", result.Block, result.Sequence)
				fmt.Fprint(cmd.OutOrStdout(), result.Markdown)
			})
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 5*time.Minute, "Refresh interval between render passes (default from the saved refreshIntervalSec setting when present)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090); empty disables the server")

	return cmd
}

// watchInterval picks the refresh interval: an explicit flag wins over
// the saved setting, which wins over the flag default.
func watchInterval(flagSet bool, flag time.Duration, savedSec int) time.Duration {
	if flagSet || savedSec <= 0 {
		return flag
	}
	return time.Duration(savedSec) * time.Second
}
