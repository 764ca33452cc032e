package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gallery-site/pkg/services"
)

var debounceMs int

// newWatchCmd creates a new command that rebuilds the site whenever the source changes
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build the site and rebuild on changes",
		Long:  `Build the site, then watch the source directory and rebuild whenever a file changes. Output written to the destination is ignored.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg.PrintBuildMessage()

			rebuild := func() error {
				_, report, err := services.NewBuilder(cfg).Build()
				printReport(report)
				return err
			}
			if err := rebuild(); err != nil {
				log.Printf("Initial build failed: %v", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			watcher := &services.Watcher{
				Root:     cfg.Source,
				Ignore:   []string{cfg.DestinationPath()},
				Debounce: time.Duration(debounceMs) * time.Millisecond,
				Rebuild:  rebuild,
			}
			return watcher.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&debounceMs, "debounce", int(services.DefaultDebounce/time.Millisecond), "Milliseconds to wait for changes to settle before rebuilding")

	return cmd
}
