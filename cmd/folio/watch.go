package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillback/folio"
	"github.com/quillback/folio/pkg/core"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the content root and print change events",
	Long: `Watch the content root for created, modified, and deleted documents,
printing one line per event until interrupted. Consumers reload the whole
store in response; there is no incremental update.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := contentRoot()
		if err != nil {
			fatal("Error resolving content root", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src := folio.NewSource(root, folio.WithLogger(slog.Default()))
		watchable, ok := src.(core.Watchable)
		if !ok {
			fatal("Error starting watcher", fmt.Errorf("source does not support watching"))
		}

		events, err := watchable.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		fmt.Printf("Watching %s (Ctrl-C to stop)\n", root)
		for e := range events {
			ts := time.Unix(e.Timestamp, 0).Format(time.TimeOnly)
			fmt.Printf("%s %-6s %s\n", ts, e.Type, e.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Only report files matching this glob (e.g. '_posts/**')")
}
