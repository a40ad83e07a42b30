package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillback/folio"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content root",
	Long: `Load the content root and report the first validation problem:
a missing required field, a malformed date, or two documents sharing an
identifier. Exits nonzero if the content would not publish.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := contentRoot()
		if err != nil {
			fatal("Error resolving content root", err)
		}

		store, err := folio.Load(context.Background(), root, folio.WithLogger(slog.Default()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s\n  %v\n", root, err)
			exit(1)
		}

		fmt.Printf("OK %s\n  %d posts, %d pages\n", root, len(store.Posts()), len(store.Pages()))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
