package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillback/folio/pkg/core"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a document",
	Long:  `Show a document by its identifier. Outputs the raw body by default, or the full record with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		store, err := loadStore(context.Background())
		if err != nil {
			fatal("Error loading content", err)
		}

		doc, err := store.Find(id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "No document with identifier %q\n", id)
				exit(1)
			}
			fatal("Error reading document", err)
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(doc); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Print(doc.Body)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
