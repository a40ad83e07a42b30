package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillback/folio"
)

var (
	listJSON    bool
	filterLabel string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published posts, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := loadStore(context.Background())
		if err != nil {
			fatal("Error loading content", err)
		}

		var posts []folio.Document
		if filterLabel != "" {
			posts = store.ByLabel(filterLabel)
		} else {
			posts = store.Posts()
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(posts); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, p := range posts {
			fmt.Printf("%s  %s - %s\n", p.Date.Format("2006-01-02"), p.ID, p.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterLabel, "label", "", "Filter posts by category or tag")
}
