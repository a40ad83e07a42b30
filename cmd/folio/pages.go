package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pagesJSON bool

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List page documents",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := loadStore(context.Background())
		if err != nil {
			fatal("Error loading content", err)
		}

		pages := store.Pages()

		if pagesJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(pages); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, p := range pages {
			fmt.Printf("%s - %s\n", p.ID, p.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	pagesCmd.Flags().BoolVar(&pagesJSON, "json", false, "Output in JSON format")
}
