package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List distinct categories and tags with post counts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := loadStore(context.Background())
		if err != nil {
			fatal("Error loading content", err)
		}

		for _, label := range store.Labels() {
			fmt.Printf("%s (%d)\n", label, len(store.ByLabel(label)))
		}
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}
