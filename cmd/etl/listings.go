package main

import (
	"github.com/spf13/cobra"
)

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Clean the listing snapshots and replace the listings table",
	RunE:  runListings,
}

func init() {
	rootCmd.AddCommand(listingsCmd)
}

func runListings(cmd *cobra.Command, args []string) error {
	return newPipeline(cmd.Context(), nil).RunListings(cmd.Context())
}
