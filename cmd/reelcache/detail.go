package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reelcache/reelcache/internal/app"
)

var detailCmd = &cobra.Command{
	Use:   "detail <movie-id>",
	Short: "Show the detail record for a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid movie id %q", args[0])
		}
		forceRefresh, _ := cmd.Flags().GetBool("refresh")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		detail, err := drainDetail(application.Movies.GetDetail(cmd.Context(), id, forceRefresh))
		if err != nil {
			return err
		}
		if detail != nil {
			printDetail(*detail)
		}
		return nil
	},
}

func init() {
	detailCmd.Flags().Bool("refresh", false, "bypass the cached record and fetch fresh data")
	rootCmd.AddCommand(detailCmd)
}
