package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelcache/reelcache/internal/app"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		if page < 1 {
			return fmt.Errorf("page must be >= 1, got %d", page)
		}
		query := strings.Join(args, " ")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		return drainPage(application.Movies.SearchPage(cmd.Context(), query, page))
	},
}

func init() {
	searchCmd.Flags().Int("page", 1, "page number to show")
	rootCmd.AddCommand(searchCmd)
}
