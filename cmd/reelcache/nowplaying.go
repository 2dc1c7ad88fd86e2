package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reelcache/reelcache/internal/app"
)

var nowPlayingCmd = &cobra.Command{
	Use:   "nowplaying",
	Short: "Show a page of now-playing movies",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		if page < 1 {
			return fmt.Errorf("page must be >= 1, got %d", page)
		}

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		return drainPage(application.Movies.GetNowPlayingPage(cmd.Context(), page))
	},
}

func init() {
	nowPlayingCmd.Flags().Int("page", 1, "page number to show")
	rootCmd.AddCommand(nowPlayingCmd)
}
