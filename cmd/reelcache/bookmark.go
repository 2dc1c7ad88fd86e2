package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reelcache/reelcache/internal/app"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarked movies",
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarked movies, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		movies := <-application.Bookmarks.List(cmd.Context())
		if len(movies) == 0 {
			fmt.Println("no bookmarks")
			return nil
		}
		for _, m := range movies {
			fmt.Printf("%8d  %-5s %4.1f  %s\n", m.ID, m.Year(), m.VoteAverage, m.Title)
		}
		return nil
	},
}

var bookmarkToggleCmd = &cobra.Command{
	Use:   "toggle <movie-id>",
	Short: "Bookmark a movie, or remove an existing bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid movie id %q", args[0])
		}

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		detail, err := drainDetail(application.Movies.GetDetail(cmd.Context(), id, false))
		if err != nil {
			return err
		}
		if detail == nil {
			return fmt.Errorf("movie %d not found", id)
		}

		if err := application.Bookmarks.ToggleFromDetail(cmd.Context(), *detail); err != nil {
			return fmt.Errorf("failed to toggle bookmark: %w", err)
		}

		bookmarked := <-application.Bookmarks.IsBookmarked(cmd.Context(), id)
		if bookmarked {
			fmt.Printf("bookmarked %q\n", detail.Title)
		} else {
			fmt.Printf("removed bookmark for %q\n", detail.Title)
		}
		return nil
	},
}

// bookmarkExport is the YAML shape written by `bookmark export`.
type bookmarkExport struct {
	Movies []bookmarkExportMovie `yaml:"bookmarks"`
}

type bookmarkExportMovie struct {
	ID          int     `yaml:"id"`
	Title       string  `yaml:"title"`
	ReleaseDate string  `yaml:"releaseDate,omitempty"`
	VoteAverage float64 `yaml:"voteAverage"`
}

var bookmarkExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export bookmarks as YAML (stdout if no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		movies := <-application.Bookmarks.List(cmd.Context())

		export := bookmarkExport{}
		for _, m := range movies {
			export.Movies = append(export.Movies, bookmarkExportMovie{
				ID:          m.ID,
				Title:       m.Title,
				ReleaseDate: m.ReleaseDate,
				VoteAverage: m.VoteAverage,
			})
		}

		b, err := yaml.Marshal(export)
		if err != nil {
			return fmt.Errorf("failed to marshal bookmarks: %w", err)
		}

		if len(args) == 1 {
			return os.WriteFile(args[0], b, 0o644)
		}
		fmt.Print(string(b))
		return nil
	},
}

func init() {
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkToggleCmd)
	bookmarkCmd.AddCommand(bookmarkExportCmd)
	rootCmd.AddCommand(bookmarkCmd)
}
