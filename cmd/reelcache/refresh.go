package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/reelcache/reelcache/internal/app"
	"github.com/reelcache/reelcache/internal/domain"
	"github.com/reelcache/reelcache/internal/movie"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Warm the cache with page 1 of trending and now-playing",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		g, ctx := errgroup.WithContext(cmd.Context())

		g.Go(func() error {
			return drainQuiet("trending", application.Movies.GetTrendingPage(ctx, 1))
		})
		g.Go(func() error {
			return drainQuiet("nowplaying", application.Movies.GetNowPlayingPage(ctx, 1))
		})

		if err := g.Wait(); err != nil {
			return err
		}
		fmt.Println("cache warmed")
		return nil
	},
}

func drainQuiet(name string, stream movie.PageStream) error {
	var last domain.Result[movie.PageResult]
	for r := range stream {
		last = r
	}
	if last.Status == domain.StatusError {
		return fmt.Errorf("%s: %s", name, last.Message)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
