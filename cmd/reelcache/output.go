package main

import (
	"fmt"

	"github.com/reelcache/reelcache/internal/domain"
	"github.com/reelcache/reelcache/internal/movie"
)

// drainPage consumes a page stream to its terminal state and prints it. An
// Error that carries data renders the same list a Success would, with the
// message shown as a banner.
func drainPage(stream movie.PageStream) error {
	var last domain.Result[movie.PageResult]
	for r := range stream {
		last = r
	}

	if last.Status == domain.StatusError {
		if last.Data == nil {
			return fmt.Errorf("%s", last.Message)
		}
		fmt.Printf("! %s\n", last.Message)
	}

	if last.Data != nil {
		printPage(*last.Data)
	}
	return nil
}

func printPage(page movie.PageResult) {
	for _, m := range page.Data {
		marker := " "
		if m.IsBookmarked {
			marker = "*"
		}
		fmt.Printf("%s %8d  %-5s %4.1f  %s\n", marker, m.ID, m.Year(), m.VoteAverage, m.Title)
	}
	fmt.Printf("page %d of %d (%d results)\n", page.CurrentPage, page.TotalPages, page.TotalResults)
}

// drainDetail consumes a detail stream, keeping the latest state. The stream
// may emit a cached Success before its terminal state; only the last one is
// shown.
func drainDetail(stream movie.DetailStream) (*domain.MovieDetail, error) {
	var last domain.Result[domain.MovieDetail]
	for r := range stream {
		last = r
	}

	if last.Status == domain.StatusError {
		if last.Data == nil {
			return nil, fmt.Errorf("%s", last.Message)
		}
		fmt.Printf("! %s\n", last.Message)
	}

	return last.Data, nil
}

func printDetail(d domain.MovieDetail) {
	fmt.Printf("%s (%s)\n", d.Title, d.Year())
	if d.Tagline != "" {
		fmt.Printf("%q\n", d.Tagline)
	}
	if len(d.Genres) > 0 {
		for i, g := range d.Genres {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(g.Name)
		}
		fmt.Println()
	}
	if rt := d.RuntimeFormatted(); rt != "" {
		fmt.Printf("Runtime: %s\n", rt)
	}
	fmt.Printf("Rating: %.1f (%d votes)\n", d.VoteAverage, d.VoteCount)
	if d.Overview != "" {
		fmt.Printf("\n%s\n", d.Overview)
	}
	if d.IsBookmarked {
		fmt.Println("\n* bookmarked")
	}
}
