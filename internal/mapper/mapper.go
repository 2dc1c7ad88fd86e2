// Package mapper holds the stateless translations between wire records,
// storage rows, and domain views. The bookmark membership projection is added
// here and only here; it is never persisted on catalog or detail rows.
package mapper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/reelcache/reelcache/internal/domain"
)

// JoinGenreIDs serializes a genre id list to its comma-joined storage form.
// A nil list stays nil; an empty list becomes the empty string.
func JoinGenreIDs(ids []int) *string {
	if ids == nil {
		return nil
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	s := strings.Join(parts, ",")
	return &s
}

// SplitGenreIDs parses the comma-joined storage form back to a genre id list,
// skipping anything that is not an integer. nil stays nil.
func SplitGenreIDs(s *string) []int {
	if s == nil {
		return nil
	}
	ids := []int{}
	for _, part := range strings.Split(*s, ",") {
		id, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ToMovieRow converts a wire catalog item to its storage row, tagged with the
// (category, page) partition it was fetched into.
func ToMovieRow(m domain.RemoteMovie, category string, page int, now int64) domain.MovieRow {
	return domain.MovieRow{
		ID:               m.ID,
		Title:            m.Title,
		OriginalTitle:    m.OriginalTitle,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		BackdropPath:     m.BackdropPath,
		ReleaseDate:      m.ReleaseDate,
		VoteAverage:      m.VoteAverage,
		VoteCount:        m.VoteCount,
		GenreIDs:         JoinGenreIDs(m.GenreIDs),
		OriginalLanguage: m.OriginalLanguage,
		Category:         category,
		Page:             page,
		LastUpdated:      now,
	}
}

// ToDetailRow converts a wire detail record to its storage row. Genres are
// JSON-encoded; a nil genre list stays nil.
func ToDetailRow(d domain.RemoteDetail, now int64) domain.DetailRow {
	var genres *string
	if d.Genres != nil {
		if b, err := json.Marshal(d.Genres); err == nil {
			s := string(b)
			genres = &s
		}
	}

	return domain.DetailRow{
		ID:               d.ID,
		Title:            d.Title,
		OriginalTitle:    d.OriginalTitle,
		Overview:         d.Overview,
		PosterPath:       d.PosterPath,
		BackdropPath:     d.BackdropPath,
		ReleaseDate:      d.ReleaseDate,
		VoteAverage:      d.VoteAverage,
		VoteCount:        d.VoteCount,
		Genres:           genres,
		Runtime:          d.Runtime,
		Status:           d.Status,
		Tagline:          d.Tagline,
		ImdbID:           d.ImdbID,
		OriginalLanguage: d.OriginalLanguage,
		LastUpdated:      now,
	}
}

// ToMovie joins a storage row with bookmark membership into the domain view.
func ToMovie(row domain.MovieRow, bookmarked bool) domain.Movie {
	return domain.Movie{
		ID:               row.ID,
		Title:            row.Title,
		OriginalTitle:    row.OriginalTitle,
		Overview:         row.Overview,
		PosterPath:       row.PosterPath,
		BackdropPath:     row.BackdropPath,
		ReleaseDate:      row.ReleaseDate,
		VoteAverage:      row.VoteAverage,
		VoteCount:        row.VoteCount,
		GenreIDs:         SplitGenreIDs(row.GenreIDs),
		OriginalLanguage: row.OriginalLanguage,
		IsBookmarked:     bookmarked,
	}
}

// ToMovieDetail joins a stored detail row with bookmark membership into the
// domain view. A genre blob that fails to decode reads as no genres.
func ToMovieDetail(row domain.DetailRow, bookmarked bool) domain.MovieDetail {
	var genres []domain.Genre
	if row.Genres != nil {
		if err := json.Unmarshal([]byte(*row.Genres), &genres); err != nil {
			genres = nil
		}
	}

	return domain.MovieDetail{
		ID:               row.ID,
		Title:            row.Title,
		OriginalTitle:    row.OriginalTitle,
		Overview:         row.Overview,
		PosterPath:       row.PosterPath,
		BackdropPath:     row.BackdropPath,
		ReleaseDate:      row.ReleaseDate,
		VoteAverage:      row.VoteAverage,
		VoteCount:        row.VoteCount,
		Genres:           genres,
		Runtime:          row.Runtime,
		Status:           row.Status,
		Tagline:          row.Tagline,
		ImdbID:           row.ImdbID,
		OriginalLanguage: row.OriginalLanguage,
		IsBookmarked:     bookmarked,
	}
}

// RemoteToMovieDetail builds the domain view straight from the wire record.
func RemoteToMovieDetail(d domain.RemoteDetail, bookmarked bool) domain.MovieDetail {
	return domain.MovieDetail{
		ID:               d.ID,
		Title:            d.Title,
		OriginalTitle:    d.OriginalTitle,
		Overview:         d.Overview,
		PosterPath:       d.PosterPath,
		BackdropPath:     d.BackdropPath,
		ReleaseDate:      d.ReleaseDate,
		VoteAverage:      d.VoteAverage,
		VoteCount:        d.VoteCount,
		Genres:           d.Genres,
		Runtime:          d.Runtime,
		Status:           d.Status,
		Tagline:          d.Tagline,
		ImdbID:           d.ImdbID,
		OriginalLanguage: d.OriginalLanguage,
		IsBookmarked:     bookmarked,
	}
}

// BookmarkToMovie converts a bookmark snapshot to the domain view. Bookmarked
// rows are always marked as bookmarked.
func BookmarkToMovie(row domain.BookmarkRow) domain.Movie {
	return domain.Movie{
		ID:               row.ID,
		Title:            row.Title,
		OriginalTitle:    row.OriginalTitle,
		Overview:         row.Overview,
		PosterPath:       row.PosterPath,
		BackdropPath:     row.BackdropPath,
		ReleaseDate:      row.ReleaseDate,
		VoteAverage:      row.VoteAverage,
		VoteCount:        row.VoteCount,
		GenreIDs:         SplitGenreIDs(row.GenreIDs),
		OriginalLanguage: row.OriginalLanguage,
		IsBookmarked:     true,
	}
}

// MovieToBookmark takes a denormalized snapshot of a movie for the bookmark
// store. The snapshot may go stale relative to later catalog refreshes; that
// is accepted.
func MovieToBookmark(m domain.Movie, now int64) domain.BookmarkRow {
	return domain.BookmarkRow{
		ID:               m.ID,
		Title:            m.Title,
		OriginalTitle:    m.OriginalTitle,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		BackdropPath:     m.BackdropPath,
		ReleaseDate:      m.ReleaseDate,
		VoteAverage:      m.VoteAverage,
		VoteCount:        m.VoteCount,
		GenreIDs:         JoinGenreIDs(m.GenreIDs),
		OriginalLanguage: m.OriginalLanguage,
		BookmarkedAt:     now,
	}
}

// DetailToMovie flattens a detail view to the list-item shape, carrying the
// genre ids only.
func DetailToMovie(d domain.MovieDetail) domain.Movie {
	var genreIDs []int
	if d.Genres != nil {
		genreIDs = make([]int, 0, len(d.Genres))
		for _, g := range d.Genres {
			genreIDs = append(genreIDs, g.ID)
		}
	}

	return domain.Movie{
		ID:               d.ID,
		Title:            d.Title,
		OriginalTitle:    d.OriginalTitle,
		Overview:         d.Overview,
		PosterPath:       d.PosterPath,
		BackdropPath:     d.BackdropPath,
		ReleaseDate:      d.ReleaseDate,
		VoteAverage:      d.VoteAverage,
		VoteCount:        d.VoteCount,
		GenreIDs:         genreIDs,
		OriginalLanguage: d.OriginalLanguage,
		IsBookmarked:     d.IsBookmarked,
	}
}
