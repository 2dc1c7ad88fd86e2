package domain

import "fmt"

// Movie is the domain view of a cached catalog item. It is never persisted;
// it is built at read time by joining a MovieRow with bookmark membership.
type Movie struct {
	ID               int
	Title            string
	OriginalTitle    string
	Overview         string
	PosterPath       string
	BackdropPath     string
	ReleaseDate      string
	VoteAverage      float64
	VoteCount        int
	GenreIDs         []int
	OriginalLanguage string
	IsBookmarked     bool
}

// PosterURL returns the full poster image URL, or "" if the movie has no poster.
func (m Movie) PosterURL() string {
	if m.PosterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w500" + m.PosterPath
}

// BackdropURL returns the full backdrop image URL, or "" if none.
func (m Movie) BackdropURL() string {
	if m.BackdropPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w780" + m.BackdropPath
}

// Year returns the release year, or "" if the release date is unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// Genre is a movie genre as returned by the detail endpoint.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the domain view of a cached detail record.
type MovieDetail struct {
	ID               int
	Title            string
	OriginalTitle    string
	Overview         string
	PosterPath       string
	BackdropPath     string
	ReleaseDate      string
	VoteAverage      float64
	VoteCount        int
	Genres           []Genre
	Runtime          int
	Status           string
	Tagline          string
	ImdbID           string
	OriginalLanguage string
	IsBookmarked     bool
}

// PosterURL returns the full poster image URL, or "" if none.
func (d MovieDetail) PosterURL() string {
	if d.PosterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w500" + d.PosterPath
}

// BackdropURL returns the full backdrop image URL, or "" if none.
func (d MovieDetail) BackdropURL() string {
	if d.BackdropPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/original" + d.BackdropPath
}

// Year returns the release year, or "" if the release date is unknown.
func (d MovieDetail) Year() string {
	if len(d.ReleaseDate) < 4 {
		return ""
	}
	return d.ReleaseDate[:4]
}

// RuntimeFormatted renders the runtime as "2h 16m" or "45m". Returns "" when
// the runtime is unknown.
func (d MovieDetail) RuntimeFormatted() string {
	if d.Runtime <= 0 {
		return ""
	}
	hours := d.Runtime / 60
	minutes := d.Runtime % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
