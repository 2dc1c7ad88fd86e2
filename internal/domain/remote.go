package domain

import "context"

// RemoteMovie is one catalog item as returned by the remote paginated API.
type RemoteMovie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
}

// RemotePage is one page of catalog results plus pagination totals.
type RemotePage struct {
	Items        []RemoteMovie `json:"results"`
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// RemoteDetail is a single-movie detail record as returned by the remote API.
type RemoteDetail struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Genres           []Genre `json:"genres"`
	Runtime          int     `json:"runtime"`
	Status           string  `json:"status"`
	Tagline          string  `json:"tagline"`
	ImdbID           string  `json:"imdb_id"`
	OriginalLanguage string  `json:"original_language"`
}

// RemoteSource abstracts the upstream paginated catalog API. A single attempt
// per call; every failure is a TransportError. Retries are an orchestrator
// policy decision (this system performs none).
type RemoteSource interface {
	FetchPage(ctx context.Context, kind CategoryKind, page int, query string) (*RemotePage, error)
	FetchDetail(ctx context.Context, id int) (*RemoteDetail, error)
}
