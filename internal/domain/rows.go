package domain

// MovieRow is a cached catalog item as stored in the movies table. A row is
// identified by id within its (category, page) partition; the same id may
// exist under several categories at once. GenreIDs is the comma-joined form
// of the wire genre id list; nil means the remote never sent one.
type MovieRow struct {
	ID               int
	Title            string
	OriginalTitle    string
	Overview         string
	PosterPath       string
	BackdropPath     string
	ReleaseDate      string
	VoteAverage      float64
	VoteCount        int
	GenreIDs         *string
	OriginalLanguage string
	Category         string
	Page             int
	LastUpdated      int64
}

// DetailRow is a cached detail record, one per movie id, independent of any
// category or page. Genres is the JSON-encoded genre list; nil means absent.
// Overwritten wholesale on every successful detail fetch.
type DetailRow struct {
	ID               int
	Title            string
	OriginalTitle    string
	Overview         string
	PosterPath       string
	BackdropPath     string
	ReleaseDate      string
	VoteAverage      float64
	VoteCount        int
	Genres           *string
	Runtime          int
	Status           string
	Tagline          string
	ImdbID           string
	OriginalLanguage string
	LastUpdated      int64
}

// BookmarkRow is a denormalized snapshot of a movie at the moment it was
// bookmarked. Its lifecycle is independent of the paginated cache: deleting
// a catalog row does not delete a bookmark and vice versa.
type BookmarkRow struct {
	ID               int
	Title            string
	OriginalTitle    string
	Overview         string
	PosterPath       string
	BackdropPath     string
	ReleaseDate      string
	VoteAverage      float64
	VoteCount        int
	GenreIDs         *string
	OriginalLanguage string
	BookmarkedAt     int64
}

// PaginationMetadata tracks pagination state per category key. CurrentPage is
// the highest page successfully fetched and persisted at write time, not the
// page a caller happened to request during a fallback.
type PaginationMetadata struct {
	Category     string
	CurrentPage  int
	TotalPages   int
	TotalResults int
	LastUpdated  int64
}
