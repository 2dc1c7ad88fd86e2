package database

const schema = `
-- Cached catalog items, partitioned by (category, page)
CREATE TABLE movies (
	id INTEGER NOT NULL,
	title TEXT NOT NULL,
	original_title TEXT,
	overview TEXT,
	poster_path TEXT,
	backdrop_path TEXT,
	release_date TEXT,
	vote_average REAL NOT NULL DEFAULT 0,
	vote_count INTEGER NOT NULL DEFAULT 0,
	genre_ids TEXT,
	original_language TEXT,
	category TEXT NOT NULL,
	page INTEGER NOT NULL DEFAULT 1,
	last_updated INTEGER NOT NULL,
	PRIMARY KEY (id, category)
);

CREATE INDEX idx_movies_category_page ON movies(category, page);
CREATE INDEX idx_movies_last_updated ON movies(last_updated);

-- Pagination state, one row per category key (search queries included)
CREATE TABLE pagination_metadata (
	category TEXT PRIMARY KEY,
	current_page INTEGER NOT NULL,
	total_pages INTEGER NOT NULL,
	total_results INTEGER NOT NULL,
	last_updated INTEGER NOT NULL
);

-- Cached detail records, one row per movie id
CREATE TABLE movie_details (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	original_title TEXT,
	overview TEXT,
	poster_path TEXT,
	backdrop_path TEXT,
	release_date TEXT,
	vote_average REAL NOT NULL DEFAULT 0,
	vote_count INTEGER NOT NULL DEFAULT 0,
	genres TEXT,
	runtime INTEGER NOT NULL DEFAULT 0,
	status TEXT,
	tagline TEXT,
	imdb_id TEXT,
	original_language TEXT,
	last_updated INTEGER NOT NULL
);

-- User-pinned movies, lifecycle independent of the paginated cache
CREATE TABLE bookmarked_movies (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	original_title TEXT,
	overview TEXT,
	poster_path TEXT,
	backdrop_path TEXT,
	release_date TEXT,
	vote_average REAL NOT NULL DEFAULT 0,
	vote_count INTEGER NOT NULL DEFAULT 0,
	genre_ids TEXT,
	original_language TEXT,
	bookmarked_at INTEGER NOT NULL
);

CREATE INDEX idx_bookmarked_at ON bookmarked_movies(bookmarked_at);
`

// migrations contains incremental schema changes applied in order based on
// the current user_version. migrations[0] is empty because version 0 uses the
// base schema.
var migrations = []string{
	"",
}
