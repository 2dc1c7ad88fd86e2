package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/reelcache/reelcache/internal/domain"
)

var movieColumns = []string{
	"id", "title", "original_title", "overview", "poster_path", "backdrop_path",
	"release_date", "vote_average", "vote_count", "genre_ids",
	"original_language", "category", "page", "last_updated",
}

// MovieRepo implements domain.MovieRepo on the movies and pagination_metadata
// tables.
type MovieRepo struct {
	log zerolog.Logger
	db  *DB
}

func NewMovieRepo(log zerolog.Logger, db *DB) domain.MovieRepo {
	return &MovieRepo{
		log: log.With().Str("repo", "movie").Logger(),
		db:  db,
	}
}

// Upsert inserts or replaces catalog rows by (id, category).
func (r *MovieRepo) Upsert(ctx context.Context, rows []domain.MovieRow) error {
	if len(rows) == 0 {
		return nil
	}

	query, args, err := r.upsertQuery(rows)
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Upsert")

	_, err = r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return nil
}

func (r *MovieRepo) upsertQuery(rows []domain.MovieRow) (string, []interface{}, error) {
	queryBuilder := r.db.squirrel.
		Replace("movies").
		Columns(movieColumns...)

	for _, row := range rows {
		queryBuilder = queryBuilder.Values(
			row.ID, row.Title, row.OriginalTitle, row.Overview, row.PosterPath,
			row.BackdropPath, row.ReleaseDate, row.VoteAverage, row.VoteCount,
			row.GenreIDs, row.OriginalLanguage, row.Category, row.Page,
			row.LastUpdated,
		)
	}

	return queryBuilder.ToSql()
}

// GetByCategoryAndPage returns the cached rows for one (category, page)
// partition.
func (r *MovieRepo) GetByCategoryAndPage(ctx context.Context, category string, page int) ([]domain.MovieRow, error) {
	queryBuilder := r.db.squirrel.
		Select(movieColumns...).
		From("movies").
		Where(sq.And{
			sq.Eq{"category": category},
			sq.Eq{"page": page},
		})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("GetByCategoryAndPage")

	return r.queryRows(ctx, query, args)
}

// GetByCategory returns every cached row of a category, ordered by page
// ascending.
func (r *MovieRepo) GetByCategory(ctx context.Context, category string) ([]domain.MovieRow, error) {
	queryBuilder := r.db.squirrel.
		Select(movieColumns...).
		From("movies").
		Where(sq.Eq{"category": category}).
		OrderBy("page ASC")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("GetByCategory")

	return r.queryRows(ctx, query, args)
}

func (r *MovieRepo) queryRows(ctx context.Context, query string, args []interface{}) ([]domain.MovieRow, error) {
	rows, err := r.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	defer rows.Close()

	var result []domain.MovieRow
	for rows.Next() {
		row, err := scanMovieRow(rows)
		if err != nil {
			return nil, errors.Wrap(err, "error scanning row")
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}

	return result, nil
}

func scanMovieRow(rows *sql.Rows) (domain.MovieRow, error) {
	var (
		row                                         domain.MovieRow
		originalTitle, overview, posterPath         sql.NullString
		backdropPath, releaseDate, genreIDs, language sql.NullString
	)

	err := rows.Scan(
		&row.ID, &row.Title, &originalTitle, &overview, &posterPath,
		&backdropPath, &releaseDate, &row.VoteAverage, &row.VoteCount,
		&genreIDs, &language, &row.Category, &row.Page, &row.LastUpdated,
	)
	if err != nil {
		return row, err
	}

	row.OriginalTitle = originalTitle.String
	row.Overview = overview.String
	row.PosterPath = posterPath.String
	row.BackdropPath = backdropPath.String
	row.ReleaseDate = releaseDate.String
	row.OriginalLanguage = language.String
	if genreIDs.Valid {
		row.GenreIDs = &genreIDs.String
	}

	return row, nil
}

// DeleteByCategory removes every cached row of a category. Pagination
// metadata is left untouched; it is overwritten on the next successful fetch.
func (r *MovieRepo) DeleteByCategory(ctx context.Context, category string) error {
	queryBuilder := r.db.squirrel.
		Delete("movies").
		Where(sq.Eq{"category": category})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building delete query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("DeleteByCategory")

	_, err = r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing delete query")
	}

	return nil
}

// RefreshPage persists one fetched page as a single transaction. For page 1
// every prior row of the category is deleted first, so a reader sees either
// the old generation or the new one, never a mix.
func (r *MovieRepo) RefreshPage(ctx context.Context, category string, page int, rows []domain.MovieRow, meta domain.PaginationMetadata) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if page == 1 {
		query, args, err := r.db.squirrel.
			Delete("movies").
			Where(sq.Eq{"category": category}).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "error building delete query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrap(err, "error resetting category")
		}
	}

	if len(rows) > 0 {
		query, args, err := r.upsertQuery(rows)
		if err != nil {
			return errors.Wrap(err, "error building query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrap(err, "error inserting rows")
		}
	}

	query, args, err := r.metadataQuery(meta)
	if err != nil {
		return errors.Wrap(err, "error building metadata query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error writing metadata")
	}

	r.log.Trace().Str("category", category).Int("page", page).Int("rows", len(rows)).Msg("RefreshPage")

	return errors.Wrap(tx.Commit(), "error committing refresh")
}

func (r *MovieRepo) metadataQuery(meta domain.PaginationMetadata) (string, []interface{}, error) {
	return r.db.squirrel.
		Replace("pagination_metadata").
		Columns("category", "current_page", "total_pages", "total_results", "last_updated").
		Values(meta.Category, meta.CurrentPage, meta.TotalPages, meta.TotalResults, meta.LastUpdated).
		ToSql()
}

// UpsertMetadata inserts or replaces the pagination state for a category.
func (r *MovieRepo) UpsertMetadata(ctx context.Context, meta domain.PaginationMetadata) error {
	query, args, err := r.metadataQuery(meta)
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("UpsertMetadata")

	_, err = r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return nil
}

// GetMetadata returns the pagination state for a category, or nil when none
// has been written yet.
func (r *MovieRepo) GetMetadata(ctx context.Context, category string) (*domain.PaginationMetadata, error) {
	queryBuilder := r.db.squirrel.
		Select("category", "current_page", "total_pages", "total_results", "last_updated").
		From("pagination_metadata").
		Where(sq.Eq{"category": category})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("GetMetadata")

	meta := &domain.PaginationMetadata{}
	err = r.db.handler.QueryRowContext(ctx, query, args...).Scan(
		&meta.Category, &meta.CurrentPage, &meta.TotalPages, &meta.TotalResults, &meta.LastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error scanning row")
	}

	return meta, nil
}
