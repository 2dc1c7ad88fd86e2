package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/reelcache/reelcache/internal/domain"
)

var detailColumns = []string{
	"id", "title", "original_title", "overview", "poster_path", "backdrop_path",
	"release_date", "vote_average", "vote_count", "genres", "runtime",
	"status", "tagline", "imdb_id", "original_language", "last_updated",
}

// DetailRepo implements domain.DetailRepo on the movie_details table.
type DetailRepo struct {
	log zerolog.Logger
	db  *DB
}

func NewDetailRepo(log zerolog.Logger, db *DB) domain.DetailRepo {
	return &DetailRepo{
		log: log.With().Str("repo", "detail").Logger(),
		db:  db,
	}
}

// Upsert replaces the detail record for a movie id wholesale.
func (r *DetailRepo) Upsert(ctx context.Context, row domain.DetailRow) error {
	queryBuilder := r.db.squirrel.
		Replace("movie_details").
		Columns(detailColumns...).
		Values(
			row.ID, row.Title, row.OriginalTitle, row.Overview, row.PosterPath,
			row.BackdropPath, row.ReleaseDate, row.VoteAverage, row.VoteCount,
			row.Genres, row.Runtime, row.Status, row.Tagline, row.ImdbID,
			row.OriginalLanguage, row.LastUpdated,
		)

	query, args, err := queryBuilder.ToSql()
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

// Get returns the cached detail record for an id, or nil when none exists.
func (r *DetailRepo) Get(ctx context.Context, id int) (*domain.DetailRow, error) {
	queryBuilder := r.db.squirrel.
		Select(detailColumns...).
		From("movie_details").
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Get")

	var (
		row                                 domain.DetailRow
		originalTitle, overview, posterPath sql.NullString
		backdropPath, releaseDate, genres   sql.NullString
		status, tagline, imdbID, language   sql.NullString
	)

	err = r.db.handler.QueryRowContext(ctx, query, args...).Scan(
		&row.ID, &row.Title, &originalTitle, &overview, &posterPath,
		&backdropPath, &releaseDate, &row.VoteAverage, &row.VoteCount,
		&genres, &row.Runtime, &status, &tagline, &imdbID, &language,
		&row.LastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error scanning row")
	}

	row.OriginalTitle = originalTitle.String
	row.Overview = overview.String
	row.PosterPath = posterPath.String
	row.BackdropPath = backdropPath.String
	row.ReleaseDate = releaseDate.String
	row.Status = status.String
	row.Tagline = tagline.String
	row.ImdbID = imdbID.String
	row.OriginalLanguage = language.String
	if genres.Valid {
		row.Genres = &genres.String
	}

	return &row, nil
}

// Delete removes the cached detail record for an id.
func (r *DetailRepo) Delete(ctx context.Context, id int) error {
	queryBuilder := r.db.squirrel.
		Delete("movie_details").
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building delete query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Delete")

	_, err = r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing delete query")
	}

	return nil
}
