package database

import (
	"context"
	"database/sql"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/reelcache/reelcache/internal/domain"
)

var bookmarkColumns = []string{
	"id", "title", "original_title", "overview", "poster_path", "backdrop_path",
	"release_date", "vote_average", "vote_count", "genre_ids",
	"original_language", "bookmarked_at",
}

// BookmarkRepo implements domain.BookmarkRepo on the bookmarked_movies table.
// It also carries the subscription hub: membership and list subscribers are
// notified synchronously as part of every mutation, with latest-value
// conflation so a slow subscriber only ever misses intermediate states.
type BookmarkRepo struct {
	log zerolog.Logger
	db  *DB

	mu       sync.Mutex
	idSubs   map[int]map[chan bool]struct{}
	listSubs map[chan []domain.BookmarkRow]struct{}
}

func NewBookmarkRepo(log zerolog.Logger, db *DB) domain.BookmarkRepo {
	return &BookmarkRepo{
		log:      log.With().Str("repo", "bookmark").Logger(),
		db:       db,
		idSubs:   make(map[int]map[chan bool]struct{}),
		listSubs: make(map[chan []domain.BookmarkRow]struct{}),
	}
}

// Upsert inserts or replaces a bookmark snapshot and notifies subscribers.
func (r *BookmarkRepo) Upsert(ctx context.Context, row domain.BookmarkRow) error {
	queryBuilder := r.db.squirrel.
		Replace("bookmarked_movies").
		Columns(bookmarkColumns...).
		Values(
			row.ID, row.Title, row.OriginalTitle, row.Overview, row.PosterPath,
			row.BackdropPath, row.ReleaseDate, row.VoteAverage, row.VoteCount,
			row.GenreIDs, row.OriginalLanguage, row.BookmarkedAt,
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

	r.notify(ctx, row.ID)
	return nil
}

// Delete removes a bookmark and notifies subscribers.
func (r *BookmarkRepo) Delete(ctx context.Context, id int) error {
	queryBuilder := r.db.squirrel.
		Delete("bookmarked_movies").
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

	r.notify(ctx, id)
	return nil
}

// Get returns the bookmark snapshot for an id, or nil when not bookmarked.
func (r *BookmarkRepo) Get(ctx context.Context, id int) (*domain.BookmarkRow, error) {
	queryBuilder := r.db.squirrel.
		Select(bookmarkColumns...).
		From("bookmarked_movies").
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Get")

	row, err := scanBookmarkRow(r.db.handler.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error scanning row")
	}

	return row, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBookmarkRow(scanner rowScanner) (*domain.BookmarkRow, error) {
	var (
		row                                           domain.BookmarkRow
		originalTitle, overview, posterPath           sql.NullString
		backdropPath, releaseDate, genreIDs, language sql.NullString
	)

	err := scanner.Scan(
		&row.ID, &row.Title, &originalTitle, &overview, &posterPath,
		&backdropPath, &releaseDate, &row.VoteAverage, &row.VoteCount,
		&genreIDs, &language, &row.BookmarkedAt,
	)
	if err != nil {
		return nil, err
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

	return &row, nil
}

// List returns all bookmarks, most-recently-bookmarked first.
func (r *BookmarkRepo) List(ctx context.Context) ([]domain.BookmarkRow, error) {
	queryBuilder := r.db.squirrel.
		Select(bookmarkColumns...).
		From("bookmarked_movies").
		OrderBy("bookmarked_at DESC")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("List")

	rows, err := r.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	defer rows.Close()

	var result []domain.BookmarkRow
	for rows.Next() {
		row, err := scanBookmarkRow(rows)
		if err != nil {
			return nil, errors.Wrap(err, "error scanning row")
		}
		result = append(result, *row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}

	return result, nil
}

// IsBookmarked reports whether an id is currently bookmarked.
func (r *BookmarkRepo) IsBookmarked(ctx context.Context, id int) (bool, error) {
	queryBuilder := r.db.squirrel.
		Select("1").
		From("bookmarked_movies").
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return false, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("IsBookmarked")

	var one int
	err = r.db.handler.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "error executing query")
	}

	return true, nil
}

// AllIDs returns the set of all bookmarked ids.
func (r *BookmarkRepo) AllIDs(ctx context.Context) (map[int]struct{}, error) {
	queryBuilder := r.db.squirrel.
		Select("id").
		From("bookmarked_movies")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("AllIDs")

	rows, err := r.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	defer rows.Close()

	result := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "error scanning row")
		}
		result[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}

	return result, nil
}

// SubscribeMembership returns a stream of the membership state for one id.
// The current state is delivered immediately, then again after every
// mutation. Cancel must be called when the caller stops observing.
func (r *BookmarkRepo) SubscribeMembership(id int) (<-chan bool, func()) {
	ch := make(chan bool, 1)

	r.mu.Lock()
	if r.idSubs[id] == nil {
		r.idSubs[id] = make(map[chan bool]struct{})
	}
	r.idSubs[id][ch] = struct{}{}

	bookmarked, err := r.IsBookmarked(context.Background(), id)
	if err != nil {
		r.log.Warn().Err(err).Int("id", id).Msg("failed to read initial membership")
	}
	sendLatest(ch, bookmarked)
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if subs, ok := r.idSubs[id]; ok {
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(r.idSubs, id)
			}
		}
	}

	return ch, cancel
}

// SubscribeList returns a stream of the full bookmark list, most recent
// first. The current list is delivered immediately, then again after every
// mutation. Cancel must be called when the caller stops observing.
func (r *BookmarkRepo) SubscribeList() (<-chan []domain.BookmarkRow, func()) {
	ch := make(chan []domain.BookmarkRow, 1)

	r.mu.Lock()
	r.listSubs[ch] = struct{}{}

	list, err := r.List(context.Background())
	if err != nil {
		r.log.Warn().Err(err).Msg("failed to read initial bookmark list")
	}
	sendLatest(ch, list)
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.listSubs[ch]; ok {
			delete(r.listSubs, ch)
			close(ch)
		}
	}

	return ch, cancel
}

// notify pushes fresh state to every live subscriber for id and to every
// list subscriber. Runs before the mutating call returns.
func (r *BookmarkRepo) notify(ctx context.Context, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if subs := r.idSubs[id]; len(subs) > 0 {
		bookmarked, err := r.IsBookmarked(ctx, id)
		if err != nil {
			r.log.Warn().Err(err).Int("id", id).Msg("failed to read membership for notify")
			return
		}
		for ch := range subs {
			sendLatest(ch, bookmarked)
		}
	}

	if len(r.listSubs) > 0 {
		list, err := r.List(ctx)
		if err != nil {
			r.log.Warn().Err(err).Msg("failed to read bookmark list for notify")
			return
		}
		for ch := range r.listSubs {
			sendLatest(ch, list)
		}
	}
}

// sendLatest delivers v without blocking, dropping a stale undelivered value
// if the subscriber has not caught up. Channels have capacity 1 and senders
// hold the hub lock, so the drain-then-send pair cannot race another sender.
func sendLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
