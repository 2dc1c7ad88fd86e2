// Package movie contains the cache-and-fetch orchestrator. Every read is
// served as a cold stream: work starts when the operation is called, the
// stream always opens with Loading, and the channel is closed after the
// terminal state. Cancelling the context stops further work; the one
// exception is the lazy detail refresh, which is allowed to complete after
// the cached Success has been delivered.
package movie

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelcache/reelcache/internal/domain"
	"github.com/reelcache/reelcache/internal/mapper"
)

// PageResult is one page of movies joined with bookmark membership.
type PageResult = domain.PaginatedResult[domain.Movie]

// PageStream carries the states of a paginated read: Loading, then exactly
// one Success or Error.
type PageStream = <-chan domain.Result[PageResult]

// DetailStream carries the states of a detail read. Unlike page streams it
// may emit Success twice (cached first, then fresh) or Success followed by
// Error; callers must keep the latest received state.
type DetailStream = <-chan domain.Result[domain.MovieDetail]

const (
	msgOffline      = "Offline"
	msgNetworkError = "Network error"
	msgStorageError = "Storage error"
	msgLoadFailed   = "Failed to load trending movies"
	msgLoadMore     = "Failed to load more movies"
)

type Service interface {
	GetTrendingPage(ctx context.Context, page int) PageStream
	GetNowPlayingPage(ctx context.Context, page int) PageStream
	SearchPage(ctx context.Context, query string, page int) PageStream
	GetDetail(ctx context.Context, id int, forceRefresh bool) DetailStream
}

type service struct {
	log       zerolog.Logger
	remote    domain.RemoteSource
	movies    domain.MovieRepo
	details   domain.DetailRepo
	bookmarks domain.BookmarkRepo
	ttl       time.Duration
	now       domain.Clock
}

func NewService(log zerolog.Logger, remote domain.RemoteSource, movies domain.MovieRepo, details domain.DetailRepo, bookmarks domain.BookmarkRepo, ttl time.Duration, now domain.Clock) Service {
	if ttl <= 0 {
		ttl = domain.DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		log:       log.With().Str("module", "movie").Logger(),
		remote:    remote,
		movies:    movies,
		details:   details,
		bookmarks: bookmarks,
		ttl:       ttl,
		now:       now,
	}
}

func (s *service) GetTrendingPage(ctx context.Context, page int) PageStream {
	return s.getPage(ctx, domain.Trending(), page)
}

func (s *service) GetNowPlayingPage(ctx context.Context, page int) PageStream {
	return s.getPage(ctx, domain.NowPlaying(), page)
}

func (s *service) SearchPage(ctx context.Context, query string, page int) PageStream {
	return s.getPage(ctx, domain.Search(query), page)
}

func (s *service) getPage(ctx context.Context, cat domain.Category, page int) PageStream {
	ch := make(chan domain.Result[PageResult], 2)

	go func() {
		defer close(ch)

		if !emit(ctx, ch, domain.Loading[PageResult]()) {
			return
		}

		key := cat.Key()

		// Snapshot before the fetch: bookmark set, the exact partition, and
		// the category metadata. The snapshot feeds both the membership join
		// on success and the fallback on failure.
		bookmarkedIDs, err := s.bookmarks.AllIDs(ctx)
		if err != nil {
			s.log.Error().Err(err).Str("category", key).Msg("failed to read bookmark set")
			emit(ctx, ch, domain.Failure[PageResult](msgStorageError, err))
			return
		}

		cached, err := s.movies.GetByCategoryAndPage(ctx, key, page)
		if err != nil {
			s.log.Error().Err(err).Str("category", key).Int("page", page).Msg("failed to read cached page")
			emit(ctx, ch, domain.Failure[PageResult](msgStorageError, err))
			return
		}

		meta, err := s.movies.GetMetadata(ctx, key)
		if err != nil {
			s.log.Error().Err(err).Str("category", key).Msg("failed to read pagination metadata")
			emit(ctx, ch, domain.Failure[PageResult](msgStorageError, err))
			return
		}

		resp, err := s.remote.FetchPage(ctx, cat.Kind(), page, cat.Query())
		if err != nil {
			s.log.Warn().Err(err).Str("category", key).Int("page", page).Msg("fetch failed, falling back to cache")
			s.fallback(ctx, ch, key, page, cached, meta, bookmarkedIDs, err)
			return
		}

		now := s.now().UnixMilli()
		rows := make([]domain.MovieRow, 0, len(resp.Items))
		for _, item := range resp.Items {
			rows = append(rows, mapper.ToMovieRow(item, key, page, now))
		}

		err = s.movies.RefreshPage(ctx, key, page, rows, domain.PaginationMetadata{
			Category:     key,
			CurrentPage:  resp.Page,
			TotalPages:   resp.TotalPages,
			TotalResults: resp.TotalResults,
			LastUpdated:  now,
		})
		if err != nil {
			s.log.Error().Err(err).Str("category", key).Int("page", page).Msg("failed to persist page")
			emit(ctx, ch, domain.Failure[PageResult](msgStorageError, err))
			return
		}

		emit(ctx, ch, domain.Success(PageResult{
			Data:         joinRows(rows, bookmarkedIDs),
			CurrentPage:  resp.Page,
			TotalPages:   resp.TotalPages,
			TotalResults: resp.TotalResults,
		}))
	}()

	return ch
}

// fallback substitutes the best available cached data for a failed fetch.
// The exact (category, page) partition wins; for page 1 the search is
// broadened to every cached page of the category, because page 1 is the
// first-impression view and must degrade gracefully. Deeper pages are
// incremental scroll state and have no substitute.
func (s *service) fallback(ctx context.Context, ch chan<- domain.Result[PageResult], key string, page int, cached []domain.MovieRow, meta *domain.PaginationMetadata, bookmarkedIDs map[int]struct{}, cause error) {
	if len(cached) > 0 {
		emit(ctx, ch, domain.FailureWith(msgOffline, PageResult{
			Data:         joinRows(cached, bookmarkedIDs),
			CurrentPage:  page,
			TotalPages:   metaPages(meta, page),
			TotalResults: metaResults(meta, len(cached)),
		}, cause))
		return
	}

	if page == 1 {
		all, err := s.movies.GetByCategory(ctx, key)
		if err != nil {
			s.log.Error().Err(err).Str("category", key).Msg("failed to read cached category")
			emit(ctx, ch, domain.Failure[PageResult](msgStorageError, err))
			return
		}
		if len(all) > 0 {
			emit(ctx, ch, domain.FailureWith(msgOffline, PageResult{
				Data:         joinRows(all, bookmarkedIDs),
				CurrentPage:  1,
				TotalPages:   metaPages(meta, 1),
				TotalResults: metaResults(meta, len(all)),
			}, cause))
			return
		}
		emit(ctx, ch, domain.Failure[PageResult](msgLoadFailed, cause))
		return
	}

	emit(ctx, ch, domain.Failure[PageResult](msgLoadMore, cause))
}

func (s *service) GetDetail(ctx context.Context, id int, forceRefresh bool) DetailStream {
	ch := make(chan domain.Result[domain.MovieDetail], 3)

	go func() {
		defer close(ch)

		bookmarked, err := s.bookmarks.IsBookmarked(ctx, id)
		if err != nil {
			s.log.Error().Err(err).Int("id", id).Msg("failed to read bookmark membership")
			emit(ctx, ch, domain.Loading[domain.MovieDetail]())
			emit(ctx, ch, domain.Failure[domain.MovieDetail](msgStorageError, err))
			return
		}

		cached, err := s.details.Get(ctx, id)
		if err != nil {
			s.log.Error().Err(err).Int("id", id).Msg("failed to read cached detail")
			emit(ctx, ch, domain.Loading[domain.MovieDetail]())
			emit(ctx, ch, domain.Failure[domain.MovieDetail](msgStorageError, err))
			return
		}

		if !emit(ctx, ch, domain.Loading[domain.MovieDetail]()) {
			return
		}

		refreshCtx := ctx
		if cached != nil && !forceRefresh {
			if !emit(ctx, ch, domain.Success(mapper.ToMovieDetail(*cached, bookmarked))) {
				return
			}
			if s.now().Sub(time.UnixMilli(cached.LastUpdated)) < s.ttl {
				return
			}
			// The cached answer is already out; the refresh attempt may
			// finish even if the caller stops observing.
			refreshCtx = context.WithoutCancel(ctx)
		}

		resp, err := s.remote.FetchDetail(refreshCtx, id)
		if err != nil {
			s.log.Warn().Err(err).Int("id", id).Msg("detail fetch failed")
			if cached != nil {
				emit(refreshCtx, ch, domain.FailureWith(msgNetworkError, mapper.ToMovieDetail(*cached, bookmarked), err))
			} else {
				emit(refreshCtx, ch, domain.Failure[domain.MovieDetail](msgNetworkError, err))
			}
			return
		}

		if err := s.details.Upsert(refreshCtx, mapper.ToDetailRow(*resp, s.now().UnixMilli())); err != nil {
			s.log.Error().Err(err).Int("id", id).Msg("failed to persist detail")
			emit(refreshCtx, ch, domain.Failure[domain.MovieDetail](msgStorageError, err))
			return
		}

		emit(refreshCtx, ch, domain.Success(mapper.RemoteToMovieDetail(*resp, bookmarked)))
	}()

	return ch
}

func joinRows(rows []domain.MovieRow, bookmarkedIDs map[int]struct{}) []domain.Movie {
	movies := make([]domain.Movie, 0, len(rows))
	for _, row := range rows {
		_, bookmarked := bookmarkedIDs[row.ID]
		movies = append(movies, mapper.ToMovie(row, bookmarked))
	}
	return movies
}

func metaPages(meta *domain.PaginationMetadata, fallback int) int {
	if meta != nil {
		return meta.TotalPages
	}
	return fallback
}

func metaResults(meta *domain.PaginationMetadata, fallback int) int {
	if meta != nil {
		return meta.TotalResults
	}
	return fallback
}

// emit delivers one state unless the caller has stopped observing. Channels
// are buffered for the longest possible emission sequence, so a send never
// blocks a producer that got past the cancellation check.
func emit[T any](ctx context.Context, ch chan<- domain.Result[T], r domain.Result[T]) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case ch <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
