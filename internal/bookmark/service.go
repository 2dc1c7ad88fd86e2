// Package bookmark is the user-pinned overlay on top of the paginated cache.
// Toggling flips membership only; it never touches catalog or detail rows,
// and the snapshot taken on insert is not refreshed when the same movie is
// later re-fetched into the cache.
package bookmark

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelcache/reelcache/internal/domain"
	"github.com/reelcache/reelcache/internal/mapper"
)

type Service interface {
	// Toggle bookmarks the movie if it is not bookmarked, and removes the
	// bookmark if it is. Calling it twice restores the original state.
	Toggle(ctx context.Context, m domain.Movie) error
	// ToggleFromDetail is Toggle for a detail-shaped entity.
	ToggleFromDetail(ctx context.Context, d domain.MovieDetail) error
	// List returns a live stream of the bookmarked movies, most recently
	// bookmarked first, updated after every mutation until ctx is done.
	List(ctx context.Context) <-chan []domain.Movie
	// IsBookmarked returns a live membership signal for one id, updated
	// after every mutation until ctx is done.
	IsBookmarked(ctx context.Context, id int) <-chan bool
}

type service struct {
	log       zerolog.Logger
	bookmarks domain.BookmarkRepo
	now       domain.Clock
}

func NewService(log zerolog.Logger, bookmarks domain.BookmarkRepo, now domain.Clock) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		log:       log.With().Str("module", "bookmark").Logger(),
		bookmarks: bookmarks,
		now:       now,
	}
}

func (s *service) Toggle(ctx context.Context, m domain.Movie) error {
	bookmarked, err := s.bookmarks.IsBookmarked(ctx, m.ID)
	if err != nil {
		return err
	}

	if bookmarked {
		s.log.Debug().Int("id", m.ID).Msg("removing bookmark")
		return s.bookmarks.Delete(ctx, m.ID)
	}

	s.log.Debug().Int("id", m.ID).Msg("adding bookmark")
	return s.bookmarks.Upsert(ctx, mapper.MovieToBookmark(m, s.now().UnixMilli()))
}

func (s *service) ToggleFromDetail(ctx context.Context, d domain.MovieDetail) error {
	return s.Toggle(ctx, mapper.DetailToMovie(d))
}

func (s *service) List(ctx context.Context) <-chan []domain.Movie {
	out := make(chan []domain.Movie, 1)
	rows, cancel := s.bookmarks.SubscribeList()

	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case list, ok := <-rows:
				if !ok {
					return
				}
				movies := make([]domain.Movie, 0, len(list))
				for _, row := range list {
					movies = append(movies, mapper.BookmarkToMovie(row))
				}
				select {
				case out <- movies:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

func (s *service) IsBookmarked(ctx context.Context, id int) <-chan bool {
	out := make(chan bool, 1)
	membership, cancel := s.bookmarks.SubscribeMembership(id)

	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case bookmarked, ok := <-membership:
				if !ok {
					return
				}
				select {
				case out <- bookmarked:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
