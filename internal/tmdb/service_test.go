package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reelcache/reelcache/internal/domain"
)

const pageBody = `{
	"page": 2,
	"results": [
		{"id": 603, "title": "The Matrix", "vote_average": 8.2, "vote_count": 26000, "genre_ids": [28, 878], "release_date": "1999-03-31", "original_language": "en"},
		{"id": 604, "title": "The Matrix Reloaded", "vote_average": 7.0, "vote_count": 12000, "genre_ids": [28, 878]}
	],
	"total_pages": 10,
	"total_results": 200
}`

const detailBody = `{
	"id": 603,
	"title": "The Matrix",
	"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
	"runtime": 136,
	"status": "Released",
	"tagline": "The fight for the future begins.",
	"imdb_id": "tt0133093",
	"vote_average": 8.2,
	"vote_count": 26000
}`

func newTestService(t *testing.T, handler http.HandlerFunc, region string) domain.RemoteSource {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfg := &domain.Config{TmdbApiKey: "test-key", Region: region}
	return NewService(zerolog.Nop(), cfg, WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
}

func TestFetchPageTrending(t *testing.T) {
	var gotPath, gotPage, gotKey string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		gotKey = r.URL.Query().Get("api_key")
		w.Write([]byte(pageBody))
	}, "")

	resp, err := svc.FetchPage(context.Background(), domain.KindTrending, 2, "")
	if err != nil {
		t.Fatalf("fetch page: %v", err)
	}

	if gotPath != "/movie/popular" {
		t.Errorf("path = %q, want /movie/popular", gotPath)
	}
	if gotPage != "2" {
		t.Errorf("page param = %q, want 2", gotPage)
	}
	if gotKey != "test-key" {
		t.Errorf("api_key param = %q, want test-key", gotKey)
	}
	if resp.Page != 2 || resp.TotalPages != 10 || resp.TotalResults != 200 {
		t.Errorf("pagination = %d/%d/%d, want 2/10/200", resp.Page, resp.TotalPages, resp.TotalResults)
	}
	if len(resp.Items) != 2 || resp.Items[0].ID != 603 {
		t.Errorf("items = %+v, want two items starting with 603", resp.Items)
	}
	if len(resp.Items[0].GenreIDs) != 2 {
		t.Errorf("genre ids = %v, want two", resp.Items[0].GenreIDs)
	}
}

func TestFetchPageNowPlayingSendsRegion(t *testing.T) {
	var gotPath, gotRegion string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRegion = r.URL.Query().Get("region")
		w.Write([]byte(pageBody))
	}, "US")

	if _, err := svc.FetchPage(context.Background(), domain.KindNowPlaying, 1, ""); err != nil {
		t.Fatalf("fetch page: %v", err)
	}

	if gotPath != "/movie/now_playing" {
		t.Errorf("path = %q, want /movie/now_playing", gotPath)
	}
	if gotRegion != "US" {
		t.Errorf("region param = %q, want US", gotRegion)
	}
}

func TestFetchPageSearchSendsQuery(t *testing.T) {
	var gotPath, gotQuery string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(pageBody))
	}, "")

	if _, err := svc.FetchPage(context.Background(), domain.KindSearch, 1, "blade runner"); err != nil {
		t.Fatalf("fetch page: %v", err)
	}

	if gotPath != "/search/movie" {
		t.Errorf("path = %q, want /search/movie", gotPath)
	}
	if gotQuery != "blade runner" {
		t.Errorf("query param = %q, want blade runner", gotQuery)
	}
}

func TestFetchDetail(t *testing.T) {
	var gotPath string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(detailBody))
	}, "")

	resp, err := svc.FetchDetail(context.Background(), 603)
	if err != nil {
		t.Fatalf("fetch detail: %v", err)
	}

	if gotPath != "/movie/603" {
		t.Errorf("path = %q, want /movie/603", gotPath)
	}
	if resp.ID != 603 || resp.Runtime != 136 || resp.ImdbID != "tt0133093" {
		t.Errorf("detail = %+v", resp)
	}
	if len(resp.Genres) != 2 || resp.Genres[1].Name != "Science Fiction" {
		t.Errorf("genres = %+v", resp.Genres)
	}
}

func TestFetchErrorsAreTransport(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "auth failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.handler, "")

			_, err := svc.FetchPage(context.Background(), domain.KindTrending, 1, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !domain.IsTransport(err) {
				t.Errorf("error %v is not a TransportError", err)
			}

			_, err = svc.FetchDetail(context.Background(), 1)
			if err == nil {
				t.Fatal("expected error")
			}
			if !domain.IsTransport(err) {
				t.Errorf("detail error %v is not a TransportError", err)
			}
		})
	}
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageBody))
	}, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.FetchPage(ctx, domain.KindTrending, 1, ""); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
