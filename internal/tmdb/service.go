package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelcache/reelcache/internal/domain"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// service implements domain.RemoteSource against the TMDB v3 API. One attempt
// per call; every failure surfaces as a domain.TransportError.
type service struct {
	log        zerolog.Logger
	apiKey     string
	region     string
	baseURL    string
	httpClient *http.Client
}

// Option configures the service.
type Option func(*service)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(s *service) {
		s.baseURL = u
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *service) {
		s.httpClient = c
	}
}

func NewService(log zerolog.Logger, cfg *domain.Config, opts ...Option) domain.RemoteSource {
	s := &service{
		log:     log.With().Str("module", "tmdb").Logger(),
		apiKey:  cfg.TmdbApiKey,
		region:  cfg.Region,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FetchPage fetches one page of a catalog collection.
func (s *service) FetchPage(ctx context.Context, kind domain.CategoryKind, page int, query string) (*domain.RemotePage, error) {
	target, err := s.pageURL(kind, page, query)
	if err != nil {
		return nil, domain.NewTransportError("fetch page", err)
	}

	resp := &domain.RemotePage{}
	if err := s.get(ctx, target, resp); err != nil {
		return nil, domain.NewTransportError("fetch page", err)
	}

	s.log.Debug().
		Int("page", resp.Page).
		Int("total_pages", resp.TotalPages).
		Int("results", len(resp.Items)).
		Msg("fetched catalog page")

	return resp, nil
}

// FetchDetail fetches the detail record for a movie id.
func (s *service) FetchDetail(ctx context.Context, id int) (*domain.RemoteDetail, error) {
	target, err := s.buildURL("/movie/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, domain.NewTransportError("fetch detail", err)
	}

	resp := &domain.RemoteDetail{}
	if err := s.get(ctx, target, resp); err != nil {
		return nil, domain.NewTransportError("fetch detail", err)
	}

	s.log.Debug().Int("id", resp.ID).Str("title", resp.Title).Msg("fetched movie detail")

	return resp, nil
}

func (s *service) pageURL(kind domain.CategoryKind, page int, query string) (string, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	switch kind {
	case domain.KindTrending:
		return s.buildURL("/movie/popular", params)
	case domain.KindNowPlaying:
		if s.region != "" {
			params.Set("region", s.region)
		}
		return s.buildURL("/movie/now_playing", params)
	case domain.KindSearch:
		params.Set("query", query)
		return s.buildURL("/search/movie", params)
	default:
		return "", fmt.Errorf("unknown category kind %d", kind)
	}
}

func (s *service) buildURL(path string, params url.Values) (string, error) {
	u, err := url.Parse(s.baseURL + path)
	if err != nil {
		return "", err
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", s.apiKey)
	params.Set("language", "en-US")
	u.RawQuery = params.Encode()

	return u.String(), nil
}

func (s *service) get(ctx context.Context, target string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return err
	}

	return nil
}
