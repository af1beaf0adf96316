// Package tmdb is the client for the upstream movie metadata service.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrNotFound reports that the upstream has no data for the requested id.
var ErrNotFound = fmt.Errorf("tmdb: not found")

// Client calls the upstream API. Every request carries the configured
// timeout and passes through a rate limiter and a circuit breaker; the
// breaker opens after repeated upstream failures so a dead upstream does
// not pin every caller for the full timeout.
type Client struct {
	apiKey        string
	baseURL       string
	imageBaseURL  string
	videoWatchURL string
	pageSize      int
	httpClient    *http.Client
	limiter       *rate.Limiter
	breaker       *gobreaker.CircuitBreaker[[]byte]
	logger        *zap.Logger
}

// NewClient creates a client from config. logger may be nil.
func NewClient(cfg *config.TMDBConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "tmdb",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// a missing movie is an answer, not an upstream failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})
	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       cfg.BaseURL,
		imageBaseURL:  cfg.ImageBaseURL,
		videoWatchURL: cfg.VideoWatchURL,
		pageSize:      cfg.PageSize,
		httpClient:    &http.Client{Timeout: timeout},
		limiter:       rate.NewLimiter(rate.Limit(rps), int(2*rps)),
		breaker:       breaker,
		logger:        logger,
	}
}

type listItem struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

type listResponse struct {
	Results []listItem `json:"results"`
}

type detailResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Overview   string `json:"overview"`
	PosterPath string `json:"poster_path"`
}

type videosResponse struct {
	Results []models.Video `json:"results"`
}

// Trending returns up to count trending-this-week items.
func (c *Client) Trending(ctx context.Context, count int) ([]models.CatalogItem, error) {
	body, err := c.get(ctx, "/trending/movie/week", nil)
	if err != nil {
		return nil, err
	}
	return c.decodeList(body, count)
}

// Discover returns one popularity-sorted page for the category. Recognized
// categories add their language or genre filter; anything else is plain
// popularity sort. Pages are 1-based; the result holds at most the
// configured page size.
func (c *Client) Discover(ctx context.Context, category string, page int) ([]models.CatalogItem, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))
	if f, ok := categoryFilters[category]; ok {
		params.Set(f.param, f.value)
	} else {
		c.logger.Debug("unrecognized category, using plain popularity sort",
			zap.String("category", category))
	}
	body, err := c.get(ctx, "/discover/movie", params)
	if err != nil {
		return nil, err
	}
	return c.decodeList(body, c.pageSize)
}

// Details returns the detail record for id, or ErrNotFound.
func (c *Client) Details(ctx context.Context, id int) (*models.MovieDetails, error) {
	body, err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var d detailResponse
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("decode details: %w", err)
	}
	if d.ID == 0 || d.Title == "" {
		return nil, ErrNotFound
	}
	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, g.Name)
	}
	return &models.MovieDetails{
		ID:          d.ID,
		Title:       d.Title,
		ReleaseDate: d.ReleaseDate,
		VoteAverage: d.VoteAverage,
		Genres:      genres,
		Overview:    d.Overview,
		PosterURL:   c.PosterURL(d.PosterPath),
	}, nil
}

// Videos returns the video entries for id.
func (c *Client) Videos(ctx context.Context, id int) ([]models.Video, error) {
	body, err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", id), nil)
	if err != nil {
		return nil, err
	}
	var v videosResponse
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decode videos: %w", err)
	}
	return v.Results, nil
}

// SearchID returns the first candidate id for a title, or ErrNotFound when
// the search has no results.
func (c *Client) SearchID(ctx context.Context, title string) (int, error) {
	params := url.Values{}
	params.Set("query", title)
	body, err := c.get(ctx, "/search/movie", params)
	if err != nil {
		return 0, err
	}
	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return 0, fmt.Errorf("decode search: %w", err)
	}
	for _, item := range list.Results {
		if item.ID != 0 {
			return item.ID, nil
		}
	}
	return 0, ErrNotFound
}

// PosterURL builds the full poster URL, or "" when the path is absent.
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.imageBaseURL + posterPath
}

// TrailerURL builds the watch URL for a video key.
func (c *Client) TrailerURL(key string) string {
	return c.videoWatchURL + key
}

// decodeList maps a list response to catalog items, filtering malformed
// entries (missing id or title) instead of failing the page.
func (c *Client) decodeList(body []byte, limit int) ([]models.CatalogItem, error) {
	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	items := make([]models.CatalogItem, 0, len(list.Results))
	for _, r := range list.Results {
		if r.ID == 0 || r.Title == "" {
			continue
		}
		items = append(items, models.CatalogItem{
			ID:        r.ID,
			Title:     r.Title,
			PosterURL: c.PosterURL(r.PosterPath),
		})
		if limit > 0 && len(items) == limit {
			break
		}
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	return c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("upstream request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		return body, nil
	})
}
