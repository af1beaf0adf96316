package metacache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/tmdb"
	"go.uber.org/zap"
)

const (
	trailerSite = "YouTube"
	trailerType = "Trailer"
)

// Fetcher is the upstream surface the service caches. *tmdb.Client
// implements it.
type Fetcher interface {
	Trending(ctx context.Context, count int) ([]models.CatalogItem, error)
	Discover(ctx context.Context, category string, page int) ([]models.CatalogItem, error)
	Details(ctx context.Context, id int) (*models.MovieDetails, error)
	Videos(ctx context.Context, id int) ([]models.Video, error)
	SearchID(ctx context.Context, title string) (int, error)
	TrailerURL(key string) string
}

// Service is the metadata cache over four namespaces: details by id,
// trailer URL by id, catalog page by (category, page), and movie id by
// title. Network failures never escape: every accessor degrades to an
// absent result. Only definitive outcomes are cached; transient fetch
// errors leave the key retryable.
type Service struct {
	fetcher  Fetcher
	details  *Store[*models.MovieDetails]
	trailers *Store[string]
	pages    *Store[[]models.CatalogItem]
	search   *Store[int]
	logger   *zap.Logger
}

// NewService creates the cache service with the given TTL for all
// namespaces. logger may be nil.
func NewService(fetcher Fetcher, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:  fetcher,
		details:  NewStore[*models.MovieDetails](ttl),
		trailers: NewStore[string](ttl),
		pages:    NewStore[[]models.CatalogItem](ttl),
		search:   NewStore[int](ttl),
		logger:   logger,
	}
}

// GetDetails returns the detail record for id, or absent.
func (s *Service) GetDetails(ctx context.Context, id int) (*models.MovieDetails, bool) {
	if id == 0 {
		return nil, false
	}
	d, found, err := s.details.GetOrFetch(strconv.Itoa(id), func() (*models.MovieDetails, bool, error) {
		d, err := s.fetcher.Details(ctx, id)
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		return d, true, nil
	})
	if err != nil {
		s.logger.Warn("details fetch failed", zap.Int("id", id), zap.Error(err))
		return nil, false
	}
	return d, found
}

// GetTrailer returns the trailer watch URL for id, or absent. The cached
// value is the first upstream video whose site and type match the trailer
// policy; a title with videos but no trailer caches the absent outcome.
func (s *Service) GetTrailer(ctx context.Context, id int) (string, bool) {
	if id == 0 {
		return "", false
	}
	url, found, err := s.trailers.GetOrFetch(strconv.Itoa(id), func() (string, bool, error) {
		videos, err := s.fetcher.Videos(ctx, id)
		if errors.Is(err, tmdb.ErrNotFound) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		for _, v := range videos {
			if v.Site == trailerSite && v.Type == trailerType {
				return s.fetcher.TrailerURL(v.Key), true, nil
			}
		}
		return "", false, nil
	})
	if err != nil {
		s.logger.Warn("trailer fetch failed", zap.Int("id", id), zap.Error(err))
		return "", false
	}
	return url, found
}

// GetCategoryPage returns one page of catalog items for the category, or an
// empty page when the upstream is unavailable.
func (s *Service) GetCategoryPage(ctx context.Context, query models.CatalogQuery) []models.CatalogItem {
	if err := query.Validate(); err != nil {
		return nil
	}
	items, _, err := s.pages.GetOrFetch(query.Key(), func() ([]models.CatalogItem, bool, error) {
		items, err := s.fetcher.Discover(ctx, query.Category, query.Page)
		if err != nil {
			return nil, false, err
		}
		return items, true, nil
	})
	if err != nil {
		s.logger.Warn("category page fetch failed",
			zap.String("category", query.Category),
			zap.Int("page", query.Page),
			zap.Error(err),
		)
		return nil
	}
	return items
}

// GetTrending returns up to count trending items, or an empty list.
func (s *Service) GetTrending(ctx context.Context, count int) []models.CatalogItem {
	key := "trending_" + strconv.Itoa(count)
	items, _, err := s.pages.GetOrFetch(key, func() ([]models.CatalogItem, bool, error) {
		items, err := s.fetcher.Trending(ctx, count)
		if err != nil {
			return nil, false, err
		}
		return items, true, nil
	})
	if err != nil {
		s.logger.Warn("trending fetch failed", zap.Error(err))
		return nil
	}
	return items
}

// GetMovieID returns the first upstream candidate id for a title, or absent.
func (s *Service) GetMovieID(ctx context.Context, title string) (int, bool) {
	if title == "" {
		return 0, false
	}
	id, found, err := s.search.GetOrFetch(title, func() (int, bool, error) {
		id, err := s.fetcher.SearchID(ctx, title)
		if errors.Is(err, tmdb.ErrNotFound) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return id, true, nil
	})
	if err != nil {
		s.logger.Warn("title search failed", zap.String("title", title), zap.Error(err))
		return 0, false
	}
	return id, found
}
