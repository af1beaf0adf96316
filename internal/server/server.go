// Package server provides the HTTP API for Osusume.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/metacache"
	"github.com/hyperjump/osusume/internal/prefetch"
	"github.com/hyperjump/osusume/internal/recommend"
	"go.uber.org/zap"
)

// Server is the HTTP server for the Osusume API.
type Server struct {
	engines    *recommend.Holder
	cache      *metacache.Service
	prefetcher *prefetch.Prefetcher
	config     *config.Config
	logger     *zap.Logger
	server     *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engines *recommend.Holder,
	cache *metacache.Service,
	prefetcher *prefetch.Prefetcher,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engines:    engines,
		cache:      cache,
		prefetcher: prefetcher,
		config:     cfg,
		logger:     logger,
	}
}

// Routes returns the configured router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/api/v1/recommend", s.handleRecommend)
	r.Get("/api/v1/titles", s.handleTitles)
	r.Get("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/trending", s.handleTrending)
	r.Get("/api/v1/categories", s.handleCategories)
	r.Get("/api/v1/category/{name}", s.handleCategory)
	r.Get("/api/v1/movies/{id}", s.handleDetails)
	r.Get("/api/v1/movies/{id}/trailer", s.handleTrailer)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
