package server

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/tmdb"
	"go.uber.org/zap"
)

type recommendResponse struct {
	Query   string               `json:"query"`
	Results []models.CatalogItem `json:"results"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	s.logger.Debug("recommend request", zap.String("title", title))

	recs, err := s.engines.Get().Recommend(title)
	if err != nil {
		s.logger.Error("recommend failed", zap.String("title", title), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]models.CatalogItem, len(recs))
	for i, rec := range recs {
		items[i] = models.CatalogItem{ID: rec.ID, Title: rec.Title}
		if d, ok := s.cache.GetDetails(r.Context(), rec.ID); ok {
			items[i].PosterURL = d.PosterURL
		}
	}
	items = s.prefetcher.Enrich(r.Context(), items)
	s.respondJSON(w, http.StatusOK, recommendResponse{Query: title, Results: items})
}

func (s *Server) handleTitles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	titles := s.engines.Get().SearchTitles(q)
	if titles == nil {
		titles = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"titles": titles})
}

// handleSearch resolves a free-typed title to an upstream movie id, for
// titles that are not part of the loaded catalog.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	id, ok := s.cache.GetMovieID(r.Context(), title)
	if !ok {
		s.respondError(w, http.StatusNotFound, "no match for title")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"title": title, "id": id})
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	items := s.cache.GetTrending(r.Context(), s.config.TMDB.TrendingCount)
	items = s.prefetcher.Enrich(r.Context(), items)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"results": items})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories := tmdb.Categories()
	sort.Strings(categories)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	query := models.CatalogQuery{Category: chi.URLParam(r, "name")}
	if p := r.URL.Query().Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid page")
			return
		}
		query.Page = page
	}
	if err := query.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("category request", zap.String("category", query.Category), zap.Int("page", query.Page))

	items := s.cache.GetCategoryPage(r.Context(), query)
	items = s.prefetcher.Enrich(r.Context(), items)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"category": query.Category,
		"page":     query.Page,
		"results":  items,
	})
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}
	details, ok := s.cache.GetDetails(r.Context(), id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "movie not found")
		return
	}
	s.respondJSON(w, http.StatusOK, details)
}

func (s *Server) handleTrailer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}
	url, ok := s.cache.GetTrailer(r.Context(), id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "no trailer available")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"trailer_url": url})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	engine := s.engines.Get()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"catalog_size":    engine.Size(),
		"vocabulary_size": engine.VocabularySize(),
		"categories":      len(tmdb.Categories()),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
