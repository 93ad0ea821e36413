package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/services"
	"github.com/sun-mit/streamhub/internal/shared"
)

// MovieHandler proxies catalog lookups for API clients.
//
// Detail routes are parsed from the path suffix under /api/movies/, so a
// single prefix registration covers details, trailer, videos, and similar.
type MovieHandler struct {
	catalog services.Catalog
}

// NewMovieHandler creates a new MovieHandler over the catalog service.
func NewMovieHandler(catalog services.Catalog) *MovieHandler {
	return &MovieHandler{catalog: catalog}
}

// Routes returns the HTTP routes this handler serves.
//
// Exact matches take precedence over the trailing-slash prefix on
// [http.ServeMux], so the browse rails never collide with detail lookups.
func (h *MovieHandler) Routes() []string {
	return []string{
		"/api/movies/search",
		"/api/movies/popular",
		"/api/movies/top-rated",
		"/api/movies/now-playing",
		"/api/movies/",
	}
}

// railFunc is any catalog browse endpoint.
type railFunc func(context.Context) ([]models.Movie, error)

func (h *MovieHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/api/movies/search":
		h.search(w, r)
	case "/api/movies/popular":
		h.rail(w, r, h.catalog.Popular)
	case "/api/movies/top-rated":
		h.rail(w, r, h.catalog.TopRated)
	case "/api/movies/now-playing":
		h.rail(w, r, h.catalog.NowPlaying)
	default:
		h.detail(w, r)
	}
}

func (h *MovieHandler) search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, fmt.Errorf("%w: missing query parameter q", shared.ErrMissingArgument))
		return
	}

	movies, err := h.catalog.SearchMovies(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"query": query, "results": movies})
}

func (h *MovieHandler) rail(w http.ResponseWriter, r *http.Request, fetch railFunc) {
	movies, err := fetch(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": movies})
}

// detail handles /api/movies/{id} and its sub-resources.
func (h *MovieHandler) detail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/movies/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)

	id := parts[0]
	if id == "" {
		writeError(w, fmt.Errorf("%w: missing movie id", shared.ErrMissingArgument))
		return
	}

	if len(parts) == 1 {
		movie, err := h.catalog.MovieByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, movie)
		return
	}

	switch parts[1] {
	case "trailer":
		trailer, err := h.catalog.Trailer(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, trailer)
	case "videos":
		videos, err := h.catalog.Videos(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": videos})
	case "similar":
		movies, err := h.catalog.Similar(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": movies})
	default:
		http.NotFound(w, r)
	}
}
