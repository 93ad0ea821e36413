package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/repositories"
	"github.com/sun-mit/streamhub/internal/shared"
	"github.com/sun-mit/streamhub/internal/tasks"
)

// WatchlistHandler serves the active identity's watchlist.
//
// Mutations act on stored IDs only; the GET endpoint resolves the stored IDs
// against the catalog so clients receive full movie records.
type WatchlistHandler struct {
	sessions   *repositories.SessionRepository
	watchlists *repositories.WatchlistRepository
	resolver   tasks.Resolver
	logger     *log.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(
	sessions *repositories.SessionRepository,
	watchlists *repositories.WatchlistRepository,
	resolver tasks.Resolver,
	logger *log.Logger,
) *WatchlistHandler {
	return &WatchlistHandler{
		sessions:   sessions,
		watchlists: watchlists,
		resolver:   resolver,
		logger:     logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *WatchlistHandler) Routes() []string {
	return []string{
		"/api/watchlist",
		"/api/watchlist/toggle",
		"/api/watchlist/remove",
	}
}

type watchlistMutation struct {
	ID string `json:"id"`
}

// watchlistResponse is the resolved watchlist for API clients.
type watchlistResponse struct {
	Identity models.Identity `json:"identity"`
	Movies   []models.Movie  `json:"movies"`
	Resolved int             `json:"resolved"`
	Failed   int             `json:"failed"`
	Total    int             `json:"total"`
}

type toggleResponse struct {
	ID          string `json:"id"`
	InWatchlist bool   `json:"in_watchlist"`
}

func (h *WatchlistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/watchlist":
		h.list(w, r)
	case "/api/watchlist/toggle":
		h.toggle(w, r)
	case "/api/watchlist/remove":
		h.remove(w, r)
	default:
		http.NotFound(w, r)
	}
}

// identity returns the active identity or writes a 401 and reports false.
func (h *WatchlistHandler) identity(w http.ResponseWriter) (models.Identity, bool) {
	identity, ok := h.sessions.Current()
	if !ok {
		writeError(w, shared.ErrNotAuthenticated)
		return models.Identity{}, false
	}
	return identity, true
}

func (h *WatchlistHandler) list(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	identity, ok := h.identity(w)
	if !ok {
		return
	}

	run, err := h.resolver.Resolve(r.Context(), identity, nil)
	if err != nil {
		h.logger.Error("watchlist resolution failed", "email", identity.Email, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, watchlistResponse{
		Identity: run.Identity,
		Movies:   run.Movies,
		Resolved: run.ResolvedCount,
		Failed:   run.FailedCount,
		Total:    run.TotalEntries,
	})
}

func (h *WatchlistHandler) toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	identity, ok := h.identity(w)
	if !ok {
		return
	}

	var req watchlistMutation
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.watchlists.Toggle(identity, req.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("toggled watchlist entry", "email", identity.Email, "id", req.ID, "saved", saved)
	writeJSON(w, http.StatusOK, toggleResponse{ID: req.ID, InWatchlist: saved})
}

func (h *WatchlistHandler) remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	identity, ok := h.identity(w)
	if !ok {
		return
	}

	var req watchlistMutation
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.watchlists.Remove(identity, req.ID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{ID: req.ID, InWatchlist: false})
}
