package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/repositories"
)

// AuthHandler serves the account and session endpoints.
//
// Implements the [Handler] interface for registration with a [Router].
type AuthHandler struct {
	sessions *repositories.SessionRepository
	logger   *log.Logger
}

// NewAuthHandler creates a new AuthHandler backed by the session repository.
func NewAuthHandler(sessions *repositories.SessionRepository, logger *log.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{
		"/api/auth/register",
		"/api/auth/login",
		"/api/auth/logout",
		"/api/auth/session",
	}
}

// sessionResponse describes the active session for API clients.
type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	Identity      *models.Identity `json:"identity,omitempty"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/auth/register":
		h.register(w, r)
	case "/api/auth/login":
		h.login(w, r)
	case "/api/auth/logout":
		h.logout(w, r)
	case "/api/auth/session":
		h.session(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	identity, err := h.sessions.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Warn("registration failed", "email", req.Email, "error", err)
		writeError(w, err)
		return
	}

	h.logger.Info("registered account", "email", identity.Email)
	writeJSON(w, http.StatusCreated, sessionResponse{Authenticated: true, Identity: &identity})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	identity, err := h.sessions.Login(req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login failed", "email", req.Email)
		writeError(w, err)
		return
	}

	h.logger.Info("logged in", "email", identity.Email)
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Identity: &identity})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.sessions.Logout(); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
}

func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	identity, ok := h.sessions.Current()
	if !ok {
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Identity: &identity})
}
