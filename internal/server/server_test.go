package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/repositories"
	"github.com/sun-mit/streamhub/internal/shared"
	"github.com/sun-mit/streamhub/internal/tasks"
	tu "github.com/sun-mit/streamhub/internal/testing"
)

// testAPI bundles the router with its backing stores so tests can seed state
// directly.
type testAPI struct {
	router     *BasicRouter
	sessions   *repositories.SessionRepository
	watchlists *repositories.WatchlistRepository
	catalog    *tu.MockCatalog
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	storage := repositories.NewMemoryStorage()
	sessions := repositories.NewSessionRepository(storage)
	watchlists := repositories.NewWatchlistRepository(storage)
	catalog := &tu.MockCatalog{Movies: map[string]models.Movie{}}
	resolver := tasks.NewWatchlistEngine(watchlists, catalog)
	logger := shared.NewLogger(io.Discard)

	return &testAPI{
		router:     NewAPIRouter(sessions, watchlists, resolver, catalog, logger),
		sessions:   sessions,
		watchlists: watchlists,
		catalog:    catalog,
	}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}

func TestBasicRouter(t *testing.T) {
	t.Run("Method Filtering", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle("POST", "/submit", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/submit", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405 for wrong method, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/submit", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("Expected 204 for matching method, got %d", rec.Code)
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mark("first"), mark("second"))
		router.Handle("GET", "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		want := []string{"first", "second", "handler"}
		if len(order) != len(want) {
			t.Fatalf("Expected %v, got %v", want, order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("Expected %v, got %v", want, order)
				break
			}
		}
	})
}

func TestAuthHandler(t *testing.T) {
	t.Run("Register", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, "POST", "/api/auth/register",
			`{"name":"Viewer","email":"viewer@example.com","password":"secret"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp sessionResponse
		decodeResponse(t, rec, &resp)
		if !resp.Authenticated || resp.Identity == nil || resp.Identity.Email != "viewer@example.com" {
			t.Errorf("Unexpected session response: %+v", resp)
		}
	})

	t.Run("Register Duplicate Email", func(t *testing.T) {
		api := newTestAPI(t)

		body := `{"name":"Viewer","email":"viewer@example.com","password":"secret"}`
		api.do(t, "POST", "/api/auth/register", body)

		rec := api.do(t, "POST", "/api/auth/register", body)
		if rec.Code != http.StatusConflict {
			t.Errorf("Expected 409 for duplicate email, got %d", rec.Code)
		}
	})

	t.Run("Register Invalid Body", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, "POST", "/api/auth/register", `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for malformed body, got %d", rec.Code)
		}
	})

	t.Run("Login", func(t *testing.T) {
		api := newTestAPI(t)
		api.do(t, "POST", "/api/auth/register",
			`{"name":"Viewer","email":"viewer@example.com","password":"secret"}`)
		api.do(t, "POST", "/api/auth/logout", "")

		rec := api.do(t, "POST", "/api/auth/login",
			`{"email":"viewer@example.com","password":"secret"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp sessionResponse
		decodeResponse(t, rec, &resp)
		if !resp.Authenticated {
			t.Errorf("Expected authenticated session after login")
		}
	})

	t.Run("Login Wrong Password", func(t *testing.T) {
		api := newTestAPI(t)
		api.do(t, "POST", "/api/auth/register",
			`{"name":"Viewer","email":"viewer@example.com","password":"secret"}`)

		rec := api.do(t, "POST", "/api/auth/login",
			`{"email":"viewer@example.com","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for wrong password, got %d", rec.Code)
		}
	})

	t.Run("Session Lifecycle", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, "GET", "/api/auth/session", "")
		var resp sessionResponse
		decodeResponse(t, rec, &resp)
		if resp.Authenticated {
			t.Errorf("Expected anonymous session before registration")
		}

		api.do(t, "POST", "/api/auth/register",
			`{"name":"Viewer","email":"viewer@example.com","password":"secret"}`)

		rec = api.do(t, "GET", "/api/auth/session", "")
		decodeResponse(t, rec, &resp)
		if !resp.Authenticated {
			t.Errorf("Expected authenticated session after registration")
		}

		rec = api.do(t, "POST", "/api/auth/logout", "")
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200 from logout, got %d", rec.Code)
		}

		rec = api.do(t, "GET", "/api/auth/session", "")
		decodeResponse(t, rec, &resp)
		if resp.Authenticated {
			t.Errorf("Expected anonymous session after logout")
		}
	})

	t.Run("Method Not Allowed", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, "GET", "/api/auth/register", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", rec.Code)
		}
	})
}

func TestWatchlistHandler(t *testing.T) {
	register := func(t *testing.T, api *testAPI) {
		t.Helper()
		rec := api.do(t, "POST", "/api/auth/register",
			`{"name":"Viewer","email":"viewer@example.com","password":"secret"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("Registration failed: %d", rec.Code)
		}
	}

	t.Run("Requires Session", func(t *testing.T) {
		api := newTestAPI(t)

		for _, route := range []struct{ method, path string }{
			{"GET", "/api/watchlist"},
			{"POST", "/api/watchlist/toggle"},
			{"POST", "/api/watchlist/remove"},
		} {
			rec := api.do(t, route.method, route.path, `{"id":"550"}`)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 for %s %s, got %d", route.method, route.path, rec.Code)
			}
		}
	})

	t.Run("Toggle Adds Then Removes", func(t *testing.T) {
		api := newTestAPI(t)
		register(t, api)

		rec := api.do(t, "POST", "/api/watchlist/toggle", `{"id":"550"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp toggleResponse
		decodeResponse(t, rec, &resp)
		if !resp.InWatchlist {
			t.Errorf("Expected entry to be added on first toggle")
		}

		rec = api.do(t, "POST", "/api/watchlist/toggle", `{"id":"550"}`)
		decodeResponse(t, rec, &resp)
		if resp.InWatchlist {
			t.Errorf("Expected entry to be removed on second toggle")
		}
	})

	t.Run("Toggle Missing ID", func(t *testing.T) {
		api := newTestAPI(t)
		register(t, api)

		rec := api.do(t, "POST", "/api/watchlist/toggle", `{"id":""}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for empty ID, got %d", rec.Code)
		}
	})

	t.Run("Remove Absent Is No-Op", func(t *testing.T) {
		api := newTestAPI(t)
		register(t, api)

		rec := api.do(t, "POST", "/api/watchlist/remove", `{"id":"999"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200 for absent ID, got %d", rec.Code)
		}
	})

	t.Run("List Resolves Entries", func(t *testing.T) {
		api := newTestAPI(t)
		register(t, api)

		api.catalog.Movies["550"] = models.Movie{ID: 550, Title: "Fight Club"}
		api.catalog.FailIDs = map[string]error{"999": shared.ErrMovieNotFound}

		api.do(t, "POST", "/api/watchlist/toggle", `{"id":"550"}`)
		api.do(t, "POST", "/api/watchlist/toggle", `{"id":"999"}`)

		rec := api.do(t, "GET", "/api/watchlist", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp watchlistResponse
		decodeResponse(t, rec, &resp)
		if resp.Total != 2 || resp.Resolved != 1 || resp.Failed != 1 {
			t.Errorf("Expected total=2 resolved=1 failed=1, got %+v", resp)
		}
		if len(resp.Movies) != 1 || resp.Movies[0].Title != "Fight Club" {
			t.Errorf("Expected resolved movie list, got %+v", resp.Movies)
		}
	})
}

func TestMovieHandler(t *testing.T) {
	t.Run("Search", func(t *testing.T) {
		api := newTestAPI(t)
		api.catalog.Rails = []models.Movie{{ID: 603, Title: "The Matrix"}}

		rec := api.do(t, "GET", "/api/movies/search?q=matrix", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var resp struct {
			Query   string         `json:"query"`
			Results []models.Movie `json:"results"`
		}
		decodeResponse(t, rec, &resp)
		if resp.Query != "matrix" || len(resp.Results) != 1 {
			t.Errorf("Unexpected search response: %+v", resp)
		}
	})

	t.Run("Search Missing Query", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, "GET", "/api/movies/search", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for missing query, got %d", rec.Code)
		}
	})

	t.Run("Browse Rails", func(t *testing.T) {
		api := newTestAPI(t)
		api.catalog.Rails = []models.Movie{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}}

		for _, path := range []string{
			"/api/movies/popular",
			"/api/movies/top-rated",
			"/api/movies/now-playing",
		} {
			rec := api.do(t, "GET", path, "")
			if rec.Code != http.StatusOK {
				t.Errorf("Expected 200 from %s, got %d", path, rec.Code)
				continue
			}

			var resp struct {
				Results []models.Movie `json:"results"`
			}
			decodeResponse(t, rec, &resp)
			if len(resp.Results) != 2 {
				t.Errorf("Expected 2 results from %s, got %d", path, len(resp.Results))
			}
		}
	})

	t.Run("Details", func(t *testing.T) {
		api := newTestAPI(t)
		api.catalog.Movies["550"] = models.Movie{ID: 550, Title: "Fight Club"}

		rec := api.do(t, "GET", "/api/movies/550", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var movie models.Movie
		decodeResponse(t, rec, &movie)
		if movie.Title != "Fight Club" {
			t.Errorf("Expected Fight Club, got %q", movie.Title)
		}
	})

	t.Run("Details Not Found", func(t *testing.T) {
		api := newTestAPI(t)
		api.catalog.FailIDs = map[string]error{"999": shared.ErrMovieNotFound}

		rec := api.do(t, "GET", "/api/movies/999", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})

	t.Run("Trailer", func(t *testing.T) {
		api := newTestAPI(t)
		api.catalog.VideoList = []models.Video{
			{ID: "v1", Key: "teaser", Site: "YouTube", Type: "Teaser"},
			{ID: "v2", Key: "trailer", Site: "YouTube", Type: "Trailer"},
		}

		rec := api.do(t, "GET", "/api/movies/550/trailer", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var video models.Video
		decodeResponse(t, rec, &video)
		if video.Key != "trailer" {
			t.Errorf("Expected the YouTube trailer, got %+v", video)
		}
	})

	t.Run("Similar", func(t *testing.T) {
		api := newTestAPI(t)
		api.catalog.Rails = []models.Movie{{ID: 2, Title: "Two"}}

		rec := api.do(t, "GET", "/api/movies/550/similar", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
	})

	t.Run("Unknown Sub-Resource", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, "GET", "/api/movies/550/posters", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})
}
