package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sun-mit/streamhub/internal/shared"
	tu "github.com/sun-mit/streamhub/internal/testing"
)

func testConfig(baseURL string) shared.TMDBConfig {
	return shared.TMDBConfig{
		APIKey:            "test_api_key",
		BaseURL:           baseURL,
		RequestsPerSecond: 1000,
	}
}

func TestNewTMDBService(t *testing.T) {
	t.Run("With API Key", func(t *testing.T) {
		srv, err := NewTMDBService(shared.TMDBConfig{APIKey: "k"}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if srv.Name() != "TMDB" {
			t.Errorf("expected service name 'TMDB', got %s", srv.Name())
		}
		if srv.baseURL != defaultTMDBBaseURL {
			t.Errorf("expected default base URL, got %s", srv.baseURL)
		}
	})

	t.Run("With Access Token", func(t *testing.T) {
		srv, err := NewTMDBService(shared.TMDBConfig{AccessToken: "bearer_token"}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if srv.httpClient == http.DefaultClient {
			t.Error("expected a bearer-auth client, got the default client")
		}
	})

	t.Run("Missing Credentials", func(t *testing.T) {
		_, err := NewTMDBService(shared.TMDBConfig{}, nil)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestTMDBService(t *testing.T) {
	ctx := context.Background()

	t.Run("MovieByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			var gotPath, gotKey string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotKey = r.URL.Query().Get("api_key")
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"id":550,"title":"Fight Club","poster_path":"/pB8B.jpg","release_date":"1999-10-15","vote_average":8.4}`))
			}))
			defer server.Close()

			srv, err := NewTMDBService(testConfig(server.URL), nil)
			if err != nil {
				t.Fatalf("failed to create service: %v", err)
			}

			movie, err := srv.MovieByID(ctx, "550")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if gotPath != "/movie/550" {
				t.Errorf("expected path /movie/550, got %s", gotPath)
			}
			if gotKey != "test_api_key" {
				t.Errorf("expected api_key query parameter, got %q", gotKey)
			}
			if movie.ID != 550 || movie.Title != "Fight Club" {
				t.Errorf("unexpected movie %+v", movie)
			}
			if movie.ReleaseYear() != "1999" {
				t.Errorf("expected release year 1999, got %s", movie.ReleaseYear())
			}
		})

		t.Run("Not Found", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"status_message":"not found"}`, http.StatusNotFound)
			}))
			defer server.Close()

			srv, _ := NewTMDBService(testConfig(server.URL), nil)
			if _, err := srv.MovieByID(ctx, "999999"); !errors.Is(err, shared.ErrMovieNotFound) {
				t.Errorf("expected ErrMovieNotFound, got %v", err)
			}
		})

		t.Run("Server Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			}))
			defer server.Close()

			srv, _ := NewTMDBService(testConfig(server.URL), nil)
			if _, err := srv.MovieByID(ctx, "550"); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Transport Error", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
			}

			srv, _ := NewTMDBService(testConfig("http://tmdb.invalid"), client)
			if _, err := srv.MovieByID(ctx, "550"); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Missing ID", func(t *testing.T) {
			srv, _ := NewTMDBService(testConfig("http://tmdb.invalid"), nil)
			if _, err := srv.MovieByID(ctx, ""); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("SearchMovies", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("query")
			w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"Alien"},{"id":2,"title":"Aliens"}]}`))
		}))
		defer server.Close()

		srv, _ := NewTMDBService(testConfig(server.URL), nil)

		movies, err := srv.SearchMovies(ctx, "alien day & night")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotQuery != "alien day & night" {
			t.Errorf("query not escaped round-trip, got %q", gotQuery)
		}
		if len(movies) != 2 || movies[0].Title != "Alien" {
			t.Errorf("unexpected results %+v", movies)
		}

		if _, err := srv.SearchMovies(ctx, "  "); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument for blank query, got %v", err)
		}
	})

	t.Run("Rails", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"page":1,"results":[{"id":10,"title":"Heat"}]}`))
		}))
		defer server.Close()

		srv, _ := NewTMDBService(testConfig(server.URL), nil)

		tc := []struct {
			name string
			call func() error
			path string
		}{
			{"Popular", func() error { _, err := srv.Popular(ctx); return err }, "/movie/popular"},
			{"TopRated", func() error { _, err := srv.TopRated(ctx); return err }, "/movie/top_rated"},
			{"NowPlaying", func() error { _, err := srv.NowPlaying(ctx); return err }, "/movie/now_playing"},
			{"Similar", func() error { _, err := srv.Similar(ctx, "10"); return err }, "/movie/10/similar"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.call(); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if gotPath != tt.path {
					t.Errorf("expected path %s, got %s", tt.path, gotPath)
				}
			})
		}
	})

	t.Run("Trailer", func(t *testing.T) {
		t.Run("Picks First YouTube Trailer", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"id":550,"results":[
					{"id":"a","key":"k1","site":"YouTube","type":"Teaser"},
					{"id":"b","key":"k2","site":"Vimeo","type":"Trailer"},
					{"id":"c","key":"k3","site":"YouTube","type":"Trailer"},
					{"id":"d","key":"k4","site":"YouTube","type":"Trailer"}
				]}`))
			}))
			defer server.Close()

			srv, _ := NewTMDBService(testConfig(server.URL), nil)

			trailer, err := srv.Trailer(ctx, "550")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if trailer.Key != "k3" {
				t.Errorf("expected first YouTube trailer k3, got %s", trailer.Key)
			}
			if trailer.WatchURL() != "https://www.youtube.com/watch?v=k3" {
				t.Errorf("unexpected watch URL %s", trailer.WatchURL())
			}
		})

		t.Run("No Trailer", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"id":550,"results":[{"id":"a","key":"k1","site":"YouTube","type":"Clip"}]}`))
			}))
			defer server.Close()

			srv, _ := NewTMDBService(testConfig(server.URL), nil)
			if _, err := srv.Trailer(ctx, "550"); !errors.Is(err, shared.ErrTrailerNotFound) {
				t.Errorf("expected ErrTrailerNotFound, got %v", err)
			}
		})
	})

	t.Run("Context Cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		srv, _ := NewTMDBService(testConfig(server.URL), nil)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := srv.MovieByID(cancelled, "550"); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
