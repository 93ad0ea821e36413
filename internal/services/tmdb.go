// TMDB implementation of [Catalog]
//
// Endpoint shapes based on https://developer.themoviedb.org/reference
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultTMDBBaseURL = "https://api.themoviedb.org/3"

// movieListResponse is the paginated envelope TMDB wraps every list in.
// Only the first page is consumed; pagination is out of scope.
type movieListResponse struct {
	Page    int            `json:"page"`
	Results []models.Movie `json:"results"`
}

// videoListResponse wraps a movie's video resources.
type videoListResponse struct {
	ID      int64          `json:"id"`
	Results []models.Video `json:"results"`
}

// TMDBService implements [Catalog] against The Movie Database API.
//
// Authentication is either a v3 api_key query parameter or a v4 read access
// token sent as a bearer header via an [oauth2] client. Requests are
// rate-limited client-side.
type TMDBService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTMDBService creates a TMDB catalog client from the given configuration.
// The HTTP client may be nil, in which case a default (or, with an access
// token, an oauth2 bearer) client is used.
func NewTMDBService(cfg shared.TMDBConfig, client *http.Client) (*TMDBService, error) {
	if cfg.APIKey == "" && cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: tmdb api_key or access_token is required", shared.ErrMissingCredentials)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultTMDBBaseURL
	}

	if client == nil {
		if cfg.AccessToken != "" {
			src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
			client = oauth2.NewClient(context.Background(), src)
		} else {
			client = http.DefaultClient
		}
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}

	return &TMDBService{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

func (s *TMDBService) Name() string {
	return "TMDB"
}

// doRequest performs a rate-limited GET against the TMDB API and decodes the
// JSON response into result.
func (s *TMDBService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	if s.apiKey != "" {
		params.Set("api_key", s.apiKey)
	}

	apiURL := s.baseURL + endpoint
	if encoded := params.Encode(); encoded != "" {
		apiURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: tmdb status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// MovieByID retrieves a single movie by its catalog ID.
func (s *TMDBService) MovieByID(ctx context.Context, id string) (*models.Movie, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	var movie models.Movie
	endpoint := fmt.Sprintf("/movie/%s", url.PathEscape(id))
	if err := s.doRequest(ctx, endpoint, nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// SearchMovies performs a free-text movie search.
func (s *TMDBService) SearchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("query", query)

	var response movieListResponse
	if err := s.doRequest(ctx, "/search/movie", params, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// Popular retrieves the popular-movies rail.
func (s *TMDBService) Popular(ctx context.Context) ([]models.Movie, error) {
	return s.rail(ctx, "/movie/popular")
}

// TopRated retrieves the top-rated rail.
func (s *TMDBService) TopRated(ctx context.Context) ([]models.Movie, error) {
	return s.rail(ctx, "/movie/top_rated")
}

// NowPlaying retrieves the now-playing rail.
func (s *TMDBService) NowPlaying(ctx context.Context) ([]models.Movie, error) {
	return s.rail(ctx, "/movie/now_playing")
}

// Similar retrieves movies similar to the given one.
func (s *TMDBService) Similar(ctx context.Context, id string) ([]models.Movie, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}
	return s.rail(ctx, fmt.Sprintf("/movie/%s/similar", url.PathEscape(id)))
}

func (s *TMDBService) rail(ctx context.Context, endpoint string) ([]models.Movie, error) {
	var response movieListResponse
	if err := s.doRequest(ctx, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// Videos retrieves all video resources attached to a movie.
func (s *TMDBService) Videos(ctx context.Context, id string) ([]models.Video, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	var response videoListResponse
	endpoint := fmt.Sprintf("/movie/%s/videos", url.PathEscape(id))
	if err := s.doRequest(ctx, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// Trailer returns the movie's first YouTube trailer.
func (s *TMDBService) Trailer(ctx context.Context, id string) (*models.Video, error) {
	videos, err := s.Videos(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, video := range videos {
		if video.IsTrailer() {
			return &video, nil
		}
	}

	return nil, fmt.Errorf("%w: movie %s", shared.ErrTrailerNotFound, id)
}
