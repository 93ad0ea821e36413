// package services defines interface Catalog for the external movie metadata API
package services

import (
	"context"

	"github.com/sun-mit/streamhub/internal/models"
)

// Catalog defines the read surface of the external movie metadata service.
// The watchlist core needs only MovieByID; the browse/search operations back
// the presentation surfaces (CLI, HTTP, TUI).
type Catalog interface {
	// MovieByID resolves one catalog ID (string form of the numeric movie ID)
	// into a full movie record.
	MovieByID(ctx context.Context, id string) (*models.Movie, error)

	// SearchMovies returns movies matching the free-text query.
	SearchMovies(ctx context.Context, query string) ([]models.Movie, error)

	// Popular returns the catalog's popular-movies rail.
	Popular(ctx context.Context) ([]models.Movie, error)

	// TopRated returns the catalog's top-rated rail.
	TopRated(ctx context.Context) ([]models.Movie, error)

	// NowPlaying returns the catalog's now-playing rail.
	NowPlaying(ctx context.Context) ([]models.Movie, error)

	// Videos returns all video resources attached to a movie.
	Videos(ctx context.Context, id string) ([]models.Video, error)

	// Trailer returns the movie's YouTube trailer, or an error when the movie
	// has none.
	Trailer(ctx context.Context, id string) (*models.Video, error)

	// Similar returns movies the catalog considers similar to the given one.
	Similar(ctx context.Context, id string) ([]models.Movie, error)

	// Name returns the name of the catalog provider (e.g., "TMDB")
	Name() string
}
