// package tasks implements watchlist resolution against the external catalog.
//
// The core abstraction is Resolver, which turns a persisted list of bare
// movie IDs into displayable movie records. Resolution is best-effort by
// contract: one bad entry never fails the whole run, it is recorded as a
// per-item failure and omitted from the movie listing. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/repositories"
	"github.com/sun-mit/streamhub/internal/services"
	"github.com/sun-mit/streamhub/internal/shared"
)

// MovieResolveResult represents the outcome of resolving a single watchlist
// entry.
type MovieResolveResult struct {
	ID    string        // Stored catalog ID
	Movie *models.Movie // Resolved record (nil if lookup failed)
	Error error         // Error if the lookup failed
}

// ResolveRunResult contains all data from a full watchlist resolution.
//
// Movies holds the successful records in first-added order; Results holds the
// per-entry outcomes in the same order, failures included.
type ResolveRunResult struct {
	Identity      models.Identity      // Identity the watchlist belongs to
	Results       []MovieResolveResult // Individual entry outcomes
	Movies        []models.Movie       // Successfully resolved records
	ResolvedCount int                  // Number of successful lookups
	FailedCount   int                  // Number of failed lookups
	TotalEntries  int                  // Total unique entries processed
}

// Resolver defines operations for materializing a watchlist.
type Resolver interface {
	// Resolve loads the identity's watchlist and resolves every entry against
	// the catalog, sequentially and in first-added order.
	Resolve(ctx context.Context, identity models.Identity, progress chan<- ProgressUpdate) (*ResolveRunResult, error)
}

// WatchlistEngine implements [Resolver] over the watchlist repository and a
// catalog service.
type WatchlistEngine struct {
	watchlists *repositories.WatchlistRepository
	catalog    services.Catalog
}

// NewWatchlistEngine creates a new WatchlistEngine with the provided dependencies.
func NewWatchlistEngine(watchlists *repositories.WatchlistRepository, catalog services.Catalog) *WatchlistEngine {
	return &WatchlistEngine{watchlists: watchlists, catalog: catalog}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *WatchlistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Resolve materializes the identity's watchlist.
//
// Entries are resolved one at a time in stored order, so the result order is
// deterministic without re-sorting. A cancelled context aborts the run and
// returns the context error; the caller is expected to discard partial
// results when the active identity has changed mid-flight.
func (e *WatchlistEngine) Resolve(ctx context.Context, identity models.Identity, progress chan<- ProgressUpdate) (*ResolveRunResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if identity.Email == "" {
		return nil, shared.ErrNotAuthenticated
	}

	ids := e.watchlists.IDs(identity)
	total := len(ids)

	result := &ResolveRunResult{
		Identity:     identity,
		Results:      make([]MovieResolveResult, 0, total),
		Movies:       make([]models.Movie, 0, total),
		TotalEntries: total,
	}

	e.sendProgress(progress, loadEntriesUpdate(total))

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		movie, err := e.catalog.MovieByID(ctx, id)
		result.Results = append(result.Results, MovieResolveResult{ID: id, Movie: movie, Error: err})

		if err != nil {
			result.FailedCount++
		} else {
			result.ResolvedCount++
			result.Movies = append(result.Movies, *movie)
		}

		e.sendProgress(progress, resolveMovieUpdate(i+1, total, id, movie))
	}

	e.sendProgress(progress, resolveDoneUpdate(result.ResolvedCount, total))
	return result, nil
}
