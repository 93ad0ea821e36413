package ui

import (
	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/tasks"
)

// watchlistResolvedMsg carries the outcome of a full watchlist resolution.
type watchlistResolvedMsg struct {
	result *tasks.ResolveRunResult
	err    error
}

// progressUpdateMsg carries a single engine progress event.
type progressUpdateMsg tasks.ProgressUpdate

// trailerFetchedMsg carries the trailer lookup for the selected movie.
type trailerFetchedMsg struct {
	movieID string
	video   *models.Video
	err     error
}

// entryRemovedMsg carries the outcome of a watchlist removal.
type entryRemovedMsg struct {
	movieID string
	err     error
}
