package tasks

import (
	"fmt"

	"github.com/sun-mit/streamhub/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LoadEntries Phase = iota
	ResolveMovies
	ResolveDone
)

func loadEntriesUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadEntries,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d watchlist entries", total),
	}
}

func resolveMovieUpdate(step, total int, id string, movie *models.Movie) ProgressUpdate {
	message := fmt.Sprintf("Resolving %s (%d/%d)", id, step, total)
	if movie != nil {
		message = fmt.Sprintf("Resolved %s (%d/%d)", movie.Title, step, total)
	}
	return ProgressUpdate{
		Phase:   ResolveMovies,
		Step:    step,
		Total:   total,
		Message: message,
		Data:    movie,
	}
}

func resolveDoneUpdate(resolved, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveDone,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Resolved %d of %d entries", resolved, total),
	}
}
