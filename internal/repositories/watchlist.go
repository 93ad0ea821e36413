package repositories

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/shared"
)

// WatchlistRepository owns the per-identity sets of movie IDs.
//
// Each identity's watchlist is stored under "watchlist_<email>" as a JSON
// array of catalog IDs in string form. Insertion order is preserved, but the
// collection is a set: Toggle refuses to insert an ID that is already
// present, and reads drop repeats in case older documents carry them.
type WatchlistRepository struct {
	mu      sync.Mutex
	storage Storage
}

// NewWatchlistRepository creates a WatchlistRepository bound to the given storage
func NewWatchlistRepository(storage Storage) *WatchlistRepository {
	return &WatchlistRepository{storage: storage}
}

// watchlistKey derives the storage key for one identity. The email field is
// the only coupling to the session repository.
func watchlistKey(identity models.Identity) string {
	return "watchlist_" + identity.Email
}

// Contains reports whether movieID is in the identity's watchlist. Nothing is
// in any watchlist while anonymous, so an empty identity always reports false.
func (r *WatchlistRepository) Contains(identity models.Identity, movieID string) bool {
	if identity.Email == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.load(identity) {
		if id == movieID {
			return true
		}
	}
	return false
}

// IDs returns the identity's watchlist in first-added order, with any
// duplicate entries collapsed to their first occurrence.
func (r *WatchlistRepository) IDs(identity models.Identity) []string {
	if identity.Email == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(identity)
}

// Toggle flips membership of movieID and persists the updated list.
// Returns the new membership state: true when the ID was added, false when it
// was removed.
func (r *WatchlistRepository) Toggle(identity models.Identity, movieID string) (bool, error) {
	if identity.Email == "" {
		return false, shared.ErrNotAuthenticated
	}
	if movieID == "" {
		return false, fmt.Errorf("%w: movie ID is required", shared.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.load(identity)
	kept := make([]string, 0, len(ids)+1)
	removed := false
	for _, id := range ids {
		if id == movieID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}

	if !removed {
		kept = append(kept, movieID)
	}

	if err := r.save(identity, kept); err != nil {
		return false, err
	}
	return !removed, nil
}

// Remove deletes movieID from the identity's watchlist. Removing an ID that
// is not present is a no-op, not an error.
func (r *WatchlistRepository) Remove(identity models.Identity, movieID string) error {
	if identity.Email == "" {
		return shared.ErrNotAuthenticated
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.load(identity)
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != movieID {
			kept = append(kept, id)
		}
	}

	if len(kept) == len(ids) {
		return nil
	}
	return r.save(identity, kept)
}

// load reads and deduplicates the stored list, defaulting to empty on a
// missing or unparseable document. Callers must hold r.mu.
func (r *WatchlistRepository) load(identity models.Identity) []string {
	raw, ok, err := r.storage.Get(watchlistKey(identity))
	if err != nil || !ok {
		return nil
	}

	var ids []string
	if json.Unmarshal([]byte(raw), &ids) != nil {
		return nil
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func (r *WatchlistRepository) save(identity models.Identity, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode watchlist: %w", err)
	}

	if err := r.storage.Set(watchlistKey(identity), string(data)); err != nil {
		return fmt.Errorf("failed to persist watchlist: %w", err)
	}
	return nil
}
