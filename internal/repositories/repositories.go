// package repositories provides the persistence layer for account and
// watchlist state.
//
// All durable state lives in a key-value [Storage]: the account directory
// under "authUsers", the active session under "authUser", and one watchlist
// per identity under "watchlist_<email>". Values are JSON documents.
// Unparseable documents are treated as absent rather than surfaced as errors,
// so a corrupt store degrades to an empty directory and an anonymous session.
package repositories

import (
	"sync"
)

// Storage keys for the session repository.
const (
	sessionKey   = "authUser"
	directoryKey = "authUsers"
)

// Storage is a synchronous key-value store. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// MemoryStorage is a map-backed [Storage] for tests and ephemeral runs.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
