package repositories

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sun-mit/streamhub/internal/models"
	"github.com/sun-mit/streamhub/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// SessionRepository owns the registered-account directory and the single
// active session. It is the only gate for actions that require an identity.
//
// At most one identity is active at a time. A successful register or login
// persists the identity under the session key so a restart resumes
// authenticated; logout removes it. Failed register and login calls leave all
// state unchanged.
type SessionRepository struct {
	mu      sync.RWMutex
	storage Storage
	current *models.Identity
}

// NewSessionRepository creates a SessionRepository bound to the given storage
// and restores any previously persisted session. A missing or malformed
// session document restores to anonymous.
func NewSessionRepository(storage Storage) *SessionRepository {
	r := &SessionRepository{storage: storage}

	if raw, ok, err := storage.Get(sessionKey); err == nil && ok {
		var identity models.Identity
		if json.Unmarshal([]byte(raw), &identity) == nil && identity.Email != "" {
			r.current = &identity
		}
	}

	return r
}

// Register adds a new account to the directory and signs it in.
//
// Returns [shared.ErrDuplicateEmail] when the email is already registered;
// the directory is left unchanged in that case. On success both the updated
// directory and the new session are persisted before the call returns.
func (r *SessionRepository) Register(name, email, password string) (models.Identity, error) {
	if name == "" || email == "" || password == "" {
		return models.Identity{}, fmt.Errorf("%w: name, email and password are required", shared.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	directory := r.loadDirectory()
	for _, cred := range directory {
		if cred.Email == email {
			return models.Identity{}, shared.ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := models.Credential{
		ID:           shared.GenerateID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := cred.Validate(); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	directory = append(directory, cred)
	if err := r.saveDirectory(directory); err != nil {
		return models.Identity{}, err
	}

	identity := cred.Identity()
	if err := r.persistSession(identity); err != nil {
		return models.Identity{}, err
	}

	r.current = &identity
	return identity, nil
}

// Login matches email and password against the directory and activates the
// matching identity.
//
// The failure is uniform: an unknown email and a wrong password both return
// [shared.ErrInvalidCredentials], and neither changes any state. The password
// itself is never placed into the session record.
func (r *SessionRepository) Login(email, password string) (models.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cred := range r.loadDirectory() {
		if cred.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
			break
		}

		identity := cred.Identity()
		if err := r.persistSession(identity); err != nil {
			return models.Identity{}, err
		}

		r.current = &identity
		return identity, nil
	}

	return models.Identity{}, shared.ErrInvalidCredentials
}

// Logout clears the active session. Idempotent: logging out while anonymous
// is a no-op.
func (r *SessionRepository) Logout() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return nil
	}

	if err := r.storage.Delete(sessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.current = nil
	return nil
}

// Current returns the active identity, or false when anonymous.
func (r *SessionRepository) Current() (models.Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return models.Identity{}, false
	}
	return *r.current, true
}

// Directory returns the public identities of all registered accounts in
// registration order.
func (r *SessionRepository) Directory() []models.Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	creds := r.loadDirectory()
	identities := make([]models.Identity, 0, len(creds))
	for _, cred := range creds {
		identities = append(identities, cred.Identity())
	}
	return identities
}

// loadDirectory reads the credential directory, defaulting to empty on a
// missing or unparseable document.
func (r *SessionRepository) loadDirectory() []models.Credential {
	raw, ok, err := r.storage.Get(directoryKey)
	if err != nil || !ok {
		return nil
	}

	var directory []models.Credential
	if json.Unmarshal([]byte(raw), &directory) != nil {
		return nil
	}
	return directory
}

func (r *SessionRepository) saveDirectory(directory []models.Credential) error {
	data, err := json.Marshal(directory)
	if err != nil {
		return fmt.Errorf("failed to encode directory: %w", err)
	}

	if err := r.storage.Set(directoryKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist directory: %w", err)
	}
	return nil
}

func (r *SessionRepository) persistSession(identity models.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := r.storage.Set(sessionKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}
