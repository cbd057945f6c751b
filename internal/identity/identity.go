// Package identity assigns the stable per-installation user id every
// other component keys off. The id is a ULID (millisecond timestamp
// plus random entropy), generated once and persisted locally.
package identity

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"playground-client/internal/logger"
	"playground-client/internal/storage"
)

const userIDKey = "user_id"

// Store resolves and persists the installation identity.
type Store struct {
	kv storage.KV

	mu       sync.Mutex
	cached   string
	degraded bool
}

// NewStore creates an identity store over the given KV backend.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// GetOrCreateUserID returns the installation's user id, generating and
// persisting one on first use. If the backend is unavailable it falls
// back to a session-only id: degraded, but never fatal.
func (s *Store) GetOrCreateUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" {
		return s.cached
	}

	if existing, err := s.kv.Get(userIDKey); err == nil && len(existing) > 0 {
		s.cached = string(existing)
		return s.cached
	} else if err != nil && err != storage.ErrNotFound {
		logger.Log.WithError(err).Warn("Identity store unreadable, using session-only id")
		s.degraded = true
		s.cached = sessionOnlyID()
		return s.cached
	}

	id := newInstallationID()
	if err := s.kv.Put(userIDKey, []byte(id)); err != nil {
		logger.Log.WithError(err).Warn("Failed to persist user id, using session-only id")
		s.degraded = true
		s.cached = sessionOnlyID()
		return s.cached
	}

	logger.Log.WithField("user_id", id).Info("Created new installation identity")
	s.cached = id
	return s.cached
}

// Degraded reports whether the current id is session-only because the
// durable store was unavailable.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// newInstallationID combines a time component with enough random
// entropy to make cross-installation collisions practically impossible.
func newInstallationID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		// crypto/rand failing is about as broken as a machine gets
		return sessionOnlyID()
	}
	return id.String()
}

func sessionOnlyID() string {
	return "session-" + uuid.NewString()
}
