// Package session owns the per-visitor authentication state: an in-memory
// view backed by a persisted record, restored once per session lifetime.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/ports"
)

// Store holds the authentication state for one session. All reads after
// Restore are answered from memory; persisted storage is touched only by
// Restore, SetAuthenticated and Clear. Safe for concurrent use.
type Store struct {
	id   string
	repo ports.SessionRepository
	log  zerolog.Logger

	// onClear, when set, tells the owning manager to drop its cache entry
	// for this store.
	onClear func()

	mu       sync.Mutex
	restored bool
	identity *domain.Identity
	token    string
}

// NewStore creates an unrestored store for the given session ID.
func NewStore(id string, repo ports.SessionRepository, log zerolog.Logger) *Store {
	return &Store{id: id, repo: repo, log: log}
}

// ID returns the opaque session identifier.
func (s *Store) ID() string { return s.id }

// Loading reports whether the initial restoration has not yet completed.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.restored
}

// Restore loads the persisted session state. It runs at most once per store;
// later calls are no-ops. Corrupted or half-written records are discarded
// and the store starts unauthenticated — restoration never fails.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restored {
		return
	}
	defer func() { s.restored = true }()

	rec, err := s.repo.Load(ctx, s.id)
	if err != nil {
		if !errors.Is(err, ports.ErrSessionNotFound) {
			s.log.Warn().Err(err).Str("session_id", s.id).Msg("session load failed, starting unauthenticated")
		}
		return
	}

	identity, ok := decodeRecord(rec)
	if !ok {
		s.log.Warn().Str("session_id", s.id).Msg("corrupted session record, clearing")
		if err := s.repo.Delete(ctx, s.id); err != nil {
			s.log.Error().Err(err).Str("session_id", s.id).Msg("failed to delete corrupted session record")
		}
		return
	}

	s.identity = &identity
	s.token = rec.Token
}

// decodeRecord validates a persisted record. Both entries must be present
// and the identity must parse with a non-empty id; anything else is
// corruption and the record as a whole is unusable.
func decodeRecord(rec ports.SessionRecord) (domain.Identity, bool) {
	if rec.Token == "" || len(rec.Identity) == 0 {
		return domain.Identity{}, false
	}
	var identity domain.Identity
	if err := json.Unmarshal(rec.Identity, &identity); err != nil {
		return domain.Identity{}, false
	}
	if identity.ID.IsZero() {
		return domain.Identity{}, false
	}
	return identity, true
}

// SetAuthenticated persists the identity and token, then updates memory.
// Memory is untouched when the write fails, so a reader never observes an
// authenticated state that is not also persisted.
func (s *Store) SetAuthenticated(ctx context.Context, identity domain.Identity, token string) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, s.id, ports.SessionRecord{Token: token, Identity: raw}); err != nil {
		return err
	}

	s.identity = &identity
	s.token = token
	s.restored = true
	return nil
}

// Clear removes the persisted record and empties the in-memory state.
// Idempotent; memory is emptied even when the delete fails so the caller
// never keeps acting on a session the server has rejected.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	s.token = ""
	s.restored = true

	if s.onClear != nil {
		s.onClear()
	}

	if err := s.repo.Delete(ctx, s.id); err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return err
	}
	return nil
}

// Identity returns the authenticated identity, if any.
func (s *Store) Identity() (domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

// Token returns the bearer token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

// IsAuthenticated reports whether both identity and token are present in
// memory. It never consults persisted storage.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil && s.token != ""
}

// HasRole reports whether the session is authenticated and its role is one
// of roles. Unauthenticated sessions hold no role.
func (s *Store) HasRole(roles ...domain.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil || s.token == "" {
		return false
	}
	for _, r := range roles {
		if s.identity.Role == r {
			return true
		}
	}
	return false
}
