package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hotelchain/booking-portal/internal/core/ports"
)

// ErrInvalidCookie means the session cookie did not carry a verifiable
// session ID; the caller should mint a fresh session.
var ErrInvalidCookie = errors.New("invalid session cookie")

const defaultCookieTTL = 24 * time.Hour

// Manager mints session IDs, signs them into cookie values, and hands out
// one Store per session so persisted storage is read once per session
// lifetime regardless of how many requests arrive. Cached stores are
// dropped when the session is cleared and pruned once idle past the ttl,
// so the cache tracks the lifetime of the persisted records.
type Manager struct {
	repo   ports.SessionRepository
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger

	mu     sync.Mutex
	stores map[string]*storeEntry
}

type storeEntry struct {
	store    *Store
	lastSeen time.Time
}

// NewManager builds a Manager. ttl bounds the signed cookie lifetime and
// the idle lifetime of cached stores; when non-positive a day is used.
func NewManager(repo ports.SessionRepository, secret string, ttl time.Duration, log zerolog.Logger) *Manager {
	if ttl <= 0 {
		ttl = defaultCookieTTL
	}
	return &Manager{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
		stores: make(map[string]*storeEntry),
	}
}

// NewSessionID mints a fresh opaque session identifier.
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Store returns the Store for sessionID, creating it on first use. Each
// call refreshes the entry's idle clock; an entry idle past the ttl is
// discarded and rebuilt, re-reading persisted state, so a cached store can
// never outlive the record backing it.
func (m *Manager) Store(sessionID string) *Store {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.stores[sessionID]; ok {
		if now.Sub(entry.lastSeen) <= m.ttl {
			entry.lastSeen = now
			return entry.store
		}
		delete(m.stores, sessionID)
	}

	st := NewStore(sessionID, m.repo, m.log)
	st.onClear = func() { m.evict(sessionID, st) }
	m.stores[sessionID] = &storeEntry{store: st, lastSeen: now}
	return st
}

// Start launches the janitor that prunes idle stores. It stops when ctx is
// cancelled.
func (m *Manager) Start(ctx context.Context) {
	interval := m.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.removeExpired(time.Now())
			}
		}
	}()
}

// removeExpired drops every cached store idle past the ttl as of now.
func (m *Manager) removeExpired(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sid, entry := range m.stores {
		if now.Sub(entry.lastSeen) > m.ttl {
			delete(m.stores, sid)
		}
	}
}

// evict drops the cache entry for a cleared store. The entry is only
// removed when it still points at the clearing store, so a Clear on an
// already-pruned instance cannot discard its replacement.
func (m *Manager) evict(sessionID string, st *Store) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.stores[sessionID]; ok && entry.store == st {
		delete(m.stores, sessionID)
	}
}

// SignCookie wraps a session ID into a signed HS256 token suitable for a
// cookie value.
func (m *Manager) SignCookie(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// ParseCookie verifies a cookie value and extracts the session ID.
func (m *Manager) ParseCookie(value string) (string, error) {
	claims := jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(value, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidCookie
	}
	return claims.Subject, nil
}

// CookieTTL returns the configured cookie lifetime.
func (m *Manager) CookieTTL() time.Duration { return m.ttl }
