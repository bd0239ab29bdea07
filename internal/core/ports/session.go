package ports

import (
	"context"
	"errors"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// ErrSessionNotFound is returned by SessionRepository.Load when no record
// exists for the session.
var ErrSessionNotFound = errors.New("session not found")

// SessionRecord is the persisted authentication state for one session: the
// bearer token and the serialized identity. Identity is kept as raw JSON so
// the store, not the repository, decides what an unparsable record means.
type SessionRecord struct {
	Token    string `bson:"token"`
	Identity []byte `bson:"identity"`
}

// SessionRepository persists session records. Save must write token and
// identity together; a record with only one of the two must never be
// observable by Load.
type SessionRepository interface {
	Load(ctx context.Context, sessionID string) (SessionRecord, error)
	Save(ctx context.Context, sessionID string, rec SessionRecord) error
	Delete(ctx context.Context, sessionID string) error
}

// Session is the mutable view of one visitor's authentication state, as the
// auth operations and the HTTP boundary need it. Implemented by
// session.Store.
type Session interface {
	ID() string
	Identity() (domain.Identity, bool)
	Token() (string, bool)
	IsAuthenticated() bool
	HasRole(roles ...domain.Role) bool
	SetAuthenticated(ctx context.Context, identity domain.Identity, token string) error
	Clear(ctx context.Context) error
}
