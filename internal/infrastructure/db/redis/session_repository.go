package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hotelchain/booking-portal/internal/core/ports"
)

// SessionRepository persists session records as Redis hashes.
// Key format: session:<session_id>, fields: token, identity.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a SessionRepository wrapping the given Redis
// client. Records expire after ttl.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Load(ctx context.Context, sessionID string) (ports.SessionRecord, error) {
	vals, err := r.client.HGetAll(ctx, r.key(sessionID)).Result()
	if err != nil {
		return ports.SessionRecord{}, fmt.Errorf("session load: %w", err)
	}
	if len(vals) == 0 {
		return ports.SessionRecord{}, ports.ErrSessionNotFound
	}
	return ports.SessionRecord{
		Token:    vals["token"],
		Identity: []byte(vals["identity"]),
	}, nil
}

// Save writes token and identity in a single HSET so a reader can never
// observe one without the other.
func (r *SessionRepository) Save(ctx context.Context, sessionID string, rec ports.SessionRecord) error {
	key := r.key(sessionID)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, "token", rec.Token, "identity", string(rec.Identity))
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (r *SessionRepository) key(sessionID string) string {
	return "session:" + sessionID
}
