package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const inflightTTL = 30 * time.Second

// InFlightGuard provides per-session single-flight locks backed by Redis.
// Key format: inflight:<session_id>:<action>
type InFlightGuard struct {
	client *redis.Client
}

// NewInFlightGuard creates an InFlightGuard wrapping the given Redis client.
func NewInFlightGuard(client *redis.Client) *InFlightGuard {
	return &InFlightGuard{client: client}
}

// Begin attempts to claim the action for the session. It reports false when
// the same action is already outstanding. The claim expires after
// inflightTTL so a crashed request cannot wedge the session.
func (g *InFlightGuard) Begin(ctx context.Context, sessionID, action string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(sessionID, action), "1", inflightTTL).Result()
	if err != nil {
		return false, fmt.Errorf("inflight begin: %w", err)
	}
	return ok, nil
}

// End releases the claim taken by Begin.
func (g *InFlightGuard) End(ctx context.Context, sessionID, action string) error {
	if err := g.client.Del(ctx, g.key(sessionID, action)).Err(); err != nil {
		return fmt.Errorf("inflight end: %w", err)
	}
	return nil
}

func (g *InFlightGuard) key(sessionID, action string) string {
	return fmt.Sprintf("inflight:%s:%s", sessionID, action)
}
