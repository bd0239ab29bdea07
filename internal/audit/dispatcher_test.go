package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

type memAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	block   chan struct{}
}

func (r *memAuditRepo) Insert(_ context.Context, entry domain.AuditEntry) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memAuditRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestDispatcher_PersistsEntries(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Record(domain.AuditEntry{SessionID: "s1", Method: "GET", Endpoint: "/rooms"})
	}

	waitFor(t, func() bool { return repo.len() == 10 })
}

func TestDispatcher_SameSessionSameWorker(t *testing.T) {
	d := NewDispatcher(8, &memAuditRepo{}, zerolog.Nop())

	first := d.shardIndex("session-abc")
	for i := 0; i < 50; i++ {
		if d.shardIndex("session-abc") != first {
			t.Fatal("shard index must be deterministic per session")
		}
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	repo := &memAuditRepo{block: make(chan struct{})}
	d := NewDispatcher(1, repo, zerolog.Nop())
	// Workers never started, so the channel can only drain into its buffer.

	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.AuditEntry{SessionID: "s1"})
	}
	// Reaching here without blocking is the assertion: Record must not wait
	// on a full queue.
	if got := len(d.workers[d.shardIndex("s1")]); got != channelBuffer {
		t.Fatalf("expected a full channel of %d, got %d", channelBuffer, got)
	}
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.AuditEntry{SessionID: "s1"})
	waitFor(t, func() bool { return repo.len() == 1 })

	cancel()
	// Workers observe cancellation; entries recorded afterwards stay queued.
	time.Sleep(20 * time.Millisecond)
	d.Record(domain.AuditEntry{SessionID: "s1"})
	time.Sleep(20 * time.Millisecond)
	if repo.len() != 1 {
		t.Fatalf("expected no further inserts after cancel, got %d", repo.len())
	}
}
