package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/ports"
)

type stubSessionRepo struct {
	records map[string]ports.SessionRecord
	saveErr error
	loadErr error
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{records: make(map[string]ports.SessionRecord)}
}

func (r *stubSessionRepo) Load(_ context.Context, id string) (ports.SessionRecord, error) {
	if r.loadErr != nil {
		return ports.SessionRecord{}, r.loadErr
	}
	rec, ok := r.records[id]
	if !ok {
		return ports.SessionRecord{}, ports.ErrSessionNotFound
	}
	return rec, nil
}

func (r *stubSessionRepo) Save(_ context.Context, id string, rec ports.SessionRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records[id] = rec
	return nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.records, id)
	return nil
}

func testIdentity() domain.Identity {
	return domain.Identity{ID: "7", Username: "client", Role: domain.RoleClient}
}

func TestStore_UnauthenticatedUntilRestore(t *testing.T) {
	st := NewStore("s1", newStubSessionRepo(), zerolog.Nop())

	if !st.Loading() {
		t.Fatalf("expected loading before restore")
	}
	if st.IsAuthenticated() {
		t.Fatalf("expected unauthenticated before restore")
	}

	st.Restore(context.Background())

	if st.Loading() {
		t.Fatalf("expected loading false after restore")
	}
	if st.IsAuthenticated() {
		t.Fatalf("expected unauthenticated with empty storage")
	}
}

func TestStore_SetAuthenticatedRoundTrip(t *testing.T) {
	repo := newStubSessionRepo()
	st := NewStore("s1", repo, zerolog.Nop())
	st.Restore(context.Background())

	if err := st.SetAuthenticated(context.Background(), testIdentity(), "tok-1"); err != nil {
		t.Fatalf("SetAuthenticated: %v", err)
	}
	if !st.IsAuthenticated() {
		t.Fatalf("expected authenticated after SetAuthenticated")
	}

	// Fresh store over the same repo simulates a reload.
	reloaded := NewStore("s1", repo, zerolog.Nop())
	reloaded.Restore(context.Background())

	if !reloaded.IsAuthenticated() {
		t.Fatalf("expected authenticated after restore")
	}
	identity, ok := reloaded.Identity()
	if !ok || identity.ID != "7" || identity.Username != "client" {
		t.Fatalf("unexpected restored identity: %+v", identity)
	}
	tok, ok := reloaded.Token()
	if !ok || tok != "tok-1" {
		t.Fatalf("unexpected restored token: %q", tok)
	}
}

func TestStore_SetAuthenticatedPersistFailureLeavesMemoryUntouched(t *testing.T) {
	repo := newStubSessionRepo()
	repo.saveErr = errors.New("backend down")
	st := NewStore("s1", repo, zerolog.Nop())
	st.Restore(context.Background())

	if err := st.SetAuthenticated(context.Background(), testIdentity(), "tok-1"); err == nil {
		t.Fatalf("expected error from SetAuthenticated")
	}
	if st.IsAuthenticated() {
		t.Fatalf("memory updated despite persist failure")
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	repo := newStubSessionRepo()
	st := NewStore("s1", repo, zerolog.Nop())
	st.Restore(context.Background())
	_ = st.SetAuthenticated(context.Background(), testIdentity(), "tok-1")

	for i := 0; i < 2; i++ {
		if err := st.Clear(context.Background()); err != nil {
			t.Fatalf("Clear #%d: %v", i+1, err)
		}
		if st.IsAuthenticated() {
			t.Fatalf("expected unauthenticated after Clear #%d", i+1)
		}
	}
	if len(repo.records) != 0 {
		t.Fatalf("expected persisted record removed")
	}
}

func TestStore_RestoreCorruptedIdentitySelfHeals(t *testing.T) {
	repo := newStubSessionRepo()
	repo.records["s1"] = ports.SessionRecord{Token: "tok-1", Identity: []byte("{not json")}

	st := NewStore("s1", repo, zerolog.Nop())
	st.Restore(context.Background())

	if st.IsAuthenticated() {
		t.Fatalf("expected unauthenticated with corrupted identity")
	}
	if _, ok := repo.records["s1"]; ok {
		t.Fatalf("expected corrupted record deleted")
	}
	if st.Loading() {
		t.Fatalf("expected restore to complete despite corruption")
	}
}

func TestStore_RestoreHalfWrittenRecordIsCorruption(t *testing.T) {
	raw, _ := json.Marshal(testIdentity())

	cases := map[string]ports.SessionRecord{
		"missing token":    {Identity: raw},
		"missing identity": {Token: "tok-1"},
		"identity no id":   {Token: "tok-1", Identity: []byte(`{"username":"x"}`)},
	}
	for name, rec := range cases {
		repo := newStubSessionRepo()
		repo.records["s1"] = rec

		st := NewStore("s1", repo, zerolog.Nop())
		st.Restore(context.Background())

		if st.IsAuthenticated() {
			t.Errorf("%s: expected unauthenticated", name)
		}
		if _, ok := repo.records["s1"]; ok {
			t.Errorf("%s: expected record cleared", name)
		}
	}
}

func TestStore_RestoreRunsOnce(t *testing.T) {
	repo := newStubSessionRepo()
	st := NewStore("s1", repo, zerolog.Nop())
	st.Restore(context.Background())

	// A record written after the first restore must not be picked up by a
	// second Restore call; persisted storage is read once.
	raw, _ := json.Marshal(testIdentity())
	repo.records["s1"] = ports.SessionRecord{Token: "tok-1", Identity: raw}
	st.Restore(context.Background())

	if st.IsAuthenticated() {
		t.Fatalf("second Restore re-read persisted storage")
	}
}

func TestStore_HasRole(t *testing.T) {
	repo := newStubSessionRepo()
	st := NewStore("s1", repo, zerolog.Nop())
	st.Restore(context.Background())

	if st.HasRole(domain.RoleClient) {
		t.Fatalf("unauthenticated session must hold no role")
	}

	_ = st.SetAuthenticated(context.Background(), testIdentity(), "tok-1")

	if !st.HasRole(domain.RoleClient) {
		t.Fatalf("expected CLIENT role")
	}
	if st.HasRole(domain.RoleAdministrator) {
		t.Fatalf("did not expect ADMINISTRATOR role")
	}
	if !st.HasRole(domain.RoleManager, domain.RoleClient) {
		t.Fatalf("expected membership in multi-role set")
	}
}

func TestManager_CookieRoundTrip(t *testing.T) {
	m := NewManager(newStubSessionRepo(), "cookie-secret", time.Hour, zerolog.Nop())

	sid := m.NewSessionID()
	value, err := m.SignCookie(sid)
	if err != nil {
		t.Fatalf("SignCookie: %v", err)
	}

	parsed, err := m.ParseCookie(value)
	if err != nil {
		t.Fatalf("ParseCookie: %v", err)
	}
	if parsed != sid {
		t.Fatalf("expected %q, got %q", sid, parsed)
	}
}

func TestManager_ParseCookieRejectsTampering(t *testing.T) {
	m := NewManager(newStubSessionRepo(), "cookie-secret", time.Hour, zerolog.Nop())
	other := NewManager(newStubSessionRepo(), "other-secret", time.Hour, zerolog.Nop())

	value, _ := other.SignCookie(other.NewSessionID())
	if _, err := m.ParseCookie(value); err == nil {
		t.Fatalf("expected rejection of foreign signature")
	}
	if _, err := m.ParseCookie("garbage"); err == nil {
		t.Fatalf("expected rejection of garbage cookie")
	}
}

func TestManager_StoreIsCachedPerSession(t *testing.T) {
	m := NewManager(newStubSessionRepo(), "cookie-secret", time.Hour, zerolog.Nop())

	a := m.Store("s1")
	b := m.Store("s1")
	if a != b {
		t.Fatalf("expected the same store instance per session ID")
	}
	if m.Store("s2") == a {
		t.Fatalf("expected distinct stores per session ID")
	}
}

func TestManager_ClearEvictsCachedStore(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newStubSessionRepo(), "cookie-secret", time.Hour, zerolog.Nop())

	st := m.Store("s1")
	st.Restore(ctx)
	if err := st.SetAuthenticated(ctx, domain.Identity{ID: "7", Username: "alice", Role: domain.RoleClient}, "tok"); err != nil {
		t.Fatalf("SetAuthenticated: %v", err)
	}

	if err := st.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if m.Store("s1") == st {
		t.Fatalf("expected a fresh store after clear, got the cleared instance")
	}
}

func TestManager_PrunesIdleStores(t *testing.T) {
	m := NewManager(newStubSessionRepo(), "cookie-secret", time.Hour, zerolog.Nop())

	active := m.Store("active")
	idle := m.Store("idle")

	// Nothing is idle past the ttl yet; both entries survive.
	m.removeExpired(time.Now())
	if m.Store("active") != active || m.Store("idle") != idle {
		t.Fatalf("expected both stores to survive an early sweep")
	}

	m.removeExpired(time.Now().Add(2 * time.Hour))
	if m.Store("idle") == idle {
		t.Fatalf("expected the idle store to be pruned after the ttl")
	}
}

func TestManager_ClearOnPrunedStoreKeepsReplacement(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newStubSessionRepo(), "cookie-secret", time.Hour, zerolog.Nop())

	old := m.Store("s1")
	m.removeExpired(time.Now().Add(2 * time.Hour))
	replacement := m.Store("s1")

	if err := old.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if m.Store("s1") != replacement {
		t.Fatalf("a clear on a pruned store must not evict its replacement")
	}
}
