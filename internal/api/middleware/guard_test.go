package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/policy"
	"github.com/hotelchain/booking-portal/internal/core/ports"
	"github.com/hotelchain/booking-portal/internal/core/session"
)

type memSessionRepo struct {
	records map[string]ports.SessionRecord
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{records: make(map[string]ports.SessionRecord)}
}

func (r *memSessionRepo) Load(_ context.Context, id string) (ports.SessionRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return ports.SessionRecord{}, ports.ErrSessionNotFound
	}
	return rec, nil
}

func (r *memSessionRepo) Save(_ context.Context, id string, rec ports.SessionRecord) error {
	r.records[id] = rec
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.records, id)
	return nil
}

func restoredStore(t *testing.T, identity *domain.Identity) *session.Store {
	t.Helper()
	st := session.NewStore("s1", newMemSessionRepo(), zerolog.Nop())
	st.Restore(context.Background())
	if identity != nil {
		if err := st.SetAuthenticated(context.Background(), *identity, "tok"); err != nil {
			t.Fatalf("SetAuthenticated: %v", err)
		}
	}
	return st
}

func newGuardContext(t *testing.T, path string, st *session.Store) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if st != nil {
		c.Set(sessionContextKey, st)
	}
	return c, rec
}

func TestEvaluate_LoadingBeforeRestore(t *testing.T) {
	st := session.NewStore("s1", newMemSessionRepo(), zerolog.Nop())

	d := Evaluate(st, "/dashboard")
	if d.State != StateLoading {
		t.Fatalf("expected StateLoading before restore, got %v", d.State)
	}
	if d := Evaluate(nil, "/dashboard"); d.State != StateLoading {
		t.Fatalf("expected StateLoading for nil session, got %v", d.State)
	}
}

func TestEvaluate_UnauthenticatedRedirectsToLogin(t *testing.T) {
	st := restoredStore(t, nil)

	d := Evaluate(st, "/bookings")
	if d.State != StateDenied || d.Kind != DenyUnauthenticated {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if d.RedirectTo != "/login" || d.From != "/bookings" {
		t.Fatalf("expected login redirect preserving path, got %+v", d)
	}
}

func TestEvaluate_WrongRoleIsForbiddenNotRedirect(t *testing.T) {
	employee := &domain.Identity{ID: "3", Username: "emp", Role: domain.RoleEmployee}
	st := restoredStore(t, employee)

	d := Evaluate(st, "/statistics", domain.RoleManager, domain.RoleAdministrator)
	if d.State != StateDenied || d.Kind != DenyForbidden {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if d.RedirectTo != "" {
		t.Fatalf("forbidden must not redirect, got %q", d.RedirectTo)
	}
	if d.Actual != domain.RoleEmployee || len(d.Required) != 2 {
		t.Fatalf("expected required and actual roles named, got %+v", d)
	}
}

func TestEvaluate_Allowed(t *testing.T) {
	manager := &domain.Identity{ID: "4", Username: "mgr", Role: domain.RoleManager}
	st := restoredStore(t, manager)

	if d := Evaluate(st, "/dashboard", domain.RoleEmployee, domain.RoleManager, domain.RoleAdministrator); d.State != StateAllowed {
		t.Fatalf("unexpected decision: %+v", d)
	}
	// No role requirement: any authenticated session passes.
	if d := Evaluate(st, "/bookings"); d.State != StateAllowed {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestGuard_UnauthenticatedResponse(t *testing.T) {
	c, rec := newGuardContext(t, "/bookings", restoredStore(t, nil))

	handler := Guard()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["redirect"] != "/login" || body["from"] != "/bookings" {
		t.Fatalf("unexpected denial body: %v", body)
	}
}

func TestGuard_ForbiddenNamesRoles(t *testing.T) {
	employee := &domain.Identity{ID: "3", Username: "emp", Role: domain.RoleEmployee}
	c, rec := newGuardContext(t, "/statistics", restoredStore(t, employee))

	handler := Guard(domain.RoleManager, domain.RoleAdministrator)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var body struct {
		RequiredRoles []string `json:"requiredRoles"`
		YourRole      string   `json:"yourRole"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.YourRole != "EMPLOYEE" || len(body.RequiredRoles) != 2 {
		t.Fatalf("unexpected denial body: %+v", body)
	}
}

func TestGuard_AllowsAndCallsNext(t *testing.T) {
	admin := &domain.Identity{ID: "1", Username: "root", Role: domain.RoleAdministrator}
	c, rec := newGuardContext(t, "/users", restoredStore(t, admin))

	called := false
	handler := RequireCapability(policy.CapManageUsers)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, called=%v code=%d", called, rec.Code)
	}
}

func TestSessionMiddleware_MintsCookieAndRestores(t *testing.T) {
	mgr := session.NewManager(newMemSessionRepo(), "secret", time.Hour, zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *session.Store
	handler := Session(mgr)(func(c echo.Context) error {
		seen = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if seen == nil {
		t.Fatalf("expected session in context")
	}
	if seen.Loading() {
		t.Fatalf("expected session restored by middleware")
	}

	found := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName && ck.Value != "" && ck.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a session cookie to be set")
	}
}

func TestSessionMiddleware_ReusesSessionFromCookie(t *testing.T) {
	repo := newMemSessionRepo()
	mgr := session.NewManager(repo, "secret", time.Hour, zerolog.Nop())
	e := echo.New()

	sid := mgr.NewSessionID()
	value, err := mgr.SignCookie(sid)
	if err != nil {
		t.Fatalf("SignCookie: %v", err)
	}

	identity := domain.Identity{ID: "7", Username: "client", Role: domain.RoleClient}
	if err := mgr.Store(sid).SetAuthenticated(context.Background(), identity, "tok-7"); err != nil {
		t.Fatalf("SetAuthenticated: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(mgr)(func(c echo.Context) error {
		st := SessionFrom(c)
		if st.ID() != sid {
			t.Fatalf("expected session %s, got %s", sid, st.ID())
		}
		if !st.IsAuthenticated() {
			t.Fatalf("expected authenticated session from cookie")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
