package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hotelchain/booking-portal/internal/core/domain"
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

func authenticatedStore(t *testing.T, repo *memSessionRepo) *session.Store {
	t.Helper()
	st := session.NewStore("s1", repo, zerolog.Nop())
	st.Restore(context.Background())
	identity := domain.Identity{ID: "7", Username: "alice", Role: domain.RoleClient}
	if err := st.SetAuthenticated(context.Background(), identity, "tok"); err != nil {
		t.Fatalf("SetAuthenticated: %v", err)
	}
	return st
}

func newErrorContext(st *session.Store) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if st != nil {
		c.Set("session", st)
	}
	return c, rec
}

func TestErrorHandler_Upstream401ClearsSession(t *testing.T) {
	repo := newMemSessionRepo()
	st := authenticatedStore(t, repo)
	c, rec := newErrorContext(st)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrUnauthorized, c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if st.IsAuthenticated() {
		t.Fatal("expected session cleared after upstream 401")
	}
	if len(repo.records) != 0 {
		t.Fatal("expected persisted record removed after upstream 401")
	}

	var resp struct {
		Error    string `json:"error"`
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Redirect != "/login" {
		t.Fatalf("expected redirect to /login, got %q", resp.Redirect)
	}
}

func TestErrorHandler_InvalidCredentialsKeepsSession(t *testing.T) {
	st := authenticatedStore(t, newMemSessionRepo())
	c, rec := newErrorContext(st)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrInvalidCredentials, c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !st.IsAuthenticated() {
		t.Fatal("a credential rejection must not clear an existing session")
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["redirect"] != "" {
		t.Fatalf("expected no redirect for a credential rejection, got %q", resp["redirect"])
	}
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrLoginInFlight, http.StatusConflict},
		{domain.ErrGatewayUnreachable, http.StatusBadGateway},
		{domain.ErrMalformedResponse, http.StatusBadGateway},
		{domain.ErrGatewayFailure, http.StatusBadGateway},
		{domain.ErrValidationFailed, http.StatusBadRequest},
		{&domain.ValidationError{Fields: map[string]string{"email": "invalid"}}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		c, rec := newErrorContext(nil)
		NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	c, rec := newErrorContext(nil)
	NewHTTPErrorHandler(zerolog.Nop())(context.DeadlineExceeded, c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "internal server error" {
		t.Fatalf("internal cause must not leak, got %q", resp["error"])
	}
}
