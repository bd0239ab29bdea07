package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/hotelchain/booking-portal/internal/api/middleware"
	"github.com/hotelchain/booking-portal/internal/core/ports"
	"github.com/hotelchain/booking-portal/internal/core/session"
	"github.com/hotelchain/booking-portal/internal/gateway"
	"github.com/hotelchain/booking-portal/pkg/logger"
)

func newTestRouter(t *testing.T, upstreamURL string, repo ports.SessionRepository) (*echo.Echo, *session.Manager) {
	t.Helper()
	logger.Reset()
	logger.Init(logger.Options{Level: "error", Output: io.Discard})

	mgr := session.NewManager(repo, "router-secret", time.Hour, zerolog.Nop())
	e := NewRouter(Dependencies{
		Gateway:  gateway.NewClient(upstreamURL, time.Second, zerolog.Nop()),
		Sessions: mgr,
		Registry: prometheus.NewRegistry(),
	})
	return e, mgr
}

func adminCookie(t *testing.T, mgr *session.Manager, repo *memSessionRepo) *http.Cookie {
	t.Helper()
	identity := []byte(`{"id":"1","username":"root","userType":"ADMINISTRATOR"}`)
	repo.records["s-admin"] = ports.SessionRecord{Token: "tok", Identity: identity}
	value, err := mgr.SignCookie("s-admin")
	if err != nil {
		t.Fatalf("SignCookie: %v", err)
	}
	return &http.Cookie{Name: middleware.CookieName, Value: value}
}

func TestRouter_AvailabilityRouteCarriesRoomID(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings/availability/5" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"roomId":5,"available":true}}`))
	}))
	defer upstream.Close()

	e, _ := newTestRouter(t, upstream.URL, newMemSessionRepo())

	req := httptest.NewRequest(http.MethodGet, "/bookings/availability/5?checkInDate=2026-09-01&checkOutDate=2026-09-03", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Available bool `json:"available"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Available {
		t.Fatal("expected availability payload to pass through")
	}
}

func TestRouter_UsersByTypeReachesUpstream(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer upstream.Close()

	repo := newMemSessionRepo()
	e, mgr := newTestRouter(t, upstream.URL, repo)

	req := httptest.NewRequest(http.MethodGet, "/users/type/CLIENT", nil)
	req.AddCookie(adminCookie(t, mgr, repo))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotPath != "/users/type/CLIENT" {
		t.Fatalf("expected the role to reach the upstream path, got %q", gotPath)
	}
}

func TestRouter_UsersByTypeRejectsUnknownRole(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("upstream must not be called for an unknown role")
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	repo := newMemSessionRepo()
	e, mgr := newTestRouter(t, upstream.URL, repo)

	req := httptest.NewRequest(http.MethodGet, "/users/type/SUPERUSER", nil)
	req.AddCookie(adminCookie(t, mgr, repo))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
