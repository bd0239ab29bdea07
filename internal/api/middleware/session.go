package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelchain/booking-portal/internal/core/session"
	"github.com/hotelchain/booking-portal/internal/gateway"
)

// CookieName is the portal session cookie. Its value is a signed token
// carrying only the opaque session ID; authentication state lives server
// side.
const CookieName = "portal_session"

const sessionContextKey = "session"

// Session resolves the visitor's session store from the signed cookie,
// minting a fresh session when the cookie is absent or unverifiable, and
// restores it. Restoration is a no-op after the first request of a session,
// so persisted storage is read once per session lifetime.
//
// When the session is authenticated the request context is stamped with the
// bearer token for upstream gateway calls.
func Session(mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if cookie, err := c.Cookie(CookieName); err == nil {
				sid, _ = mgr.ParseCookie(cookie.Value)
			}
			if sid == "" {
				sid = mgr.NewSessionID()
				value, err := mgr.SignCookie(sid)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to establish session")
				}
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    value,
					Path:     "/",
					MaxAge:   int(mgr.CookieTTL().Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			st := mgr.Store(sid)
			st.Restore(c.Request().Context())
			c.Set(sessionContextKey, st)

			if tok, ok := st.Token(); ok {
				ctx := gateway.WithToken(c.Request().Context(), tok)
				c.SetRequest(c.Request().WithContext(ctx))
			}

			return next(c)
		}
	}
}

// SessionFrom returns the session store placed in the echo context by the
// Session middleware, or nil when the middleware did not run.
func SessionFrom(c echo.Context) *session.Store {
	st, _ := c.Get(sessionContextKey).(*session.Store)
	return st
}
