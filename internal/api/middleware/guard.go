package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelchain/booking-portal/internal/api/metrics"
	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/policy"
	"github.com/hotelchain/booking-portal/internal/core/session"
)

// GuardState is the outcome of one navigation check.
type GuardState int

const (
	// StateLoading means session restoration has not completed; no access
	// decision can be made yet.
	StateLoading GuardState = iota
	StateAllowed
	StateDenied
)

// DenialKind distinguishes the two ways a check can be denied.
type DenialKind int

const (
	DenyNone DenialKind = iota
	// DenyUnauthenticated redirects to the login entry point, preserving
	// the originally requested path.
	DenyUnauthenticated
	// DenyForbidden names the required roles and the caller's actual role;
	// no redirect.
	DenyForbidden
)

// Decision is the full result of evaluating a protected navigation attempt.
type Decision struct {
	State      GuardState
	Kind       DenialKind
	RedirectTo string
	From       string
	Required   []domain.Role
	Actual     domain.Role
}

// Evaluate decides access for a navigation to path. It is pure: no redirect
// or response is produced here. A nil or still-loading session yields
// StateLoading; the middleware drives restoration before calling it.
func Evaluate(sess *session.Store, path string, required ...domain.Role) Decision {
	if sess == nil || sess.Loading() {
		return Decision{State: StateLoading}
	}

	if !sess.IsAuthenticated() {
		return Decision{
			State:      StateDenied,
			Kind:       DenyUnauthenticated,
			RedirectTo: "/login",
			From:       path,
		}
	}

	if len(required) > 0 && !sess.HasRole(required...) {
		var actual domain.Role
		if identity, ok := sess.Identity(); ok {
			actual = identity.Role
		}
		return Decision{
			State:    StateDenied,
			Kind:     DenyForbidden,
			Required: required,
			Actual:   actual,
		}
	}

	return Decision{State: StateAllowed}
}

// Guard protects a route: authentication is always required, and when roles
// are given the session's role must be among them. Relies on the Session
// middleware having resolved and restored the store.
func Guard(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if sess != nil {
				sess.Restore(c.Request().Context())
			}

			decision := Evaluate(sess, c.Request().URL.Path, required...)
			switch decision.State {
			case StateAllowed:
				return next(c)
			case StateLoading:
				// Restoration is synchronous; reaching here means the
				// Session middleware did not run.
				return echo.NewHTTPError(http.StatusInternalServerError, "session not resolved")
			}

			switch decision.Kind {
			case DenyUnauthenticated:
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":    "authentication required",
					"redirect": decision.RedirectTo,
					"from":     decision.From,
				})
			default:
				metrics.GuardDenialsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, map[string]any{
					"error":         "access denied",
					"requiredRoles": decision.Required,
					"yourRole":      decision.Actual,
				})
			}
		}
	}
}

// RequireCapability protects a route by capability, deriving the allowed
// role set from the policy table.
func RequireCapability(cap policy.Capability) echo.MiddlewareFunc {
	return Guard(policy.RolesWith(cap)...)
}
