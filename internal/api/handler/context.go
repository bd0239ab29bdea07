package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelchain/booking-portal/internal/api/middleware"
	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// sessionIdentity extracts the authenticated identity from the session
// resolved by the Session middleware. Handlers behind the Guard should not
// hit the error paths; they exist for misordered middleware.
func sessionIdentity(c echo.Context) (domain.Identity, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "session not resolved")
	}
	identity, ok := sess.Identity()
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return identity, nil
}

// pathID reads a numeric-or-string identifier from the route parameter.
func pathID(c echo.Context, name string) (domain.ID, error) {
	raw := c.Param(name)
	if raw == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing "+name)
	}
	return domain.ID(raw), nil
}
