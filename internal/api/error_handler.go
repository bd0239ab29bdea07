package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hotelchain/booking-portal/internal/api/middleware"
	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error    string            `json:"error"`
	Redirect string            `json:"redirect,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the portal error taxonomy to deterministic HTTP status codes.
//   - Clears the session on any upstream 401, whichever endpoint produced
//     it, and tells the client to go back through login.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthorized) {
			// Upstream says the bearer token is no longer good; client
			// state must follow server truth.
			if sess := middleware.SessionFrom(c); sess != nil {
				if cerr := sess.Clear(c.Request().Context()); cerr != nil {
					log.Warn().Err(cerr).Str("session_id", sess.ID()).Msg("failed to clear session after upstream 401")
				}
			}
			_ = c.JSON(http.StatusUnauthorized, errorResponse{
				Error:    "session expired",
				Redirect: "/login",
			})
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: "invalid input", Fields: ve.Fields}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid username or password"}
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, errorResponse{Error: "username or email already exists"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "resource not found"}
	case errors.Is(err, domain.ErrLoginInFlight):
		return http.StatusConflict, errorResponse{Error: "authentication already in progress"}
	case errors.Is(err, domain.ErrGatewayUnreachable):
		return http.StatusBadGateway, errorResponse{Error: "service temporarily unavailable, please retry"}
	case errors.Is(err, domain.ErrMalformedResponse):
		log.Error().Err(err).Str("path", c.Path()).Msg("gateway returned an unusable response")
		return http.StatusBadGateway, errorResponse{Error: "unexpected gateway response"}
	case errors.Is(err, domain.ErrGatewayFailure):
		return http.StatusBadGateway, errorResponse{Error: "gateway request failed"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
