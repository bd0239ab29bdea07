package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes the portal distinguishes. Gateway
// responses and session state collapse onto these so the HTTP layer can map
// them deterministically.
var (
	// ErrGatewayUnreachable means no response was received from the upstream
	// gateway (connection refused, timeout, DNS). Never mutates the session.
	ErrGatewayUnreachable = errors.New("gateway unreachable")

	// ErrUnauthorized is any upstream 401 outside the login exchange. The
	// boundary reacts by clearing the session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is a failed login: upstream rejected the
	// credentials, or the login response carried no usable identity.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrValidationFailed is an upstream 400. Wrap with ValidationError to
	// carry server-provided field messages.
	ErrValidationFailed = errors.New("invalid input")

	// ErrConflict is an upstream 409 (duplicate username or email).
	ErrConflict = errors.New("username or email already exists")

	ErrForbidden = errors.New("access forbidden")
	ErrNotFound  = errors.New("resource not found")

	// ErrMalformedResponse means the gateway answered 2xx but the body did
	// not contain a usable payload in any known envelope shape.
	ErrMalformedResponse = errors.New("malformed gateway response")

	// ErrGatewayFailure is any other non-2xx upstream status.
	ErrGatewayFailure = errors.New("gateway request failed")

	// ErrLoginInFlight rejects a duplicate auth submit while an identical
	// one is still outstanding for the same session.
	ErrLoginInFlight = errors.New("authentication already in progress")
)

// ValidationError carries per-field messages returned by the gateway on a
// 400. Unwraps to ErrValidationFailed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }
