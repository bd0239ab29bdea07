package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// envelope mirrors the known wrapper shapes the gateway emits around its
// payloads. The services behind the gateway do not agree on an envelope, so
// every field here is optional.
type envelope struct {
	User    json.RawMessage `json:"user"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// unwrap extracts the logical payload from a successful gateway body and the
// envelope fields that accompany it. The payload is selected by trying, in
// order: a "user" field, a "data" field, the body itself. A selected payload
// that is absent or JSON null is ErrMalformedResponse — callers must be able
// to tell "no rows" (an empty array) from a missing body.
func unwrap(body []byte) (json.RawMessage, envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || isNull(trimmed) {
		return nil, envelope{}, fmt.Errorf("%w: empty body", domain.ErrMalformedResponse)
	}

	// Arrays and primitives cannot carry an envelope; they are the payload.
	if trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return nil, envelope{}, fmt.Errorf("%w: invalid json", domain.ErrMalformedResponse)
		}
		return trimmed, envelope{}, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, envelope{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	switch {
	case len(env.User) > 0:
		if isNull(env.User) {
			return nil, env, fmt.Errorf("%w: null user payload", domain.ErrMalformedResponse)
		}
		return env.User, env, nil
	case len(env.Data) > 0:
		if isNull(env.Data) {
			return nil, env, fmt.Errorf("%w: null data payload", domain.ErrMalformedResponse)
		}
		return env.Data, env, nil
	default:
		return trimmed, env, nil
	}
}

// Unwrap is the payload-only form of the envelope normalization.
func Unwrap(body []byte) (json.RawMessage, error) {
	payload, _, err := unwrap(body)
	return payload, err
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
