package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/ports"
)

// AuthClient exposes the authentication endpoints of the gateway.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

// Login exchanges credentials at POST /auth/login. The identity is unwrapped
// from whichever envelope the gateway used; the token is whatever top-level
// token field accompanied it (possibly empty — the auth service decides what
// that means). An upstream 401 here is a credential rejection, not a session
// expiry.
func (a *AuthClient) Login(ctx context.Context, creds ports.Credentials) (ports.LoginResult, error) {
	body := map[string]string{
		"username": creds.Username,
		"password": creds.Password,
	}

	raw, err := a.c.do(ctx, "auth.login", http.MethodPost, "/auth/login", nil, body)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return ports.LoginResult{}, domain.ErrInvalidCredentials
		}
		return ports.LoginResult{}, err
	}

	payload, env, err := unwrap(raw)
	if err != nil {
		return ports.LoginResult{}, err
	}

	var identity domain.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return ports.LoginResult{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	return ports.LoginResult{Identity: identity, Token: env.Token}, nil
}

// Register creates an account at POST /auth/register. The caller is not
// authenticated by a successful registration.
func (a *AuthClient) Register(ctx context.Context, profile ports.RegistrationProfile) (ports.RegistrationResult, error) {
	body := map[string]string{
		"username":    profile.Username,
		"email":       profile.Email,
		"password":    profile.Password,
		"userType":    profile.UserType,
		"firstName":   profile.FirstName,
		"lastName":    profile.LastName,
		"phoneNumber": profile.PhoneNumber,
	}

	raw, err := a.c.do(ctx, "auth.register", http.MethodPost, "/auth/register", nil, body)
	if err != nil {
		return ports.RegistrationResult{}, err
	}

	payload, env, err := unwrap(raw)
	if err != nil {
		return ports.RegistrationResult{}, err
	}

	result := ports.RegistrationResult{Message: env.Message}

	// The payload is either a created-user object or just the message
	// envelope itself; a body that decodes to neither is still a success.
	var user domain.Identity
	if err := json.Unmarshal(payload, &user); err == nil && !user.ID.IsZero() {
		result.User = &user
	}
	return result, nil
}
