package ports

import (
	"context"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// Credentials is a login submission.
type Credentials struct {
	Username string
	Password string
}

// RegistrationProfile is the payload for creating a new account. UserType is
// forwarded verbatim; the gateway owns which types self-registration allows.
type RegistrationProfile struct {
	Username    string
	Email       string
	Password    string
	UserType    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// RegistrationResult is what the gateway reports for a successful
// registration: a human-readable message, the created user, or both.
type RegistrationResult struct {
	Message string           `json:"message,omitempty"`
	User    *domain.Identity `json:"user,omitempty"`
}

// LoginResult is the normalized outcome of the upstream login exchange.
type LoginResult struct {
	Identity domain.Identity
	Token    string
}

// AuthGateway is the upstream authentication contract.
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
	Register(ctx context.Context, profile RegistrationProfile) (RegistrationResult, error)
}

// AuthService implements the portal-side auth operations. Login mutates sess
// on success only; Register never authenticates; Logout always succeeds.
type AuthService interface {
	Login(ctx context.Context, sess Session, creds Credentials) (*domain.Identity, error)
	Register(ctx context.Context, profile RegistrationProfile) (*RegistrationResult, error)
	Logout(ctx context.Context, sess Session) error
}
