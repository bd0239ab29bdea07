package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hotelchain/booking-portal/internal/api/metrics"
	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/ports"
)

// AuthService implements login, registration and logout against the upstream
// gateway. Login is the only operation that mutates a session, and only on
// success.
type AuthService struct {
	gw  ports.AuthGateway
	log zerolog.Logger
}

func NewAuthService(gw ports.AuthGateway, log zerolog.Logger) *AuthService {
	return &AuthService{gw: gw, log: log}
}

// Login authenticates against the gateway and, on success, persists the
// identity and token into sess. The gateway historically omitted the token
// on some deployments; that is treated as a malformed response and the login
// fails — the portal never fabricates bearer credentials.
func (s *AuthService) Login(ctx context.Context, sess ports.Session, creds ports.Credentials) (*domain.Identity, error) {
	if creds.Username == "" || creds.Password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	res, err := s.gw.Login(ctx, creds)
	if err != nil {
		s.log.Info().Err(err).Str("username", creds.Username).Msg("login rejected")
		metrics.LoginsTotal.WithLabelValues(loginFailureLabel(err)).Inc()
		return nil, err
	}

	if res.Identity.ID.IsZero() {
		// A 2xx without a usable identity is a login failure, not a crash.
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if res.Token == "" {
		metrics.LoginsTotal.WithLabelValues("malformed").Inc()
		return nil, fmt.Errorf("%w: login response carried no token", domain.ErrMalformedResponse)
	}

	identity := res.Identity
	identity.Role = domain.ParseRole(string(identity.Role))

	if err := sess.SetAuthenticated(ctx, identity, res.Token); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().
		Str("username", identity.Username).
		Str("role", string(identity.Role)).
		Msg("login succeeded")
	return &identity, nil
}

func loginFailureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed"
	default:
		return "error"
	}
}

// Register forwards the profile to the gateway. It never authenticates the
// caller; a successful registration is followed by an explicit login.
func (s *AuthService) Register(ctx context.Context, profile ports.RegistrationProfile) (*ports.RegistrationResult, error) {
	if profile.Username == "" || profile.Password == "" || profile.Email == "" {
		return nil, &domain.ValidationError{Fields: missingFields(profile)}
	}

	res, err := s.gw.Register(ctx, profile)
	if err != nil {
		s.log.Info().Err(err).Str("username", profile.Username).Msg("registration rejected")
		return nil, err
	}

	if res.Message == "" {
		res.Message = "Registration successful. Please login."
	}
	return &res, nil
}

func missingFields(profile ports.RegistrationProfile) map[string]string {
	fields := make(map[string]string)
	if profile.Username == "" {
		fields["username"] = "username is required"
	}
	if profile.Password == "" {
		fields["password"] = "password is required"
	}
	if profile.Email == "" {
		fields["email"] = "email is required"
	}
	return fields
}

// Logout clears the session. It always succeeds from the caller's point of
// view; a failed delete of the persisted record is logged and the in-memory
// session is empty regardless.
func (s *AuthService) Logout(ctx context.Context, sess ports.Session) error {
	if err := sess.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Str("session_id", sess.ID()).Msg("failed to delete persisted session on logout")
	}
	return nil
}
