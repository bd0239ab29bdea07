package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelchain/booking-portal/internal/api/middleware"
	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/policy"
	"github.com/hotelchain/booking-portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	inflight    ports.InFlightGuard
}

func NewAuthHandler(authService ports.AuthService, inflight ports.InFlightGuard) *AuthHandler {
	return &AuthHandler{authService: authService, inflight: inflight}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=3"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	UserType    string `json:"userType" validate:"required,oneof=CLIENT EMPLOYEE MANAGER ADMINISTRATOR"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type loginResponse struct {
	User *domain.Identity `json:"user"`
}

// Login authenticates against the gateway and establishes the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sess := middleware.SessionFrom(c)
	ctx := c.Request().Context()

	// One auth exchange per session at a time; a double submit while the
	// first is outstanding is rejected, not queued.
	if h.inflight != nil {
		ok, err := h.inflight.Begin(ctx, sess.ID(), "login")
		if err == nil && !ok {
			return domain.ErrLoginInFlight
		}
		if err == nil {
			defer func() { _ = h.inflight.End(ctx, sess.ID(), "login") }()
		}
	}

	identity, err := h.authService.Login(ctx, sess, ports.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{User: identity})
}

// Register creates a new account. The caller stays unauthenticated; an
// explicit login follows.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  ports.RegistrationResult
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegistrationProfile{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		UserType:    req.UserType,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, res)
}

// Logout clears the session. Safe to call when already logged out.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	if err := h.authService.Logout(c.Request().Context(), sess); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

type meResponse struct {
	User         *domain.Identity    `json:"user"`
	Capabilities []policy.Capability `json:"capabilities"`
}

// Me returns the authenticated identity and its capability set. Guarded.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := sessionIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{
		User:         &identity,
		Capabilities: policy.Capabilities(identity.Role),
	})
}
