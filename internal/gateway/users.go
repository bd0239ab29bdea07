package gateway

import (
	"context"
	"net/http"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// UserClient exposes the user administration endpoints of the gateway.
type UserClient struct {
	c *Client
}

func NewUserClient(c *Client) *UserClient {
	return &UserClient{c: c}
}

// List fetches all users at GET /users.
func (u *UserClient) List(ctx context.Context) ([]domain.Identity, error) {
	var users []domain.Identity
	if err := u.c.getJSON(ctx, "users.list", "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get fetches a user at GET /users/{id}.
func (u *UserClient) Get(ctx context.Context, id domain.ID) (*domain.Identity, error) {
	var user domain.Identity
	if err := u.c.getJSON(ctx, "users.get", "/users/"+id.String(), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update modifies a user at PUT /users/{id}.
func (u *UserClient) Update(ctx context.Context, id domain.ID, user domain.Identity) (*domain.Identity, error) {
	var updated domain.Identity
	if err := u.c.sendJSON(ctx, "users.update", http.MethodPut, "/users/"+id.String(), user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a user at DELETE /users/{id}.
func (u *UserClient) Delete(ctx context.Context, id domain.ID) error {
	return u.c.sendJSON(ctx, "users.delete", http.MethodDelete, "/users/"+id.String(), nil, nil)
}

// Activate re-enables a user at PATCH /users/{id}/activate.
func (u *UserClient) Activate(ctx context.Context, id domain.ID) error {
	return u.c.sendJSON(ctx, "users.activate", http.MethodPatch, "/users/"+id.String()+"/activate", nil, nil)
}

// Deactivate disables a user at PATCH /users/{id}/deactivate.
func (u *UserClient) Deactivate(ctx context.Context, id domain.ID) error {
	return u.c.sendJSON(ctx, "users.deactivate", http.MethodPatch, "/users/"+id.String()+"/deactivate", nil, nil)
}

// ListByType fetches users of one role at GET /users/type/{role}.
func (u *UserClient) ListByType(ctx context.Context, role domain.Role) ([]domain.Identity, error) {
	var users []domain.Identity
	if err := u.c.getJSON(ctx, "users.by_type", "/users/type/"+string(role), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
