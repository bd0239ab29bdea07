package ports

import (
	"context"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// UserService exposes the user administration surface of the gateway.
type UserService interface {
	List(ctx context.Context) ([]domain.Identity, error)
	Get(ctx context.Context, id domain.ID) (*domain.Identity, error)
	Update(ctx context.Context, id domain.ID, user domain.Identity) (*domain.Identity, error)
	Delete(ctx context.Context, id domain.ID) error
	Activate(ctx context.Context, id domain.ID) error
	Deactivate(ctx context.Context, id domain.ID) error
	ListByType(ctx context.Context, role domain.Role) ([]domain.Identity, error)
}
