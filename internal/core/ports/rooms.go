package ports

import (
	"context"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// RoomService exposes the hotel service's room catalogue.
type RoomService interface {
	ListSorted(ctx context.Context) ([]domain.Room, error)
	Filter(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error)
	Get(ctx context.Context, id domain.ID) (*domain.Room, error)
	Create(ctx context.Context, room domain.Room) (*domain.Room, error)
	Update(ctx context.Context, id domain.ID, room domain.Room) (*domain.Room, error)
	Delete(ctx context.Context, id domain.ID) error
}
