package ports

import (
	"context"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// BookingService exposes the reservation service.
type BookingService interface {
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID domain.ID) ([]domain.Booking, error)
	Create(ctx context.Context, booking domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, id domain.ID, booking domain.Booking) (*domain.Booking, error)
	Cancel(ctx context.Context, id domain.ID) (*domain.Booking, error)
	Confirm(ctx context.Context, id domain.ID) (*domain.Booking, error)
	CheckAvailability(ctx context.Context, roomID domain.ID, checkIn, checkOut string) (*domain.Availability, error)
}
