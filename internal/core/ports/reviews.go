package ports

import (
	"context"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// ReviewService exposes the review service.
type ReviewService interface {
	ListByRoom(ctx context.Context, roomID domain.ID) ([]domain.Review, error)
	ListByUser(ctx context.Context, userID domain.ID) ([]domain.Review, error)
	Create(ctx context.Context, review domain.Review) (*domain.Review, error)
	Update(ctx context.Context, id domain.ID, review domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, id domain.ID) error
	AverageRating(ctx context.Context, roomID domain.ID) (*domain.RatingSummary, error)
}
