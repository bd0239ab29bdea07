package ports

import (
	"context"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// DashboardService exposes the aggregated operational views.
type DashboardService interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
	Statistics(ctx context.Context) (*domain.Statistics, error)
}
