package gateway

import (
	"context"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// DashboardClient exposes the aggregated operational views of the gateway.
type DashboardClient struct {
	c *Client
}

func NewDashboardClient(c *Client) *DashboardClient {
	return &DashboardClient{c: c}
}

// Summary fetches GET /dashboard.
func (d *DashboardClient) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	var summary domain.DashboardSummary
	if err := d.c.getJSON(ctx, "dashboard.summary", "/dashboard", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Statistics fetches GET /statistics.
func (d *DashboardClient) Statistics(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	if err := d.c.getJSON(ctx, "dashboard.statistics", "/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Health probes the upstream gateway's own health endpoint. Used by the
// portal readiness check.
func (d *DashboardClient) Health(ctx context.Context) error {
	var out map[string]any
	return d.c.getJSON(ctx, "dashboard.health", "/health", nil, &out)
}
