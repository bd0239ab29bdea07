package domain

// DashboardSummary aggregates the operational overview shown to staff.
type DashboardSummary struct {
	TotalRooms      int       `json:"totalRooms"`
	AvailableRooms  int       `json:"availableRooms"`
	TotalBookings   int       `json:"totalBookings"`
	ActiveBookings  int       `json:"activeBookings"`
	TotalUsers      int       `json:"totalUsers,omitempty"`
	RecentBookings  []Booking `json:"recentBookings,omitempty"`
	ServicesHealthy bool      `json:"servicesHealthy,omitempty"`
}

// Statistics is the manager-level reporting payload.
type Statistics struct {
	OccupancyRate    float64            `json:"occupancyRate"`
	AverageRating    float64            `json:"averageRating,omitempty"`
	RevenueByMonth   map[string]float64 `json:"revenueByMonth,omitempty"`
	BookingsByStatus map[string]int     `json:"bookingsByStatus,omitempty"`
}
