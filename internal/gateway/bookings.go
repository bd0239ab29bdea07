package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// BookingClient exposes the reservation service through the gateway.
type BookingClient struct {
	c *Client
}

func NewBookingClient(c *Client) *BookingClient {
	return &BookingClient{c: c}
}

// List fetches all bookings at GET /bookings.
func (b *BookingClient) List(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := b.c.getJSON(ctx, "bookings.list", "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByUser fetches one client's bookings at GET /bookings/user/{id}.
func (b *BookingClient) ListByUser(ctx context.Context, userID domain.ID) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := b.c.getJSON(ctx, "bookings.by_user", "/bookings/user/"+userID.String(), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Create places a booking at POST /bookings.
func (b *BookingClient) Create(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	var created domain.Booking
	if err := b.c.sendJSON(ctx, "bookings.create", http.MethodPost, "/bookings", booking, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update modifies a booking at PUT /bookings/{id}.
func (b *BookingClient) Update(ctx context.Context, id domain.ID, booking domain.Booking) (*domain.Booking, error) {
	var updated domain.Booking
	if err := b.c.sendJSON(ctx, "bookings.update", http.MethodPut, "/bookings/"+id.String(), booking, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Cancel marks a booking cancelled at PATCH /bookings/{id}/cancel.
func (b *BookingClient) Cancel(ctx context.Context, id domain.ID) (*domain.Booking, error) {
	var cancelled domain.Booking
	if err := b.c.sendJSON(ctx, "bookings.cancel", http.MethodPatch, "/bookings/"+id.String()+"/cancel", nil, &cancelled); err != nil {
		return nil, err
	}
	return &cancelled, nil
}

// Confirm marks a booking confirmed at PATCH /bookings/{id}/confirm.
func (b *BookingClient) Confirm(ctx context.Context, id domain.ID) (*domain.Booking, error) {
	var confirmed domain.Booking
	if err := b.c.sendJSON(ctx, "bookings.confirm", http.MethodPatch, "/bookings/"+id.String()+"/confirm", nil, &confirmed); err != nil {
		return nil, err
	}
	return &confirmed, nil
}

// CheckAvailability asks GET /bookings/availability/{roomId} whether a room
// is free for the date range.
func (b *BookingClient) CheckAvailability(ctx context.Context, roomID domain.ID, checkIn, checkOut string) (*domain.Availability, error) {
	query := url.Values{}
	query.Set("checkInDate", checkIn)
	query.Set("checkOutDate", checkOut)

	var avail domain.Availability
	if err := b.c.getJSON(ctx, "bookings.availability", "/bookings/availability/"+roomID.String(), query, &avail); err != nil {
		return nil, err
	}
	if avail.RoomID.IsZero() {
		avail.RoomID = roomID
	}
	return &avail, nil
}
