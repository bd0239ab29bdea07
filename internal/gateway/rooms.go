package gateway

import (
	"context"
	"net/http"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// RoomClient exposes the hotel service's room catalogue through the gateway.
type RoomClient struct {
	c *Client
}

func NewRoomClient(c *Client) *RoomClient {
	return &RoomClient{c: c}
}

// ListSorted fetches the room catalogue at GET /rooms/sorted.
func (r *RoomClient) ListSorted(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := r.c.getJSON(ctx, "rooms.sorted", "/rooms/sorted", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Filter queries POST /rooms/filter with the given criteria.
func (r *RoomClient) Filter(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := r.c.sendJSON(ctx, "rooms.filter", http.MethodPost, "/rooms/filter", filter, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Get fetches a single room at GET /rooms/{id}.
func (r *RoomClient) Get(ctx context.Context, id domain.ID) (*domain.Room, error) {
	var room domain.Room
	if err := r.c.getJSON(ctx, "rooms.get", "/rooms/"+id.String(), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Create adds a room at POST /rooms.
func (r *RoomClient) Create(ctx context.Context, room domain.Room) (*domain.Room, error) {
	var created domain.Room
	if err := r.c.sendJSON(ctx, "rooms.create", http.MethodPost, "/rooms", room, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a room at PUT /rooms/{id}.
func (r *RoomClient) Update(ctx context.Context, id domain.ID, room domain.Room) (*domain.Room, error) {
	var updated domain.Room
	if err := r.c.sendJSON(ctx, "rooms.update", http.MethodPut, "/rooms/"+id.String(), room, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a room at DELETE /rooms/{id}.
func (r *RoomClient) Delete(ctx context.Context, id domain.ID) error {
	return r.c.sendJSON(ctx, "rooms.delete", http.MethodDelete, "/rooms/"+id.String(), nil, nil)
}
