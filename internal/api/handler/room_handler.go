package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/ports"
)

type RoomHandler struct {
	rooms   ports.RoomService
	reviews ports.ReviewService
}

func NewRoomHandler(rooms ports.RoomService, reviews ports.ReviewService) *RoomHandler {
	return &RoomHandler{rooms: rooms, reviews: reviews}
}

type roomRequest struct {
	HotelID       domain.ID `json:"hotelId" validate:"required"`
	RoomNumber    string    `json:"roomNumber" validate:"required"`
	RoomType      string    `json:"roomType" validate:"required"`
	PricePerNight float64   `json:"pricePerNight" validate:"required,gt=0"`
	FloorNumber   int       `json:"floorNumber,omitempty"`
	Position      string    `json:"position,omitempty"`
	SizeSqm       int       `json:"sizeSqm,omitempty"`
	MaxGuests     int       `json:"maxGuests,omitempty" validate:"omitempty,min=1"`
	Available     bool      `json:"available"`
	Facilities    []string  `json:"facilities,omitempty"`
}

func (r roomRequest) toDomain() domain.Room {
	return domain.Room{
		HotelID:       r.HotelID,
		RoomNumber:    r.RoomNumber,
		RoomType:      r.RoomType,
		PricePerNight: r.PricePerNight,
		FloorNumber:   r.FloorNumber,
		Position:      r.Position,
		SizeSqm:       r.SizeSqm,
		MaxGuests:     r.MaxGuests,
		Available:     r.Available,
		Facilities:    r.Facilities,
	}
}

// List returns the sorted room catalogue, or the filtered subset when
// criteria are posted to /rooms/filter.
//
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {array}  domain.Room
// @Router       /rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.rooms.ListSorted(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}

// Filter applies search criteria server side.
//
// @Summary      Filter rooms
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RoomFilter  true  "Filter criteria"
// @Success      200   {array}   domain.Room
// @Router       /rooms/filter [post]
func (h *RoomHandler) Filter(c echo.Context) error {
	var filter domain.RoomFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	rooms, err := h.rooms.Filter(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}

// Get returns one room with its reviews and aggregate rating attached.
//
// @Summary      Room details
// @Tags         rooms
// @Produce      json
// @Param        id   path      string  true  "Room ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /rooms/{id} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	room, err := h.rooms.Get(ctx, id)
	if err != nil {
		return err
	}

	// Reviews are presentation garnish; the room is the answer even when
	// the review service is down.
	reviews, rerr := h.reviews.ListByRoom(ctx, id)
	var rating *domain.RatingSummary
	if rerr == nil {
		rating, _ = h.reviews.AverageRating(ctx, id)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"room":    room,
		"reviews": reviews,
		"rating":  rating,
	})
}

// Create adds a room. Requires the manage-rooms capability.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	created, err := h.rooms.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update replaces a room. Requires the manage-rooms capability.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	updated, err := h.rooms.Update(c.Request().Context(), id, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a room. Requires the manage-rooms capability.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.rooms.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
