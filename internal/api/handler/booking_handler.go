package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/policy"
	"github.com/hotelchain/booking-portal/internal/core/ports"
)

type BookingHandler struct {
	bookings ports.BookingService
}

func NewBookingHandler(bookings ports.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type bookingRequest struct {
	RoomID       domain.ID `json:"roomId" validate:"required"`
	CheckInDate  string    `json:"checkInDate" validate:"required"`
	CheckOutDate string    `json:"checkOutDate" validate:"required"`
}

// List returns bookings: staff with manage-bookings see all of them,
// clients see only their own.
//
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Success      200  {array}  domain.Booking
// @Failure      401  {object}  map[string]string
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	identity, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if policy.HasCapability(identity.Role, policy.CapManageBookings) {
		bookings, err := h.bookings.List(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, bookings)
	}

	bookings, err := h.bookings.ListByUser(ctx, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Create places a booking for the authenticated client.
//
// @Summary      Create booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body      bookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	identity, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	created, err := h.bookings.Create(c.Request().Context(), domain.Booking{
		RoomID:       req.RoomID,
		ClientID:     identity.ID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update modifies a booking. Requires the manage-bookings capability.
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var booking domain.Booking
	if err := c.Bind(&booking); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	updated, err := h.bookings.Update(c.Request().Context(), id, booking)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Cancel marks a booking cancelled. Clients may cancel their own; the
// gateway owns the ownership check.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cancelled, err := h.bookings.Cancel(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cancelled)
}

// Confirm marks a booking confirmed. Requires the manage-bookings
// capability.
func (h *BookingHandler) Confirm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	confirmed, err := h.bookings.Confirm(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, confirmed)
}

// Availability checks whether a room is free for a date range.
//
// @Summary      Check availability
// @Tags         bookings
// @Produce      json
// @Param        roomId        path   string  true  "Room ID"
// @Param        checkInDate   query  string  true  "Check-in date (ISO 8601)"
// @Param        checkOutDate  query  string  true  "Check-out date (ISO 8601)"
// @Success      200  {object}  domain.Availability
// @Router       /bookings/availability/{roomId} [get]
func (h *BookingHandler) Availability(c echo.Context) error {
	roomID, err := pathID(c, "roomId")
	if err != nil {
		return err
	}

	checkIn := c.QueryParam("checkInDate")
	checkOut := c.QueryParam("checkOutDate")
	if checkIn == "" || checkOut == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "checkInDate and checkOutDate are required")
	}

	avail, err := h.bookings.CheckAvailability(c.Request().Context(), roomID, checkIn, checkOut)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, avail)
}
