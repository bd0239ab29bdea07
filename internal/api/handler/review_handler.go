package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/ports"
)

type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewRequest struct {
	RoomID        domain.ID `json:"roomId" validate:"required"`
	ReservationID domain.ID `json:"reservationId,omitempty"`
	Rating        int       `json:"rating" validate:"required,min=1,max=5"`
	Title         string    `json:"title,omitempty" validate:"omitempty,max=120"`
	Comment       string    `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// ListByRoom returns a room's reviews. Public.
func (h *ReviewHandler) ListByRoom(c echo.Context) error {
	roomID, err := pathID(c, "roomId")
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListByRoom(c.Request().Context(), roomID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// Mine returns the authenticated client's own reviews.
func (h *ReviewHandler) Mine(c echo.Context) error {
	identity, err := sessionIdentity(c)
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListByUser(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// Create posts a review authored by the authenticated client.
//
// @Summary      Create review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  map[string]string
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	identity, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	created, err := h.reviews.Create(c.Request().Context(), domain.Review{
		RoomID:        req.RoomID,
		ClientID:      identity.ID,
		ReservationID: req.ReservationID,
		Rating:        req.Rating,
		Title:         req.Title,
		Comment:       req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update edits a review. The gateway enforces authorship.
func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	updated, err := h.reviews.Update(c.Request().Context(), id, domain.Review{
		RoomID:  req.RoomID,
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a review. The gateway enforces authorship.
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reviews.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AverageRating returns the aggregate rating for a room. Public.
func (h *ReviewHandler) AverageRating(c echo.Context) error {
	roomID, err := pathID(c, "roomId")
	if err != nil {
		return err
	}
	summary, err := h.reviews.AverageRating(c.Request().Context(), roomID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
