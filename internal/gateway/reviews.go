package gateway

import (
	"context"
	"net/http"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// ReviewClient exposes the review service through the gateway.
type ReviewClient struct {
	c *Client
}

func NewReviewClient(c *Client) *ReviewClient {
	return &ReviewClient{c: c}
}

// ListByRoom fetches a room's reviews at GET /reviews/room/{id}.
func (r *ReviewClient) ListByRoom(ctx context.Context, roomID domain.ID) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := r.c.getJSON(ctx, "reviews.by_room", "/reviews/room/"+roomID.String(), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByUser fetches a client's reviews at GET /reviews/user/{id}.
func (r *ReviewClient) ListByUser(ctx context.Context, userID domain.ID) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := r.c.getJSON(ctx, "reviews.by_user", "/reviews/user/"+userID.String(), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Create posts a review at POST /reviews.
func (r *ReviewClient) Create(ctx context.Context, review domain.Review) (*domain.Review, error) {
	var created domain.Review
	if err := r.c.sendJSON(ctx, "reviews.create", http.MethodPost, "/reviews", review, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update edits a review at PUT /reviews/{id}.
func (r *ReviewClient) Update(ctx context.Context, id domain.ID, review domain.Review) (*domain.Review, error) {
	var updated domain.Review
	if err := r.c.sendJSON(ctx, "reviews.update", http.MethodPut, "/reviews/"+id.String(), review, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a review at DELETE /reviews/{id}.
func (r *ReviewClient) Delete(ctx context.Context, id domain.ID) error {
	return r.c.sendJSON(ctx, "reviews.delete", http.MethodDelete, "/reviews/"+id.String(), nil, nil)
}

// AverageRating fetches the aggregate rating at GET /reviews/room/{id}/average.
func (r *ReviewClient) AverageRating(ctx context.Context, roomID domain.ID) (*domain.RatingSummary, error) {
	var summary domain.RatingSummary
	if err := r.c.getJSON(ctx, "reviews.average", "/reviews/room/"+roomID.String()+"/average", nil, &summary); err != nil {
		return nil, err
	}
	if summary.RoomID.IsZero() {
		summary.RoomID = roomID
	}
	return &summary, nil
}
