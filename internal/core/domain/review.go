package domain

// Review is a room review as exposed by the review service. Rating is 1-5.
type Review struct {
	ID            ID     `json:"id"`
	RoomID        ID     `json:"roomId"`
	ClientID      ID     `json:"clientId"`
	ReservationID ID     `json:"reservationId,omitempty"`
	Rating        int    `json:"rating"`
	Title         string `json:"title,omitempty"`
	Comment       string `json:"comment,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// RatingSummary is the aggregate rating for a room.
type RatingSummary struct {
	RoomID        ID      `json:"roomId"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount,omitempty"`
}
