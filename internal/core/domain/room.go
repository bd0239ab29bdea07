package domain

// Room is a bookable room as exposed by the hotel service.
type Room struct {
	ID            ID       `json:"id"`
	HotelID       ID       `json:"hotelId"`
	HotelName     string   `json:"hotelName,omitempty"`
	HotelLocation string   `json:"hotelLocation,omitempty"`
	RoomNumber    string   `json:"roomNumber"`
	RoomType      string   `json:"roomType"`
	PricePerNight float64  `json:"pricePerNight"`
	FloorNumber   int      `json:"floorNumber,omitempty"`
	Position      string   `json:"position,omitempty"`
	SizeSqm       int      `json:"sizeSqm,omitempty"`
	MaxGuests     int      `json:"maxGuests,omitempty"`
	Available     bool     `json:"available"`
	Facilities    []string `json:"facilities,omitempty"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
}

// RoomFilter is the criteria payload for POST /rooms/filter. Zero values
// mean "no constraint" and are omitted on the wire.
type RoomFilter struct {
	Location      string   `json:"location,omitempty"`
	Available     *bool    `json:"available,omitempty"`
	MinPrice      float64  `json:"minPrice,omitempty"`
	MaxPrice      float64  `json:"maxPrice,omitempty"`
	Position      string   `json:"position,omitempty"`
	Facilities    []string `json:"facilities,omitempty"`
	RoomType      string   `json:"roomType,omitempty"`
	MinGuests     int      `json:"minGuests,omitempty"`
	SortBy        string   `json:"sortBy,omitempty"`
	SortDirection string   `json:"sortDirection,omitempty"`
}
