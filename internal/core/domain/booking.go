package domain

// BookingStatus is the lifecycle state of a reservation, as reported by the
// reservation service.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Booking is a reservation as exposed by the reservation service. Dates are
// ISO-8601 date strings; the portal passes them through untouched.
type Booking struct {
	ID           ID            `json:"id"`
	RoomID       ID            `json:"roomId"`
	RoomNumber   string        `json:"roomNumber,omitempty"`
	HotelName    string        `json:"hotelName,omitempty"`
	ClientID     ID            `json:"clientId"`
	ClientName   string        `json:"clientName,omitempty"`
	ClientEmail  string        `json:"clientEmail,omitempty"`
	EmployeeID   ID            `json:"employeeId,omitempty"`
	EmployeeName string        `json:"employeeName,omitempty"`
	CheckInDate  string        `json:"checkInDate"`
	CheckOutDate string        `json:"checkOutDate"`
	TotalPrice   float64       `json:"totalPrice,omitempty"`
	Status       BookingStatus `json:"status,omitempty"`
	CreatedAt    string        `json:"createdAt,omitempty"`
	UpdatedAt    string        `json:"updatedAt,omitempty"`
}

// Availability is the answer to a room availability check for a date range.
type Availability struct {
	RoomID    ID   `json:"roomId"`
	Available bool `json:"available"`
}
