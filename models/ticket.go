package models

type Ticket struct {
	TicketID    string  `json:"ticket_id" bson:"ticket_id"`
	BookingID   string  `json:"booking_id" bson:"booking_id"` // Booking.bookingId business key
	TicketPrice float64 `json:"ticket_price" bson:"ticket_price"`
	SeatID      string  `json:"seat_id" bson:"seat_id"`
	Status      string  `json:"status" bson:"status"` // upcoming, ischeckedIn, canceled
}

const (
	TicketStatusUpcoming  = "upcoming"
	TicketStatusCheckedIn = "ischeckedIn"
	TicketStatusCanceled  = "canceled"
)
