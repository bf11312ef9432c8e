package models

import "time"

// Seat is one entry of a booking's seat inventory.
type Seat struct {
	SeatID string `json:"seat_id" bson:"seat_id"`
	Status string `json:"status" bson:"status"` // booked, available
}

type Food struct {
	FoodID    string  `json:"food_id" bson:"food_id"`
	FoodName  string  `json:"food_name" bson:"food_name"`
	FoodPrice float64 `json:"food_price" bson:"food_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type Booking struct {
	BookingID   string    `json:"bookingId" bson:"bookingId"`
	UserID      string    `json:"userId" bson:"userId"` // owner phone, not storage identity
	MovieID     int       `json:"movieID" bson:"movieID"`
	MovieTitle  string    `json:"movieTitle" bson:"movieTitle"`
	Seats       []Seat    `json:"seats" bson:"seats"`
	BookingTime time.Time `json:"booking_time" bson:"booking_time"`
	Date        string    `json:"date" bson:"date"` // display string, e.g. "Thứ 3, 26/4"
	Time        string    `json:"time" bson:"time"` // display string, e.g. "10:00"
	Address     string    `json:"address" bson:"address"`
	Foods       []Food    `json:"foods" bson:"foods"`
	TotalPrice  float64   `json:"total_price" bson:"total_price"`
	OrderStatus string    `json:"order_status" bson:"order_status"` // ordered, canceled
	PosterPath  string    `json:"poster_path,omitempty" bson:"poster_path,omitempty"`
}

const (
	OrderStatusOrdered  = "ordered"
	OrderStatusCanceled = "canceled"

	SeatStatusBooked    = "booked"
	SeatStatusAvailable = "available"
)

// ReleaseSeats returns a new seat list with every status forced to
// available. Order and seat ids are untouched; the input is never mutated.
func ReleaseSeats(seats []Seat) []Seat {
	released := make([]Seat, len(seats))
	for i, s := range seats {
		released[i] = Seat{SeatID: s.SeatID, Status: SeatStatusAvailable}
	}
	return released
}
