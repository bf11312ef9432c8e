package db

import (
	"context"
	"errors"

	"cinebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FindBookingByID looks a booking up by its business key. Lookups never use
// the storage identity.
func (s *Store) FindBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var b models.Booking
	err := s.Bookings.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) FindBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{"userId": userID})
}

func (s *Store) FindBookingsByMovie(ctx context.Context, movieID int) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{"movieID": movieID})
}

// FindShowtimeBookings returns the ordered bookings for one showtime. All
// four fields match exactly; canceled bookings do not hold seats.
func (s *Store) FindShowtimeBookings(ctx context.Context, movieID int, date, time, address string) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{
		"movieID":      movieID,
		"date":         date,
		"time":         time,
		"address":      address,
		"order_status": models.OrderStatusOrdered,
	})
}

func (s *Store) findBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	cur, err := s.Bookings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Store) InsertBooking(ctx context.Context, b *models.Booking) error {
	_, err := s.Bookings.InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// SaveBooking replaces the stored document for b.BookingID. Pass a session
// context to run it inside a transaction.
func (s *Store) SaveBooking(ctx context.Context, b *models.Booking) error {
	res, err := s.Bookings.ReplaceOne(ctx, bson.M{"bookingId": b.BookingID}, b)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
