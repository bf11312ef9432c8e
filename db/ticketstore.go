package db

import (
	"context"
	"errors"

	"cinebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (s *Store) FindTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	var t models.Ticket
	err := s.Tickets.FindOne(ctx, bson.M{"ticket_id": ticketID}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) FindTicketsByBooking(ctx context.Context, bookingID string) ([]models.Ticket, error) {
	cur, err := s.Tickets.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tickets []models.Ticket
	if err := cur.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *Store) InsertTicket(ctx context.Context, t *models.Ticket) error {
	_, err := s.Tickets.InsertOne(ctx, t)
	return err
}

// CancelTicketsForBooking flips every ticket of the booking to canceled and
// reports how many actually changed. Tickets already canceled are not
// matched again, so a repeat call returns 0 without error.
func (s *Store) CancelTicketsForBooking(ctx context.Context, bookingID string) (int64, error) {
	res, err := s.Tickets.UpdateMany(ctx,
		bson.M{"booking_id": bookingID, "status": bson.M{"$ne": models.TicketStatusCanceled}},
		bson.M{"$set": bson.M{"status": models.TicketStatusCanceled}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *Store) CountTickets(ctx context.Context) (int64, error) {
	return s.Tickets.CountDocuments(ctx, bson.M{})
}
