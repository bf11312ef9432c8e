package db

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dbName = "cinemadb"

// Store owns the Mongo client and the collection handles. It is built once
// in main and passed down; there is no package-level connection.
type Store struct {
	client *mongo.Client

	Users    *mongo.Collection
	Movies   *mongo.Collection
	Bookings *mongo.Collection
	Tickets  *mongo.Collection
}

func Open(ctx context.Context) (*Store, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	database := client.Database(dbName)
	return &Store{
		client:   client,
		Users:    database.Collection("users"),
		Movies:   database.Collection("movies"),
		Bookings: database.Collection("bookings"),
		Tickets:  database.Collection("tickets"),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the uniqueness constraints the schemas declare.
// Bookings carry no unique index on bookingId.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := s.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = s.Movies.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "movie_id", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = s.Movies.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "genres", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = s.Tickets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "booking_id", Value: 1}},
	})
	return err
}

// WithTransaction runs fn inside a session-scoped multi-document
// transaction. The context handed to fn is the transaction handle; store
// methods called with it take part in the transaction. Commit and abort are
// handled on every exit path by the driver.
func (s *Store) WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	return session.WithTransaction(ctx, fn)
}

// RunTransaction is WithTransaction for callers that only need the session
// as a plain context.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := s.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
