package mq

import (
	"context"
	"encoding/json"
	"log"

	"cinebook/rdx"
	"cinebook/seatmap"
)

const channel = "booking-events"

// Event describes a booking or ticket lifecycle change. Showtime fields are
// set for events that move seat inventory so that seat-map subscribers can
// be told to refresh.
type Event struct {
	Type      string `json:"type"` // booking-created, booking-canceled, ticket-created
	BookingID string `json:"booking_id,omitempty"`
	MovieID   int    `json:"movie_id,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Emit publishes the event to Redis; delivery is best effort and never
// fails the request that triggered it.
func Emit(ctx context.Context, eventName string, ev Event) {
	ev.Type = eventName
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
	}
}

// StartSeatUpdateWorker relays booking lifecycle events to the seat-map
// websocket subscribers of the affected showtime. Runs until the process
// exits.
func StartSeatUpdateWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[SeatUpdateWorker] Listening for booking events...")

	for msg := range ch {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("[SeatUpdateWorker] Failed to parse event: %v", err)
			continue
		}
		if ev.MovieID == 0 {
			continue
		}

		key := seatmap.Key(ev.MovieID, ev.Date, ev.Time, ev.Address)
		update, _ := json.Marshal(map[string]string{
			"type":      "seats-changed",
			"bookingId": ev.BookingID,
		})
		seatmap.Broadcast(key, update)
		log.Printf("[SeatUpdateWorker] Broadcast %s for showtime %s", ev.Type, key)
	}
}
