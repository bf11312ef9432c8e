package models

import "time"

// Movie is a catalog entry keyed by the TMDb movie id.
type Movie struct {
	MovieID     int       `json:"movie_id" bson:"movie_id"`
	Title       string    `json:"title" bson:"title"`
	Overview    string    `json:"overview" bson:"overview"`
	PosterPath  string    `json:"poster_path" bson:"poster_path"`
	Runtime     int       `json:"runtime" bson:"runtime"`
	Genres      []string  `json:"genres" bson:"genres"`
	ReleaseDate time.Time `json:"release_date" bson:"release_date"`
	TicketPrice float64   `json:"ticket_price" bson:"ticket_price"`
	LastUpdated time.Time `json:"last_updated" bson:"last_updated"`
}

const DefaultTicketPrice = 60000

// MovieUpdate is an explicit partial update; nil fields are not written.
type MovieUpdate struct {
	Title       *string
	Overview    *string
	Genres      *[]string
	ReleaseDate *time.Time
	PosterPath  *string
	Runtime     *int
	TicketPrice *float64
}
