package movies

import (
	"sort"

	"cinebook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UpdateFields maps the set fields of a partial update onto their bson
// document keys. Nil fields are skipped so unset fields are never written.
func UpdateFields(u models.MovieUpdate) bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Overview != nil {
		set["overview"] = *u.Overview
	}
	if u.Genres != nil {
		set["genres"] = *u.Genres
	}
	if u.ReleaseDate != nil {
		set["release_date"] = *u.ReleaseDate
	}
	if u.PosterPath != nil {
		set["poster_path"] = *u.PosterPath
	}
	if u.Runtime != nil {
		set["runtime"] = *u.Runtime
	}
	if u.TicketPrice != nil {
		set["ticket_price"] = *u.TicketPrice
	}
	return set
}

// SortTopMovies orders by tickets sold, highest first.
func SortTopMovies(top []topMovie) {
	sort.Slice(top, func(i, j int) bool {
		return top[i].TicketsSold > top[j].TicketsSold
	})
}
