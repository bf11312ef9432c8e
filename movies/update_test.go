package movies

import (
	"testing"
	"time"

	"cinebook/models"

	"github.com/stretchr/testify/assert"
)

func TestUpdateFieldsSkipsNil(t *testing.T) {
	title := "Dune: Part Two"
	price := 75000.0

	set := UpdateFields(models.MovieUpdate{Title: &title, TicketPrice: &price})

	assert.Equal(t, bsonKeys(set), map[string]bool{"title": true, "ticket_price": true})
	assert.Equal(t, title, set["title"])
	assert.Equal(t, price, set["ticket_price"])
}

func TestUpdateFieldsEmpty(t *testing.T) {
	assert.Empty(t, UpdateFields(models.MovieUpdate{}))
}

func TestUpdateFieldsAll(t *testing.T) {
	title := "Oppenheimer"
	overview := "The story of J. Robert Oppenheimer."
	genres := []string{"Drama", "History"}
	release := time.Date(2026, 7, 21, 0, 0, 0, 0, time.UTC)
	poster := "/poster.jpg"
	runtime := 180
	price := 90000.0

	set := UpdateFields(models.MovieUpdate{
		Title:       &title,
		Overview:    &overview,
		Genres:      &genres,
		ReleaseDate: &release,
		PosterPath:  &poster,
		Runtime:     &runtime,
		TicketPrice: &price,
	})

	assert.Len(t, set, 7)
	assert.Equal(t, genres, set["genres"])
	assert.Equal(t, release, set["release_date"])
}

func bsonKeys(m map[string]interface{}) map[string]bool {
	keys := make(map[string]bool, len(m))
	for k := range m {
		keys[k] = true
	}
	return keys
}

func TestSortTopMovies(t *testing.T) {
	top := []topMovie{
		{ID: 1, TicketsSold: 2},
		{ID: 2, TicketsSold: 9},
		{ID: 3, TicketsSold: 0},
		{ID: 4, TicketsSold: 5},
	}

	SortTopMovies(top)

	got := []int{top[0].ID, top[1].ID, top[2].ID, top[3].ID}
	assert.Equal(t, []int{2, 4, 1, 3}, got)
}

func TestViewOfDefaults(t *testing.T) {
	v := viewOf(models.Movie{MovieID: 42})

	assert.Equal(t, "Unknown Title", v.MovieName)
	assert.Equal(t, "Unknown Genre", v.Type)
	assert.EqualValues(t, models.DefaultTicketPrice, v.TicketPrice)
}

func TestViewOfJoinsGenres(t *testing.T) {
	v := viewOf(models.Movie{
		MovieID: 42,
		Title:   "Interstellar",
		Genres:  []string{"Adventure", "Drama", "Science Fiction"},
	})

	assert.Equal(t, "Adventure, Drama, Science Fiction", v.Type)
}
