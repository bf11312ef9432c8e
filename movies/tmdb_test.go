package movies

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		BaseURL:  srv.URL,
		APIKey:   "test-key",
		Language: "en-US",
		HTTP:     srv.Client(),
	}
}

func TestListMoviesPagesUntilLimit(t *testing.T) {
	var pagesServed []string
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/now_playing", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pagesServed = append(pagesServed, page)

		p, _ := strconv.Atoi(page)
		results := make([]listedMovie, 20)
		for i := range results {
			results[i] = listedMovie{ID: (p-1)*20 + i + 1, Title: "Movie"}
		}
		json.NewEncoder(w).Encode(listPage{Results: results, TotalPages: 5})
	})

	c := newTestClient(t, mux)
	got, err := c.ListMovies(context.Background(), "now_playing", 50)
	require.NoError(t, err)

	assert.Len(t, got, 50)
	assert.Equal(t, []string{"1", "2", "3"}, pagesServed)
	// the third page is cut to fit the limit
	assert.Equal(t, 50, got[49].ID)
}

func TestListMoviesStopsAtLastPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/upcoming", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(listPage{
			Results:    []listedMovie{{ID: 1}, {ID: 2}},
			TotalPages: 1,
		})
	})

	c := newTestClient(t, mux)
	got, err := c.ListMovies(context.Background(), "upcoming", 100)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListMoviesSendsCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/now_playing", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		json.NewEncoder(w).Encode(listPage{TotalPages: 1})
	})

	c := newTestClient(t, mux)
	_, err := c.ListMovies(context.Background(), "now_playing", 10)
	require.NoError(t, err)
}

func TestListMoviesServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/now_playing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	c := newTestClient(t, mux)
	_, err := c.ListMovies(context.Background(), "now_playing", 10)
	assert.Error(t, err)
}

func TestMovieDetailsRuntime(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/603692", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(movieDetails{Runtime: 169})
	})

	c := newTestClient(t, mux)
	d, err := c.MovieDetails(context.Background(), 603692)
	require.NoError(t, err)
	assert.Equal(t, 169, d.Runtime)
}

func TestMapGenres(t *testing.T) {
	assert.Equal(t, []string{"Action", "Thriller"}, mapGenres([]int{28, 53}))
	// unknown ids are dropped
	assert.Equal(t, []string{"Horror"}, mapGenres([]int{99999, 27}))
	// no known genre falls back to a placeholder
	assert.Equal(t, []string{"Unknown Genre"}, mapGenres(nil))
}
