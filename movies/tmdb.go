package movies

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"cinebook/models"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	movieLimit     = 100
	pageDelay      = 250 * time.Millisecond
)

// genreNames maps TMDb genre ids to display names.
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// Client talks to the TMDb API.
type Client struct {
	BaseURL  string
	APIKey   string
	Language string
	HTTP     *http.Client

	// PageDelay throttles successive list-page requests.
	PageDelay time.Duration
}

func NewClient() *Client {
	base := os.Getenv("TMDB_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	lang := os.Getenv("TMDB_LANGUAGE")
	if lang == "" {
		lang = "en-US"
	}
	return &Client{
		BaseURL:   base,
		APIKey:    os.Getenv("TMDB_API_KEY"),
		Language:  lang,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		PageDelay: pageDelay,
	}
}

type listedMovie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
	GenreIDs    []int  `json:"genre_ids"`
	ReleaseDate string `json:"release_date"`
}

type listPage struct {
	Results    []listedMovie `json:"results"`
	TotalPages int           `json:"total_pages"`
}

type movieDetails struct {
	Runtime int `json:"runtime"`
}

func (c *Client) get(ctx context.Context, path string, page int, out interface{}) error {
	q := url.Values{}
	q.Set("api_key", c.APIKey)
	q.Set("language", c.Language)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb: %s returned %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ListMovies pages through a TMDb list endpoint (now_playing, upcoming)
// until the limit is reached or pages run out.
func (c *Client) ListMovies(ctx context.Context, endpoint string, limit int) ([]listedMovie, error) {
	var all []listedMovie
	page, totalPages := 1, 1

	for page <= totalPages && len(all) < limit {
		var lp listPage
		if err := c.get(ctx, "/movie/"+endpoint, page, &lp); err != nil {
			return all, err
		}
		totalPages = lp.TotalPages

		room := limit - len(all)
		if room > len(lp.Results) {
			room = len(lp.Results)
		}
		all = append(all, lp.Results[:room]...)

		page++
		if page <= totalPages && len(all) < limit && c.PageDelay > 0 {
			select {
			case <-time.After(c.PageDelay):
			case <-ctx.Done():
				return all, ctx.Err()
			}
		}
	}
	return all, nil
}

// MovieDetails fetches the detail record, used for the runtime.
func (c *Client) MovieDetails(ctx context.Context, movieID int) (movieDetails, error) {
	var d movieDetails
	err := c.get(ctx, "/movie/"+strconv.Itoa(movieID), 0, &d)
	return d, err
}

func mapGenres(ids []int) []string {
	genres := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := genreNames[id]; ok {
			genres = append(genres, name)
		}
	}
	if len(genres) == 0 {
		genres = []string{"Unknown Genre"}
	}
	return genres
}

// Sync pulls now_playing then upcoming movies up to the catalog limit,
// dedupes by id and upserts each into the catalog. Returns the number of
// unique movies processed.
func (h *Handlers) Sync(ctx context.Context) (int, error) {
	nowPlaying, err := h.TMDB.ListMovies(ctx, "now_playing", movieLimit)
	if err != nil {
		return 0, err
	}

	listed := nowPlaying
	if remaining := movieLimit - len(nowPlaying); remaining > 0 {
		upcoming, err := h.TMDB.ListMovies(ctx, "upcoming", remaining)
		if err != nil {
			log.Printf("Error fetching upcoming movies: %v", err)
		}
		listed = append(listed, upcoming...)
	}

	seen := make(map[int]bool, len(listed))
	unique := listed[:0]
	for _, m := range listed {
		if !seen[m.ID] {
			seen[m.ID] = true
			unique = append(unique, m)
		}
	}

	for _, m := range unique {
		details, err := h.TMDB.MovieDetails(ctx, m.ID)
		if err != nil {
			log.Printf("Error fetching details for movie %d: %v", m.ID, err)
		}

		title := m.Title
		if title == "" {
			title = "Unknown Title"
		}
		release, _ := time.Parse("2006-01-02", m.ReleaseDate)

		movie := models.Movie{
			MovieID:     m.ID,
			Title:       title,
			Overview:    m.Overview,
			PosterPath:  m.PosterPath,
			Runtime:     details.Runtime,
			Genres:      mapGenres(m.GenreIDs),
			ReleaseDate: release,
			TicketPrice: models.DefaultTicketPrice,
			LastUpdated: time.Now(),
		}

		_, err = h.Store.Movies.UpdateOne(ctx,
			bson.M{"movie_id": m.ID},
			bson.M{"$set": movie},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			log.Printf("Error saving movie %q: %v", title, err)
		}
	}
	invalidateCatalogCache()

	return len(unique), nil
}

// GET /api/movies/fetch-movies
func (h *Handlers) FetchMovies(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := h.Sync(r.Context())
	if err != nil {
		log.Printf("Error in catalog sync: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch and save movies")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Movies fetched and saved successfully",
		"count":   count,
	})
}
