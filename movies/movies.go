package movies

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"cinebook/db"
	"cinebook/models"
	"cinebook/rdx"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogCacheKey = "movies:catalog"

type Handlers struct {
	Store *db.Store
	TMDB  *Client
}

func NewHandlers(store *db.Store, tmdb *Client) *Handlers {
	return &Handlers{Store: store, TMDB: tmdb}
}

// movieView is the catalog shape the frontend consumes.
type movieView struct {
	ID          int       `json:"id"`
	MovieName   string    `json:"movieName"`
	Type        string    `json:"type"`
	ReleaseDate time.Time `json:"release_date"`
	PosterPath  string    `json:"poster_path"`
	TicketPrice float64   `json:"ticket_price"`
}

func viewOf(m models.Movie) movieView {
	name := m.Title
	if name == "" {
		name = "Unknown Title"
	}
	genres := "Unknown Genre"
	if len(m.Genres) > 0 {
		genres = joinGenres(m.Genres)
	}
	price := m.TicketPrice
	if price == 0 {
		price = models.DefaultTicketPrice
	}
	return movieView{
		ID:          m.MovieID,
		MovieName:   name,
		Type:        genres,
		ReleaseDate: m.ReleaseDate,
		PosterPath:  m.PosterPath,
		TicketPrice: price,
	}
}

func joinGenres(genres []string) string {
	out := ""
	for i, g := range genres {
		if i > 0 {
			out += ", "
		}
		out += g
	}
	return out
}

func invalidateCatalogCache() {
	if err := rdx.RdxDel(catalogCacheKey); err != nil {
		log.Printf("Failed to invalidate movie catalog cache: %v", err)
	}
}

// POST /api/movies
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		MovieID     int      `json:"movie_id"`
		Title       string   `json:"title"`
		Overview    string   `json:"overview"`
		Genres      []string `json:"genres"`
		ReleaseDate string   `json:"release_date"`
		PosterPath  string   `json:"poster_path"`
		Runtime     int      `json:"runtime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.MovieID == 0 || input.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "movie_id and title are required")
		return
	}

	release, _ := time.Parse("2006-01-02", input.ReleaseDate)
	movie := models.Movie{
		MovieID:     input.MovieID,
		Title:       input.Title,
		Overview:    input.Overview,
		Genres:      input.Genres,
		ReleaseDate: release,
		PosterPath:  input.PosterPath,
		Runtime:     input.Runtime,
		TicketPrice: models.DefaultTicketPrice,
		LastUpdated: time.Now(),
	}

	if _, err := h.Store.Movies.InsertOne(r.Context(), movie); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Movie already exists")
			return
		}
		log.Printf("Error creating movie: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create movie")
		return
	}
	invalidateCatalogCache()

	utils.RespondWithJSON(w, http.StatusCreated, viewOf(movie))
}

// GET /api/movies?genre=&search=
func (h *Handlers) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	genre := r.URL.Query().Get("genre")
	search := r.URL.Query().Get("search")

	// Only the unfiltered catalog is cached.
	if genre == "" && search == "" {
		if cached, err := rdx.RdxGet(catalogCacheKey); err == nil && cached != "" {
			var views []movieView
			if json.Unmarshal([]byte(cached), &views) == nil {
				utils.RespondWithJSON(w, http.StatusOK, views)
				return
			}
		}
	}

	filter := bson.M{}
	if genre != "" {
		filter["genres"] = genre
	}
	if search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": search, "$options": "i"}},
			{"overview": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	cur, err := h.Store.Movies.Find(r.Context(), filter)
	if err != nil {
		log.Printf("Error fetching movies: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch movies")
		return
	}
	defer cur.Close(r.Context())

	var all []models.Movie
	if err := cur.All(r.Context(), &all); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch movies")
		return
	}

	views := make([]movieView, 0, len(all))
	for _, m := range all {
		views = append(views, viewOf(m))
	}

	if genre == "" && search == "" {
		if raw, err := json.Marshal(views); err == nil {
			if err := rdx.SetWithExpiry(catalogCacheKey, string(raw), 5*time.Minute); err != nil {
				log.Printf("Failed to cache movie catalog: %v", err)
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}

// GET /api/movies/stats
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	total, err := h.Store.Movies.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		log.Printf("Error fetching movie stats: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch movie stats")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"totalMovies": total})
}

type topMovie struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	TicketsSold int64   `json:"ticketsSold"`
	Revenue     float64 `json:"revenue"`
	TicketPrice float64 `json:"ticketPrice"`
}

// GET /api/movies/top reports per-movie tickets sold and revenue. Movies
// without any sales are included with zero counts.
func (h *Handlers) Top(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$seats"}},
		bson.D{{Key: "$match", Value: bson.M{"seats.status": models.SeatStatusBooked}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         "$movieID",
			"ticketsSold": bson.M{"$sum": 1},
		}}},
	}
	cur, err := h.Store.Bookings.Aggregate(r.Context(), pipeline)
	if err != nil {
		log.Printf("Error aggregating ticket counts: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch top movies")
		return
	}
	defer cur.Close(r.Context())

	var counts []struct {
		MovieID     int   `bson:"_id"`
		TicketsSold int64 `bson:"ticketsSold"`
	}
	if err := cur.All(r.Context(), &counts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch top movies")
		return
	}
	sold := make(map[int]int64, len(counts))
	for _, c := range counts {
		sold[c.MovieID] = c.TicketsSold
	}

	mcur, err := h.Store.Movies.Find(r.Context(), bson.M{},
		options.Find().SetProjection(bson.M{"movie_id": 1, "title": 1, "ticket_price": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch top movies")
		return
	}
	defer mcur.Close(r.Context())

	var all []models.Movie
	if err := mcur.All(r.Context(), &all); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch top movies")
		return
	}

	top := make([]topMovie, 0, len(all))
	for _, m := range all {
		price := m.TicketPrice
		if price == 0 {
			price = models.DefaultTicketPrice
		}
		n := sold[m.MovieID]
		name := m.Title
		if name == "" {
			name = "Unknown Title"
		}
		top = append(top, topMovie{
			ID:          m.MovieID,
			Name:        name,
			TicketsSold: n,
			Revenue:     float64(n) * price,
			TicketPrice: price,
		})
	}
	SortTopMovies(top)

	utils.RespondWithJSON(w, http.StatusOK, top)
}

// PUT /api/movies/:movie_id
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	movieID, err := strconv.Atoi(ps.ByName("movie_id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	var input struct {
		Title       *string   `json:"title"`
		Overview    *string   `json:"overview"`
		Genres      *[]string `json:"genres"`
		ReleaseDate *string   `json:"release_date"`
		PosterPath  *string   `json:"poster_path"`
		Runtime     *int      `json:"runtime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := models.MovieUpdate{
		Title:      input.Title,
		Overview:   input.Overview,
		Genres:     input.Genres,
		PosterPath: input.PosterPath,
		Runtime:    input.Runtime,
	}
	if input.ReleaseDate != nil {
		release, err := time.Parse("2006-01-02", *input.ReleaseDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid release date")
			return
		}
		update.ReleaseDate = &release
	}

	set := UpdateFields(update)
	set["last_updated"] = time.Now()

	var updated models.Movie
	err = h.Store.Movies.FindOneAndUpdate(r.Context(),
		bson.M{"movie_id": movieID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Movie not found")
		return
	}
	if err != nil {
		log.Printf("Error updating movie: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update movie")
		return
	}
	invalidateCatalogCache()

	utils.RespondWithJSON(w, http.StatusOK, viewOf(updated))
}

// GET /api/movies/price/:movie_id
func (h *Handlers) GetPrice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	movieID, err := strconv.Atoi(ps.ByName("movie_id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	var movie models.Movie
	err = h.Store.Movies.FindOne(r.Context(), bson.M{"movie_id": movieID}).Decode(&movie)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Movie not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch movie price")
		return
	}

	v := viewOf(movie)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"id":           v.ID,
		"movieName":    v.MovieName,
		"type":         v.Type,
		"ticket_price": v.TicketPrice,
	})
}

// PUT /api/movies/:movie_id/price
func (h *Handlers) UpdatePrice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	movieID, err := strconv.Atoi(ps.ByName("movie_id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	var input struct {
		TicketPrice float64 `json:"ticket_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.TicketPrice <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Ticket price must be a positive number")
		return
	}

	var updated models.Movie
	err = h.Store.Movies.FindOneAndUpdate(r.Context(),
		bson.M{"movie_id": movieID},
		bson.M{"$set": bson.M{"ticket_price": input.TicketPrice, "last_updated": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Movie not found")
		return
	}
	if err != nil {
		log.Printf("Error updating ticket price: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update ticket price")
		return
	}
	invalidateCatalogCache()

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"movie_id":     updated.MovieID,
		"title":        updated.Title,
		"ticket_price": updated.TicketPrice,
		"last_updated": updated.LastUpdated,
	})
}

// DELETE /api/movies/:movie_id
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	movieID, err := strconv.Atoi(ps.ByName("movie_id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	res, err := h.Store.Movies.DeleteOne(r.Context(), bson.M{"movie_id": movieID})
	if err != nil {
		log.Printf("Error deleting movie: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete movie")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Movie not found")
		return
	}
	invalidateCatalogCache()

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Movie deleted successfully"})
}
