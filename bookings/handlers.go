package bookings

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"cinebook/db"
	"cinebook/models"
	"cinebook/mq"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Store    *db.Store
	Canceler *Canceler
}

func NewHandlers(store *db.Store) *Handlers {
	return &Handlers{
		Store: store,
		Canceler: &Canceler{
			Bookings: store,
			Tickets:  store,
			Txn:      store,
		},
	}
}

// POST /api/booking/create
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	caller := utils.GetUserPhoneFromRequest(r)
	if caller == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if booking.MovieTitle == "" || booking.Address == "" ||
		booking.Date == "" || booking.Time == "" || len(booking.Seats) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if booking.BookingID == "" {
		booking.BookingID = utils.GenerateRandomString(12)
	}
	booking.UserID = caller
	booking.BookingTime = time.Now()
	booking.OrderStatus = models.OrderStatusOrdered

	if err := h.Store.InsertBooking(r.Context(), &booking); err != nil {
		log.Printf("Error creating booking: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	mq.Emit(r.Context(), "booking-created", mq.Event{
		BookingID: booking.BookingID,
		MovieID:   booking.MovieID,
		Date:      booking.Date,
		Time:      booking.Time,
		Address:   booking.Address,
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// GET /api/booking/getAllBookingsByUserId/:userId
func (h *Handlers) GetBookingsByUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userId")

	if utils.GetUserPhoneFromRequest(r) != userID {
		utils.RespondWithError(w, http.StatusForbidden, "You are not allowed to view these bookings")
		return
	}

	bookings, err := h.Store.FindBookingsByUser(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching bookings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(bookings) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No bookings for this user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// GET /api/booking/getAllBookingsByMovieId/:movieID
func (h *Handlers) GetBookingsByMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	movieID, err := strconv.Atoi(ps.ByName("movieID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	bookings, err := h.Store.FindBookingsByMovie(r.Context(), movieID)
	if err != nil {
		log.Printf("Error fetching bookings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(bookings) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No bookings for this movie")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// PATCH /api/booking/cancelBooking/:bookingId
func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("bookingId")
	caller := utils.GetUserPhoneFromRequest(r)

	booking, ticketsCanceled, err := h.Canceler.CancelBooking(r.Context(), bookingID, caller)
	switch {
	case errors.Is(err, db.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Booking does not exist")
		return
	case errors.Is(err, db.ErrForbidden):
		utils.RespondWithError(w, http.StatusForbidden, "You are not allowed to cancel this booking")
		return
	case errors.Is(err, db.ErrAlreadyCanceled):
		utils.RespondWithError(w, http.StatusBadRequest, "Booking was already canceled")
		return
	case err != nil:
		log.Printf("Error canceling booking %s: %v", bookingID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	mq.Emit(r.Context(), "booking-canceled", mq.Event{
		BookingID: booking.BookingID,
		MovieID:   booking.MovieID,
		Date:      booking.Date,
		Time:      booking.Time,
		Address:   booking.Address,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":         "Booking and all related tickets canceled",
		"booking":         booking,
		"ticketsCanceled": ticketsCanceled,
	})
}

// GET /api/booking/getBookingSeats?movieID=..&date=..&time=..&address=..
func (h *Handlers) GetBookingSeats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	movieIDStr := q.Get("movieID")
	date := q.Get("date")
	showTime := q.Get("time")
	address := q.Get("address")

	if movieIDStr == "" || date == "" || showTime == "" || address == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}
	movieID, err := strconv.Atoi(movieIDStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	bookings, err := h.Store.FindShowtimeBookings(r.Context(), movieID, date, showTime, address)
	if err != nil {
		log.Printf("Error fetching booking seats: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	bookingSeats := FlattenSeats(bookings)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookingSeats": bookingSeats})
}

// FlattenSeats collapses the seat inventories of every booking of a
// showtime into one list, in booking order. An empty result is a valid
// empty seat map, not an error.
func FlattenSeats(bookings []models.Booking) []models.Seat {
	seats := []models.Seat{}
	for _, b := range bookings {
		seats = append(seats, b.Seats...)
	}
	return seats
}
