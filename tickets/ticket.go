package tickets

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cinebook/db"
	"cinebook/models"
	"cinebook/mq"
	"cinebook/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Store *db.Store
}

func NewHandlers(store *db.Store) *Handlers {
	return &Handlers{Store: store}
}

// POST /api/tickets/create
func (h *Handlers) CreateTicket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var ticket models.Ticket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if ticket.BookingID == "" || ticket.SeatID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if ticket.TicketID == "" {
		ticket.TicketID = uuid.NewString()
	}
	if ticket.Status == "" {
		ticket.Status = models.TicketStatusUpcoming
	}

	if err := h.Store.InsertTicket(r.Context(), &ticket); err != nil {
		log.Printf("Error creating ticket: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	mq.Emit(r.Context(), "ticket-created", mq.Event{BookingID: ticket.BookingID})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Ticket created successfully",
		"ticket":  ticket,
	})
}

// GET /api/tickets/getTicketByBookingId/:bookingId
func (h *Handlers) GetTicketsByBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("bookingId")

	tickets, err := h.Store.FindTicketsByBooking(r.Context(), bookingID)
	if err != nil {
		log.Printf("Error fetching tickets: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(tickets) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No tickets for this booking")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tickets)
}

// PATCH /api/tickets/cancelTicket/:bookingId
//
// Bulk-cancels every ticket of the booking. Running it again once all
// tickets are canceled reports zero changes, not an error.
func (h *Handlers) CancelTickets(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("bookingId")

	existing, err := h.Store.FindTicketsByBooking(r.Context(), bookingID)
	if err != nil {
		log.Printf("Error fetching tickets: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(existing) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No tickets to cancel")
		return
	}

	canceled, err := h.Store.CancelTicketsForBooking(r.Context(), bookingID)
	if err != nil {
		log.Printf("Error canceling tickets: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":         "All tickets canceled",
		"ticketsCanceled": canceled,
	})
}

// GET /api/tickets/stats
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	total, err := h.Store.CountTickets(r.Context())
	if err != nil {
		log.Printf("Error fetching ticket stats: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ticket stats")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"totalTickets": total})
}

// writeStoreErr maps store errors for single-ticket lookups.
func writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Ticket does not exist")
		return
	}
	log.Printf("Ticket store error: %v", err)
	utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
}
