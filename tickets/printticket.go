package tickets

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

var hmacSecret = func() string {
	if s := os.Getenv("TICKET_HMAC_SECRET"); s != "" {
		return s
	}
	return "your-very-secret-key"
}()

// QRPayload returns the signed payload embedded in a ticket QR code:
// ticketID|bookingID|seatID|timestamp|signature.
func QRPayload(ticketID, bookingID, seatID string) string {
	data := fmt.Sprintf("%s|%s|%s|%d", ticketID, bookingID, seatID, time.Now().Unix())

	h := hmac.New(sha256.New, []byte(hmacSecret))
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// GET /api/tickets/print/:ticketId
//
// Renders a PDF ticket with a signed QR code for gate scanning.
func (h *Handlers) PrintTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ticketID := ps.ByName("ticketId")

	ticket, err := h.Store.FindTicketByID(r.Context(), ticketID)
	if err != nil {
		writeStoreErr(w, err)
		return
	}

	booking, err := h.Store.FindBookingByID(r.Context(), ticket.BookingID)
	if err != nil {
		writeStoreErr(w, err)
		return
	}

	if booking.UserID != utils.GetUserPhoneFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "You are not allowed to print this ticket")
		return
	}

	qrPNG, err := qrcode.Encode(QRPayload(ticket.TicketID, ticket.BookingID, ticket.SeatID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Movie Ticket")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Movie: %s", booking.MovieTitle))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Showtime: %s %s", booking.Date, booking.Time))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Cinema: %s", booking.Address))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Seat: %s", ticket.SeatID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Ticket ID: %s", ticket.TicketID))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=ticket-"+ticket.TicketID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
