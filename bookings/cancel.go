package bookings

import (
	"context"

	"cinebook/db"
	"cinebook/models"
)

// BookingStore is the slice of the storage layer the cancellation path
// reads and writes. *db.Store satisfies it.
type BookingStore interface {
	FindBookingByID(ctx context.Context, bookingID string) (*models.Booking, error)
	SaveBooking(ctx context.Context, b *models.Booking) error
}

// TicketStore cancels the dependent ticket records of a booking.
type TicketStore interface {
	CancelTicketsForBooking(ctx context.Context, bookingID string) (int64, error)
}

// TxnRunner scopes a function to one all-or-nothing transaction. The
// context passed to fn is the transaction handle; on error the transaction
// is rolled back in full.
type TxnRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Canceler coordinates the cancel-booking-and-cascade-tickets transition.
type Canceler struct {
	Bookings BookingStore
	Tickets  TicketStore
	Txn      TxnRunner
}

// CancelBooking flips an ordered booking to canceled, releases its seats
// and cascades the cancellation to every dependent ticket, all inside one
// transaction. Ownership and status are checked before any mutation; the
// transaction isolation keeps two concurrent cancels of the same booking
// from both passing the status check.
//
// Returns the updated booking and the number of tickets that changed
// state. Fails with db.ErrNotFound, db.ErrForbidden or
// db.ErrAlreadyCanceled; any storage fault aborts with no partial state.
func (c *Canceler) CancelBooking(ctx context.Context, bookingID, caller string) (*models.Booking, int64, error) {
	var (
		updated         *models.Booking
		ticketsCanceled int64
	)

	err := c.Txn.RunTransaction(ctx, func(txCtx context.Context) error {
		booking, err := c.Bookings.FindBookingByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		if booking.UserID != caller {
			return db.ErrForbidden
		}
		if booking.OrderStatus == models.OrderStatusCanceled {
			return db.ErrAlreadyCanceled
		}

		booking.OrderStatus = models.OrderStatusCanceled
		booking.Seats = models.ReleaseSeats(booking.Seats)
		if err := c.Bookings.SaveBooking(txCtx, booking); err != nil {
			return err
		}

		n, err := c.Tickets.CancelTicketsForBooking(txCtx, booking.BookingID)
		if err != nil {
			return err
		}

		updated = booking
		ticketsCanceled = n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return updated, ticketsCanceled, nil
}
