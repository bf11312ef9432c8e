package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cinebook/db"
	"cinebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps bookings and tickets in maps and rolls both back when a
// transaction function fails, mirroring the all-or-nothing storage contract.
type fakeStore struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	tickets  map[string][]models.Ticket

	saveErr   error
	cancelErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings: make(map[string]models.Booking),
		tickets:  make(map[string][]models.Ticket),
	}
}

func (f *fakeStore) FindBookingByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := b
	copied.Seats = append([]models.Seat(nil), b.Seats...)
	return &copied, nil
}

func (f *fakeStore) SaveBooking(_ context.Context, b *models.Booking) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.bookings[b.BookingID]; !ok {
		return db.ErrNotFound
	}
	f.bookings[b.BookingID] = *b
	return nil
}

func (f *fakeStore) CancelTicketsForBooking(_ context.Context, bookingID string) (int64, error) {
	if f.cancelErr != nil {
		return 0, f.cancelErr
	}
	var n int64
	ts := f.tickets[bookingID]
	for i := range ts {
		if ts[i].Status != models.TicketStatusCanceled {
			ts[i].Status = models.TicketStatusCanceled
			n++
		}
	}
	return n, nil
}

// RunTransaction serializes callers and restores both maps when fn fails.
func (f *fakeStore) RunTransaction(_ context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	bookingsSnap := make(map[string]models.Booking, len(f.bookings))
	for k, v := range f.bookings {
		bookingsSnap[k] = v
	}
	ticketsSnap := make(map[string][]models.Ticket, len(f.tickets))
	for k, v := range f.tickets {
		ticketsSnap[k] = append([]models.Ticket(nil), v...)
	}

	if err := fn(context.Background()); err != nil {
		f.bookings = bookingsSnap
		f.tickets = ticketsSnap
		return err
	}
	return nil
}

func newCanceler(f *fakeStore) *Canceler {
	return &Canceler{Bookings: f, Tickets: f, Txn: f}
}

func seedBooking(f *fakeStore, id, user string) {
	f.bookings[id] = models.Booking{
		BookingID:   id,
		UserID:      user,
		MovieID:     603692,
		OrderStatus: models.OrderStatusOrdered,
		Seats: []models.Seat{
			{SeatID: "C1", Status: models.SeatStatusBooked},
			{SeatID: "C2", Status: models.SeatStatusBooked},
		},
	}
	f.tickets[id] = []models.Ticket{
		{TicketID: "t1", BookingID: id, SeatID: "C1", Status: models.TicketStatusUpcoming},
		{TicketID: "t2", BookingID: id, SeatID: "C2", Status: models.TicketStatusUpcoming},
	}
}

func TestCancelBooking(t *testing.T) {
	f := newFakeStore()
	seedBooking(f, "bk-1", "0901234567")

	updated, ticketsCanceled, err := newCanceler(f).CancelBooking(context.Background(), "bk-1", "0901234567")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusCanceled, updated.OrderStatus)
	for _, s := range updated.Seats {
		assert.Equal(t, models.SeatStatusAvailable, s.Status)
	}
	assert.EqualValues(t, 2, ticketsCanceled)

	stored := f.bookings["bk-1"]
	assert.Equal(t, models.OrderStatusCanceled, stored.OrderStatus)
	for _, tk := range f.tickets["bk-1"] {
		assert.Equal(t, models.TicketStatusCanceled, tk.Status)
	}
}

func TestCancelBookingTwice(t *testing.T) {
	f := newFakeStore()
	seedBooking(f, "bk-1", "0901234567")
	c := newCanceler(f)

	_, _, err := c.CancelBooking(context.Background(), "bk-1", "0901234567")
	require.NoError(t, err)

	_, n, err := c.CancelBooking(context.Background(), "bk-1", "0901234567")
	assert.ErrorIs(t, err, db.ErrAlreadyCanceled)
	assert.Zero(t, n)
}

func TestCancelBookingNotOwner(t *testing.T) {
	f := newFakeStore()
	seedBooking(f, "bk-1", "0901234567")

	_, _, err := newCanceler(f).CancelBooking(context.Background(), "bk-1", "0999999999")
	assert.ErrorIs(t, err, db.ErrForbidden)

	// nothing may have changed
	assert.Equal(t, models.OrderStatusOrdered, f.bookings["bk-1"].OrderStatus)
	for _, tk := range f.tickets["bk-1"] {
		assert.Equal(t, models.TicketStatusUpcoming, tk.Status)
	}
}

func TestCancelBookingNotFound(t *testing.T) {
	f := newFakeStore()

	_, _, err := newCanceler(f).CancelBooking(context.Background(), "missing", "0901234567")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestCancelBookingTicketFaultRollsBack(t *testing.T) {
	f := newFakeStore()
	seedBooking(f, "bk-1", "0901234567")
	f.cancelErr = errors.New("write conflict")

	_, _, err := newCanceler(f).CancelBooking(context.Background(), "bk-1", "0901234567")
	require.Error(t, err)

	// the booking update must have been rolled back with the ticket fault
	stored := f.bookings["bk-1"]
	assert.Equal(t, models.OrderStatusOrdered, stored.OrderStatus)
	for _, s := range stored.Seats {
		assert.Equal(t, models.SeatStatusBooked, s.Status)
	}
}

func TestCancelBookingConcurrentSingleWinner(t *testing.T) {
	f := newFakeStore()
	seedBooking(f, "bk-1", "0901234567")
	c := newCanceler(f)

	const callers = 8
	type outcome struct {
		n   int64
		err error
	}
	results := make(chan outcome, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, n, err := c.CancelBooking(context.Background(), "bk-1", "0901234567")
			results <- outcome{n: n, err: err}
		}()
	}
	wg.Wait()
	close(results)

	var wins, already int
	var totalCanceled int64
	for res := range results {
		switch {
		case res.err == nil:
			wins++
			totalCanceled += res.n
		case errors.Is(res.err, db.ErrAlreadyCanceled):
			already++
			totalCanceled += res.n
		default:
			t.Fatalf("unexpected error: %v", res.err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, already)
	// every ticket is cascaded exactly once across all callers
	assert.EqualValues(t, 2, totalCanceled)
}
