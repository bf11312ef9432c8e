package models

import "testing"

func TestReleaseSeats(t *testing.T) {
	seats := []Seat{
		{SeatID: "A1", Status: SeatStatusBooked},
		{SeatID: "A2", Status: SeatStatusBooked},
		{SeatID: "B5", Status: SeatStatusAvailable},
	}

	released := ReleaseSeats(seats)

	if len(released) != len(seats) {
		t.Fatalf("expected %d seats, got %d", len(seats), len(released))
	}
	for i, s := range released {
		if s.SeatID != seats[i].SeatID {
			t.Errorf("seat %d: id changed from %q to %q", i, seats[i].SeatID, s.SeatID)
		}
		if s.Status != SeatStatusAvailable {
			t.Errorf("seat %s: status = %q, want %q", s.SeatID, s.Status, SeatStatusAvailable)
		}
	}

	// input must not be mutated
	if seats[0].Status != SeatStatusBooked {
		t.Errorf("input seat mutated: %q", seats[0].Status)
	}
}

func TestReleaseSeatsIdempotent(t *testing.T) {
	seats := []Seat{
		{SeatID: "A1", Status: SeatStatusBooked},
		{SeatID: "B2", Status: SeatStatusAvailable},
	}

	once := ReleaseSeats(seats)
	twice := ReleaseSeats(once)

	if len(once) != len(twice) {
		t.Fatalf("lengths differ: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("seat %d differs after second release: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestReleaseSeatsEmpty(t *testing.T) {
	if got := ReleaseSeats(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
