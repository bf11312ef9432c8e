package seatmap

import "testing"

func TestKey(t *testing.T) {
	got := Key(603692, "2026-09-01", "19:30", "CGV Landmark 81")
	want := "603692_2026-09-01_19:30_CGV Landmark 81"
	if got != want {
		t.Fatalf("Key = %q, want %q", got, want)
	}
}

func TestKeyDistinguishesShowtimes(t *testing.T) {
	a := Key(1, "2026-09-01", "19:30", "CGV Landmark 81")
	b := Key(1, "2026-09-01", "21:45", "CGV Landmark 81")
	if a == b {
		t.Fatal("different showtimes must map to different keys")
	}
}
