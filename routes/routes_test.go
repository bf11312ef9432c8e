package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cinebook/bookings"
	"cinebook/ratelim"
	"cinebook/users"

	"github.com/julienschmidt/httprouter"
)

func TestBookingRoutesRequireAuth(t *testing.T) {
	router := httprouter.New()
	AddBookingRoutes(router, ratelim.NewRateLimiter(), &bookings.Handlers{})

	paths := []struct {
		method, path string
	}{
		{"GET", "/api/booking/getBookingSeats?movieID=1&date=d&time=t&address=a"},
		{"GET", "/api/booking/getAllBookingsByMovieId/1"},
		{"GET", "/api/booking/getAllBookingsByUserId/0901234567"},
		{"PATCH", "/api/booking/cancelBooking/bk-1"},
		{"POST", "/api/booking/create"},
	}
	for _, p := range paths {
		r := httptest.NewRequest(p.method, p.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", p.method, p.path, w.Code)
		}
	}
}

func TestUserRoutesRequireAuth(t *testing.T) {
	router := httprouter.New()
	AddUserRoutes(router, ratelim.NewRateLimiter(), &users.Handlers{})

	r := httptest.NewRequest("GET", "/api/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/users without token: status = %d, want 401", w.Code)
	}
}
