package routes

import (
	"cinebook/auth"
	"cinebook/bookings"
	"cinebook/middleware"
	"cinebook/movies"
	"cinebook/ratelim"
	"cinebook/seatmap"
	"cinebook/tickets"
	"cinebook/users"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *auth.Handlers) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(h.Logout))
	router.PUT("/api/auth/update", rl.Limit(middleware.Authenticate(h.UpdateProfile)))
}

func AddUserRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *users.Handlers) {
	router.POST("/api/users", middleware.RequireAdmin(h.Create))
	router.GET("/api/users", middleware.RequireAdmin(h.List))
	router.GET("/api/users/stats", middleware.RequireAdmin(h.Stats))
	router.PUT("/api/users/:id", middleware.RequireAdmin(h.Update))
	router.DELETE("/api/users/:id", middleware.RequireAdmin(h.Delete))
}

func AddMovieRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *movies.Handlers) {
	router.GET("/api/movies", rl.Limit(h.List))
	router.GET("/api/movies/stats", rl.Limit(h.Stats))
	router.GET("/api/movies/top", rl.Limit(h.Top))
	router.GET("/api/movies/fetch-movies", middleware.RequireAdmin(h.FetchMovies))
	router.POST("/api/movies", middleware.RequireAdmin(h.Create))
	router.PUT("/api/movies/:movie_id", middleware.RequireAdmin(h.Update))
	router.DELETE("/api/movies/:movie_id", middleware.RequireAdmin(h.Delete))
	router.GET("/api/movies/price/:movie_id", rl.Limit(h.GetPrice))
	router.PUT("/api/movies/:movie_id/price", middleware.RequireAdmin(h.UpdatePrice))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *bookings.Handlers) {
	router.POST("/api/booking/create", rl.Limit(middleware.Authenticate(h.CreateBooking)))
	router.GET("/api/booking/getAllBookingsByUserId/:userId", middleware.Authenticate(h.GetBookingsByUser))
	router.GET("/api/booking/getAllBookingsByMovieId/:movieID", middleware.Authenticate(h.GetBookingsByMovie))
	router.PATCH("/api/booking/cancelBooking/:bookingId", rl.Limit(middleware.Authenticate(h.CancelBooking)))
	router.GET("/api/booking/getBookingSeats", rl.Limit(middleware.Authenticate(h.GetBookingSeats)))
	router.GET("/api/booking/revenue", middleware.RequireAdmin(h.Revenue))
}

func AddTicketRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *tickets.Handlers) {
	router.POST("/api/tickets/create", rl.Limit(middleware.Authenticate(h.CreateTicket)))
	router.GET("/api/tickets/getTicketByBookingId/:bookingId", middleware.Authenticate(h.GetTicketsByBooking))
	router.PATCH("/api/tickets/cancelTicket/:bookingId", rl.Limit(middleware.Authenticate(h.CancelTickets)))
	router.GET("/api/tickets/stats", middleware.RequireAdmin(h.Stats))
	router.GET("/api/tickets/print/:ticketId", middleware.Authenticate(h.PrintTicket))
}

func AddSeatmapRoutes(router *httprouter.Router) {
	router.GET("/ws/seats", seatmap.HandleWS)
}

// RoutesWrapper registers every route group on the router.
func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter,
	authH *auth.Handlers, usersH *users.Handlers, moviesH *movies.Handlers,
	bookingsH *bookings.Handlers, ticketsH *tickets.Handlers) {
	AddAuthRoutes(router, rl, authH)
	AddUserRoutes(router, rl, usersH)
	AddMovieRoutes(router, rl, moviesH)
	AddBookingRoutes(router, rl, bookingsH)
	AddTicketRoutes(router, rl, ticketsH)
	AddSeatmapRoutes(router)
}
