package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinebook/auth"
	"cinebook/bookings"
	"cinebook/db"
	"cinebook/movies"
	"cinebook/mq"
	"cinebook/ratelim"
	"cinebook/rdx"
	"cinebook/routes"
	"cinebook/tickets"
	"cinebook/users"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(store *db.Store, rateLimiter *ratelim.RateLimiter, tmdb *movies.Client) (*httprouter.Router, *movies.Handlers) {
	router := httprouter.New()
	router.GET("/health", Index)

	moviesH := movies.NewHandlers(store, tmdb)
	routes.RoutesWrapper(router, rateLimiter,
		auth.NewHandlers(store),
		users.NewHandlers(store),
		moviesH,
		bookings.NewHandlers(store),
		tickets.NewHandlers(store),
	)
	return router, moviesH
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := db.Open(ctx)
	cancel()
	if err != nil {
		log.Fatalf("❌ MongoDB connection failed: %v", err)
	}
	if err := store.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("❌ Index creation failed: %v", err)
	}

	if err := rdx.Init(); err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}

	rateLimiter := ratelim.NewRateLimiter()
	router, moviesH := setupRouter(store, rateLimiter, movies.NewClient())

	// relay booking events to seat-map subscribers
	go mq.StartSeatUpdateWorker()

	scheduler, err := moviesH.StartSyncScheduler()
	if err != nil {
		log.Fatalf("❌ Catalog sync scheduler failed: %v", err)
	}

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("Scheduler shutdown: %v", err)
		}
		if err := rdx.Close(); err != nil {
			log.Printf("Redis close: %v", err)
		}
	})

	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}
	if err := store.Close(context.Background()); err != nil {
		log.Printf("MongoDB close: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
