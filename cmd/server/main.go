package main // Entry point package

import (
	"log" // Logging library

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/rentora/booking-api/internal/config"     // environment configuration
	"github.com/rentora/booking-api/internal/database"   // MySQL connection helper
	"github.com/rentora/booking-api/internal/handler"    // HTTP handlers
	"github.com/rentora/booking-api/internal/middleware" // cache and rate limit middleware
	"github.com/rentora/booking-api/internal/queue"      // booking event consumer
	"github.com/rentora/booking-api/internal/repository" // data access layer
	"github.com/rentora/booking-api/internal/router"     // route registration
)

func main() {
	cfg := config.Load() // Load environment config (.env supported)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables response caching and rate
	// limiting but the API keeps serving.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	properties := repository.NewPropertyRepo(db)
	bookings := repository.NewBookingRepo(db)
	contracts := repository.NewContractRepo(db)
	reviews := repository.NewReviewRepo(db)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	ownerH := handler.NewOwnerHandler(properties, contracts, bookings)
	managerH := handler.NewManagerHandler(properties, contracts)
	customerH := handler.NewCustomerHandler(properties, bookings, reviews)
	publicH := &handler.PublicHandler{PropertyRepo: properties, BookingRepo: bookings, ReviewRepo: reviews}

	e := echo.New()

	// Global rate limiting; per-route response cache for the public browse API.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cache)
	router.RegisterOwner(e, ownerH, cfg.JWTSecret)
	router.RegisterManager(e, managerH, cfg.JWTSecret)
	router.RegisterCustomer(e, customerH, cfg.JWTSecret)

	// Consume booking.confirmed events in the background; the consumer
	// reconnects on its own so a broker outage never stops the API.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
