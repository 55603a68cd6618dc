package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/rentora/booking-api/internal/handler"
	"github.com/rentora/booking-api/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and CUSTOMER role.  Booking creation runs
// the availability pipeline and a transactional insert, so a request that
// passes validation can still 409 if a competing booking commits first.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)

	// ---- Bookings ----
	g.POST("/properties/:id/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)

	// ---- Reviews ----
	g.POST("/bookings/:id/reviews", h.CreateReview)
}
