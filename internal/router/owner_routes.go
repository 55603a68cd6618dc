package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/rentora/booking-api/internal/handler"    // owner handlers
	"github.com/rentora/booking-api/internal/middleware" // JWT + role middlewares
)

// RegisterOwner registers OWNER-scoped endpoints under /v1.
// All routes require a valid JWT and OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	// ---- Listings ----
	g.POST("/properties", o.CreateProperty)
	g.PUT("/properties/:id", o.UpdateProperty)
	g.PATCH("/properties/:id", o.UpdateProperty) // allow partial/semantic updates via PATCH as well
	g.POST("/properties/:id/appeal", o.AppealProperty)
	g.GET("/owner/properties", o.ListProperties)
	g.GET("/owner/properties/:id/bookings", o.ListPropertyBookings)

	// ---- Contracts ----
	g.GET("/owner/contracts", o.ListContracts)
	g.POST("/contracts/:id/respond", o.RespondContract)
}
