package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/rentora/booking-api/internal/handler"
	"github.com/rentora/booking-api/internal/middleware"
)

// RegisterManager registers MANAGER-scoped endpoints under /v1.  Managers
// work the review queue and administer commission contracts; all routes
// require a valid JWT and MANAGER role.
func RegisterManager(e *echo.Echo, m *handler.ManagerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MANAGER"),
	)

	// ---- Review queue ----
	g.GET("/manager/properties", m.ListProperties)
	g.POST("/properties/:id/approve", m.ApproveProperty)
	g.POST("/properties/:id/reject", m.RejectProperty)

	// ---- Contracts ----
	// Accepting freezes the property's commission-inclusive final rate.
	g.POST("/contracts/:id/accept", m.AcceptContract)
	g.POST("/contracts/:id/reject", m.RejectContract)
}
