package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/rentora/booking-api/internal/handler"    // handlers that implement business logic
	"github.com/rentora/booking-api/internal/middleware" // middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check, used
// by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Group for operations that do not require an existing session
	// (register, login, refresh).  Each handler generates or exchanges
	// tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a refresh token in the body (revoking that
	// session) or a bearer access token (revoking all sessions).  It does
	// not require the JWT middleware.
	g.POST("/logout", a.Logout)

	// Protected group: any authenticated role may query its own identity.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("OWNER", "CUSTOMER", "MANAGER"))
	auth.GET("/me", a.Me)

	// Alias so clients can call /v1/logout with a valid refresh token in
	// the body to terminate a session without a JWT.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler exposes sanitized data for approved
// properties; no JWT or role middleware is applied so guests can browse,
// check occupied dates and price a stay before signing up.  The optional
// cache middleware (may be nil) is applied per route so responses are
// served from Redis when enabled.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{}
	if cache != nil {
		mws = append(mws, cache)
	}
	// All bookable properties
	e.GET("/v1/properties", p.GetProperties, mws...)
	// One property with its aggregate rating
	e.GET("/v1/properties/:id", p.GetProperty, mws...)
	// Occupied calendar days for the date picker
	e.GET("/v1/properties/:id/unavailable-dates", p.GetUnavailableDates, mws...)
	// Reviews left by past guests
	e.GET("/v1/properties/:id/reviews", p.GetReviews, mws...)
	// Availability verdict plus price breakdown for a prospective stay.
	// Not cached: the verdict must reflect bookings committed a moment ago.
	e.GET("/v1/properties/:id/quote", p.GetQuote)
	// Filtered, paginated search
	e.GET("/v1/search/properties", p.SearchProperties, mws...)
}
