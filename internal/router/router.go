// Package router wires HTTP endpoints to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/handler"
	"github.com/iliyamo/train-station-booking/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
// Currently only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access
// token with any known role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh) // rotates the refresh token
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
	auth.GET("/me", a.Me)

	// Logout also works without the JWT middleware: a refresh token in
	// the body is enough to terminate that session.
	e.POST("/v1/logout", a.Logout)
}
