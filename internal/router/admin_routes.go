package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/handler"
	"github.com/iliyamo/train-station-booking/internal/middleware"
)

// RegisterAdmin registers catalog management endpoints under
// /v1/admin.  All routes require a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	g.POST("/train-types", h.CreateTrainType)
	g.DELETE("/train-types/:id", h.DeleteTrainType)

	g.POST("/trains", h.CreateTrain)
	g.PUT("/trains/:id", h.UpdateTrain)
	g.DELETE("/trains/:id", h.DeleteTrain)

	g.POST("/stations", h.CreateStation)
	g.PUT("/stations/:id", h.UpdateStation)
	g.DELETE("/stations/:id", h.DeleteStation)

	g.POST("/routes", h.CreateRoute)
	g.DELETE("/routes/:id", h.DeleteRoute)

	g.POST("/crew", h.CreateCrewMember)
	g.PUT("/crew/:id", h.UpdateCrewMember)
	g.DELETE("/crew/:id", h.DeleteCrewMember)

	g.POST("/journeys", h.CreateJourney)
	g.PUT("/journeys/:id", h.UpdateJourney)
	g.DELETE("/journeys/:id", h.DeleteJourney)
}
