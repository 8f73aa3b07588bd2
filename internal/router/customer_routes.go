package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/handler"
	"github.com/iliyamo/train-station-booking/internal/middleware"
)

// RegisterCustomer registers the authenticated read and booking
// endpoints under /v1.  Both roles may browse the catalog and book;
// admins see the same views customers do.
func RegisterCustomer(e *echo.Echo, a *handler.AdminHandler, j *handler.JourneyHandler, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "CUSTOMER"),
	)

	// Catalog reads.
	g.GET("/train-types", a.ListTrainTypes)
	g.GET("/trains", a.ListTrains)
	g.GET("/stations", a.ListStations)
	g.GET("/stations/:id", a.GetStation)
	g.GET("/routes", a.ListRoutes)
	g.GET("/routes/:id", a.GetRoute)
	g.GET("/crew", a.ListCrewMembers)

	// Journeys with live availability.
	g.GET("/journeys", j.ListJourneys)
	g.GET("/journeys/:id", j.GetJourney)

	// Booking.
	g.POST("/orders", b.CreateOrder)
	g.GET("/orders/:id", b.GetOrder)
	g.DELETE("/orders/:id", b.DeleteOrder)
	g.GET("/my-orders", b.ListMyOrders)
}
