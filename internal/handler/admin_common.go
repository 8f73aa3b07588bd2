package handler

import (
	"github.com/iliyamo/train-station-booking/internal/repository"
)

// AdminHandler bundles the repositories admins use to manage the catalog:
// train types, trains, stations, routes, crew members and journeys.
type AdminHandler struct {
	Trains   *repository.TrainRepo
	Stations *repository.StationRepo
	Routes   *repository.RouteRepo
	Crew     *repository.CrewRepo
	Journeys *repository.JourneyRepo
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency is nil.
func NewAdminHandler(trains *repository.TrainRepo, stations *repository.StationRepo, routes *repository.RouteRepo, crew *repository.CrewRepo, journeys *repository.JourneyRepo) *AdminHandler {
	if trains == nil || stations == nil || routes == nil || crew == nil || journeys == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		Trains:   trains,
		Stations: stations,
		Routes:   routes,
		Crew:     crew,
		Journeys: journeys,
	}
}
