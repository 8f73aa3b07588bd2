package model

import "time"

// Journey is a scheduled run of one train over one route.  Arrival
// must be after departure; the admin handler rejects anything else.
// A journey's bookable capacity is entirely determined by its train.
//
// Fields:
//  ID            – primary key identifier.
//  TrainID       – train operating the journey.
//  RouteID       – route being travelled.
//  DepartureTime – UTC departure timestamp.
//  ArrivalTime   – UTC arrival timestamp.
type Journey struct {
	ID            uint64    `json:"id"`             // journeys.id
	TrainID       uint64    `json:"train_id"`       // journeys.train_id
	RouteID       uint64    `json:"route_id"`       // journeys.route_id
	DepartureTime time.Time `json:"departure_time"` // journeys.departure_time
	ArrivalTime   time.Time `json:"arrival_time"`   // journeys.arrival_time
	CreatedAt     time.Time `json:"created_at"`     // journeys.created_at
}
