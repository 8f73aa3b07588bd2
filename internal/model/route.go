package model

import "time"

// Route connects a source station to a destination station.
// Distance is measured in kilometres.
type Route struct {
	ID            uint64    `json:"id"`             // routes.id
	SourceID      uint64    `json:"source_id"`      // routes.source_id -> stations.id
	DestinationID uint64    `json:"destination_id"` // routes.destination_id -> stations.id
	Distance      uint32    `json:"distance"`       // routes.distance (km)
	CreatedAt     time.Time `json:"created_at"`     // routes.created_at
}
