package model

import "time"

// Station is a named point on the rail network with geographic
// coordinates.  Station names are unique.  Latitude must lie in
// [-90, 90] and longitude in [-180, 180]; the admin handler
// validates both before insertion.
type Station struct {
	ID        uint64    `json:"id"`         // stations.id
	Name      string    `json:"name"`       // stations.name (unique)
	Latitude  float64   `json:"latitude"`   // stations.latitude
	Longitude float64   `json:"longitude"`  // stations.longitude
	CreatedAt time.Time `json:"created_at"` // stations.created_at
	UpdatedAt time.Time `json:"updated_at"` // stations.updated_at
}
