package model

import "time"

// TrainType categorizes trains (e.g. express, intercity, freight).
// Corresponds to a row in the `train_types` table.
type TrainType struct {
	ID        uint64    `json:"id"`         // train_types.id
	Name      string    `json:"name"`       // train_types.name (unique)
	CreatedAt time.Time `json:"created_at"` // train_types.created_at
}

// Train describes the physical layout of a train.  Trains are
// partitioned into CargoCount identical cars, each holding
// SeatsPerCargo seats.  Both values are positive; administrative
// validation enforces this before a train row is created.  The
// layout is never modified while journeys for the train accept
// bookings, so the derived capacity is stable within any booking
// transaction.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name of the train.
//  TrainTypeID   – reference to the train's type.
//  CargoCount    – number of cars.
//  SeatsPerCargo – seats per car.
type Train struct {
	ID            uint64    `json:"id"`              // trains.id
	Name          string    `json:"name"`            // trains.name
	TrainTypeID   uint64    `json:"train_type_id"`   // trains.train_type_id
	CargoCount    uint32    `json:"cargo_count"`     // trains.cargo_count
	SeatsPerCargo uint32    `json:"seats_per_cargo"` // trains.seats_per_cargo
	CreatedAt     time.Time `json:"created_at"`      // trains.created_at
	UpdatedAt     time.Time `json:"updated_at"`      // trains.updated_at
}

// Capacity returns the total number of seats on the train:
// cargo_count * seats_per_cargo.  Pure derivation, no side effects.
func (t Train) Capacity() uint32 {
	return t.CargoCount * t.SeatsPerCargo
}
