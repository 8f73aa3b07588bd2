package model

import "time"

// Order groups one or more tickets purchased by a user in a single
// booking transaction.  An order with zero tickets is invalid and is
// never persisted: the order row and its tickets are committed
// together or not at all.  Deleting an order cascades to its tickets.
type Order struct {
	ID        uint64    `json:"id"`         // orders.id
	UserID    uint64    `json:"user_id"`    // orders.user_id
	CreatedAt time.Time `json:"created_at"` // orders.created_at
}

// Ticket is a claim on one specific seat (cargo_number, seat_number)
// for one specific journey.  CargoNumber and SeatNumber are 1-indexed
// and bounded by the journey's train layout.  The database enforces
// that at most one ticket exists per (journey, cargo_number,
// seat_number) via the uq_ticket_seat unique index; that constraint,
// not application locking, is what makes concurrent bookings safe.
type Ticket struct {
	ID          uint64    `json:"id"`           // tickets.id
	OrderID     uint64    `json:"order_id"`     // tickets.order_id
	JourneyID   uint64    `json:"journey_id"`   // tickets.journey_id
	CargoNumber uint32    `json:"cargo_number"` // tickets.cargo_number
	SeatNumber  uint32    `json:"seat_number"`  // tickets.seat_number
	CreatedAt   time.Time `json:"created_at"`   // tickets.created_at
}
