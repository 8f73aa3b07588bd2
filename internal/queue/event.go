// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketInfo is one booked seat inside an OrderCreatedEvent.
type TicketInfo struct {
	JourneyID   uint64 `json:"journey_id"`
	CargoNumber uint32 `json:"cargo_number"`
	SeatNumber  uint32 `json:"seat_number"`
}

// OrderCreatedEvent is published after an order commits. It carries enough
// information for downstream consumers to log, notify, or feed analytics
// without querying the primary database.
type OrderCreatedEvent struct {
	OrderID   uint64       `json:"order_id"`
	UserID    uint64       `json:"user_id"`
	Tickets   []TicketInfo `json:"tickets"`
	CreatedAt string       `json:"created_at"`
}
