// Package repository defines error values shared across the data access
// layer. Sentinel values let handlers and the booking service distinguish
// failure scenarios without string matching at the call site: ErrConflict
// maps to HTTP 409, and ErrSeatTaken marks the loss of a duplicate-seat
// race inside a booking transaction.
package repository

import (
	"errors"
	"strings"
)

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as deleting a
// train that still has scheduled journeys.
var ErrConflict = errors.New("conflict")

// ErrSeatTaken is returned when a ticket insert hits the
// uq_ticket_seat unique index: another committed ticket already
// claims the same (journey, cargo_number, seat_number).
var ErrSeatTaken = errors.New("seat already taken")

// isDuplicateEntry reports whether err is a MySQL duplicate-key
// violation (error 1062).
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
