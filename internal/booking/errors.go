package booking

import (
	"errors"
	"fmt"
)

// ErrEmptyOrder is returned when a booking request contains no
// tickets.  Nothing is written to the store in that case.
var ErrEmptyOrder = errors.New("order must contain at least one ticket")

// FieldError reports one seat coordinate outside the train's bounds.
// Valid values for a field are 1..Max.
type FieldError struct {
	Field string `json:"field"` // "cargo_number" | "seat_number"
	Value uint32 `json:"value"`
	Max   uint32 `json:"max"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s must be in range [1, %d], got %d", e.Field, e.Max, e.Value)
}

// SeatRangeError aborts a booking because one ticket request names a
// seat outside its train's layout.  Index is the position of the
// offending request in the submitted list; Fields holds every
// violated coordinate, not just the first.
type SeatRangeError struct {
	Index  int
	Fields []FieldError
}

func (e *SeatRangeError) Error() string {
	return fmt.Sprintf("ticket %d: %d field(s) out of range", e.Index, len(e.Fields))
}

// SeatTakenError aborts a booking because the requested seat is
// already sold on that journey.  The conflict is detected by the
// store's unique index at insert time, so it also covers seats sold
// by transactions that committed after this booking began.  Callers
// may retry with a different seat.
type SeatTakenError struct {
	Index       int
	JourneyID   uint64
	CargoNumber uint32
	SeatNumber  uint32
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("ticket %d: seat %d/%d on journey %d is already taken",
		e.Index, e.CargoNumber, e.SeatNumber, e.JourneyID)
}

// JourneyNotFoundError aborts a booking because a ticket request
// references a journey that does not exist.
type JourneyNotFoundError struct {
	Index     int
	JourneyID uint64
}

func (e *JourneyNotFoundError) Error() string {
	return fmt.Sprintf("ticket %d: journey %d not found", e.Index, e.JourneyID)
}
