// Package booking implements the seat allocation core: per-field seat
// validation against a train's layout and the atomic creation of an
// order together with its tickets.
package booking

import "github.com/iliyamo/train-station-booking/internal/model"

// ValidateSeat checks a (cargo_number, seat_number) pair against the
// train's capacity bounds.  Both coordinates are checked
// independently and every violation is reported, so a request that is
// wrong on both axes yields two field errors.  Pure predicate; no
// side effects.
func ValidateSeat(cargoNumber, seatNumber uint32, train *model.Train) []FieldError {
	rules := []struct {
		field string
		value uint32
		max   uint32
	}{
		{"cargo_number", cargoNumber, train.CargoCount},
		{"seat_number", seatNumber, train.SeatsPerCargo},
	}
	var violations []FieldError
	for _, r := range rules {
		if r.value < 1 || r.value > r.max {
			violations = append(violations, FieldError{Field: r.field, Value: r.value, Max: r.max})
		}
	}
	return violations
}
