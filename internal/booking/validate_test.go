package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-station-booking/internal/model"
)

func layoutTrain() *model.Train {
	return &model.Train{ID: 1, Name: "Express 7", CargoCount: 10, SeatsPerCargo: 36}
}

func TestValidateSeatAccepts(t *testing.T) {
	cases := []struct {
		name  string
		cargo uint32
		seat  uint32
	}{
		{"lower bounds", 1, 1},
		{"upper bounds", 10, 36},
		{"middle", 5, 18},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, ValidateSeat(tc.cargo, tc.seat, layoutTrain()))
		})
	}
}

func TestValidateSeatRejectsCargo(t *testing.T) {
	for _, cargo := range []uint32{0, 11, 100} {
		violations := ValidateSeat(cargo, 1, layoutTrain())
		require.Len(t, violations, 1)
		assert.Equal(t, "cargo_number", violations[0].Field)
		assert.Equal(t, cargo, violations[0].Value)
		assert.Equal(t, uint32(10), violations[0].Max)
	}
}

func TestValidateSeatRejectsSeat(t *testing.T) {
	for _, seat := range []uint32{0, 37, 500} {
		violations := ValidateSeat(1, seat, layoutTrain())
		require.Len(t, violations, 1)
		assert.Equal(t, "seat_number", violations[0].Field)
		assert.Equal(t, uint32(36), violations[0].Max)
	}
}

func TestValidateSeatReportsAllViolations(t *testing.T) {
	violations := ValidateSeat(0, 40, layoutTrain())
	require.Len(t, violations, 2)
	assert.Equal(t, "cargo_number", violations[0].Field)
	assert.Equal(t, "seat_number", violations[1].Field)
}
