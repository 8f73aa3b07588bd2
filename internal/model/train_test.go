package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrainCapacity(t *testing.T) {
	cases := []struct {
		name  string
		train Train
		want  uint32
	}{
		{"standard layout", Train{CargoCount: 10, SeatsPerCargo: 36}, 360},
		{"single cargo", Train{CargoCount: 1, SeatsPerCargo: 50}, 50},
		{"single seat per cargo", Train{CargoCount: 8, SeatsPerCargo: 1}, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.train.Capacity())
		})
	}
}
