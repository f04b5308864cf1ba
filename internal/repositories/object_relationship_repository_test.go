package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverseOf(t *testing.T) {
	tests := []struct {
		name             string
		relationshipType int
		want             int
	}{
		{"even pairs with its predecessor", 22, 21},
		{"odd pairs with its successor", 21, 22},
		{"another even pair", 24, 23},
		{"another odd pair", 23, 24},
		{"first pair", 2, 1},
		{"self converse type maps to itself", 35, 35},
		{"even above the pivot pairs upward", 36, 37},
		{"odd above the pivot pairs downward", 37, 36},
		{"zero is undefined", 0, 0},
		{"negative is undefined", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConverseOf(tt.relationshipType))
		})
	}
}

func TestConverseOf_Involution(t *testing.T) {
	// applying the converse twice always returns the original type
	for rt := 1; rt <= 40; rt++ {
		assert.Equal(t, rt, ConverseOf(ConverseOf(rt)), "type %d", rt)
	}
}
