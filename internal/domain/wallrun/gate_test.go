package wallrun

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/wallrun/internal/domain/entity"
)

func TestCanRun(t *testing.T) {
	tests := []struct {
		name    string
		side    entity.RunSide
		forward float64
		right   float64
		want    bool
	}{
		{"right side holding forward", entity.SideRight, 1, 0, true},
		{"left side holding forward", entity.SideLeft, 1, 0, true},
		{"neutral forward", entity.SideRight, 0, 0, false},
		{"forward at threshold", entity.SideLeft, 0.1, 0, false},
		{"forward just over threshold", entity.SideLeft, 0.11, 0, true},
		{"back-pedaling", entity.SideRight, -1, 0, false},
		{"right side steering into wall", entity.SideRight, 1, 1, true},
		{"right side contrary at tolerance", entity.SideRight, 1, -0.1, true},
		{"right side steering away", entity.SideRight, 1, -0.5, false},
		{"left side steering into wall", entity.SideLeft, 1, -1, true},
		{"left side contrary at tolerance", entity.SideLeft, 1, 0.1, true},
		{"left side steering away", entity.SideLeft, 1, 0.5, false},
		{"no side", entity.SideNone, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axes := entity.AxisInput{Forward: tt.forward, Right: tt.right}
			assert.Equal(t, tt.want, CanRun(tt.side, axes))
		})
	}
}
