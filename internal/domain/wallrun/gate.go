package wallrun

import "github.com/younwookim/wallrun/internal/domain/entity"

const (
	// MinForwardAxis is the forward axis value that must be exceeded to run
	MinForwardAxis = 0.1
	// MaxContraryAxis is how far the strafe axis may point away from the wall
	MaxContraryAxis = 0.1
)

// CanRun decides whether the held axes allow starting or continuing a run on side.
// The strafe tolerance keeps small contrary axis noise from ending a run.
func CanRun(side entity.RunSide, axes entity.AxisInput) bool {
	if axes.Forward <= MinForwardAxis {
		return false
	}

	switch side {
	case entity.SideRight:
		return axes.Right >= -MaxContraryAxis
	case entity.SideLeft:
		return axes.Right <= MaxContraryAxis
	default:
		return false
	}
}
