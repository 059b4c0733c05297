package entity

import "github.com/go-gl/mathgl/mgl64"

// RunSide identifies which lateral side of the character a wall is on
type RunSide int

const (
	SideNone RunSide = iota
	SideLeft
	SideRight
)

// String returns the string representation of the run side
func (s RunSide) String() string {
	switch s {
	case SideNone:
		return "None"
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// TimerHandle identifies a scheduled frame-clock callback. Zero means no timer.
type TimerHandle uint64

// WallRunState is the per-character wall-run state.
//
// Side is SideNone exactly when Running is false, and Timer is non-zero only
// while Running.
type WallRunState struct {
	Running   bool
	Side      RunSide
	Direction mgl64.Vec3 // unit along-wall travel direction, zero when not running
	Timer     TimerHandle

	Elapsed    float64    // seconds since the run started
	LastNormal mgl64.Vec3 // most recent valid wall normal
}

// AxisInput holds the last forward/strafe axis values delivered by input.
// Values persist between ticks until input delivers new ones.
type AxisInput struct {
	Forward float64
	Right   float64
}

// RayHit is the result of a blocking ray cast
type RayHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}
