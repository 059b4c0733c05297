package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/wallrun/internal/domain/entity"
)

// MovementSink is the movement model the wall-run state machine drives
type MovementSink interface {
	IsAirborne() bool
	// WalkableFloorY is the largest normal up-component still treated as a wall
	WalkableFloorY() float64
	SetPlaneConstraint(enabled bool, normal mgl64.Vec3)
	MaxSpeed() float64
	SetVelocity(v mgl64.Vec3)
	JumpImpulse() float64
	// Launch applies an instantaneous impulse that replaces vertical velocity
	Launch(v mgl64.Vec3)
}

// RayCaster answers blocking ray queries against static geometry
type RayCaster interface {
	CastRay(from, to mgl64.Vec3) (entity.RayHit, bool)
}

// AxisSource delivers the last forward/strafe axis values
type AxisSource interface {
	Axes() entity.AxisInput
}

// Actor exposes the pose the wall probe is cast from
type Actor interface {
	Location() mgl64.Vec3
	RightVector() mgl64.Vec3
}

// FrameClock schedules one-shot callbacks on future frames
type FrameClock interface {
	After(delay float64, fn func()) entity.TimerHandle
	Cancel(h entity.TimerHandle) bool
}

// TiltDriver receives tilt-in/tilt-out requests on run transitions
type TiltDriver interface {
	BeginTilt(side entity.RunSide)
	EndTilt()
}

// RollSink receives the interpolated view roll
type RollSink interface {
	SetViewRoll(deg float64)
}
