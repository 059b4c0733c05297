package entity

import "github.com/go-gl/mathgl/mgl64"

// PlaneConstraint restricts movement along Normal while Enabled
type PlaneConstraint struct {
	Enabled bool
	Normal  mgl64.Vec3
}

// Body represents the physical body of a character.
// Pos is the bottom centre of the collision volume.
type Body struct {
	Pos mgl64.Vec3
	Vel mgl64.Vec3

	Radius float64
	Height float64

	OnGround    bool
	WasOnGround bool // For coyote time
	Constraint  PlaneConstraint
}

// Center returns the centre of the collision volume
func (b *Body) Center() mgl64.Vec3 {
	return b.Pos.Add(mgl64.Vec3{0, b.Height / 2, 0})
}

// HorizontalSpeed returns the length of the XZ velocity
func (b *Body) HorizontalSpeed() float64 {
	return mgl64.Vec2{b.Vel.X(), b.Vel.Z()}.Len()
}

// View is the controller view rotation in degrees
type View struct {
	Yaw   float64
	Pitch float64
	Roll  float64
}

// Character represents the first-person player character
type Character struct {
	ID EntityID
	Body
	View View

	Input   AxisInput
	WallRun WallRunState

	// Timers
	CoyoteTimer     float64
	JumpBufferTimer float64

	// Jumping is set by an ordinary jump and cleared on release or landing
	Jumping bool
}

// NewCharacter creates a character standing at pos facing yaw degrees
func NewCharacter(id EntityID, pos mgl64.Vec3, yaw, radius, height float64) *Character {
	return &Character{
		ID: id,
		Body: Body{
			Pos:    pos,
			Radius: radius,
			Height: height,
		},
		View: View{Yaw: yaw},
	}
}

// Location returns the actor location used for wall probes
func (c *Character) Location() mgl64.Vec3 {
	return c.Center()
}

// ForwardVector returns the horizontal facing direction
func (c *Character) ForwardVector() mgl64.Vec3 {
	return ForwardFromYaw(c.View.Yaw)
}

// RightVector returns the horizontal right-hand direction
func (c *Character) RightVector() mgl64.Vec3 {
	return RightFromYaw(c.View.Yaw)
}

// Axes returns the last delivered axis input
func (c *Character) Axes() AxisInput {
	return c.Input
}

// SetViewRoll writes the controller view roll in degrees
func (c *Character) SetViewRoll(deg float64) {
	c.View.Roll = deg
}

// IsWallRunning returns true while the character is running along a wall
func (c *Character) IsWallRunning() bool {
	return c.WallRun.Running
}
