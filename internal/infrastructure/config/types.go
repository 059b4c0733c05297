package config

import "math"

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display    DisplayConfig    `json:"display"`
	Physics    PhysicsSettings  `json:"physics"`
	Character  CharacterConfig  `json:"character"`
	Movement   MovementConfig   `json:"movement"`
	Jump       JumpConfig       `json:"jump"`
	WallRun    WallRunConfig    `json:"wallRun"`
	CameraTilt CameraTiltConfig `json:"cameraTilt"`
	Debug      DebugConfig      `json:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int     `json:"screenWidth"`
	ScreenHeight int     `json:"screenHeight"`
	Scale        int     `json:"scale"`
	Framerate    int     `json:"framerate"`
	WorldScale   float64 `json:"worldScale"` // Screen pixels per world unit in the top-down view
}

type PhysicsSettings struct {
	Gravity      float64 `json:"gravity"`
	MaxFallSpeed float64 `json:"maxFallSpeed"`
	// WalkableFloorAngle is the steepest slope in degrees still treated as floor
	WalkableFloorAngle float64 `json:"walkableFloorAngle"`
}

// WalkableFloorY returns the minimum up-component of a walkable floor normal
func (p PhysicsSettings) WalkableFloorY() float64 {
	return math.Cos(p.WalkableFloorAngle * math.Pi / 180)
}

type CharacterConfig struct {
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

type MovementConfig struct {
	Acceleration float64 `json:"acceleration"`
	Deceleration float64 `json:"deceleration"`
	MaxSpeed     float64 `json:"maxSpeed"`
	AirControl   float64 `json:"airControl"`
	TurnRate     float64 `json:"turnRate"` // Degrees per second at full turn axis
	LookRate     float64 `json:"lookRate"` // Degrees per second at full look axis
}

type JumpConfig struct {
	Force                  float64 `json:"force"`
	VariableJumpMultiplier float64 `json:"variableJumpMultiplier"`
	CoyoteTime             float64 `json:"coyoteTime"`
	JumpBuffer             float64 `json:"jumpBuffer"`
}

// WallRunConfig configures the wall-run state machine
type WallRunConfig struct {
	// MaxDuration is the longest a single run may last in seconds.
	// Zero takes DefaultMaxDuration; a negative value leaves runs unbounded.
	MaxDuration float64 `json:"maxDuration"`
	// ProbeLength is the length of the lateral wall probe in world units
	ProbeLength float64 `json:"probeLength"`
}

// CameraTiltConfig configures the view roll applied while wall running.
// A zero amplitude or duration disables the effect.
type CameraTiltConfig struct {
	Amplitude float64 `json:"amplitude"` // Degrees
	Duration  float64 `json:"duration"`  // Seconds from level to full tilt
	Easing    string  `json:"easing"`
}

type DebugConfig struct {
	DrawProbe       bool    `json:"drawProbe"`
	MessageDuration float64 `json:"messageDuration"`
}

// Default values used when a config omits them
const (
	DefaultProbeLength     = 200.0
	DefaultMaxDuration     = 1.5
	DefaultFramerate       = 60
	DefaultMessageDuration = 1.0
)

// ApplyDefaults fills zero values that have a sensible default
func (c *PhysicsConfig) ApplyDefaults() {
	if c.WallRun.ProbeLength <= 0 {
		c.WallRun.ProbeLength = DefaultProbeLength
	}
	if c.WallRun.MaxDuration == 0 {
		c.WallRun.MaxDuration = DefaultMaxDuration
	}
	if c.Display.Framerate <= 0 {
		c.Display.Framerate = DefaultFramerate
	}
	if c.Debug.MessageDuration <= 0 {
		c.Debug.MessageDuration = DefaultMessageDuration
	}
}
