package system

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/wallrun/internal/domain/entity"
	"github.com/younwookim/wallrun/internal/infrastructure/config"
)

// JumpHandler gets the first chance to consume a jump press
type JumpHandler interface {
	OnJumpRequested() bool
}

// KeyBindings maps each action to the keys that trigger it
type KeyBindings struct {
	Forward   []ebiten.Key
	Back      []ebiten.Key
	Left      []ebiten.Key
	Right     []ebiten.Key
	TurnLeft  []ebiten.Key
	TurnRight []ebiten.Key
	LookUp    []ebiten.Key
	LookDown  []ebiten.Key
	Jump      []ebiten.Key
}

// DefaultKeyBindings returns WASD movement, arrow/QE turning, page up/down to
// look and space to jump
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Forward:   []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Back:      []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Left:      []ebiten.Key{ebiten.KeyA},
		Right:     []ebiten.Key{ebiten.KeyD},
		TurnLeft:  []ebiten.Key{ebiten.KeyQ, ebiten.KeyArrowLeft},
		TurnRight: []ebiten.Key{ebiten.KeyE, ebiten.KeyArrowRight},
		LookUp:    []ebiten.Key{ebiten.KeyPageUp},
		LookDown:  []ebiten.Key{ebiten.KeyPageDown},
		Jump:      []ebiten.Key{ebiten.KeySpace},
	}
}

// ParseKeyBindings resolves key names from cfg. Actions left empty keep
// their default keys.
func ParseKeyBindings(cfg *config.InputConfig) (KeyBindings, error) {
	kb := DefaultKeyBindings()
	if cfg == nil {
		return kb, nil
	}

	actions := []struct {
		name  string
		names []string
		keys  *[]ebiten.Key
	}{
		{"forward", cfg.Bindings.Forward, &kb.Forward},
		{"back", cfg.Bindings.Back, &kb.Back},
		{"left", cfg.Bindings.Left, &kb.Left},
		{"right", cfg.Bindings.Right, &kb.Right},
		{"turnLeft", cfg.Bindings.TurnLeft, &kb.TurnLeft},
		{"turnRight", cfg.Bindings.TurnRight, &kb.TurnRight},
		{"lookUp", cfg.Bindings.LookUp, &kb.LookUp},
		{"lookDown", cfg.Bindings.LookDown, &kb.LookDown},
		{"jump", cfg.Bindings.Jump, &kb.Jump},
	}
	for _, a := range actions {
		if len(a.names) == 0 {
			continue
		}
		keys := make([]ebiten.Key, 0, len(a.names))
		for _, name := range a.names {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(name)); err != nil {
				return KeyBindings{}, fmt.Errorf("binding %s: %w", a.name, err)
			}
			keys = append(keys, k)
		}
		*a.keys = keys
	}
	return kb, nil
}

// maxPitch bounds the view pitch in degrees
const maxPitch = 89.0

// InputState holds the current input state
type InputState struct {
	Forward      float64 // -1 back .. 1 forward
	Right        float64 // -1 left .. 1 right
	Turn         float64 // -1 turn left .. 1 turn right
	Look         float64 // -1 look down .. 1 look up
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
}

// InputSystem handles player input
type InputSystem struct {
	config   *config.PhysicsConfig
	bindings KeyBindings
	jump     JumpHandler
}

// NewInputSystem creates a new input system. jump may be nil.
func NewInputSystem(cfg *config.PhysicsConfig, bindings KeyBindings, jump JumpHandler) *InputSystem {
	return &InputSystem{config: cfg, bindings: bindings, jump: jump}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	kb := s.bindings
	return InputState{
		Forward:      axis(anyPressed(kb.Back), anyPressed(kb.Forward)),
		Right:        axis(anyPressed(kb.Left), anyPressed(kb.Right)),
		Turn:         axis(anyPressed(kb.TurnLeft), anyPressed(kb.TurnRight)),
		Look:         axis(anyPressed(kb.LookDown), anyPressed(kb.LookUp)),
		Jump:         anyPressed(kb.Jump),
		JumpPressed:  anyJustPressed(kb.Jump),
		JumpReleased: anyJustReleased(kb.Jump),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

func axis(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v--
	}
	if positive {
		v++
	}
	return v
}

// UpdateCharacter applies input to the character for one frame
func (s *InputSystem) UpdateCharacter(c *entity.Character, input InputState, dt float64) {
	// Axis values persist on the character until the next delivery
	c.Input = entity.AxisInput{Forward: input.Forward, Right: input.Right}

	// Update timers
	s.updateTimers(c, dt)

	// Turn
	c.View.Yaw = math.Mod(c.View.Yaw+input.Turn*s.config.Movement.TurnRate*dt, 360)

	// Look up/down; pitch only moves the view, never the body
	pitch := c.View.Pitch + input.Look*s.config.Movement.LookRate*dt
	c.View.Pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch))

	// Wall running owns horizontal velocity
	if !c.IsWallRunning() {
		s.handleMovement(c, input, dt)
	}

	// Jump
	s.handleJump(c, input)
}

// updateTimers updates coyote and jump buffer timers
func (s *InputSystem) updateTimers(c *entity.Character, dt float64) {
	// Coyote time
	if c.OnGround {
		c.CoyoteTimer = s.config.Jump.CoyoteTime
	} else if c.CoyoteTimer > 0 {
		c.CoyoteTimer -= dt
	}

	// Jump buffer
	if c.JumpBufferTimer > 0 {
		c.JumpBufferTimer -= dt
	}

	// Landing ends an ordinary jump
	if c.OnGround && c.Vel.Y() <= 0 {
		c.Jumping = false
	}
}

// handleMovement accelerates horizontal velocity toward the input direction
func (s *InputSystem) handleMovement(c *entity.Character, input InputState, dt float64) {
	wish := c.ForwardVector().Mul(input.Forward).Add(c.RightVector().Mul(input.Right))
	if wish.Len() > 1 {
		wish = entity.SafeNormal(wish)
	}
	target := wish.Mul(s.config.Movement.MaxSpeed)

	rate := s.config.Movement.Deceleration
	if !entity.IsZero(wish) {
		rate = s.config.Movement.Acceleration
	}

	// Air control
	if !c.OnGround {
		rate *= s.config.Movement.AirControl
	}

	current := mgl64.Vec3{c.Vel.X(), 0, c.Vel.Z()}
	diff := target.Sub(current)
	maxDelta := rate * dt
	if diff.Len() > maxDelta {
		diff = entity.SafeNormal(diff).Mul(maxDelta)
	}
	next := current.Add(diff)
	c.Vel[0] = next.X()
	c.Vel[2] = next.Z()
}

// handleJump handles jump presses and releases
func (s *InputSystem) handleJump(c *entity.Character, input InputState) {
	if input.JumpPressed {
		// A wall run consumes the press as a jump-off
		if s.jump != nil && s.jump.OnJumpRequested() {
			c.JumpBufferTimer = 0
			c.CoyoteTimer = 0
			return
		}
		// Buffer jump input
		c.JumpBufferTimer = s.config.Jump.JumpBuffer
	}

	// Can jump if on ground or has coyote time
	canJump := c.OnGround || c.CoyoteTimer > 0
	wantsJump := c.JumpBufferTimer > 0

	if canJump && wantsJump {
		c.Vel[1] = s.config.Jump.Force
		c.OnGround = false
		c.CoyoteTimer = 0
		c.JumpBufferTimer = 0
		c.Jumping = true
	}

	// Variable jump height (release to reduce upward velocity)
	if input.JumpReleased && c.Jumping && c.Vel.Y() > 0 {
		c.Vel[1] *= s.config.Jump.VariableJumpMultiplier
		c.Jumping = false
	}
}
