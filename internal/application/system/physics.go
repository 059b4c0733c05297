package system

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/wallrun/internal/domain/entity"
	"github.com/younwookim/wallrun/internal/infrastructure/config"
)

// groundEpsilon is how close the feet must be to a surface to stand on it
const groundEpsilon = 1e-3

// PhysicsSystem integrates one character against the stage and implements
// MovementSink for the wall-run state machine.
type PhysicsSystem struct {
	config    *config.PhysicsConfig
	stage     *entity.Stage
	character *entity.Character

	// contacts holds the normals touched during the previous step
	contacts map[mgl64.Vec3]bool

	// OnContact is called once for each normal that was not touched on the
	// previous step
	OnContact func(normal mgl64.Vec3)
}

// NewPhysicsSystem creates a new physics system for character
func NewPhysicsSystem(cfg *config.PhysicsConfig, stage *entity.Stage, character *entity.Character) *PhysicsSystem {
	return &PhysicsSystem{
		config:    cfg,
		stage:     stage,
		character: character,
		contacts:  make(map[mgl64.Vec3]bool),
	}
}

// Update applies gravity and moves the character for one frame
func (s *PhysicsSystem) Update(dt float64) {
	c := s.character

	// Store previous ground state for coyote time
	c.WasOnGround = c.OnGround

	s.applyGravity(dt)

	touched := make(map[mgl64.Vec3]bool)
	s.applyMovement(c.Vel.Mul(dt), touched)

	s.emitContacts(touched)
}

// applyGravity accelerates the character downward, except along the normal
// of an enabled plane constraint
func (s *PhysicsSystem) applyGravity(dt float64) {
	c := s.character
	gravity := mgl64.Vec3{0, -s.config.Physics.Gravity, 0}

	if c.Constraint.Enabled {
		n := entity.SafeNormal(c.Constraint.Normal)
		gravity = projectOnPlane(gravity, n)
		c.Vel = projectOnPlane(c.Vel, n)
	}

	c.Vel = c.Vel.Add(gravity.Mul(dt))

	// Clamp to max fall speed
	if maxFall := s.config.Physics.MaxFallSpeed; maxFall > 0 && c.Vel.Y() < -maxFall {
		c.Vel[1] = -maxFall
	}
}

// applyMovement moves the character by delta in substeps no longer than half
// the smaller of its radius and the tile size
func (s *PhysicsSystem) applyMovement(delta mgl64.Vec3, touched map[mgl64.Vec3]bool) {
	c := s.character
	c.OnGround = false

	// First, resolve any existing overlaps (push-out). A character reset to
	// spawn does not move this step.
	if !s.resolveOverlap(touched) {
		c.OnGround = s.isSupported()
		return
	}

	maxStep := math.Min(c.Radius, s.stage.TileSize) / 2
	if maxStep <= 0 {
		maxStep = 1
	}
	longest := math.Max(math.Abs(delta.X()), math.Max(math.Abs(delta.Y()), math.Abs(delta.Z())))
	steps := int(math.Ceil(longest / maxStep))
	if steps < 1 {
		steps = 1
	}
	step := delta.Mul(1 / float64(steps))

	for i := 0; i < steps; i++ {
		s.moveX(step.X(), touched)
		s.moveZ(step.Z(), touched)
		s.moveY(step.Y(), touched)
	}

	if !c.OnGround && s.isSupported() {
		c.OnGround = true
	}
}

// moveX moves the character along X, stopping flush against a wall
func (s *PhysicsSystem) moveX(dx float64, touched map[mgl64.Vec3]bool) {
	if dx == 0 {
		return
	}
	c := s.character
	newX := c.Pos.X() + dx
	if !s.blockedAt(newX, c.Pos.Z()) {
		c.Pos[0] = newX
		return
	}

	c.Pos[0] = s.flush(newX, dx)
	c.Vel[0] = 0
	touched[mgl64.Vec3{-sign(dx), 0, 0}] = true
}

// moveZ moves the character along Z, stopping flush against a wall
func (s *PhysicsSystem) moveZ(dz float64, touched map[mgl64.Vec3]bool) {
	if dz == 0 {
		return
	}
	c := s.character
	newZ := c.Pos.Z() + dz
	if !s.blockedAt(c.Pos.X(), newZ) {
		c.Pos[2] = newZ
		return
	}

	c.Pos[2] = s.flush(newZ, dz)
	c.Vel[2] = 0
	touched[mgl64.Vec3{0, 0, -sign(dz)}] = true
}

// moveY moves the character vertically, landing on the floor or a wall top
func (s *PhysicsSystem) moveY(dy float64, touched map[mgl64.Vec3]bool) {
	if dy == 0 {
		return
	}
	c := s.character
	oldY := c.Pos.Y()
	newY := oldY + dy

	if dy < 0 {
		floor := 0.0
		top := s.stage.WallHeight
		if oldY >= top-groundEpsilon && newY < top && s.overlapsWall() {
			floor = top
		}
		if newY <= floor {
			c.Pos[1] = floor
			c.Vel[1] = 0
			c.OnGround = true
			touched[entity.Up] = true
			return
		}
	}
	c.Pos[1] = newY
}

// flush returns the coordinate that leaves the character touching the tile
// boundary it ran into along one axis
func (s *PhysicsSystem) flush(blocked, d float64) float64 {
	r := s.character.Radius
	size := s.stage.TileSize
	if d > 0 {
		tile := s.stage.TileCoord(blocked + r)
		return float64(tile)*size - r
	}
	tile := s.stage.TileCoord(blocked - r)
	return float64(tile+1)*size + r
}

// blockedAt reports whether standing at (x, z) at the current height would
// intersect a wall
func (s *PhysicsSystem) blockedAt(x, z float64) bool {
	if s.character.Pos.Y() >= s.stage.WallHeight-groundEpsilon {
		return false
	}
	return s.stage.OverlapsSolid(x, z, s.character.Radius)
}

func (s *PhysicsSystem) overlapsWall() bool {
	c := s.character
	return s.stage.OverlapsSolid(c.Pos.X(), c.Pos.Z(), c.Radius)
}

// isSupported reports whether the feet rest on the floor or on a wall top
func (s *PhysicsSystem) isSupported() bool {
	c := s.character
	if c.Vel.Y() > 0 {
		return false
	}
	y := c.Pos.Y()
	if y <= groundEpsilon {
		return true
	}
	return math.Abs(y-s.stage.WallHeight) <= groundEpsilon && s.overlapsWall()
}

// resolveOverlap pushes the character out of any wall it is inside.
// Returns false if it was stuck and had to be reset to spawn.
func (s *PhysicsSystem) resolveOverlap(touched map[mgl64.Vec3]bool) bool {
	c := s.character
	if !s.blockedAt(c.Pos.X(), c.Pos.Z()) {
		return true // No overlap
	}

	maxPushOut := c.Radius
	increment := maxPushOut / 8
	if increment <= 0 {
		increment = 1
	}

	type pushOption struct {
		dir      mgl64.Vec3
		distance float64
	}
	var options []pushOption

	// Try pushing along each horizontal direction
	for _, dir := range []mgl64.Vec3{{-1, 0, 0}, {1, 0, 0}, {0, 0, -1}, {0, 0, 1}} {
		for d := increment; d <= maxPushOut; d += increment {
			p := c.Pos.Add(dir.Mul(d))
			if !s.blockedAt(p.X(), p.Z()) {
				options = append(options, pushOption{dir, d})
				break
			}
		}
	}

	// Pick the smallest push-out
	if len(options) == 0 {
		// Can't resolve - reset character to spawn position
		c.Pos = s.stage.Spawn
		c.Vel = mgl64.Vec3{}
		return false
	}

	best := options[0]
	for _, opt := range options[1:] {
		if opt.distance < best.distance {
			best = opt
		}
	}

	c.Pos = c.Pos.Add(best.dir.Mul(best.distance))
	touched[best.dir] = true
	if best.dir.X() != 0 {
		c.Vel[0] = 0
	} else {
		c.Vel[2] = 0
	}
	return true
}

// emitContacts reports normals that were not touched on the previous step
func (s *PhysicsSystem) emitContacts(touched map[mgl64.Vec3]bool) {
	if s.OnContact != nil {
		for _, n := range sortedNormals(touched) {
			if !s.contacts[n] {
				s.OnContact(n)
			}
		}
	}
	s.contacts = touched
}

// sortedNormals orders normals so contact events are deterministic
func sortedNormals(set map[mgl64.Vec3]bool) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return normalLess(out[i], out[j]) })
	return out
}

func normalLess(a, b mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// IsAirborne reports whether the character has no ground under it
func (s *PhysicsSystem) IsAirborne() bool {
	return !s.character.OnGround
}

// WalkableFloorY returns the walkable-floor threshold of the movement model
func (s *PhysicsSystem) WalkableFloorY() float64 {
	return s.config.Physics.WalkableFloorY()
}

// SetPlaneConstraint enables or disables the plane constraint.
// Enabling it removes the velocity component along normal immediately.
func (s *PhysicsSystem) SetPlaneConstraint(enabled bool, normal mgl64.Vec3) {
	c := s.character
	c.Constraint = entity.PlaneConstraint{Enabled: enabled, Normal: normal}
	if enabled {
		c.Vel = projectOnPlane(c.Vel, entity.SafeNormal(normal))
	}
}

// MaxSpeed returns the maximum horizontal movement speed
func (s *PhysicsSystem) MaxSpeed() float64 {
	return s.config.Movement.MaxSpeed
}

// SetVelocity replaces the velocity, respecting an enabled plane constraint
func (s *PhysicsSystem) SetVelocity(v mgl64.Vec3) {
	c := s.character
	if c.Constraint.Enabled {
		v = projectOnPlane(v, entity.SafeNormal(c.Constraint.Normal))
	}
	c.Vel = v
}

// JumpImpulse returns the jump impulse magnitude
func (s *PhysicsSystem) JumpImpulse() float64 {
	return s.config.Jump.Force
}

// Launch adds v horizontally and replaces the vertical velocity with v.Y
func (s *PhysicsSystem) Launch(v mgl64.Vec3) {
	c := s.character
	c.Vel = mgl64.Vec3{c.Vel.X() + v.X(), v.Y(), c.Vel.Z() + v.Z()}
	if v.Y() > 0 {
		c.OnGround = false
	}
}

func projectOnPlane(v, n mgl64.Vec3) mgl64.Vec3 {
	if entity.IsZero(n) {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n)))
}

// Helper functions
func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
