package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/wallrun/internal/domain/entity"
	"github.com/younwookim/wallrun/internal/infrastructure/config"
)

func createTestPhysicsConfig() *config.PhysicsConfig {
	return &config.PhysicsConfig{
		Physics: config.PhysicsSettings{
			Gravity:            1000,
			MaxFallSpeed:       400,
			WalkableFloorAngle: 60,
		},
		Movement: config.MovementConfig{
			Acceleration: 2000,
			Deceleration: 2000,
			MaxSpeed:     600,
			AirControl:   0.5,
			TurnRate:     90,
			LookRate:     45,
		},
		Jump: config.JumpConfig{
			Force:                  500,
			CoyoteTime:             0.1,
			JumpBuffer:             0.1,
			VariableJumpMultiplier: 0.5,
		},
		WallRun: config.WallRunConfig{
			MaxDuration: 1.5,
			ProbeLength: 200,
		},
	}
}

func createTestStage() *entity.Stage {
	// Create a simple stage with walls around empty center
	// 5x5 tile map with 100 unit tiles = 500x500 units
	tiles := make([][]entity.Tile, 5)
	for z := 0; z < 5; z++ {
		tiles[z] = make([]entity.Tile, 5)
		for x := 0; x < 5; x++ {
			// Walls on edges, empty in center
			if x == 0 || x == 4 || z == 0 || z == 4 {
				tiles[z][x] = entity.Tile{Type: entity.TileWall, Solid: true}
			}
		}
	}

	return &entity.Stage{
		Width:      5,
		Depth:      5,
		TileSize:   100,
		WallHeight: 300,
		Tiles:      tiles,
		Spawn:      mgl64.Vec3{250, 0, 250},
	}
}

func createTestCharacter(pos mgl64.Vec3) *entity.Character {
	return entity.NewCharacter(1, pos, 0, 25, 180)
}

func createTestPhysics(pos mgl64.Vec3) (*PhysicsSystem, *entity.Character, *[]mgl64.Vec3) {
	c := createTestCharacter(pos)
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestStage(), c)
	contacts := &[]mgl64.Vec3{}
	sys.OnContact = func(n mgl64.Vec3) { *contacts = append(*contacts, n) }
	return sys, c, contacts
}

func TestPhysicsSystem_ApplyGravity(t *testing.T) {
	t.Run("falls when airborne", func(t *testing.T) {
		sys, c, _ := createTestPhysics(mgl64.Vec3{250, 100, 250})

		sys.Update(0.1)

		assert.InDelta(t, -100.0, c.Vel.Y(), 1e-9)
		assert.InDelta(t, 90.0, c.Pos.Y(), 1e-9)
		assert.False(t, c.OnGround)
		assert.True(t, sys.IsAirborne())
	})

	t.Run("clamps to max fall speed", func(t *testing.T) {
		sys, c, _ := createTestPhysics(mgl64.Vec3{250, 200, 250})
		c.Vel = mgl64.Vec3{0, -5000, 0}

		sys.Update(0.01)

		assert.Equal(t, -400.0, c.Vel.Y())
	})

	t.Run("plane constraint suppresses vertical motion", func(t *testing.T) {
		sys, c, _ := createTestPhysics(mgl64.Vec3{250, 100, 150})
		c.Vel = mgl64.Vec3{0, -50, 100}

		sys.SetPlaneConstraint(true, entity.Up)
		assert.Equal(t, 0.0, c.Vel.Y())

		sys.Update(0.1)

		assert.Equal(t, 100.0, c.Pos.Y())
		assert.InDelta(t, 160.0, c.Pos.Z(), 1e-9)
		assert.Equal(t, 0.0, c.Vel.Y())

		sys.SetPlaneConstraint(false, mgl64.Vec3{})
		sys.Update(0.1)
		assert.Less(t, c.Pos.Y(), 100.0)
	})
}

func TestPhysicsSystem_Landing(t *testing.T) {
	sys, c, contacts := createTestPhysics(mgl64.Vec3{250, 5, 250})
	c.Vel = mgl64.Vec3{0, -100, 0}

	sys.Update(0.1)

	assert.Equal(t, 0.0, c.Pos.Y())
	assert.Equal(t, 0.0, c.Vel.Y())
	assert.True(t, c.OnGround)
	assert.False(t, sys.IsAirborne())
	assert.Equal(t, []mgl64.Vec3{entity.Up}, *contacts)

	// Standing keeps the same contact, so nothing new is reported
	sys.Update(0.1)
	assert.True(t, c.OnGround)
	assert.True(t, c.WasOnGround)
	assert.Len(t, *contacts, 1)
}

func TestPhysicsSystem_MoveX(t *testing.T) {
	t.Run("stops flush against wall", func(t *testing.T) {
		sys, c, contacts := createTestPhysics(mgl64.Vec3{350, 100, 250})
		c.Vel = mgl64.Vec3{1000, 0, 0}

		sys.Update(0.1)

		assert.InDelta(t, 375.0, c.Pos.X(), 1e-9)
		assert.Equal(t, 0.0, c.Vel.X())
		assert.Equal(t, []mgl64.Vec3{{-1, 0, 0}}, *contacts)
	})

	t.Run("stops flush against wall moving left", func(t *testing.T) {
		sys, c, contacts := createTestPhysics(mgl64.Vec3{150, 100, 250})
		c.Vel = mgl64.Vec3{-1000, 0, 0}

		sys.Update(0.1)

		assert.InDelta(t, 125.0, c.Pos.X(), 1e-9)
		assert.Equal(t, []mgl64.Vec3{{1, 0, 0}}, *contacts)
	})

	t.Run("moves freely", func(t *testing.T) {
		sys, c, contacts := createTestPhysics(mgl64.Vec3{200, 100, 250})
		c.Vel = mgl64.Vec3{500, 0, 0}

		sys.Update(0.1)

		assert.InDelta(t, 250.0, c.Pos.X(), 1e-9)
		assert.Empty(t, *contacts)
	})
}

func TestPhysicsSystem_MoveZ(t *testing.T) {
	sys, c, contacts := createTestPhysics(mgl64.Vec3{250, 100, 350})
	c.Vel = mgl64.Vec3{0, 0, 1000}

	sys.Update(0.1)

	assert.InDelta(t, 375.0, c.Pos.Z(), 1e-9)
	assert.Equal(t, 0.0, c.Vel.Z())
	assert.Equal(t, []mgl64.Vec3{{0, 0, -1}}, *contacts)
}

func TestPhysicsSystem_ContactsAreEdgeTriggered(t *testing.T) {
	sys, c, contacts := createTestPhysics(mgl64.Vec3{350, 200, 250})

	c.Vel = mgl64.Vec3{1000, 0, 0}
	sys.Update(0.05)
	require.Len(t, *contacts, 1)

	// Still pushing into the same wall
	c.Vel[0] = 1000
	sys.Update(0.05)
	assert.Len(t, *contacts, 1)

	// Drift away for a step, then touch again
	c.Vel[0] = 0
	sys.Update(0.05)
	c.Vel[0] = 1000
	sys.Update(0.05)
	assert.Len(t, *contacts, 2)
}

func TestPhysicsSystem_LandsOnWallTop(t *testing.T) {
	sys, c, _ := createTestPhysics(mgl64.Vec3{50, 300, 250})

	sys.Update(0.1)

	assert.Equal(t, 300.0, c.Pos.Y())
	assert.True(t, c.OnGround)
}

func TestPhysicsSystem_ResolveOverlap(t *testing.T) {
	t.Run("pushes out of wall", func(t *testing.T) {
		sys, c, _ := createTestPhysics(mgl64.Vec3{110, 0, 250})

		touched := make(map[mgl64.Vec3]bool)
		ok := sys.resolveOverlap(touched)

		assert.True(t, ok)
		assert.InDelta(t, 125.625, c.Pos.X(), 1e-9)
		assert.True(t, touched[mgl64.Vec3{1, 0, 0}])
	})

	t.Run("resets to spawn when stuck", func(t *testing.T) {
		sys, c, _ := createTestPhysics(mgl64.Vec3{50, 0, 50})
		c.Vel = mgl64.Vec3{10, 10, 10}

		ok := sys.resolveOverlap(make(map[mgl64.Vec3]bool))

		assert.False(t, ok)
		assert.Equal(t, mgl64.Vec3{250, 0, 250}, c.Pos)
		assert.Equal(t, mgl64.Vec3{}, c.Vel)
	})
}

func TestPhysicsSystem_StuckCharacterRespawns(t *testing.T) {
	sys, c, contacts := createTestPhysics(mgl64.Vec3{50, 0, 50})
	c.Vel = mgl64.Vec3{300, 0, 300}

	sys.Update(0.1)

	assert.Equal(t, mgl64.Vec3{250, 0, 250}, c.Pos)
	assert.Equal(t, mgl64.Vec3{}, c.Vel)
	assert.True(t, c.OnGround)
	assert.Empty(t, *contacts)
}

func TestPhysicsSystem_MovementSink(t *testing.T) {
	sys, c, _ := createTestPhysics(mgl64.Vec3{250, 100, 250})

	assert.InDelta(t, 0.5, sys.WalkableFloorY(), 1e-9)
	assert.Equal(t, 600.0, sys.MaxSpeed())
	assert.Equal(t, 500.0, sys.JumpImpulse())

	sys.SetPlaneConstraint(true, entity.Up)
	sys.SetVelocity(mgl64.Vec3{0, 50, 600})
	assert.Equal(t, mgl64.Vec3{0, 0, 600}, c.Vel)
	assert.True(t, c.Constraint.Enabled)

	sys.SetPlaneConstraint(false, mgl64.Vec3{})
	c.Vel = mgl64.Vec3{100, -300, 0}
	c.OnGround = true
	sys.Launch(mgl64.Vec3{0, 500, -200})

	assert.Equal(t, mgl64.Vec3{100, 500, -200}, c.Vel)
	assert.False(t, c.OnGround)
}

func TestHelperFunctions(t *testing.T) {
	assert.Equal(t, 1.0, sign(3))
	assert.Equal(t, -1.0, sign(-0.5))
	assert.Equal(t, 0.0, sign(0))

	v := projectOnPlane(mgl64.Vec3{1, 2, 3}, entity.Up)
	assert.Equal(t, mgl64.Vec3{1, 0, 3}, v)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, projectOnPlane(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{}))
}
