package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/wallrun/internal/domain/entity"
	"github.com/younwookim/wallrun/internal/infrastructure/config"
)

type fakeRoll struct {
	writes []float64
}

func (r *fakeRoll) SetViewRoll(deg float64) { r.writes = append(r.writes, deg) }

func (r *fakeRoll) last() float64 {
	if len(r.writes) == 0 {
		return 0
	}
	return r.writes[len(r.writes)-1]
}

func createTestTilt() (*CameraTiltSystem, *fakeRoll) {
	roll := &fakeRoll{}
	cfg := &config.CameraTiltConfig{Amplitude: 10, Duration: 1, Easing: "linear"}
	return NewCameraTiltSystem(cfg, roll), roll
}

func TestTiltPhase_String(t *testing.T) {
	assert.Equal(t, "Idle", TiltIdle.String())
	assert.Equal(t, "TiltingIn", TiltingIn.String())
	assert.Equal(t, "TiltingOut", TiltingOut.String())
	assert.Equal(t, "Unknown", TiltPhase(7).String())
}

func TestCameraTiltSystem_TiltInAndOut(t *testing.T) {
	tilt, roll := createTestTilt()
	assert.True(t, tilt.Enabled())

	tilt.BeginTilt(entity.SideLeft)
	assert.Equal(t, TiltingIn, tilt.State().Phase)

	tilt.Update(0.5)
	assert.InDelta(t, 5.0, roll.last(), 1e-6)

	tilt.Update(0.5)
	assert.InDelta(t, 10.0, roll.last(), 1e-6)
	assert.Equal(t, TiltIdle, tilt.State().Phase)

	// Idle writes nothing
	writes := len(roll.writes)
	tilt.Update(0.5)
	assert.Len(t, roll.writes, writes)

	tilt.EndTilt()
	tilt.Update(0.25)
	assert.InDelta(t, 7.5, roll.last(), 1e-6)

	tilt.Update(1)
	assert.InDelta(t, 0.0, roll.last(), 1e-6)
	assert.Equal(t, TiltIdle, tilt.State().Phase)
	assert.Equal(t, 0.0, tilt.State().Cursor)
}

func TestCameraTiltSystem_SignBySide(t *testing.T) {
	tests := []struct {
		side     entity.RunSide
		expected float64
	}{
		{entity.SideLeft, 2.5},
		{entity.SideRight, -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			tilt, roll := createTestTilt()

			tilt.BeginTilt(tt.side)
			tilt.Update(0.25)

			assert.InDelta(t, tt.expected, roll.last(), 1e-6)
		})
	}
}

func TestCameraTiltSystem_ReverseFromCurrentPosition(t *testing.T) {
	tilt, roll := createTestTilt()

	tilt.BeginTilt(entity.SideLeft)
	tilt.Update(0.25)
	tilt.EndTilt()
	tilt.Update(0.125)

	assert.InDelta(t, 1.25, roll.last(), 1e-6)
	assert.Equal(t, TiltingOut, tilt.State().Phase)
}

func TestCameraTiltSystem_TiltOutKeepsSign(t *testing.T) {
	tilt, roll := createTestTilt()

	tilt.BeginTilt(entity.SideRight)
	tilt.Update(1)
	tilt.EndTilt()
	tilt.Update(0.5)

	assert.InDelta(t, -5.0, roll.last(), 1e-6)
}

func TestCameraTiltSystem_Easing(t *testing.T) {
	roll := &fakeRoll{}
	cfg := &config.CameraTiltConfig{Amplitude: 10, Duration: 1, Easing: "outQuad"}
	tilt := NewCameraTiltSystem(cfg, roll)

	tilt.BeginTilt(entity.SideLeft)
	tilt.Update(0.5)

	assert.InDelta(t, 7.5, roll.last(), 1e-6)
}

func TestCameraTiltSystem_UnknownEasingIsLinear(t *testing.T) {
	roll := &fakeRoll{}
	cfg := &config.CameraTiltConfig{Amplitude: 10, Duration: 1, Easing: "bounce-ish"}
	tilt := NewCameraTiltSystem(cfg, roll)

	tilt.BeginTilt(entity.SideLeft)
	tilt.Update(0.25)

	assert.InDelta(t, 2.5, roll.last(), 1e-6)
}

func TestCameraTiltSystem_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.CameraTiltConfig
	}{
		{"nil config", nil},
		{"zero amplitude", &config.CameraTiltConfig{Duration: 1}},
		{"zero duration", &config.CameraTiltConfig{Amplitude: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roll := &fakeRoll{}
			tilt := NewCameraTiltSystem(tt.cfg, roll)

			assert.False(t, tilt.Enabled())
			assert.NotPanics(t, func() {
				tilt.BeginTilt(entity.SideLeft)
				tilt.Update(0.5)
				tilt.EndTilt()
				tilt.Update(0.5)
			})
			assert.Empty(t, roll.writes)
		})
	}
}

func TestCameraTiltSystem_IgnoresNoSide(t *testing.T) {
	tilt, roll := createTestTilt()

	tilt.BeginTilt(entity.SideNone)
	tilt.EndTilt()
	tilt.Update(0.5)

	assert.Equal(t, TiltIdle, tilt.State().Phase)
	assert.Empty(t, roll.writes)
}
