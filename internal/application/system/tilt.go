package system

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/wallrun/internal/domain/entity"
	"github.com/younwookim/wallrun/internal/infrastructure/config"
)

// TiltPhase is the playback phase of the camera tilt
type TiltPhase int

const (
	TiltIdle TiltPhase = iota
	TiltingIn
	TiltingOut
)

// String returns the string representation of the tilt phase
func (p TiltPhase) String() string {
	switch p {
	case TiltIdle:
		return "Idle"
	case TiltingIn:
		return "TiltingIn"
	case TiltingOut:
		return "TiltingOut"
	default:
		return "Unknown"
	}
}

// TiltState is the playback state of the camera tilt
type TiltState struct {
	Phase     TiltPhase
	Cursor    float64 // seconds into the curve, in [0, duration]
	Amplitude float64 // degrees
	Sign      float64 // +1 for a wall on the left, -1 on the right
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
}

func easingByName(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}

// CameraTiltSystem rolls the view away from the wall while wall running.
//
// One tween from level to full tilt is played forward on BeginTilt and
// backward on EndTilt, always from the current cursor, so reversing mid-way
// never jumps.
type CameraTiltSystem struct {
	view     RollSink
	tween    *gween.Tween
	duration float64
	state    TiltState
}

// NewCameraTiltSystem creates a tilt controller writing to view.
// A zero amplitude or duration leaves it disabled.
func NewCameraTiltSystem(cfg *config.CameraTiltConfig, view RollSink) *CameraTiltSystem {
	s := &CameraTiltSystem{view: view}
	if cfg == nil || cfg.Amplitude <= 0 || cfg.Duration <= 0 {
		return s
	}
	s.duration = cfg.Duration
	s.state.Amplitude = cfg.Amplitude
	s.tween = gween.New(0, float32(cfg.Amplitude), float32(cfg.Duration), easingByName(cfg.Easing))
	return s
}

// Enabled reports whether a tilt curve is configured
func (s *CameraTiltSystem) Enabled() bool {
	return s.tween != nil
}

// State returns a copy of the playback state
func (s *CameraTiltSystem) State() TiltState {
	return s.state
}

// BeginTilt starts tilting toward full amplitude for the given side
func (s *CameraTiltSystem) BeginTilt(side entity.RunSide) {
	if s.tween == nil {
		return
	}
	switch side {
	case entity.SideLeft:
		s.state.Sign = 1
	case entity.SideRight:
		s.state.Sign = -1
	default:
		return
	}
	s.state.Phase = TiltingIn
}

// EndTilt starts returning to level, keeping the sign of the last run
func (s *CameraTiltSystem) EndTilt() {
	if s.tween == nil || s.state.Sign == 0 {
		return
	}
	s.state.Phase = TiltingOut
}

// Update advances the curve by dt and writes the roll while playing.
// The endpoint value is written on the frame it is reached, then the
// controller goes idle.
func (s *CameraTiltSystem) Update(dt float64) {
	if s.tween == nil || s.state.Phase == TiltIdle {
		return
	}

	finished := false
	switch s.state.Phase {
	case TiltingIn:
		s.state.Cursor += dt
		if s.state.Cursor >= s.duration {
			s.state.Cursor = s.duration
			finished = true
		}
	case TiltingOut:
		s.state.Cursor -= dt
		if s.state.Cursor <= 0 {
			s.state.Cursor = 0
			finished = true
		}
	}

	value, _ := s.tween.Set(float32(s.state.Cursor))
	s.view.SetViewRoll(s.state.Sign * float64(value))

	if finished {
		s.state.Phase = TiltIdle
	}
}
