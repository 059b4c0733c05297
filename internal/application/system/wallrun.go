package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/wallrun/internal/domain/entity"
	"github.com/younwookim/wallrun/internal/domain/wallrun"
	"github.com/younwookim/wallrun/internal/infrastructure/config"
	"github.com/younwookim/wallrun/internal/infrastructure/logging"
)

// StopReason tells why a wall run ended
type StopReason int

const (
	StopManual StopReason = iota
	StopInputReleased
	StopWallLost
	StopSideChanged
	StopInvalidSurface
	StopTimeout
	StopJumpOff
)

// String returns the string representation of the stop reason
func (r StopReason) String() string {
	switch r {
	case StopManual:
		return "Manual"
	case StopInputReleased:
		return "InputReleased"
	case StopWallLost:
		return "WallLost"
	case StopSideChanged:
		return "SideChanged"
	case StopInvalidSurface:
		return "InvalidSurface"
	case StopTimeout:
		return "Timeout"
	case StopJumpOff:
		return "JumpOff"
	default:
		return "Unknown"
	}
}

// Probe records the most recent lateral wall probe
type Probe struct {
	From   mgl64.Vec3
	To     mgl64.Vec3
	Hit    bool
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// WallRunDeps are the collaborators a WallRunSystem drives.
// Tilt and Logger are optional.
type WallRunDeps struct {
	Actor    Actor
	Input    AxisSource
	Movement MovementSink
	Rays     RayCaster
	Clock    FrameClock
	Tilt     TiltDriver
	Logger   *slog.Logger
}

// WallRunSystem is the per-character wall-run state machine.
//
// A run starts only from OnSurfaceContact, is re-validated by Tick every
// simulation step and ends through the single stop transition.
type WallRunSystem struct {
	config *config.WallRunConfig
	state  *entity.WallRunState
	deps   WallRunDeps
	logger *slog.Logger

	// LastProbe is the probe cast by the latest Tick
	LastProbe Probe

	// OnStart and OnStop are called after the transition completes
	OnStart func(side entity.RunSide)
	OnStop  func(reason StopReason)
}

// NewWallRunSystem creates a wall-run state machine over state
func NewWallRunSystem(cfg *config.WallRunConfig, state *entity.WallRunState, deps WallRunDeps) *WallRunSystem {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &WallRunSystem{
		config: cfg,
		state:  state,
		deps:   deps,
		logger: logger.With("system", "wallrun"),
	}
}

// IsRunning returns true while a run is active
func (s *WallRunSystem) IsRunning() bool {
	return s.state.Running
}

// State returns the owned wall-run state
func (s *WallRunSystem) State() *entity.WallRunState {
	return s.state
}

// OnSurfaceContact handles a new contact with the given impact normal.
// It is the only way a run starts.
func (s *WallRunSystem) OnSurfaceContact(normal mgl64.Vec3) {
	if s.state.Running {
		return
	}
	if !wallrun.IsRunnable(normal, s.deps.Movement.WalkableFloorY()) {
		return
	}
	if !s.deps.Movement.IsAirborne() {
		return
	}

	side, dir, ok := wallrun.Classify(normal, s.deps.Actor.RightVector())
	if !ok {
		return
	}
	if !wallrun.CanRun(side, s.deps.Input.Axes()) {
		return
	}

	s.start(side, dir, normal)
}

func (s *WallRunSystem) start(side entity.RunSide, dir, normal mgl64.Vec3) {
	s.state.Running = true
	s.state.Side = side
	s.state.Direction = dir
	s.state.LastNormal = normal
	s.state.Elapsed = 0

	s.deps.Movement.SetPlaneConstraint(true, entity.Up)
	s.armWatchdog()
	if s.deps.Tilt != nil {
		s.deps.Tilt.BeginTilt(side)
	}

	s.logger.Debug("wallrun started", "side", side, "normal", normal, "direction", dir)
	if s.OnStart != nil {
		s.OnStart(side)
	}
}

func (s *WallRunSystem) armWatchdog() {
	if s.config.MaxDuration <= 0 {
		return
	}
	var handle entity.TimerHandle
	handle = s.deps.Clock.After(s.config.MaxDuration, func() {
		// A callback from an earlier run must not stop a later one
		if !s.state.Running || s.state.Timer != handle {
			return
		}
		s.state.Timer = 0
		s.stop(StopTimeout)
	})
	s.state.Timer = handle
}

// Tick re-validates an active run against input and a fresh lateral probe.
// It does nothing when not running.
func (s *WallRunSystem) Tick(dt float64) {
	if !s.state.Running {
		return
	}
	s.state.Elapsed += dt

	side := s.state.Side
	if !wallrun.CanRun(side, s.deps.Input.Axes()) {
		s.stop(StopInputReleased)
		return
	}

	hit, ok := s.probe(side)
	if !ok {
		s.stop(StopWallLost)
		return
	}

	newSide, dir, valid := wallrun.Classify(hit.Normal, s.deps.Actor.RightVector())
	if !valid {
		s.stop(StopInvalidSurface)
		return
	}
	if newSide != side {
		s.stop(StopSideChanged)
		return
	}

	s.state.Direction = dir
	s.state.LastNormal = hit.Normal
	s.deps.Movement.SetVelocity(dir.Mul(s.deps.Movement.MaxSpeed()))
}

// probe casts the lateral ray toward the wall on the given side
func (s *WallRunSystem) probe(side entity.RunSide) (entity.RayHit, bool) {
	lateral := s.deps.Actor.RightVector()
	if side == entity.SideLeft {
		lateral = lateral.Mul(-1)
	}
	length := s.config.ProbeLength
	if length <= 0 {
		length = config.DefaultProbeLength
	}

	from := s.deps.Actor.Location()
	to := from.Add(lateral.Mul(length))
	hit, ok := s.deps.Rays.CastRay(from, to)

	s.LastProbe = Probe{From: from, To: to, Hit: ok}
	if ok {
		s.LastProbe.Point = hit.Point
		s.LastProbe.Normal = hit.Normal
	}
	return hit, ok
}

// OnJumpRequested launches off the wall and ends the run.
// It returns false when not running so the caller performs an ordinary jump.
func (s *WallRunSystem) OnJumpRequested() bool {
	if !s.state.Running {
		return false
	}
	launch := wallrun.LaunchVector(s.state.Side, s.state.Direction, s.deps.Movement.JumpImpulse())
	s.deps.Movement.Launch(launch)
	s.stop(StopJumpOff)
	return true
}

// StopRun ends the current run. Calling it when not running does nothing.
func (s *WallRunSystem) StopRun() {
	s.stop(StopManual)
}

func (s *WallRunSystem) stop(reason StopReason) {
	if !s.state.Running {
		return
	}
	side := s.state.Side
	elapsed := s.state.Elapsed

	if s.deps.Tilt != nil {
		s.deps.Tilt.EndTilt()
	}
	if s.state.Timer != 0 {
		s.deps.Clock.Cancel(s.state.Timer)
	}

	s.state.Running = false
	s.state.Side = entity.SideNone
	s.state.Direction = mgl64.Vec3{}
	s.state.Timer = 0
	s.deps.Movement.SetPlaneConstraint(false, mgl64.Vec3{})

	s.logger.Debug("wallrun stopped", "side", side, "reason", reason, "elapsed", elapsed)
	if s.OnStop != nil {
		s.OnStop(reason)
	}
}
