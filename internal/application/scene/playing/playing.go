// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/wallrun/internal/application/replay"
	"github.com/younwookim/wallrun/internal/application/scene"
	"github.com/younwookim/wallrun/internal/application/state"
	"github.com/younwookim/wallrun/internal/application/system"
	"github.com/younwookim/wallrun/internal/domain/entity"
	"github.com/younwookim/wallrun/internal/infrastructure/config"
	"github.com/younwookim/wallrun/internal/infrastructure/logging"
)

// maxMessages is how many transient messages are shown at once
const maxMessages = 4

// Options configures a Playing scene.
// RecordPath enables input recording when not empty, and Replay drives the
// scene from recorded input instead of the keyboard.
type Options struct {
	RecordPath string
	Replay     *replay.Replayer
	Bindings   system.KeyBindings
	Logger     *slog.Logger
}

// Stats counts wall-run activity over a session
type Stats struct {
	Frames     int
	WallRuns   int
	Stops      map[system.StopReason]int
	LongestRun float64 // seconds
}

type message struct {
	text string
	ttl  float64
}

// Playing is the main gameplay scene
type Playing struct {
	config      *config.PhysicsConfig
	stageCfg    *config.StageConfig
	stage       *entity.Stage
	state       state.GameState
	resumeState state.GameState
	logger      *slog.Logger
	bindings    system.KeyBindings

	character     *entity.Character
	clock         *system.Timers
	physicsSystem *system.PhysicsSystem
	inputSystem   *system.InputSystem
	wallRunSystem *system.WallRunSystem
	tiltSystem    *system.CameraTiltSystem

	screenW int
	screenH int
	dt      float64

	messages []message
	stats    Stats

	// Input recording
	recorder       *Recorder
	recordFilename string

	replayer *replay.Replayer
}

// New creates a new Playing scene.
// If opts.RecordPath is not empty, gameplay will be recorded.
func New(cfg *config.PhysicsConfig, stageCfg *config.StageConfig, stage *entity.Stage, opts Options) *Playing {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	framerate := cfg.Display.Framerate
	if framerate <= 0 {
		framerate = config.DefaultFramerate
	}

	p := &Playing{
		config:         cfg,
		stageCfg:       stageCfg,
		stage:          stage,
		state:          state.StatePlaying,
		logger:         logger,
		bindings:       opts.Bindings,
		screenW:        cfg.Display.ScreenWidth,
		screenH:        cfg.Display.ScreenHeight,
		dt:             1.0 / float64(framerate),
		recordFilename: opts.RecordPath,
		replayer:       opts.Replay,
	}
	if p.bindings.Jump == nil {
		p.bindings = system.DefaultKeyBindings()
	}

	if p.replayer != nil {
		p.state = state.StateReplaying
		p.dt = p.replayer.DT(p.dt)
	}

	p.reset()
	return p
}

// reset rebuilds the character and its systems at the stage spawn
func (p *Playing) reset() {
	c := entity.NewCharacter(1, p.stage.Spawn, p.stage.SpawnYaw, p.config.Character.Radius, p.config.Character.Height)

	p.character = c
	p.clock = system.NewTimers()
	p.physicsSystem = system.NewPhysicsSystem(p.config, p.stage, c)
	p.tiltSystem = system.NewCameraTiltSystem(&p.config.CameraTilt, c)
	p.wallRunSystem = system.NewWallRunSystem(&p.config.WallRun, &c.WallRun, system.WallRunDeps{
		Actor:    c,
		Input:    c,
		Movement: p.physicsSystem,
		Rays:     p.stage,
		Clock:    p.clock,
		Tilt:     p.tiltSystem,
		Logger:   p.logger,
	})
	p.inputSystem = system.NewInputSystem(p.config, p.bindings, p.wallRunSystem)

	// New contacts are the only way a wall run starts
	p.physicsSystem.OnContact = p.wallRunSystem.OnSurfaceContact

	p.wallRunSystem.OnStart = func(side entity.RunSide) {
		p.stats.WallRuns++
		p.pushMessage(fmt.Sprintf("WallRun started (%s)", side))
	}
	p.wallRunSystem.OnStop = func(reason system.StopReason) {
		p.stats.Stops[reason]++
		if elapsed := c.WallRun.Elapsed; elapsed > p.stats.LongestRun {
			p.stats.LongestRun = elapsed
		}
		p.pushMessage(fmt.Sprintf("WallRun ended: %s", reason))
	}

	p.messages = nil
	p.stats = Stats{Stops: make(map[system.StopReason]int)}

	if p.recordFilename != "" {
		p.recorder = NewRecorder(p.stageCfg.ID, p.dt)
		p.logger.Info("recording enabled", "path", p.recordFilename)
	}
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if !p.state.Simulating() {
		p.updateHalted()
		return nil, nil // nil = stay on this scene
	}

	// Check for pause
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.pause()
		return nil, nil
	}

	if p.state == state.StateReplaying {
		if !p.stepReplay() {
			p.finishReplay()
		}
		return nil, nil
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.restart()
		return nil, nil
	}

	p.Step(p.inputSystem.GetInput())
	return nil, nil
}

// updateHalted handles the keys that leave a paused or finished state
func (p *Playing) updateHalted() {
	switch p.state {
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = p.resumeState
		}
	case state.StateReplayFinished:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			p.restart()
		}
	}
}

func (p *Playing) pause() {
	p.resumeState = p.state
	p.state = state.StatePaused
}

// stepReplay advances one recorded frame. It returns false once the
// recording is exhausted.
func (p *Playing) stepReplay() bool {
	in, ok := p.replayer.GetInput()
	if !ok {
		return false
	}
	p.Step(FromReplayInput(in))
	return true
}

func (p *Playing) finishReplay() {
	p.state = state.StateReplayFinished
	p.logger.Info("replay finished",
		"frames", p.stats.Frames,
		"wallRuns", p.stats.WallRuns,
		"longestRun", p.stats.LongestRun,
	)
}

// Step advances the simulation by one frame with the given input.
//
// Order within a frame: input, physics (which reports new contacts),
// frame timers, wall-run re-validation, then camera tilt.
func (p *Playing) Step(input system.InputState) {
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}

	p.inputSystem.UpdateCharacter(p.character, input, p.dt)
	p.physicsSystem.Update(p.dt)
	p.clock.Advance(p.dt)
	p.wallRunSystem.Tick(p.dt)
	p.tiltSystem.Update(p.dt)

	p.updateMessages(p.dt)
	p.stats.Frames++
}

// RunReplay steps through the whole recording without rendering and
// returns the session stats. It returns an error when the scene has no
// recording to play.
func (p *Playing) RunReplay() (Stats, error) {
	if p.replayer == nil {
		return Stats{}, fmt.Errorf("no replay loaded")
	}
	for p.stepReplay() {
	}
	p.finishReplay()
	return p.Stats(), nil
}

// FromReplayInput converts a recorded frame into live input
func FromReplayInput(in replay.ReplayInput) system.InputState {
	return system.InputState{
		Forward:      in.Forward,
		Right:        in.Right,
		Turn:         in.Turn,
		Look:         in.Look,
		Jump:         in.Jump,
		JumpPressed:  in.JumpPressed,
		JumpReleased: in.JumpReleased,
	}
}

func (p *Playing) pushMessage(text string) {
	p.messages = append(p.messages, message{text: text, ttl: p.config.Debug.MessageDuration})
	if len(p.messages) > maxMessages {
		p.messages = p.messages[len(p.messages)-maxMessages:]
	}
}

func (p *Playing) updateMessages(dt float64) {
	kept := p.messages[:0]
	for _, m := range p.messages {
		m.ttl -= dt
		if m.ttl > 0 {
			kept = append(kept, m)
		}
	}
	p.messages = kept
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.logger.Error("failed to save recording", "path", filename, "error", err)
		return
	}
	p.logger.Info("recording saved", "path", filename, "frames", p.recorder.FrameCount())
}

func (p *Playing) restart() {
	if p.recorder != nil {
		p.saveRecording()
	}
	if p.replayer != nil {
		p.replayer.Reset()
		p.state = state.StateReplaying
	} else {
		p.state = state.StatePlaying
	}
	p.reset()
	p.logger.Info("restarted", "stage", p.stageCfg.ID)
}

// Character returns the simulated character
func (p *Playing) Character() *entity.Character {
	return p.character
}

// WallRun returns the character's wall-run state machine
func (p *Playing) WallRun() *system.WallRunSystem {
	return p.wallRunSystem
}

// State returns the scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// DT returns the fixed frame step
func (p *Playing) DT() float64 {
	return p.dt
}

// Stats returns a copy of the session stats
func (p *Playing) Stats() Stats {
	out := p.stats
	out.Stops = make(map[system.StopReason]int, len(p.stats.Stops))
	for k, v := range p.stats.Stops {
		out.Stops[k] = v
	}
	return out
}

// Messages returns the transient messages currently shown
func (p *Playing) Messages() []string {
	out := make([]string, len(p.messages))
	for i, m := range p.messages {
		out[i] = m.text
	}
	return out
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
