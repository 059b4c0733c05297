package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/wallrun/internal/application/game"
	"github.com/younwookim/wallrun/internal/application/replay"
	"github.com/younwookim/wallrun/internal/application/scene/playing"
	"github.com/younwookim/wallrun/internal/application/system"
	"github.com/younwookim/wallrun/internal/infrastructure/config"
	"github.com/younwookim/wallrun/internal/infrastructure/logging"
)

//go:embed configs
var configFS embed.FS

const defaultStage = "demo"

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	headlessFlag := flag.Bool("headless", false, "With -replay, simulate without a window and print a summary")
	stageFlag := flag.String("stage", defaultStage, "Stage to load from configs/stages")
	configDir := flag.String("config", "", "Load configs from this directory instead of the embedded set")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "console", "Log format: console, text, json")
	flag.Parse()

	logger := logging.New(logging.Config{Level: *logLevel, Format: *logFormat})

	loader, err := newLoader(*configDir)
	if err != nil {
		fatal(logger, "failed to open configs", err)
	}

	if *replayFlag != "" && *headlessFlag {
		p, _, err := newReplayScene(loader, *replayFlag, *stageFlag, logger)
		if err != nil {
			fatal(logger, "failed to prepare replay", err)
		}
		stats, err := p.RunReplay()
		if err != nil {
			fatal(logger, "replay failed", err)
		}
		printSummary(os.Stdout, stats, p.Character().Pos)
		return
	}

	var p *playing.Playing
	var cfg *config.GameConfig
	if *replayFlag != "" {
		p, cfg, err = newReplayScene(loader, *replayFlag, *stageFlag, logger)
	} else {
		p, cfg, err = newScene(loader, *stageFlag, playing.Options{RecordPath: *recordFlag, Logger: logger})
	}
	if err != nil {
		fatal(logger, "failed to create scene", err)
	}
	display := cfg.Physics.Display

	g := game.New(p, display.ScreenWidth, display.ScreenHeight, display.Framerate, logger)
	defer g.Close()

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Wall Run")
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game exited with error", "error", err)
	}
}

// newLoader returns a loader over dir, or over the embedded configs when dir
// is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// newScene loads every config the gameplay scene needs and builds it
func newScene(loader *config.Loader, stageName string, opts playing.Options) (*playing.Playing, *config.GameConfig, error) {
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, err
	}

	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		return nil, nil, err
	}
	stage, err := system.LoadStage(stageCfg)
	if err != nil {
		return nil, nil, err
	}

	bindings, err := system.ParseKeyBindings(cfg.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("input bindings: %w", err)
	}
	opts.Bindings = bindings

	if opts.Logger != nil {
		opts.Logger.Info("stage loaded", "stage", stageCfg.ID, "name", stageCfg.Name,
			"tiles", fmt.Sprintf("%dx%d", stage.Width, stage.Depth))
	}
	return playing.New(cfg.Physics, stageCfg, stage, opts), cfg, nil
}

// newReplayScene builds a scene driven by the recording at path. The stage
// named in the recording wins over fallbackStage.
func newReplayScene(loader *config.Loader, path, fallbackStage string, logger *slog.Logger) (*playing.Playing, *config.GameConfig, error) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return nil, nil, err
	}
	replayer := replay.NewReplayer(*data)

	stageName := replayer.Stage()
	if stageName == "" {
		stageName = fallbackStage
	}
	if logger != nil {
		logger.Info("replay loaded", "path", path, "frames", replayer.TotalFrames(), "version", data.Version)
	}
	return newScene(loader, stageName, playing.Options{Replay: replayer, Logger: logger})
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
