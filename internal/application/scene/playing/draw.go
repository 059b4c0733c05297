package playing

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/wallrun/internal/application/state"
	"github.com/younwookim/wallrun/internal/domain/entity"
)

// Colors
var (
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorWall      = color.RGBA{80, 80, 100, 255}
	colorCharacter = color.RGBA{100, 200, 100, 255}
	colorRunning   = color.RGBA{100, 180, 255, 255}
	colorFacing    = color.RGBA{255, 255, 255, 255}
	colorProbe     = color.RGBA{255, 200, 60, 200}
	colorProbeHit  = color.RGBA{255, 90, 90, 255}
	colorNormal    = color.RGBA{255, 120, 220, 255}
	colorHorizon   = color.RGBA{200, 200, 200, 255}
)

// defaultWorldScale is used when the display config leaves worldScale unset
const defaultWorldScale = 0.15

// Draw renders the game (implements scene.Scene).
// The world is drawn top-down with the camera centred on the character;
// world +Z points up the screen.
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawTiles(screen)
	if p.config.Debug.DrawProbe {
		p.drawProbe(screen)
	}
	p.drawCharacter(screen)
	p.drawRollIndicator(screen)
	p.drawUI(screen)
	p.drawMessages(screen)

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateReplayFinished:
		p.drawReplayFinishedOverlay(screen)
	}
}

func (p *Playing) worldScale() float64 {
	if s := p.config.Display.WorldScale; s > 0 {
		return s
	}
	return defaultWorldScale
}

// toScreen maps a world position onto the screen
func (p *Playing) toScreen(v mgl64.Vec3) (float64, float64) {
	s := p.worldScale()
	c := p.character.Pos
	x := (v.X()-c.X())*s + float64(p.screenW)/2
	y := -(v.Z()-c.Z())*s + float64(p.screenH)/2
	return x, y
}

func (p *Playing) drawTiles(screen *ebiten.Image) {
	size := p.stage.TileSize * p.worldScale()

	for tz := 0; tz < p.stage.Depth; tz++ {
		for tx := 0; tx < p.stage.Width; tx++ {
			if !p.stage.GetTile(tx, tz).Solid {
				continue
			}
			// Top-left corner on screen is the tile's min X, max Z
			x, y := p.toScreen(mgl64.Vec3{
				float64(tx) * p.stage.TileSize,
				0,
				float64(tz+1) * p.stage.TileSize,
			})
			if x+size < 0 || y+size < 0 || x > float64(p.screenW) || y > float64(p.screenH) {
				continue
			}
			ebitenutil.DrawRect(screen, x, y, size, size, colorWall)
		}
	}
}

func (p *Playing) drawCharacter(screen *ebiten.Image) {
	c := p.character
	s := p.worldScale()
	x, y := p.toScreen(c.Pos)
	half := c.Radius * s

	body := colorCharacter
	if c.IsWallRunning() {
		body = colorRunning
	}
	ebitenutil.DrawRect(screen, x-half, y-half, half*2, half*2, body)

	// Facing
	fx, fy := p.toScreen(c.Pos.Add(c.ForwardVector().Mul(c.Radius * 2)))
	ebitenutil.DrawLine(screen, x, y, fx, fy, colorFacing)

	// Run direction
	if c.IsWallRunning() {
		dx, dy := p.toScreen(c.Pos.Add(c.WallRun.Direction.Mul(c.Radius * 3)))
		ebitenutil.DrawLine(screen, x, y, dx, dy, colorRunning)
	}
}

func (p *Playing) drawProbe(screen *ebiten.Image) {
	probe := p.wallRunSystem.LastProbe
	if !p.character.IsWallRunning() || entity.IsZero(probe.To.Sub(probe.From)) {
		return
	}

	x1, y1 := p.toScreen(probe.From)
	x2, y2 := p.toScreen(probe.To)
	ebitenutil.DrawLine(screen, x1, y1, x2, y2, colorProbe)

	if !probe.Hit {
		return
	}
	hx, hy := p.toScreen(probe.Point)
	ebitenutil.DrawRect(screen, hx-2, hy-2, 4, 4, colorProbeHit)
	nx, ny := p.toScreen(probe.Point.Add(probe.Normal.Mul(p.character.Radius)))
	ebitenutil.DrawLine(screen, hx, hy, nx, ny, colorNormal)
}

// drawRollIndicator draws an attitude line rotated by the view roll
func (p *Playing) drawRollIndicator(screen *ebiten.Image) {
	const radius = 24.0
	cx := float64(p.screenW) - radius - 12
	cy := radius + 12

	rad := mgl64.DegToRad(p.character.View.Roll)
	dx := math.Cos(rad) * radius
	dy := math.Sin(rad) * radius

	ebitenutil.DrawLine(screen, cx-dx, cy-dy, cx+dx, cy+dy, colorHorizon)
	ebitenutil.DrawRect(screen, cx-1, cy-1, 2, 2, colorFacing)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	c := p.character
	run := "-"
	if c.IsWallRunning() {
		n := c.WallRun.LastNormal
		run = fmt.Sprintf("%s %.2fs n(%+.1f,%+.1f)", c.WallRun.Side, c.WallRun.Elapsed, n.X(), n.Z())
	}

	status := fmt.Sprintf("Speed %4.0f  Height %4.0f  Yaw %4.0f  Pitch %+3.0f\nWallRun %s  Roll %+5.1f\nRuns %d  Frame %d",
		c.HorizontalSpeed(), c.Pos.Y(), c.View.Yaw, c.View.Pitch, run, c.View.Roll, p.stats.WallRuns, p.stats.Frames)
	ebitenutil.DebugPrintAt(screen, status, 10, 10)

	// Controls
	controls := "WASD: Move | Q/E: Turn | PgUp/PgDn: Look | Space: Jump | R: Restart | ESC: Pause"
	if p.replayer != nil {
		controls = fmt.Sprintf("REPLAY %d/%d | ESC: Pause", p.replayer.CurrentFrame(), p.replayer.TotalFrames())
	}
	ebitenutil.DebugPrintAt(screen, controls, 10, p.screenH-20)
}

func (p *Playing) drawMessages(screen *ebiten.Image) {
	if len(p.messages) == 0 {
		return
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(p.Messages(), "\n"), 10, 64)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	// Semi-transparent overlay
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawReplayFinishedOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 60, 160}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := fmt.Sprintf("REPLAY FINISHED\n\nWall runs: %d\nLongest: %.2fs\n\nPress R to replay", p.stats.WallRuns, p.stats.LongestRun)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-40)
}
