// Package game is the interactive ebiten front end of the flock: it feeds the
// target, advances the flock once per tick and draws the result.
package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/ui"
	"github.com/tochemey/goakt/v3/log"
)

const sparklineFrames = 300

var (
	whiteImage = ebiten.NewImage(3, 3)

	backgroundColor = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	flockColor      = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	decoyColor      = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	targetColor     = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	perceptionColor = color.RGBA{R: 50, G: 100, B: 255, A: 60}
	sparkColor      = color.RGBA{R: 120, G: 255, B: 120, A: 255}
)

func init() {
	whiteImage.Fill(color.White)
}

// PointerTarget follows the mouse cursor.
type PointerTarget struct{}

func (PointerTarget) Target(float64) geometry.Vector2D {
	x, y := ebiten.CursorPosition()
	return geometry.Vector2D{X: float64(x), Y: float64(y)}
}

// Game implements ebiten.Game around a Flock.
type Game struct {
	flock  *simulation.Flock
	decoys *simulation.Flock
	source simulation.TargetSource
	logger log.Logger

	target geometry.Vector2D
	paused bool

	panel          *ui.Panel
	timeScale      *ui.Slider
	showPerception *ui.Checkbox
	showDecoys     *ui.Checkbox
	pauseButton    *ui.Button

	vertices []ebiten.Vertex
	indices  []uint16

	updateAvg float64 // rolling average in ms
	drawAvg   float64
}

// New wires a viewer for flock. A nil source follows the cursor.
func New(flock *simulation.Flock, source simulation.TargetSource, logger log.Logger) *Game {
	if source == nil {
		source = PointerTarget{}
	}
	if logger == nil {
		logger = log.DiscardLogger
	}
	g := &Game{
		flock:  flock,
		source: source,
		logger: logger,
	}
	if leader, ok := source.(*simulation.LeaderTarget); ok {
		g.decoys = leader.Flock()
		g.target = leader.Leader()
	}

	g.panel = ui.NewPanel(10, 10, 220)
	g.panel.AddSection("Simulation")
	g.timeScale = g.panel.AddSlider("Time scale", 0.1, 3, 1)
	g.pauseButton = g.panel.AddButton("Pause", g.togglePause)
	g.panel.AddSection("Display")
	g.showPerception = g.panel.AddCheckbox("Perception radius", false)
	g.showDecoys = g.panel.AddCheckbox("Decoy flock", g.decoys != nil)
	return g
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.pauseButton.Label = "Resume"
		g.logger.Infof("paused at frame %d", g.flock.Frame())
		return
	}
	g.pauseButton.Label = "Pause"
	g.logger.Infof("resumed at frame %d", g.flock.Frame())
}

// Update advances the flock by one tick unless paused.
func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	g.panel.Update()
	if g.paused {
		return nil
	}

	dt := g.timeScale.Value / float64(ebiten.TPS())
	g.target = g.source.Target(dt)
	g.flock.Step(g.target, dt)
	return nil
}

// Draw renders the flocks, the target, the panel and the live metrics.
func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)

	if g.decoys != nil && g.showDecoys.Value {
		g.drawFlock(screen, g.decoys.Agents(), decoyColor)
	}
	agents := g.flock.Agents()
	if g.showPerception.Value {
		r := float32(g.flock.Config().PerceptionRadius)
		for _, a := range agents {
			vector.StrokeCircle(screen, float32(a.Position.X), float32(a.Position.Y), r, 1, perceptionColor, true)
		}
	}
	g.drawFlock(screen, agents, flockColor)
	g.drawTarget(screen)

	g.panel.Draw(screen)
	g.drawMetrics(screen)
}

// drawFlock batches every agent into a single DrawTriangles call.
func (g *Game) drawFlock(screen *ebiten.Image, agents []simulation.AgentState, clr color.RGBA) {
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	r := float32(clr.R) / 255
	gr := float32(clr.G) / 255
	b := float32(clr.B) / 255
	for _, a := range agents {
		if len(g.vertices)+3 > 0xffff {
			break
		}
		base := uint16(len(g.vertices))
		for _, p := range triangle(a.Position, a.Heading) {
			g.vertices = append(g.vertices, ebiten.Vertex{
				DstX: float32(p.X), DstY: float32(p.Y),
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: gr, ColorB: b, ColorA: 1,
			})
		}
		g.indices = append(g.indices, base, base+1, base+2)
	}
	if len(g.indices) == 0 {
		return
	}
	screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) drawTarget(screen *ebiten.Image) {
	x, y := float32(g.target.X), float32(g.target.Y)
	vector.StrokeCircle(screen, x, y, 8, 2, targetColor, true)
	vector.StrokeLine(screen, x-12, y, x+12, y, 1, targetColor, true)
	vector.StrokeLine(screen, x, y-12, x, y+12, 1, targetColor, true)
}

func (g *Game) drawMetrics(screen *ebiten.Image) {
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	m := g.flock.Metrics()
	last, _ := m.Last()

	msg := fmt.Sprintf("Frame: %d\nAgents: %d\nAvg distance: %.1f\nCollisions: %d\nTotal collisions: %d\n\nFPS: %.1f  TPS: %.1f\nUpdate: %.2fms\nDraw:   %.2fms",
		g.flock.Frame(),
		g.flock.Len(),
		last.AverageDistance,
		last.Collisions,
		m.TotalCollisions(),
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg)
	if g.paused {
		msg += "\n\nPAUSED"
	}
	ebitenutil.DebugPrintAt(screen, msg, int(w)-190, 10)

	const boxW, boxH = 180.0, 50.0
	x, y := w-boxW-10, h-boxH-10
	vector.StrokeRect(screen, float32(x), float32(y), boxW, boxH, 1, decoyColor, false)
	ebitenutil.DebugPrintAt(screen, "avg distance", int(x), int(y)-16)
	points := sparkline(m.Distances(), sparklineFrames, x, y, boxW, boxH)
	for i := 1; i < len(points); i++ {
		vector.StrokeLine(screen,
			float32(points[i-1].X), float32(points[i-1].Y),
			float32(points[i].X), float32(points[i].Y),
			1, sparkColor, true)
	}
}

// Layout keeps the screen the size of the world.
func (g *Game) Layout(int, int) (int, int) {
	cfg := g.flock.Config()
	return int(cfg.WorldWidth), int(cfg.WorldHeight)
}
