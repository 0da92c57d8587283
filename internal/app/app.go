//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"traffic-ca/internal/core"
	"traffic-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a road simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.RoadPainter
	pacer   *core.FixedStep

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	ticks    int
}

// New constructs a Game for the provided simulation, stepping it at the
// given TPS independent of the frame rate.
func New(sim core.Sim, scale int, seed int64, tps int) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewRoadPainter(size.W, size.H),
		pacer:    core.NewFixedStep(tps),
		onColor:  color.White,
		offColor: color.Black,
		scale:    scale,
		seed:     seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.ticks = 0
	g.tickOnce = false
	g.pacer.Reset()
}

// Update handles keys and advances the simulation at the configured rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		if !g.paused {
			g.pacer.Reset()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.tickOnce || (!g.paused && g.pacer.ShouldStep()) {
		g.sim.Step()
		g.ticks++
		g.tickOnce = false
	}
	return nil
}

// Draw renders the history window plus a one-line status.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.onColor, g.offColor, g.scale)
	ebitenutil.DebugPrint(screen,
		fmt.Sprintf("tick %d  [space] pause  [n] step  [r] reset  [s] reseed", g.ticks))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
