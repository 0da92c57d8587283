//go:build ebiten

// Command traffic-view shows the traffic automaton live: the road runs
// along the top row and history scrolls downward, so car trajectories
// appear as diagonals.
package main

import (
	"errors"
	"flag"
	"log"

	"traffic-ca/internal/app"
	"traffic-ca/internal/sims/traffic"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	length := flag.Int("length", 256, "road length in cells")
	depth := flag.Int("depth", 256, "history rows kept on screen")
	density := flag.Float64("density", 0.3, "initial car density")
	scale := flag.Int("scale", 3, "pixel scale multiplier")
	tps := flag.Int("tps", 60, "simulation ticks per second")
	seed := flag.Int64("seed", 42, "seed for road initialization")
	flag.Parse()

	if *length < 1 || *depth < 1 || *density < 0 || *density > 1 {
		log.Fatalf("invalid viewer configuration: length=%d depth=%d density=%g",
			*length, *depth, *density)
	}

	sim := traffic.New(*length, *depth, *density)
	sim.Reset(*seed)

	game := app.New(sim, *scale, *seed, *tps)
	size := sim.Size()

	ebiten.SetWindowTitle("traffic-ca — " + sim.Name())
	ebiten.SetWindowSize(size.W*(*scale), size.H*(*scale))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
