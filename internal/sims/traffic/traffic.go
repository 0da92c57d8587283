package traffic

import "traffic-ca/internal/core"

// Traffic adapts the road to the viewer: the newest road state occupies the
// top row and older states scroll downward, one row per tick, so the cars'
// trajectories show up as diagonals.
type Traffic struct {
	road    *Road
	history *core.History
	density float64
}

// New constructs a viewer simulation for an n-cell road keeping depth rows
// of scrollback.
func New(n, depth int, density float64) *Traffic {
	return &Traffic{
		road:    NewRoad(n),
		history: core.NewHistory(n, depth),
		density: density,
	}
}

// Name returns the simulation identifier.
func (t *Traffic) Name() string { return "traffic" }

// Size returns the render dimensions: road length by scrollback depth.
func (t *Traffic) Size() core.Size {
	return core.Size{W: t.history.W, H: t.history.H}
}

// Cells exposes the history window in render order.
func (t *Traffic) Cells() []uint8 { return t.history.Cells() }

// Reset reseeds the road and clears the scrollback.
func (t *Traffic) Reset(seed int64) {
	t.road.Seed(seed, t.density)
	t.history.Clear()
	t.history.Push(t.road.Cells())
}

// Step advances the road one tick and scrolls it into the history window.
func (t *Traffic) Step() {
	t.road.Step()
	t.history.Push(t.road.Cells())
}
