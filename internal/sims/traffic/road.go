// Package traffic implements the single-lane traffic cellular automaton:
// every cell of a ring road is empty or holds one car, and each tick a car
// advances exactly when the cell ahead is free. The rule moves cars, it
// never creates or destroys them, so total occupancy is invariant.
//
// Road is the non-partitioned reference variant. Worker is the partitioned
// variant: each worker owns a contiguous segment with ghost slots refreshed
// by a halo exchange, and the two produce bit-identical lattices.
package traffic

import (
	"strings"

	"traffic-ca/internal/core"
)

// Road holds the whole ring in one buffer; neighbor lookups wrap with
// modular arithmetic.
type Road struct {
	n   int
	cur []uint8
	nxt []uint8
}

// NewRoad allocates an empty road of n cells.
func NewRoad(n int) *Road {
	if n < 1 {
		n = 1
	}
	return &Road{n: n, cur: make([]uint8, n), nxt: make([]uint8, n)}
}

// Len returns the road length in cells.
func (r *Road) Len() int { return r.n }

// Cells exposes the current road state.
func (r *Road) Cells() []uint8 { return r.cur }

// Seed populates the road with cars at the given density.
func (r *Road) Seed(seed int64, density float64) {
	core.NewRNG(seed).FillDensity(r.cur, density)
}

// SetCells overwrites the road state for callers that bring their own
// initial lattice.
func (r *Road) SetCells(cells []uint8) {
	copy(r.cur, cells)
}

// Count returns the number of occupied cells.
func (r *Road) Count() int {
	count := 0
	for _, c := range r.cur {
		count += int(c)
	}
	return count
}

// Step advances the road one tick and reports how many cars moved.
func (r *Road) Step() int {
	moved := 0
	n := r.n
	for i := 0; i < n; i++ {
		left := r.cur[(i-1+n)%n]
		curr := r.cur[i]
		right := r.cur[(i+1)%n]

		arriving := left == 1 && curr == 0
		staying := curr == 1 && right == 1
		if arriving || staying {
			r.nxt[i] = 1
		} else {
			r.nxt[i] = 0
		}
		if curr == 1 && right == 0 {
			moved++
		}
	}
	r.cur, r.nxt = r.nxt, r.cur
	return moved
}

// FormatRoad renders a lattice one character per cell, X for a car and a
// dot for an empty cell.
func FormatRoad(cells []uint8) string {
	var b strings.Builder
	b.Grow(len(cells))
	for _, c := range cells {
		if c != 0 {
			b.WriteByte('X')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
