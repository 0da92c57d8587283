package traffic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"traffic-ca/internal/comm"
	"traffic-ca/internal/core"
	"traffic-ca/internal/ring"
)

// runPartitioned splits initial across size workers, runs the exchange/step
// loop for the given iterations and returns the gathered final road.
func runPartitioned(initial []uint8, size, iterations int) []uint8 {
	n := len(initial)
	group := comm.NewGroup(size)
	counts := ring.Counts(n, size)
	offsets := ring.Offsets(n, size)

	var final []uint8
	var wg sync.WaitGroup
	for rank := 0; rank < size; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			w := NewWorker(group.Comm(rank), n)
			w.SeedFrom(initial)
			for t := 0; t < iterations; t++ {
				w.Exchange()
				w.Step()
				w.Swap()
			}
			if full := group.Comm(rank).GatherV(w.Owned(), counts, offsets, n); rank == 0 {
				final = full
			}
		}(rank)
	}
	wg.Wait()
	return final
}

func TestGhostsReflectRingNeighbors(t *testing.T) {
	// Arbitrary distinct byte values: Exchange moves raw cells, so the
	// wrap-around is observable directly.
	initial := []uint8{10, 20, 30, 40}
	n := len(initial)
	for _, size := range []int{1, 2, 3} {
		group := comm.NewGroup(size)
		offsets := ring.Offsets(n, size)

		type ghosts struct{ left, right uint8 }
		got := make([]ghosts, size)
		var wg sync.WaitGroup
		for rank := 0; rank < size; rank++ {
			wg.Add(1)
			go func(rank int) {
				defer wg.Done()
				w := NewWorker(group.Comm(rank), n)
				w.SeedFrom(initial)
				w.Exchange()
				l, r := w.Ghosts()
				got[rank] = ghosts{left: l, right: r}
			}(rank)
		}
		wg.Wait()

		for rank := 0; rank < size; rank++ {
			localN := ring.LocalLen(n, size, rank)
			first := offsets[rank]
			last := offsets[rank] + localN - 1
			wantLeft := initial[(first-1+n)%n]
			wantRight := initial[(last+1)%n]
			require.Equal(t, wantLeft, got[rank].left, "size=%d rank=%d left ghost", size, rank)
			require.Equal(t, wantRight, got[rank].right, "size=%d rank=%d right ghost", size, rank)
		}
	}
}

func TestPartitionInvariance(t *testing.T) {
	const n = 16
	const iterations = 10
	initial := make([]uint8, n)
	core.NewRNG(7).FillDensity(initial, 0.4)

	reference := NewRoad(n)
	reference.SetCells(initial)
	for i := 0; i < iterations; i++ {
		reference.Step()
	}

	for _, size := range []int{1, 2, 4} {
		final := runPartitioned(initial, size, iterations)
		require.Equal(t, reference.Cells(), final,
			"size=%d diverged from the sequential road", size)
	}
}

func TestSingleCarOrbitPartitioned(t *testing.T) {
	const n = 8
	initial := []uint8{1, 0, 0, 0, 0, 0, 0, 0}
	for _, size := range []int{1, 2, 4} {
		for iterations := 1; iterations <= n; iterations++ {
			final := runPartitioned(initial, size, iterations)
			want := iterations % n
			for i, c := range final {
				occupied := c == 1
				require.Equal(t, i == want, occupied,
					"size=%d iterations=%d: road %s", size, iterations, FormatRoad(final))
			}
		}
	}
}

func TestFullDensityFixedPointPartitioned(t *testing.T) {
	initial := []uint8{1, 1, 1, 1, 1, 1, 1, 1}
	final := runPartitioned(initial, 2, 1)
	require.Equal(t, initial, final)
}

func TestReductionMatchesLocalCounts(t *testing.T) {
	const n = 40
	const seed = 11
	for _, size := range []int{1, 2, 3, 5} {
		group := comm.NewGroup(size)
		totals := make([]int, size)
		locals := make([]int, size)
		var wg sync.WaitGroup
		for rank := 0; rank < size; rank++ {
			wg.Add(1)
			go func(rank int) {
				defer wg.Done()
				c := group.Comm(rank)
				w := NewWorker(c, n)
				w.Seed(seed, 0.3)
				locals[rank] = w.Count()
				totals[rank] = c.AllReduceSum(w.Count())
			}(rank)
		}
		wg.Wait()

		want := 0
		for _, l := range locals {
			want += l
		}
		for rank := 0; rank < size; rank++ {
			require.Equal(t, want, totals[rank], "size=%d rank=%d", size, rank)
		}
	}
}

func TestWorkerOccupancyConserved(t *testing.T) {
	const n = 60
	initial := make([]uint8, n)
	core.NewRNG(3).FillDensity(initial, 0.5)
	before := 0
	for _, c := range initial {
		before += int(c)
	}
	final := runPartitioned(initial, 3, 25)
	after := 0
	for _, c := range final {
		after += int(c)
	}
	require.Equal(t, before, after)
}
