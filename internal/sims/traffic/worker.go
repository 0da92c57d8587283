package traffic

import (
	"traffic-ca/internal/comm"
	"traffic-ca/internal/core"
	"traffic-ca/internal/ring"
)

// Worker owns one contiguous segment of the ring road. Indices 1..localN of
// the buffer hold the owned cells; slots 0 and localN+1 are ghost copies of
// the neighbors' boundary cells, refreshed by Exchange before every Step.
type Worker struct {
	comm   *comm.Comm
	localN int
	left   int
	right  int
	cur    []uint8
	nxt    []uint8
}

// NewWorker builds the worker for this rank's share of an n-cell road split
// across the whole group.
func NewWorker(c *comm.Comm, n int) *Worker {
	localN := ring.LocalLen(n, c.Size(), c.Rank())
	left, right := ring.Neighbors(c.Rank(), c.Size())
	return &Worker{
		comm:   c,
		localN: localN,
		left:   left,
		right:  right,
		cur:    make([]uint8, localN+2),
		nxt:    make([]uint8, localN+2),
	}
}

// LocalLen returns how many cells this worker owns.
func (w *Worker) LocalLen() int { return w.localN }

// Owned returns the owned cells of the current buffer, without the ghost
// slots.
func (w *Worker) Owned() []uint8 { return w.cur[1 : w.localN+1] }

// Ghosts returns the current left and right ghost values.
func (w *Worker) Ghosts() (left, right uint8) {
	return w.cur[0], w.cur[w.localN+1]
}

// Seed populates the owned cells from this rank's private random stream;
// initialization needs no communication.
func (w *Worker) Seed(seed int64, density float64) {
	core.NewWorkerRNG(seed, w.comm.Rank()).FillDensity(w.Owned(), density)
}

// SeedFrom copies this worker's segment out of a full initial road.
func (w *Worker) SeedFrom(road []uint8) {
	off := ring.Offsets(len(road), w.comm.Size())[w.comm.Rank()]
	copy(w.Owned(), road[off:off+w.localN])
}

// Count returns the number of occupied owned cells.
func (w *Worker) Count() int {
	count := 0
	for _, c := range w.Owned() {
		count += int(c)
	}
	return count
}

// Exchange refreshes both ghost slots from the neighbors. Each sub-phase
// pairs its send with the opposite-direction receive, so a full ring calling
// Exchange together never circular-waits: first every worker passes its
// rightmost owned cell clockwise, then its leftmost owned cell back. Both
// ghosts are in place when Exchange returns; this is the only point where
// neighbors synchronize.
func (w *Worker) Exchange() {
	w.cur[0] = w.comm.SendRecv(w.right, w.cur[w.localN], w.left)
	w.cur[w.localN+1] = w.comm.SendRecv(w.left, w.cur[1], w.right)
}

// Step applies the transition rule to every owned cell using only the cell
// and its two neighbors in the current buffer, writing the next buffer. The
// edge cells read the ghost slots, so the loop body is identical at the
// segment boundary and in the interior. Returns how many owned cars moved
// out of their cell.
func (w *Worker) Step() int {
	moved := 0
	for i := 1; i <= w.localN; i++ {
		left := w.cur[i-1]
		curr := w.cur[i]
		right := w.cur[i+1]

		arriving := left == 1 && curr == 0
		staying := curr == 1 && right == 1
		if arriving || staying {
			w.nxt[i] = 1
		} else {
			w.nxt[i] = 0
		}
		if curr == 1 && right == 0 {
			moved++
		}
	}
	return moved
}

// Swap flips the current and next buffer roles. The ghost slots of the new
// current buffer are stale until the next Exchange.
func (w *Worker) Swap() {
	w.cur, w.nxt = w.nxt, w.cur
}
