// Package comm provides the message-passing operations the partitioned
// simulation is built on: a paired boundary exchange, a reusable barrier, a
// sum reduction and a variable-size gather. The worker group is a fixed set
// of goroutines created once at startup; every operation moves data through
// channels, never through a shared buffer.
package comm

// Group owns the channel fabric for a fixed set of workers.
type Group struct {
	size    int
	links   [][]chan uint8
	arrive  chan struct{}
	release []chan struct{}
	reduce  chan int
	result  []chan int
	gather  []chan []uint8
}

// NewGroup allocates the fabric for size workers. The group never grows or
// shrinks afterwards.
func NewGroup(size int) *Group {
	if size < 1 {
		size = 1
	}
	g := &Group{
		size:    size,
		links:   make([][]chan uint8, size),
		arrive:  make(chan struct{}, size),
		release: make([]chan struct{}, size),
		reduce:  make(chan int, size),
		result:  make([]chan int, size),
		gather:  make([]chan []uint8, size),
	}
	for from := range g.links {
		g.links[from] = make([]chan uint8, size)
		for to := range g.links[from] {
			// Capacity 1 per directed link: one boundary cell can be in
			// flight per link, so a whole ring of workers sending at once
			// never circular-waits, and a lone worker can exchange with
			// itself.
			g.links[from][to] = make(chan uint8, 1)
		}
	}
	for r := 0; r < size; r++ {
		g.release[r] = make(chan struct{}, 1)
		g.result[r] = make(chan int, 1)
		// Capacity 1 keeps consecutive gathers from interleaving: a rank
		// cannot park a second segment before rank 0 consumed the first.
		g.gather[r] = make(chan []uint8, 1)
	}
	return g
}

// Size returns the worker count.
func (g *Group) Size() int { return g.size }

// Comm returns the handle rank uses to talk to the rest of the group.
func (g *Group) Comm(rank int) *Comm {
	return &Comm{g: g, rank: rank}
}

// Comm is one worker's handle on the group. A Comm belongs to exactly one
// goroutine; collective calls must be made by every rank in the same order.
type Comm struct {
	g    *Group
	rank int
}

// Rank returns this worker's identity within the group.
func (c *Comm) Rank() int { return c.rank }

// Size returns the worker count of the group.
func (c *Comm) Size() int { return c.g.size }

// SendRecv delivers v to rank to and returns the value sent here by rank
// from, blocking until that value arrives. The send is buffered on the
// directed link, so the paired exchange cannot deadlock even when every
// worker calls it simultaneously or when to == from == the caller.
func (c *Comm) SendRecv(to int, v uint8, from int) uint8 {
	c.g.links[c.rank][to] <- v
	return <-c.g.links[from][c.rank]
}

// Barrier blocks until every rank in the group has reached it. Rank 0
// coordinates: it counts arrivals and then releases the others.
func (c *Comm) Barrier() {
	if c.g.size == 1 {
		return
	}
	if c.rank == 0 {
		for i := 1; i < c.g.size; i++ {
			<-c.g.arrive
		}
		for r := 1; r < c.g.size; r++ {
			c.g.release[r] <- struct{}{}
		}
		return
	}
	c.g.arrive <- struct{}{}
	<-c.g.release[c.rank]
}

// AllReduceSum sums v across all ranks and returns the total on every rank.
// The sum is accumulated in arrival order, which is fine for a commutative
// reduction; no rank returns before the total is complete.
func (c *Comm) AllReduceSum(v int) int {
	if c.g.size == 1 {
		return v
	}
	if c.rank == 0 {
		sum := v
		for i := 1; i < c.g.size; i++ {
			sum += <-c.g.reduce
		}
		for r := 1; r < c.g.size; r++ {
			c.g.result[r] <- sum
		}
		return sum
	}
	c.g.reduce <- v
	return <-c.g.result[c.rank]
}

// GatherV collects every rank's local cells into one buffer of length n at
// rank 0, placing each segment by the caller-supplied per-rank counts and
// offsets. Rank 0 returns the assembled buffer; every other rank sends a
// copy of its cells and returns nil.
func (c *Comm) GatherV(local []uint8, counts, offsets []int, n int) []uint8 {
	if c.rank != 0 {
		c.g.gather[c.rank] <- append([]uint8(nil), local...)
		return nil
	}
	full := make([]uint8, n)
	copy(full[offsets[0]:], local[:counts[0]])
	for r := 1; r < c.g.size; r++ {
		part := <-c.g.gather[r]
		copy(full[offsets[r]:], part[:counts[r]])
	}
	return full
}
