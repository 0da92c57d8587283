// Package ring derives the neighbor topology and domain decomposition for a
// fixed group of workers arranged in a cycle, matching the periodic boundary
// of the road they share.
package ring

// Neighbors returns the ranks adjacent to rank in a ring of the given size.
// With a single worker both neighbors are the worker itself.
func Neighbors(rank, size int) (left, right int) {
	left = (rank - 1 + size) % size
	right = (rank + 1) % size
	return left, right
}

// LocalLen returns how many cells of an n-cell road the given rank owns:
// n/size each, with the first n%size ranks taking one extra cell so no two
// segments differ in length by more than one.
func LocalLen(n, size, rank int) int {
	l := n / size
	if rank < n%size {
		l++
	}
	return l
}

// Counts returns the owned cell count of every rank.
func Counts(n, size int) []int {
	counts := make([]int, size)
	for r := range counts {
		counts[r] = LocalLen(n, size, r)
	}
	return counts
}

// Offsets returns each rank's starting index in the full road. The gather
// places segments with these, so they are derived from the same split as
// LocalLen rather than assuming uniform segment sizes.
func Offsets(n, size int) []int {
	offsets := make([]int, size)
	off := 0
	for r := range offsets {
		offsets[r] = off
		off += LocalLen(n, size, r)
	}
	return offsets
}
