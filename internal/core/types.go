package core

// Size describes the dimensions of a simulation view in cells.
type Size struct {
	W int
	H int
}

// Sim is the minimal contract the viewer expects from a simulation: a
// resettable, steppable automaton exposing a flat render buffer.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}
