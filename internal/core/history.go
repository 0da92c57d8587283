package core

// History keeps a rolling window of road states for rendering, newest row
// first, stored row-major with W cells per row.
type History struct {
	W, H int
	data []uint8
}

// NewHistory allocates a window for roads of length w, h rows deep.
func NewHistory(w, h int) *History {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &History{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice in render order.
func (h *History) Cells() []uint8 { return h.data }

// Push scrolls the existing rows down one slot and copies row into the top.
// Rows longer than W are truncated.
func (h *History) Push(row []uint8) {
	copy(h.data[h.W:], h.data[:h.W*(h.H-1)])
	copy(h.data[:h.W], row)
}

// Clear fills the window with zeros.
func (h *History) Clear() {
	for i := range h.data {
		h.data[i] = 0
	}
}
