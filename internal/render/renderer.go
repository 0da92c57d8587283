//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// RoadPainter updates a single RGBA image from binary cell data.
type RoadPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewRoadPainter allocates a painter for a w*h cell window.
func NewRoadPainter(w, h int) *RoadPainter {
	rp := &RoadPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	rp.img = ebiten.NewImage(w, h)
	return rp
}

// Blit uploads the provided cells into the painter image and draws it.
func (rp *RoadPainter) Blit(dst *ebiten.Image, cells []uint8, on, off color.Color, scale int) {
	if len(cells) != rp.w*rp.h {
		return
	}
	fillBinaryRGBA(rp.buf, cells, on, off)
	rp.img.WritePixels(rp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(rp.img, op)
}

// Size returns the dimensions of the underlying image.
func (rp *RoadPainter) Size() (int, int) { return rp.w, rp.h }
