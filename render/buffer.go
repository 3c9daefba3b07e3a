package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Buffer is a software RGBA canvas. It backs the terminal and headless
// surfaces.
type Buffer struct {
	img        *image.RGBA
	Background color.Color
}

// NewBuffer creates a w x h buffer cleared to black.
func NewBuffer(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Buffer{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		Background: color.Black,
	}
	b.Clear()
	return b
}

// Image returns the underlying pixels.
func (b *Buffer) Image() *image.RGBA { return b.img }

func (b *Buffer) Clear() {
	bg := b.Background
	if bg == nil {
		bg = color.Black
	}
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

func (b *Buffer) DrawFrame(img image.Image, x, y, w, h int) {
	if img == nil || w == 0 || h == 0 {
		return
	}
	sr := img.Bounds()
	if sr.Empty() {
		return
	}

	sx := float64(w) / float64(sr.Dx())
	sy := float64(h) / float64(sr.Dy())
	s2d := f64.Aff3{
		sx, 0, float64(x) - float64(sr.Min.X)*sx,
		0, sy, float64(y) - float64(sr.Min.Y)*sy,
	}
	draw.NearestNeighbor.Transform(b.img, s2d, img, sr, draw.Over, nil)
}

// Present is a no-op; a bare Buffer is its own display.
func (b *Buffer) Present() error { return nil }
