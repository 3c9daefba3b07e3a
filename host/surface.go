package host

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenSurface composes frames into an offscreen ebiten image. Present
// copies the finished frame to a front image that Blit draws to the window.
type EbitenSurface struct {
	buffer *ebiten.Image
	front  *ebiten.Image
	frames map[image.Image]*ebiten.Image

	Background color.Color
}

// NewEbitenSurface creates a surface with a w x h frame buffer.
func NewEbitenSurface(w, h int) *EbitenSurface {
	return &EbitenSurface{
		buffer:     ebiten.NewImage(w, h),
		front:      ebiten.NewImage(w, h),
		frames:     make(map[image.Image]*ebiten.Image),
		Background: color.Black,
	}
}

// Size returns the unscaled frame buffer size.
func (s *EbitenSurface) Size() (int, int) {
	b := s.buffer.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) Clear() {
	s.buffer.Fill(s.Background)
}

func (s *EbitenSurface) DrawFrame(img image.Image, x, y, w, h int) {
	src := s.convert(img)
	if src == nil || w == 0 || h == 0 {
		return
	}
	b := src.Bounds()
	if b.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterNearest
	s.buffer.DrawImage(src, op)
}

func (s *EbitenSurface) Present() error {
	s.front.Clear()
	s.front.DrawImage(s.buffer, nil)
	return nil
}

// Blit draws the last presented frame stretched over screen.
func (s *EbitenSurface) Blit(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	fw, fh := s.Size()
	sb := screen.Bounds()
	if fw == 0 || fh == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sb.Dx())/float64(fw), float64(sb.Dy())/float64(fh))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(s.front, op)
}

// convert returns an ebiten copy of img, building it once per source image.
func (s *EbitenSurface) convert(img image.Image) *ebiten.Image {
	if img == nil {
		return nil
	}
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := s.frames[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	s.frames[img] = e
	return e
}
