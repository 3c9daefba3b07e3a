package render

import "image"

// Canvas is the frame buffer objects paint onto during a tick.
type Canvas interface {
	// Clear fills the whole canvas with its background.
	Clear()
	// DrawFrame paints img scaled into the w x h box at (x, y). A negative
	// width or height mirrors the image so that it covers [x+w, x] instead.
	DrawFrame(img image.Image, x, y, w, h int)
}

// Surface is a Canvas that can hand its composed frame to a display.
type Surface interface {
	Canvas
	Present() error
}

// DrawCall is one recorded DrawFrame invocation.
type DrawCall struct {
	Image      image.Image
	X, Y, W, H int
}

// Recorder is a Surface that remembers what was drawn instead of rasterizing
// it. Calls holds the draws since the last Clear; Frames holds every
// presented frame.
type Recorder struct {
	Calls    []DrawCall
	Frames   [][]DrawCall
	Clears   int
	Presents int
}

func (r *Recorder) Clear() {
	r.Clears++
	r.Calls = nil
}

func (r *Recorder) DrawFrame(img image.Image, x, y, w, h int) {
	r.Calls = append(r.Calls, DrawCall{Image: img, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) Present() error {
	r.Presents++
	r.Frames = append(r.Frames, append([]DrawCall(nil), r.Calls...))
	return nil
}
