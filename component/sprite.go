package component

import (
	"errors"
	"fmt"
	"image"
	"math"
	"time"
)

// Forever is the display duration of a frame that never advances.
const Forever = time.Duration(math.MaxInt64)

var (
	ErrNoFrames      = errors.New("sprite has no frames")
	ErrFrameMismatch = errors.New("frame and duration counts differ")
	ErrBadDuration   = errors.New("frame duration must be positive")
)

// Sprite is a frame-based animation timer. Each frame is shown for its own
// duration, after which the sprite moves to the next frame and wraps around
// at the end.
type Sprite struct {
	frames    []image.Image
	durations []time.Duration
	cycle     time.Duration

	elapsed time.Duration
	current int
}

// NewStaticSprite creates a one-frame sprite that never advances.
func NewStaticSprite(frame image.Image) *Sprite {
	return &Sprite{
		frames:    []image.Image{frame},
		durations: []time.Duration{Forever},
		cycle:     Forever,
	}
}

// NewSprite creates an animated sprite. frames and durations are parallel
// slices; every duration must be positive.
func NewSprite(frames []image.Image, durations []time.Duration) (*Sprite, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if len(frames) != len(durations) {
		return nil, fmt.Errorf("%w: %d frames, %d durations", ErrFrameMismatch, len(frames), len(durations))
	}

	var cycle time.Duration
	for i, d := range durations {
		if d <= 0 {
			return nil, fmt.Errorf("%w: frame %d has %v", ErrBadDuration, i, d)
		}
		cycle = saturatingAdd(cycle, d)
	}

	return &Sprite{
		frames:    append([]image.Image(nil), frames...),
		durations: append([]time.Duration(nil), durations...),
		cycle:     cycle,
	}, nil
}

// Advance adds d to the time spent on the current frame. Once that time
// exceeds the frame's duration the sprite moves on, as many frames as d
// covers.
func (s *Sprite) Advance(d time.Duration) {
	if s == nil || d <= 0 || len(s.frames) <= 1 {
		return
	}
	s.elapsed = saturatingAdd(s.elapsed, d)

	// Whole cycles land back on the same frame.
	if s.cycle < Forever && s.elapsed > s.cycle {
		s.elapsed = s.cycle + s.elapsed%s.cycle
	}

	for s.elapsed > s.durations[s.current] {
		s.elapsed -= s.durations[s.current]
		s.current = (s.current + 1) % len(s.frames)
	}
}

// Frame returns the image for the current frame.
func (s *Sprite) Frame() image.Image {
	if s == nil || len(s.frames) == 0 {
		return nil
	}
	return s.frames[s.current]
}

// Index returns the current frame index.
func (s *Sprite) Index() int {
	if s == nil {
		return 0
	}
	return s.current
}

// Elapsed returns the time spent on the current frame.
func (s *Sprite) Elapsed() time.Duration {
	if s == nil {
		return 0
	}
	return s.elapsed
}

// Len returns the number of frames.
func (s *Sprite) Len() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

// Reset sets the sprite back to the start of its first frame.
func (s *Sprite) Reset() {
	if s == nil {
		return
	}
	s.elapsed = 0
	s.current = 0
}

func saturatingAdd(a, b time.Duration) time.Duration {
	if a > Forever-b {
		return Forever
	}
	return a + b
}
