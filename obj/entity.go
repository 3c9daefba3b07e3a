package obj

import (
	"cmp"
	"image"
	"reflect"
	"slices"
	"time"

	"github.com/milk9111/boxloop/common"
	"github.com/milk9111/boxloop/component"
	"github.com/milk9111/boxloop/render"
)

// Tick is what an object receives on every Process call.
type Tick struct {
	// Elapsed is the time since this object's previous tick, zero on its first.
	Elapsed time.Duration
	// Keys is the keyboard state captured at the start of the tick.
	Keys KeyState
	// Number counts ticks since the world was created, starting at 1.
	Number uint64
}

// Object is anything that lives in a World.
type Object interface {
	Process(t Tick)
	Draw(c render.Canvas)
	// CollideAgainst reports whether other, moved by (dx, dy), would hit this
	// object, and which box it would hit.
	CollideAgainst(other Object, dx, dy int) (Collision, bool)
	// Base returns the shared position, size and sprite state.
	Base() *Entity
}

// Entity is a positioned, boxed world object with named sprites. Game
// objects embed it and override Process to add behaviour.
type Entity struct {
	X, Y   int
	Z      int
	Width  int
	Height int

	FlipX bool
	FlipY bool

	sprites    map[string]*component.Sprite
	current    *component.Sprite
	currentKey string
	hasCurrent bool

	world    *World
	self     Object
	lastTick time.Time
}

// NewEntity creates an entity with its box at (x, y). Negative sizes are
// clamped to zero.
func NewEntity(x, y, w, h int) *Entity {
	return &Entity{X: x, Y: y, Width: max(w, 0), Height: max(h, 0)}
}

// Base returns e.
func (e *Entity) Base() *Entity { return e }

// Box returns the entity's collision box.
func (e *Entity) Box() common.Box {
	return common.Box{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// World returns the world the entity was enqueued in, or nil.
func (e *Entity) World() *World { return e.world }

// Process advances the current sprite.
func (e *Entity) Process(t Tick) {
	if e.current != nil {
		e.current.Advance(t.Elapsed)
	}
}

// Draw paints the current sprite frame at the entity's position.
func (e *Entity) Draw(c render.Canvas) {
	if e.current == nil || c == nil {
		return
	}
	frame := e.current.Frame()
	if frame == nil {
		return
	}
	b := frame.Bounds()
	x, y, w, h := e.X, e.Y, b.Dx(), b.Dy()
	if e.FlipX {
		x += w
		w = -w
	}
	if e.FlipY {
		y += h
		h = -h
	}
	c.DrawFrame(frame, x, y, w, h)
}

// CollideAgainst tests other's box, moved by (dx, dy), against this
// entity's box.
func (e *Entity) CollideAgainst(other Object, dx, dy int) (Collision, bool) {
	target, ok := boxOf(other)
	if !ok {
		return Collision{}, false
	}
	box := e.Box()
	if !box.Intersects(target.Offset(dx, dy)) {
		return Collision{}, false
	}
	return Collision{Box: box, Object: e.object()}, true
}

// AddSprite registers a static sprite under name.
func (e *Entity) AddSprite(name string, frame image.Image) {
	e.putSprite(name, component.NewStaticSprite(frame))
}

// AddAnimation registers an animated sprite under name.
func (e *Entity) AddAnimation(name string, frames []image.Image, durations []time.Duration) error {
	s, err := component.NewSprite(frames, durations)
	if err != nil {
		return err
	}
	e.putSprite(name, s)
	return nil
}

func (e *Entity) putSprite(name string, s *component.Sprite) {
	if e.sprites == nil {
		e.sprites = make(map[string]*component.Sprite)
	}
	e.sprites[name] = s
	if e.hasCurrent && e.currentKey == name {
		e.current = s
	}
}

// SetSprite switches to the sprite registered under name. Switching to the
// current name does nothing; otherwise the outgoing sprite is rewound.
// Unknown names leave the entity without a current sprite.
func (e *Entity) SetSprite(name string) {
	if e.hasCurrent && e.currentKey == name {
		return
	}
	if e.current != nil {
		e.current.Reset()
	}
	e.current = e.sprites[name]
	e.currentKey = name
	e.hasCurrent = true
}

// CurrentSprite returns the current sprite key and sprite. The sprite is
// nil when nothing is set or the key was never registered.
func (e *Entity) CurrentSprite() (string, *component.Sprite) {
	return e.currentKey, e.current
}

// Sprite returns the sprite registered under name.
func (e *Entity) Sprite(name string) (*component.Sprite, bool) {
	s, ok := e.sprites[name]
	return s, ok
}

func (e *Entity) bind(w *World, self Object) {
	e.world = w
	e.self = self
	e.lastTick = time.Time{}
}

func (e *Entity) unbind() {
	e.world = nil
}

// elapsed returns the time since the entity's previous tick and records now.
func (e *Entity) elapsed(now time.Time) time.Duration {
	var d time.Duration
	if !e.lastTick.IsZero() {
		d = now.Sub(e.lastTick)
	}
	e.lastTick = now
	return max(d, 0)
}

func (e *Entity) object() Object {
	if e.self != nil {
		return e.self
	}
	return e
}

// isNil reports whether o is nil or a nil pointer behind the interface.
func isNil(o Object) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// boxOf returns o's box. Nil objects have none.
func boxOf(o Object) (common.Box, bool) {
	if isNil(o) {
		return common.Box{}, false
	}
	b := o.Base()
	if b == nil {
		return common.Box{}, false
	}
	return b.Box(), true
}

// Less orders objects by ascending Z.
func Less(a, b Object) bool {
	return a.Base().Z < b.Base().Z
}

// SortByZ sorts objects by ascending Z, keeping insertion order for ties.
func SortByZ(objects []Object) {
	slices.SortStableFunc(objects, func(a, b Object) int {
		return cmp.Compare(a.Base().Z, b.Base().Z)
	})
}
