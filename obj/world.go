package obj

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/boxloop/render"
)

// World owns the live objects and the queues that change them. Objects are
// added and removed only between ticks, so every query made while objects
// are processed sees the same set.
type World struct {
	objects  []Object
	pending  []Object
	removals []Object
	members  map[Object]struct{}
	doomed   map[Object]struct{}

	drawOrder []Object
	ticks     uint64

	log *zap.Logger
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the world's logger.
func WithLogger(log *zap.Logger) WorldOption {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		members: make(map[Object]struct{}),
		doomed:  make(map[Object]struct{}),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Enqueue binds o to this world and queues it. It becomes live at the next
// Flush. Objects already live or queued are ignored, except that enqueueing
// an object queued for removal cancels the removal.
func (w *World) Enqueue(o Object) {
	if w == nil || isNil(o) {
		return
	}
	if _, ok := w.members[o]; ok {
		if _, doomed := w.doomed[o]; doomed {
			delete(w.doomed, o)
			w.removals = slices.DeleteFunc(w.removals, func(r Object) bool { return r == o })
		}
		return
	}
	w.members[o] = struct{}{}
	o.Base().bind(w, o)
	w.pending = append(w.pending, o)
}

// Remove queues o for removal at the next Flush. It keeps being processed
// and drawn until then.
func (w *World) Remove(o Object) {
	if w == nil || isNil(o) {
		return
	}
	if _, ok := w.members[o]; !ok {
		return
	}
	if _, ok := w.doomed[o]; ok {
		return
	}
	w.doomed[o] = struct{}{}
	w.removals = append(w.removals, o)
}

// QueryCollision asks every other live object, in insertion order, whether o
// moved by (dx, dy) would hit it, and returns the first hit.
func (w *World) QueryCollision(o Object, dx, dy int) (Collision, bool) {
	if w == nil || isNil(o) {
		return Collision{}, false
	}
	for _, other := range w.objects {
		if other == o {
			continue
		}
		if c, ok := other.CollideAgainst(o, dx, dy); ok {
			return c, true
		}
	}
	return Collision{}, false
}

// Update processes every live object once. Each object is told how long it
// has been since its own previous tick.
func (w *World) Update(now time.Time, keys KeyState) {
	w.ticks++
	for _, o := range w.objects {
		o.Process(Tick{
			Elapsed: o.Base().elapsed(now),
			Keys:    keys,
			Number:  w.ticks,
		})
	}
}

// Draw paints every live object in ascending Z order.
func (w *World) Draw(c render.Canvas) {
	w.drawOrder = append(w.drawOrder[:0], w.objects...)
	SortByZ(w.drawOrder)
	for _, o := range w.drawOrder {
		o.Draw(c)
	}
	clear(w.drawOrder)
}

// Flush merges queued additions in the order they were enqueued, then
// applies queued removals.
func (w *World) Flush() (added, removed int) {
	added = len(w.pending)
	if added > 0 {
		w.objects = append(w.objects, w.pending...)
		clear(w.pending)
		w.pending = w.pending[:0]
	}

	removed = len(w.removals)
	if removed > 0 {
		w.objects = slices.DeleteFunc(w.objects, func(o Object) bool {
			_, ok := w.doomed[o]
			return ok
		})
		for _, o := range w.removals {
			delete(w.members, o)
			o.Base().unbind()
		}
		clear(w.doomed)
		clear(w.removals)
		w.removals = w.removals[:0]
	}

	if added > 0 || removed > 0 {
		w.log.Debug("world flushed",
			zap.Int("added", added),
			zap.Int("removed", removed),
			zap.Int("live", len(w.objects)),
			zap.Uint64("tick", w.ticks),
		)
	}
	return added, removed
}

// Objects returns the live objects in insertion order.
func (w *World) Objects() []Object {
	return slices.Clone(w.objects)
}

// Pending returns the objects waiting for the next Flush.
func (w *World) Pending() []Object {
	return slices.Clone(w.pending)
}

// Contains reports whether o is live.
func (w *World) Contains(o Object) bool {
	return slices.Contains(w.objects, o)
}

// Len returns the number of live objects.
func (w *World) Len() int { return len(w.objects) }

// Ticks returns how many times Update has run.
func (w *World) Ticks() uint64 { return w.ticks }
