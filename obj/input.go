package obj

import (
	"slices"
	"sync"
	"time"
)

// Key names a keyboard key. Names follow ebiten's key names: "ArrowLeft",
// "Space", "D", "Digit1" and so on.
type Key string

const (
	KeyLeft   Key = "ArrowLeft"
	KeyRight  Key = "ArrowRight"
	KeyUp     Key = "ArrowUp"
	KeyDown   Key = "ArrowDown"
	KeySpace  Key = "Space"
	KeyEscape Key = "Escape"
)

// KeyState is an immutable snapshot of which keys are down.
type KeyState struct {
	down map[Key]struct{}
}

// NewKeyState builds a snapshot with the given keys held.
func NewKeyState(keys ...Key) KeyState {
	down := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		down[k] = struct{}{}
	}
	return KeyState{down: down}
}

// Pressed reports whether k is down.
func (s KeyState) Pressed(k Key) bool {
	_, ok := s.down[k]
	return ok
}

// Any reports whether any of keys is down.
func (s KeyState) Any(keys ...Key) bool {
	for _, k := range keys {
		if s.Pressed(k) {
			return true
		}
	}
	return false
}

// Keys returns the held keys in sorted order.
func (s KeyState) Keys() []Key {
	keys := make([]Key, 0, len(s.down))
	for k := range s.down {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// KeyTable is the live keyboard state written by an input service and read
// once per tick through Snapshot. It is safe for concurrent use.
type KeyTable struct {
	mu sync.RWMutex
	// until holds the release deadline for each key; the zero time means the
	// key stays down until Release.
	until map[Key]time.Time
}

// NewKeyTable creates a table with every key up.
func NewKeyTable() *KeyTable {
	return &KeyTable{until: make(map[Key]time.Time)}
}

// Press marks k as down until it is released.
func (t *KeyTable) Press(k Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.until[k] = time.Time{}
}

// PressFor marks k as down until the given deadline. Terminals report key
// repeats but no releases, so their input service holds keys this way.
func (t *KeyTable) PressFor(k Key, until time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.until[k] = until
}

// Release marks k as up.
func (t *KeyTable) Release(k Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.until, k)
}

// Set replaces the whole state with keys held down.
func (t *KeyTable) Set(keys []Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.until)
	for _, k := range keys {
		t.until[k] = time.Time{}
	}
}

// Snapshot returns the keys down at now.
func (t *KeyTable) Snapshot(now time.Time) KeyState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	down := make(map[Key]struct{}, len(t.until))
	for k, until := range t.until {
		if until.IsZero() || now.Before(until) {
			down[k] = struct{}{}
		}
	}
	return KeyState{down: down}
}
