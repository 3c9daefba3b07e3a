package system

import (
	"context"
	"errors"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/boxloop/obj"
	"github.com/milk9111/boxloop/render"
)

// KeyHold is how long a terminal key stays down after its last press or
// repeat. Terminals never report releases, and auto-repeat starts after a
// few hundred milliseconds.
const KeyHold = 500 * time.Millisecond

// RunTerminal runs loop on a terminal. Keys are read from the surface's
// screen on a separate goroutine and written to keys. It returns nil when
// the player presses Esc or Ctrl-C. The caller owns the screen and must
// Init it first and Fini it afterwards.
func RunTerminal(ctx context.Context, loop *Loop, surface *render.TerminalSurface, keys *obj.KeyTable) error {
	if keys == nil {
		keys = obj.NewKeyTable()
	}
	screen := surface.Screen()
	runCtx, quit := context.WithCancel(ctx)
	defer quit()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				continue
			}
			if handleTerminalEvent(ev, keys, loop.clock.Now()) {
				quit()
				return
			}
			if runCtx.Err() != nil {
				return
			}
		}
	}()

	err := loop.Run(runCtx)
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		return nil
	}
	return err
}

// handleTerminalEvent holds the key named by ev until now+KeyHold and
// reports whether the player asked to quit.
func handleTerminalEvent(ev tcell.Event, keys *obj.KeyTable, now time.Time) bool {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch kev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	}
	if k, ok := TerminalKey(kev); ok {
		keys.PressFor(k, now.Add(KeyHold))
	}
	return false
}

// TerminalKey names a terminal key event the way ebiten names keys, so both
// hosts feed entities the same key names. Letters are reported upper-case.
func TerminalKey(ev *tcell.EventKey) (obj.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return obj.KeyLeft, true
	case tcell.KeyRight:
		return obj.KeyRight, true
	case tcell.KeyUp:
		return obj.KeyUp, true
	case tcell.KeyDown:
		return obj.KeyDown, true
	case tcell.KeyEnter:
		return "Enter", true
	case tcell.KeyTab:
		return "Tab", true
	case tcell.KeyRune:
	default:
		return "", false
	}

	r := ev.Rune()
	switch {
	case r == ' ':
		return obj.KeySpace, true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return obj.Key(string(unicode.ToUpper(r))), true
	case r >= '0' && r <= '9':
		return obj.Key("Digit" + string(r)), true
	}
	return "", false
}
