package system

import "context"

// RunHeadless runs ticks iterations of loop and stops. Use it with a
// render.Buffer or render.Recorder surface for smoke runs without a display.
func RunHeadless(ctx context.Context, loop *Loop, ticks uint64) error {
	return loop.RunFor(ctx, ticks)
}
