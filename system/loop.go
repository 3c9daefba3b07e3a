package system

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/boxloop/obj"
	"github.com/milk9111/boxloop/render"
)

// DefaultTPS is the tick rate used when none is configured.
const DefaultTPS = 25

// Loop drives a World at a fixed rate: process, draw, present, then merge
// the objects queued during the tick.
type Loop struct {
	world   *obj.World
	surface render.Surface
	keys    *obj.KeyTable

	clock  Clock
	budget time.Duration
	log    *zap.Logger

	ticks    atomic.Uint64
	overruns atomic.Uint64
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock replaces the real clock.
func WithClock(c Clock) LoopOption {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithTPS sets the rate in ticks per second.
func WithTPS(tps int) LoopOption {
	return func(l *Loop) {
		if tps > 0 {
			l.budget = time.Second / time.Duration(tps)
		}
	}
}

// WithBudget sets the time allotted to each tick.
func WithBudget(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.budget = d
		}
	}
}

// WithLogger sets the loop's logger.
func WithLogger(log *zap.Logger) LoopOption {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoop creates a loop over world that draws on surface. keys may be nil
// when nothing feeds input.
func NewLoop(world *obj.World, surface render.Surface, keys *obj.KeyTable, opts ...LoopOption) (*Loop, error) {
	if world == nil {
		return nil, errors.New("loop: nil world")
	}
	if surface == nil {
		return nil, errors.New("loop: nil surface")
	}
	l := &Loop{
		world:   world,
		surface: surface,
		keys:    keys,
		clock:   RealClock{},
		budget:  time.Second / DefaultTPS,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Tick runs one iteration. Objects enqueued or removed while it runs take
// effect once it returns.
func (l *Loop) Tick() error {
	now := l.clock.Now()
	var keys obj.KeyState
	if l.keys != nil {
		keys = l.keys.Snapshot(now)
	}

	l.surface.Clear()
	l.world.Update(now, keys)
	l.world.Draw(l.surface)
	err := l.surface.Present()
	l.world.Flush()
	l.ticks.Add(1)

	if err != nil {
		return fmt.Errorf("present tick %d: %w", l.ticks.Load(), err)
	}
	return nil
}

// Run ticks until ctx is done or presenting fails. Each tick starts one
// budget after the previous one started; a tick that overruns its budget is
// followed immediately by the next, which gets a fresh deadline.
func (l *Loop) Run(ctx context.Context) error {
	return l.run(ctx, 0)
}

// RunFor is Run limited to n ticks. It returns nil once they are done.
func (l *Loop) RunFor(ctx context.Context, n uint64) error {
	if n == 0 {
		return nil
	}
	return l.run(ctx, n)
}

func (l *Loop) run(ctx context.Context, limit uint64) error {
	l.log.Info("loop started",
		zap.Duration("budget", l.budget),
		zap.Uint64("limit", limit),
	)
	defer func() {
		l.log.Info("loop stopped",
			zap.Uint64("ticks", l.ticks.Load()),
			zap.Uint64("overruns", l.overruns.Load()),
		)
	}()

	for done := uint64(0); limit == 0 || done < limit; done++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := l.clock.Now()
		if err := l.Tick(); err != nil {
			return err
		}

		if took := l.clock.Now().Sub(start); took > l.budget {
			l.overruns.Add(1)
			l.log.Debug("tick overran budget",
				zap.Duration("took", took),
				zap.Duration("budget", l.budget),
				zap.Uint64("tick", l.ticks.Load()),
			)
			continue
		}
		if err := l.clock.SleepUntil(ctx, start.Add(l.budget)); err != nil {
			return err
		}
	}
	return nil
}

// Ticks returns how many ticks have completed.
func (l *Loop) Ticks() uint64 { return l.ticks.Load() }

// Overruns returns how many ticks took longer than the budget.
func (l *Loop) Overruns() uint64 { return l.overruns.Load() }

// Budget returns the time allotted to each tick.
func (l *Loop) Budget() time.Duration { return l.budget }

// World returns the world the loop drives.
func (l *Loop) World() *obj.World { return l.world }
