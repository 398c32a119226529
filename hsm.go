package hsm

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"
)

// Composite owns the data shared by a family of sibling states. Exactly one
// state computation is in flight per composite at any instant; the drive
// loop hands the composite through the chain sequentially instead of
// locking it.
type Composite[Data any] struct {
	// Data is shared by reference among the states running inside this
	// composite. It is only ever touched by the single in-flight state.
	Data Data

	cfg  config
	busy atomic.Bool
}

// New creates a Composite taking ownership of data.
func New[Data any](data Data, opts ...Option) *Composite[Data] {
	c := &Composite[Data]{
		Data: data,
		cfg: config{
			logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	}
	for _, opt := range opts {
		opt(&c.cfg)
	}
	return c
}

// Init drives the composite: it invokes f with the composite and in, then
// repeatedly resumes whatever To transit the previous state produced, until
// a state lifts or fails. It is a free function because Go methods cannot
// introduce the In/Out type parameters.
//
// The loop has exactly two terminal conditions: an error (returned verbatim,
// no retry) or a Lift (its value returned). States within one loop never
// observe a fresh composite; they all share c.
//
// Init is not reentrant per composite: a second call while a loop is
// running, including from inside one of c's own states, fails with
// ErrActive. Nested machines use their own Composite instance.
func Init[Data, In, Out any](ctx context.Context, c *Composite[Data], f StateFunc[Data, In, Out], in In) (Out, error) {
	var zero Out
	if f == nil {
		return zero, ErrNilState
	}
	if !c.busy.CompareAndSwap(false, true) {
		return zero, ErrActive
	}
	defer c.busy.Store(false)

	start := time.Now()
	seq := 1
	c.step(ctx, seq)

	t, err := f(ctx, c, in)
	for {
		if err != nil {
			c.fail(ctx, seq, start, err)
			return zero, err
		}
		if t.lifted {
			c.lift(ctx, seq, start)
			return t.out, nil
		}
		if t.next == nil {
			err := ErrNilHandle
			c.fail(ctx, seq, start, err)
			return zero, err
		}
		seq++
		c.step(ctx, seq)
		t, err = t.next(ctx)
	}
}

func (c *Composite[Data]) step(ctx context.Context, seq int) {
	c.cfg.logger.DebugContext(ctx, "state resumed", "seq", seq)
	if c.cfg.hooks.OnStep != nil {
		c.cfg.hooks.OnStep(ctx, &StepEvent{Timestamp: time.Now(), Seq: seq})
	}
}

func (c *Composite[Data]) lift(ctx context.Context, steps int, start time.Time) {
	elapsed := time.Since(start)
	c.cfg.logger.DebugContext(ctx, "composite lifted", "steps", steps, "elapsed", elapsed)
	if c.cfg.hooks.OnLift != nil {
		c.cfg.hooks.OnLift(ctx, &LiftEvent{Timestamp: time.Now(), Steps: steps, Elapsed: elapsed})
	}
}

func (c *Composite[Data]) fail(ctx context.Context, steps int, start time.Time, err error) {
	elapsed := time.Since(start)
	c.cfg.logger.DebugContext(ctx, "composite failed", "steps", steps, "elapsed", elapsed, "error", err)
	if c.cfg.hooks.OnError != nil {
		c.cfg.hooks.OnError(ctx, &ErrorEvent{Timestamp: time.Now(), Steps: steps, Elapsed: elapsed, Err: err})
	}
}
