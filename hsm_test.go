package hsm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/pkg/stream"
)

type ioEvent int

const (
	evPing ioEvent = iota
	evPong
)

type appData struct {
	events stream.Source[ioEvent]
	trace  []string
}

type appTransit = hsm.Transit[appData, int]

// ping and pong form the flat two-state game: score the state entry, score
// every unmatched event, swap on the matching one, lift when the source
// runs dry.
func ping(ctx context.Context, c *hsm.Composite[appData], score int) (appTransit, error) {
	score++
	for {
		ev, ok, err := c.Data.events.Next(ctx)
		if err != nil {
			return appTransit{}, err
		}
		if !ok {
			return hsm.Lift[appData](score), nil
		}
		if ev == evPong {
			return hsm.Enter(c, pong, score), nil
		}
		score++
	}
}

func pong(ctx context.Context, c *hsm.Composite[appData], score int) (appTransit, error) {
	score++
	for {
		ev, ok, err := c.Data.events.Next(ctx)
		if err != nil {
			return appTransit{}, err
		}
		if !ok {
			return hsm.Lift[appData](score), nil
		}
		if ev == evPing {
			return hsm.Enter(c, ping, score), nil
		}
		score++
	}
}

func TestInit_FlatGame(t *testing.T) {
	events := stream.FromSlice([]ioEvent{evPing, evPong, evPing, evPong})
	app := hsm.New(appData{events: events})

	score, err := hsm.Init(context.Background(), app, ping, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, score)
}

func TestInit_Terminates(t *testing.T) {
	// Any finite sequence must resolve; guard against a hung loop.
	events := stream.FromSlice(make([]ioEvent, 1000))
	app := hsm.New(appData{events: events})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := hsm.Init(context.Background(), app, ping, 0)
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("drive loop did not terminate on a finite event sequence")
	}
}

func TestInit_IdempotentReentry(t *testing.T) {
	sequence := []ioEvent{evPing, evPong, evPing, evPong}

	run := func() int {
		app := hsm.New(appData{events: stream.FromSlice(sequence)})
		score, err := hsm.Init(context.Background(), app, ping, 0)
		require.NoError(t, err)
		return score
	}

	first := run()
	second := run()
	assert.Equal(t, first, second, "independent composites must not share hidden state")
}

func TestInit_ErrorShortCircuit(t *testing.T) {
	errBoom := errors.New("boom")
	invoked := false

	var failing, never hsm.StateFunc[appData, int, int]
	never = func(ctx context.Context, c *hsm.Composite[appData], _ int) (appTransit, error) {
		invoked = true
		return hsm.Lift[appData](0), nil
	}
	failing = func(ctx context.Context, c *hsm.Composite[appData], n int) (appTransit, error) {
		if n == 1 {
			return appTransit{}, errBoom
		}
		// Would continue to never if the loop ignored the failure.
		return hsm.Enter(c, never, 0), nil
	}
	first := func(ctx context.Context, c *hsm.Composite[appData], _ int) (appTransit, error) {
		return hsm.Enter(c, failing, 1), nil
	}

	app := hsm.New(appData{})
	_, err := hsm.Init(context.Background(), app, first, 0)
	require.ErrorIs(t, err, errBoom, "the error must be returned verbatim")
	assert.False(t, invoked, "no computation may start after the failing one")
}

func TestInit_NilState(t *testing.T) {
	app := hsm.New(appData{})
	_, err := hsm.Init[appData, int, int](context.Background(), app, nil, 0)
	assert.ErrorIs(t, err, hsm.ErrNilState)
}

func TestInit_ZeroTransit(t *testing.T) {
	zero := func(ctx context.Context, c *hsm.Composite[appData], _ int) (appTransit, error) {
		return appTransit{}, nil
	}
	app := hsm.New(appData{})
	_, err := hsm.Init(context.Background(), app, zero, 0)
	assert.ErrorIs(t, err, hsm.ErrNilHandle)
}

func TestInit_NilToHandle(t *testing.T) {
	bad := func(ctx context.Context, c *hsm.Composite[appData], _ int) (appTransit, error) {
		return hsm.To[appData, int](nil), nil
	}
	app := hsm.New(appData{})
	_, err := hsm.Init(context.Background(), app, bad, 0)
	assert.ErrorIs(t, err, hsm.ErrNilHandle)
}

func TestInit_ReentrantInitFails(t *testing.T) {
	var inner error
	reenter := func(ctx context.Context, c *hsm.Composite[appData], _ int) (appTransit, error) {
		noop := func(ctx context.Context, c *hsm.Composite[appData], _ int) (appTransit, error) {
			return hsm.Lift[appData](0), nil
		}
		_, inner = hsm.Init(ctx, c, noop, 0)
		return hsm.Lift[appData](0), nil
	}

	app := hsm.New(appData{})
	_, err := hsm.Init(context.Background(), app, reenter, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, inner, hsm.ErrActive, "the same composite must not host two loops")
}

func TestInit_ConcurrentInitFails(t *testing.T) {
	ch := make(chan ioEvent)
	app := hsm.New(appData{events: stream.FromChan(ch)})

	running := make(chan struct{})
	waiting := func(ctx context.Context, c *hsm.Composite[appData], _ int) (appTransit, error) {
		close(running)
		_, _, err := c.Data.events.Next(ctx)
		if err != nil {
			return appTransit{}, err
		}
		return hsm.Lift[appData](0), nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := hsm.Init(context.Background(), app, waiting, 0)
		done <- err
	}()

	<-running
	_, err := hsm.Init(context.Background(), app, waiting, 0)
	assert.ErrorIs(t, err, hsm.ErrActive)

	close(ch)
	require.NoError(t, <-done)
}

func TestInit_SequentialProgression(t *testing.T) {
	// Each state writes an enter/exit pair to shared data; overlapping
	// mutation windows would interleave them.
	var chain hsm.StateFunc[appData, int, int]
	chain = func(ctx context.Context, c *hsm.Composite[appData], n int) (appTransit, error) {
		c.Data.trace = append(c.Data.trace, "enter")
		if n == 0 {
			c.Data.trace = append(c.Data.trace, "exit")
			return hsm.Lift[appData](len(c.Data.trace)), nil
		}
		c.Data.trace = append(c.Data.trace, "exit")
		return hsm.Enter(c, chain, n-1), nil
	}

	app := hsm.New(appData{})
	_, err := hsm.Init(context.Background(), app, chain, 4)
	require.NoError(t, err)

	require.Len(t, app.Data.trace, 10)
	for i, mark := range app.Data.trace {
		want := "enter"
		if i%2 == 1 {
			want = "exit"
		}
		assert.Equal(t, want, mark, "trace position %d", i)
	}
}

func TestInit_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan ioEvent)
	app := hsm.New(appData{events: stream.FromChan(ch)})
	_, err := hsm.Init(ctx, app, ping, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInit_Hooks(t *testing.T) {
	var steps []int
	var lifts, failures int

	hooks := hsm.Hooks{
		OnStep: func(_ context.Context, e *hsm.StepEvent) {
			steps = append(steps, e.Seq)
		},
		OnLift: func(_ context.Context, e *hsm.LiftEvent) {
			lifts++
			assert.Equal(t, 3, e.Steps)
		},
		OnError: func(_ context.Context, e *hsm.ErrorEvent) {
			failures++
		},
	}

	events := stream.FromSlice([]ioEvent{evPong, evPing})
	app := hsm.New(appData{events: events}, hsm.WithHooks(hooks))

	// ping -> pong -> ping, then the source runs dry: three computations.
	_, err := hsm.Init(context.Background(), app, ping, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, steps)
	assert.Equal(t, 1, lifts)
	assert.Zero(t, failures)
}
