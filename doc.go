/*
Package hsm is a minimal runtime for hierarchical state machines in which a
state is a suspendable computation, not a data value.

Instead of storing "the current state" in a variable and dispatching on it,
each state is an ordinary Go function. A transition is simply the next
function invocation, either within the same [Composite] or lifting back to
the enclosing one.

# Concept

A [Composite] owns the data shared by a family of sibling states. A state is
a [StateFunc]: it receives exclusive access to its composite plus one
argument, may block on external input (typically an event source), and
resolves to a [Transit] — either [To] (continue inside this composite with
the next state) or [Lift] (terminate this composite's loop and hand a value
to whoever started it).

[Init] is the drive loop: it runs the initial state, then repeatedly resumes
whatever [To] named, until a state lifts or fails. Exactly one state is in
flight per composite at any instant; the loop passes the composite through
the chain sequentially and never runs two siblings at once.

Hierarchy is plain function composition: a state builds a nested Composite,
drives it to completion with its own Init call, and translates the lifted
value into its own Transit. When a lift has to cross more than one level,
the nested machine lifts a [BuilderPair] — a factory plus its argument —
and the parent forwards it with [BuilderPair.Resume] without the child ever
naming the grandparent's states. Nesting depth is unbounded; each level is
one ordinary call frame in the parent state.

# Usage

A two-state machine counting events until its source runs dry:

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/hsm"
		"github.com/aretw0/hsm/pkg/stream"
	)

	type Data struct {
		Events stream.Source[string]
	}

	func tick(ctx context.Context, c *hsm.Composite[Data], n int) (hsm.Transit[Data, int], error) {
		ev, ok, err := c.Data.Events.Next(ctx)
		if err != nil {
			return hsm.Transit[Data, int]{}, err
		}
		if !ok {
			return hsm.Lift[Data](n), nil
		}
		_ = ev
		return hsm.Enter(c, tock, n+1), nil
	}

	func tock(ctx context.Context, c *hsm.Composite[Data], n int) (hsm.Transit[Data, int], error) {
		ev, ok, err := c.Data.Events.Next(ctx)
		if err != nil {
			return hsm.Transit[Data, int]{}, err
		}
		if !ok {
			return hsm.Lift[Data](n), nil
		}
		_ = ev
		return hsm.Enter(c, tick, n+1), nil
	}

	func main() {
		events := stream.FromSlice([]string{"a", "b", "c"})
		comp := hsm.New(Data{Events: events})
		total, err := hsm.Init(context.Background(), comp, tick, 0)
		if err != nil {
			panic(err)
		}
		fmt.Println(total)
	}

The core defines no event types and no concrete machine; see examples/ and
cmd/hsm for a full ping/pong hierarchy.
*/
package hsm
