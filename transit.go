package hsm

import "context"

// StateFunc is the contract every state implements. It receives exclusive
// access to its composite and one input argument, may block on ctx-aware
// calls (typically an event source), and resolves to a Transit or an error.
//
// All states reachable from one Init call share the same Data and Out types;
// errors terminate the enclosing drive loop immediately.
type StateFunc[Data, In, Out any] func(ctx context.Context, c *Composite[Data], in In) (Transit[Data, Out], error)

// Handle is a pending state computation, already bound to its composite and
// argument, waiting for the drive loop to resume it.
type Handle[Data, Out any] func(ctx context.Context) (Transit[Data, Out], error)

// Transit is the two-variant outcome of a state step: continue inside the
// composite (To), or lift out of it with a final value (Lift).
//
// The zero Transit is neither variant; Init rejects it with ErrNilHandle.
type Transit[Data, Out any] struct {
	next   Handle[Data, Out]
	out    Out
	lifted bool
}

// To names the next state within the same composite. The handle is not run
// until the drive loop resumes it.
func To[Data, Out any](next Handle[Data, Out]) Transit[Data, Out] {
	return Transit[Data, Out]{next: next}
}

// Lift terminates the composite's drive loop, handing out to whoever called
// Init. The value crosses the composite boundary, so it must not retain
// references into the composite's Data: the composite may be discarded as
// soon as the loop returns.
func Lift[Data, Out any](out Out) Transit[Data, Out] {
	return Transit[Data, Out]{out: out, lifted: true}
}

// Enter is the common way to build a To transit: it binds f to the composite
// and its next argument.
func Enter[Data, In, Out any](c *Composite[Data], f StateFunc[Data, In, Out], in In) Transit[Data, Out] {
	return To(func(ctx context.Context) (Transit[Data, Out], error) {
		return f(ctx, c, in)
	})
}
