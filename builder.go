package hsm

import "context"

// Builder is a factory producing the entry into a state of an enclosing
// composite. A nested machine lifts a Builder (inside a BuilderPair) so the
// parent can resume in a state the nested machine never names directly —
// the Go substitute for a static function pointer.
//
// Builders are expected to be package-level values, declared once next to
// the states they target.
type Builder[Data, Arg, Out any] func(c *Composite[Data], arg Arg) Handle[Data, Out]

// BuilderPair couples a Builder with the argument it should be applied to.
// It is the unit carried as a lift value when a lift must propagate across
// two hierarchy levels in one hop.
type BuilderPair[Data, Arg, Out any] struct {
	Build Builder[Data, Arg, Out]
	Arg   Arg
}

// Pair is a convenience constructor for BuilderPair.
func Pair[Data, Arg, Out any](b Builder[Data, Arg, Out], arg Arg) BuilderPair[Data, Arg, Out] {
	return BuilderPair[Data, Arg, Out]{Build: b, Arg: arg}
}

// Resume applies the pair against the enclosing composite, producing the
// parent's own transit. This is one forwarding step of a cross-level lift;
// chaining it per level reaches arbitrary depth.
func (p BuilderPair[Data, Arg, Out]) Resume(ctx context.Context, c *Composite[Data]) (Transit[Data, Out], error) {
	if p.Build == nil {
		return Transit[Data, Out]{}, ErrNilBuilder
	}
	return p.Build(c, p.Arg)(ctx)
}

// BindState adapts a state function into a Builder that enters it directly.
func BindState[Data, Arg, Out any](f StateFunc[Data, Arg, Out]) Builder[Data, Arg, Out] {
	return func(c *Composite[Data], arg Arg) Handle[Data, Out] {
		return func(ctx context.Context) (Transit[Data, Out], error) {
			return f(ctx, c, arg)
		}
	}
}
