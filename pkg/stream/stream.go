// Package stream provides the event sources consumed by state functions.
//
// The core runtime never defines event types; its only expectation of a
// source is the Source contract: a lazy sequence that reports exhaustion
// exactly once and keeps reporting it afterwards. A state that sees
// exhaustion is expected to lift rather than await again.
package stream

import "context"

// Source is a lazy sequence of events. Next blocks until an event is
// available, the sequence is exhausted (ok=false, nil error), or ctx is
// done. After exhaustion every further call reports ok=false again.
type Source[T any] interface {
	Next(ctx context.Context) (ev T, ok bool, err error)
}

// Slice replays a fixed sequence of events. It is not safe for concurrent
// use; the drive loop's sequential ownership discipline makes that moot for
// states of a single hierarchy.
type Slice[T any] struct {
	items []T
	pos   int
}

// FromSlice creates a Source replaying items in order.
func FromSlice[T any](items []T) *Slice[T] {
	return &Slice[T]{items: items}
}

func (s *Slice[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if s.pos >= len(s.items) {
		return zero, false, nil
	}
	ev := s.items[s.pos]
	s.pos++
	return ev, true, nil
}

// Chan adapts a channel into a Source. Closing the channel exhausts the
// source.
type Chan[T any] struct {
	ch <-chan T
}

// FromChan creates a Source fed by ch.
func FromChan[T any](ch <-chan T) *Chan[T] {
	return &Chan[T]{ch: ch}
}

func (c *Chan[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case ev, ok := <-c.ch:
		if !ok {
			return zero, false, nil
		}
		return ev, true, nil
	}
}
