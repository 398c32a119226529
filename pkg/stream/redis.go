package stream

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis consumes events from a Redis list via BLPOP, so an external process
// can feed a machine by pushing onto the list. A configurable end marker
// element exhausts the source.
type Redis[T any] struct {
	client *redis.Client
	key    string
	end    string
	decode func(string) (T, error)
	done   bool
}

// NewRedis creates a Source popping from the list at key on client. An
// element equal to end exhausts the source; every other element is passed
// through decode.
func NewRedis[T any](client *redis.Client, key, end string, decode func(string) (T, error)) *Redis[T] {
	return &Redis[T]{client: client, key: key, end: end, decode: decode}
}

func (r *Redis[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if r.done {
		return zero, false, nil
	}
	res, err := r.client.BLPop(ctx, 0, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.done = true
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("blpop %s: %w", r.key, err)
	}
	// BLPOP replies [key, element].
	payload := res[1]
	if payload == r.end {
		r.done = true
		return zero, false, nil
	}
	ev, err := r.decode(payload)
	if err != nil {
		return zero, false, fmt.Errorf("decode event %q: %w", payload, err)
	}
	return ev, true, nil
}
