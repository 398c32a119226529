// Package game implements the ping/pong demo hierarchy driven by cmd/hsm.
//
// The machine has an outer App composite (Menu -> Play -> Terminate) and a
// nested Play composite (Ping <-> Pong). Entering Play drives the nested
// machine to completion; the nested machine lifts a BuilderPair so control
// can cross both levels in one hop when a terminate event arrives.
package game

import (
	"context"
	"fmt"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/pkg/stream"
)

// Event is one input to the machine.
type Event int

const (
	EventPing Event = iota
	EventPong
	EventMenu
	EventPlay
	EventTerminate
)

var eventNames = map[string]Event{
	"ping":      EventPing,
	"pong":      EventPong,
	"menu":      EventMenu,
	"play":      EventPlay,
	"terminate": EventTerminate,
}

// ParseEvent maps a scenario event name to its Event.
func ParseEvent(s string) (Event, error) {
	ev, ok := eventNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown event %q", s)
	}
	return ev, nil
}

// Score counts state entries and unmatched events.
type Score = int

// Data is shared by every state of the hierarchy; the nested Play composite
// gets its own instance wrapping the same source.
type Data struct {
	Events stream.Source[Event]
}

// The nested machine lifts a pair naming the App state to resume in.
type (
	playOut     = hsm.BuilderPair[Data, Score, Score]
	appTransit  = hsm.Transit[Data, Score]
	playTransit = hsm.Transit[Data, playOut]
)

var toTerminate = hsm.BindState(Terminate)

// Menu waits for a play or terminate event. Unmatched events are ignored
// without scoring.
func Menu(ctx context.Context, c *hsm.Composite[Data], score Score) (appTransit, error) {
	for {
		ev, ok, err := c.Data.Events.Next(ctx)
		if err != nil {
			return appTransit{}, err
		}
		if !ok {
			return hsm.Lift[Data](score), nil
		}
		switch ev {
		case EventPlay:
			return hsm.Enter(c, Play, score), nil
		case EventTerminate:
			return hsm.Lift[Data](score), nil
		}
	}
}

// Play enters the nested Ping/Pong composite and forwards its lift into the
// App vocabulary via the carried builder pair.
func Play(ctx context.Context, c *hsm.Composite[Data], score Score) (appTransit, error) {
	nested := hsm.New(Data{Events: c.Data.Events})
	pair, err := hsm.Init(ctx, nested, Ping, score)
	if err != nil {
		return appTransit{}, err
	}
	return pair.Resume(ctx, c)
}

// Terminate lifts the final score out of the App composite.
func Terminate(ctx context.Context, c *hsm.Composite[Data], score Score) (appTransit, error) {
	return hsm.Lift[Data](score), nil
}

// Ping scores its entry, then waits for pong. Any other event scores; a
// terminate event or source exhaustion lifts toward App.Terminate.
func Ping(ctx context.Context, c *hsm.Composite[Data], score Score) (playTransit, error) {
	score++
	for {
		ev, ok, err := c.Data.Events.Next(ctx)
		if err != nil {
			return playTransit{}, err
		}
		if !ok {
			return hsm.Lift[Data](hsm.Pair(toTerminate, score)), nil
		}
		switch ev {
		case EventPong:
			return hsm.Enter(c, Pong, score), nil
		case EventTerminate:
			return hsm.Lift[Data](hsm.Pair(toTerminate, score)), nil
		default:
			score++
		}
	}
}

// Pong mirrors Ping.
func Pong(ctx context.Context, c *hsm.Composite[Data], score Score) (playTransit, error) {
	score++
	for {
		ev, ok, err := c.Data.Events.Next(ctx)
		if err != nil {
			return playTransit{}, err
		}
		if !ok {
			return hsm.Lift[Data](hsm.Pair(toTerminate, score)), nil
		}
		switch ev {
		case EventPing:
			return hsm.Enter(c, Ping, score), nil
		case EventTerminate:
			return hsm.Lift[Data](hsm.Pair(toTerminate, score)), nil
		default:
			score++
		}
	}
}

// Run drives the full hierarchy from Menu over the given source.
func Run(ctx context.Context, events stream.Source[Event], start Score, opts ...hsm.Option) (Score, error) {
	app := hsm.New(Data{Events: events}, opts...)
	return hsm.Init(ctx, app, Menu, start)
}
