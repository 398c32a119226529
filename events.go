package hsm

import (
	"context"
	"time"
)

// StepEvent is emitted just before a state computation is resumed.
// Seq starts at 1 for the initial state and increments per transition.
type StepEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Seq       int       `json:"seq"`
}

// LiftEvent is emitted when the drive loop terminates with a lift.
type LiftEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Steps     int           `json:"steps"`
	Elapsed   time.Duration `json:"elapsed"`
}

// ErrorEvent is emitted when the drive loop terminates with an error.
type ErrorEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Steps     int           `json:"steps"`
	Elapsed   time.Duration `json:"elapsed"`
	Err       error         `json:"-"`
}

// Hooks defines callbacks for drive loop observability. All callbacks are
// optional and run synchronously inside the loop, between state resumptions.
type Hooks struct {
	OnStep  func(context.Context, *StepEvent)
	OnLift  func(context.Context, *LiftEvent)
	OnError func(context.Context, *ErrorEvent)
}
