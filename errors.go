package hsm

import "errors"

// ErrActive is returned when Init is called on a composite whose drive loop
// is already running. One state at a time per composite; a second loop would
// break the exclusive-access guarantee.
var ErrActive = errors.New("composite drive loop already active")

// ErrNilState is returned when Init is given a nil initial state function.
var ErrNilState = errors.New("nil initial state function")

// ErrNilHandle is returned when a state resolves to a To transit carrying no
// pending computation (including the zero Transit).
var ErrNilHandle = errors.New("transit carries no pending state")

// ErrNilBuilder is returned by BuilderPair.Resume when the pair carries no
// builder.
var ErrNilBuilder = errors.New("builder pair carries no builder")
