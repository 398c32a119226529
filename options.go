package hsm

import "log/slog"

// config holds the non-generic part of a Composite so options stay free of
// type parameters.
type config struct {
	logger *slog.Logger
	hooks  Hooks
}

// Option defines a functional option for configuring a Composite.
type Option func(*config)

// WithLogger sets a structured logger for the composite's drive loop.
// The loop logs steps and terminations at Debug level. Default is no-op.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks registers observability hooks on the composite's drive loop.
func WithHooks(hooks Hooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}
