package transit

import (
	"time"

	"github.com/meridianlab/meridian/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLookahead sets the sampling offset used to decide whether an aspect
// is applying or separating.
func WithLookahead(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.lookahead = d
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}
