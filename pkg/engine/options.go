package engine

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/compactsheet/pkg/block"
	"github.com/matzehuels/compactsheet/pkg/distribute"
	"github.com/matzehuels/compactsheet/pkg/observability"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Nil keeps the default, which discards output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEstimator replaces the height heuristic used for new blocks and split pieces.
func WithEstimator(est block.Estimator) Option {
	return func(e *Engine) {
		if est != nil {
			e.estimator = est
		}
	}
}

// WithPolicy sets how content that cannot fit is handled.
func WithPolicy(p distribute.Policy) Option { return func(e *Engine) { e.policy = p } }

// WithHooks attaches observability hooks to this engine only.
func WithHooks(h observability.LayoutHooks) Option {
	return func(e *Engine) { e.hooks = observability.OrNoop(h) }
}
