package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/compactsheet/pkg/block"
	"github.com/matzehuels/compactsheet/pkg/config"
	"github.com/matzehuels/compactsheet/pkg/distribute"
	"github.com/matzehuels/compactsheet/pkg/errors"
	"github.com/matzehuels/compactsheet/pkg/geometry"
	"github.com/matzehuels/compactsheet/pkg/observability"
)

// Engine owns one validated configuration and lays content out against it.
//
// Configuration is the only mutable state. An Engine is not safe for
// concurrent use when UpdateConfig may run alongside other calls; give each
// goroutine (or request) its own Engine instead.
type Engine struct {
	config    config.Config
	logger    *log.Logger
	estimator block.Estimator
	policy    distribute.Policy
	hooks     observability.LayoutHooks
}

// New returns an engine configured with the defaults overlaid by p.
// It fails with INVALID_CONFIG if the merged configuration is invalid.
func New(p config.Partial, opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		estimator: block.Heuristic{},
		policy:    distribute.Lenient,
		hooks:     observability.NoopLayoutHooks{},
	}
	for _, opt := range opts {
		opt(e)
	}

	cfg, err := config.MergeAndValidate(config.Defaults(), p)
	if err != nil {
		return nil, err
	}
	e.config = cfg

	e.logger.Debug("engine ready",
		"paper", cfg.PaperSize,
		"columns", cfg.Columns,
		"font_size", cfg.Typography.FontSize)
	return e, nil
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() config.Config { return e.config }

// UpdateConfig overlays p on the current configuration. The result is
// validated before it is committed; on failure the previous configuration
// stays in effect.
func (e *Engine) UpdateConfig(p config.Partial) error {
	cfg, err := config.MergeAndValidate(e.config, p)
	e.hooks.OnConfigUpdate(err)
	if err != nil {
		e.logger.Warn("config update rejected", "err", errors.UserMessage(err))
		return err
	}
	e.config = cfg
	e.logger.Debug("config updated", "columns", cfg.Columns, "paper", cfg.PaperSize)
	return nil
}

// CalculateLayout derives page geometry from the current configuration.
func (e *Engine) CalculateLayout() geometry.Geometry {
	return geometry.Calculate(e.config)
}

// CreateContentBlock builds a block sized for the current geometry.
func (e *Engine) CreateContentBlock(id, content string, t block.Type, opts block.Options) (block.Block, error) {
	return e.factory().Create(id, content, t, opts)
}

// DistributeContent packs blocks into the columns of the current geometry.
func (e *Engine) DistributeContent(blocks []block.Block) (distribute.Distribution, error) {
	g := e.CalculateLayout()
	start := time.Now()
	e.hooks.OnDistributeStart(len(blocks), g.ColumnCount)

	d, err := distribute.Distribute(blocks, g, distribute.Options{
		Policy:    e.policy,
		Estimator: e.estimator,
		Hooks:     e.hooks,
	})
	e.hooks.OnDistributeComplete(len(blocks), d.BalanceScore, d.OverflowRisk, time.Since(start), err)
	if err != nil {
		e.logger.Warn("distribution failed", "blocks", len(blocks), "err", errors.UserMessage(err))
		return distribute.Distribution{}, err
	}

	if len(d.Overflowed) > 0 {
		e.logger.Warn("content exceeds column capacity", "blocks", d.Overflowed)
	}
	e.logger.Debug("distributed content",
		"blocks", len(blocks),
		"splits", d.Splits,
		"balance", d.BalanceScore,
		"overflow_risk", d.OverflowRisk,
		"duration", time.Since(start))
	return d, nil
}

// Compose creates a block for every unit and distributes them. It stops at
// the first invalid unit.
func (e *Engine) Compose(units []block.Unit) (distribute.Distribution, error) {
	f := e.factory()
	blocks := make([]block.Block, 0, len(units))
	for _, u := range units {
		b, err := f.FromUnit(u)
		if err != nil {
			return distribute.Distribution{}, err
		}
		blocks = append(blocks, b)
	}
	return e.DistributeContent(blocks)
}

func (e *Engine) factory() *block.Factory {
	return block.NewFactory(e.CalculateLayout(), e.estimator)
}
