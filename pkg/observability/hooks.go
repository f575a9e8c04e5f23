// Package observability provides hooks for metrics, tracing, and logging of
// layout work.
//
// The package keeps the engine free of hard dependencies on observability
// backends. Hooks are injected per engine instance (there is no global
// registry) so that independent engines never share instrumentation state.
//
// # Usage
//
//	eng, err := engine.New(config.Partial{}, engine.WithHooks(myHooks))
//
// Components call hooks to emit events:
//
//	hooks.OnDistributeStart(len(blocks), columns)
//	// ... distribute ...
//	hooks.OnDistributeComplete(len(blocks), balance, risk, time.Since(start), err)
package observability

import "time"

// LayoutHooks receives events from the layout engine.
type LayoutHooks interface {
	// OnConfigUpdate records a configuration update attempt; err is non-nil
	// when the update was rejected.
	OnConfigUpdate(err error)

	// Distribution events
	OnDistributeStart(blockCount, columns int)
	OnDistributeComplete(blockCount int, balanceScore, overflowRisk float64, duration time.Duration, err error)

	// OnBlockSplit records a breakable block cut at a column boundary.
	OnBlockSplit(sourceID, tailID string, column int)

	// OnOverflow records a block placed beyond its column's capacity.
	OnOverflow(blockID string, column int, excess float64)
}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnConfigUpdate(error)                                             {}
func (NoopLayoutHooks) OnDistributeStart(int, int)                                       {}
func (NoopLayoutHooks) OnDistributeComplete(int, float64, float64, time.Duration, error) {}
func (NoopLayoutHooks) OnBlockSplit(string, string, int)                                 {}
func (NoopLayoutHooks) OnOverflow(string, int, float64)                                  {}

// Multi fans every event out to each of hooks in order.
type Multi []LayoutHooks

func (m Multi) OnConfigUpdate(err error) {
	for _, h := range m {
		h.OnConfigUpdate(err)
	}
}

func (m Multi) OnDistributeStart(blockCount, columns int) {
	for _, h := range m {
		h.OnDistributeStart(blockCount, columns)
	}
}

func (m Multi) OnDistributeComplete(blockCount int, balanceScore, overflowRisk float64, d time.Duration, err error) {
	for _, h := range m {
		h.OnDistributeComplete(blockCount, balanceScore, overflowRisk, d, err)
	}
}

func (m Multi) OnBlockSplit(sourceID, tailID string, column int) {
	for _, h := range m {
		h.OnBlockSplit(sourceID, tailID, column)
	}
}

func (m Multi) OnOverflow(blockID string, column int, excess float64) {
	for _, h := range m {
		h.OnOverflow(blockID, column, excess)
	}
}

// OrNoop returns h, or NoopLayoutHooks when h is nil.
func OrNoop(h LayoutHooks) LayoutHooks {
	if h == nil {
		return NoopLayoutHooks{}
	}
	return h
}

var (
	_ LayoutHooks = NoopLayoutHooks{}
	_ LayoutHooks = Multi(nil)
)
