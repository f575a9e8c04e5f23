// Package engine is the entry point for laying out compact reference sheets.
//
// An [Engine] holds one validated configuration and exposes the full
// pipeline: derive page geometry, turn raw content into sized blocks, and
// pack the blocks into columns.
//
//	eng, err := engine.New(config.Partial{Columns: config.Ptr(3)})
//	if err != nil {
//	    return err
//	}
//	d, err := eng.Compose(units)
//
// Configuration updates are validated before they take effect, so a failed
// [Engine.UpdateConfig] leaves the engine exactly as it was.
//
// Engines share nothing: loggers, estimators and hooks are set per instance
// with [WithLogger], [WithEstimator] and [WithHooks].
package engine
