// Package pkg provides the core libraries for compactsheet, a layout engine
// for dense multi-column reference sheets.
//
// # Overview
//
// Compactsheet takes academic content units (headings, formulas, definitions,
// theorems, examples, lists, tables and text) and arranges them into the
// columns of a single page under tight typographic bounds. It does not render;
// its output is a column assignment with height estimates and quality scores
// that a renderer consumes.
//
// # Architecture
//
// The data flow through compactsheet:
//
//	config.Partial (file, flags or request)
//	         ↓
//	    [config] package (merge with defaults, validate compact bounds)
//	         ↓
//	    [geometry] package (page, column and line capacity)
//	         ↓
//	    [block] package (typed, sized, prioritized content blocks)
//	         ↓
//	    [distribute] package (priority-ordered, balanced column packing)
//	         ↓
//	    Distribution JSON
//
// [engine] ties these together behind a single stateful facade.
//
// # Quick Start
//
//	eng, err := engine.New(config.Partial{Columns: config.Ptr(3)})
//	if err != nil {
//	    return err
//	}
//	d, err := eng.Compose([]block.Unit{
//	    {ID: "h1", Type: "heading", Content: "Integrals"},
//	    {ID: "f1", Type: "formula", Content: "$$\\int_a^b f(x)\\,dx$$"},
//	})
//
// # Main Packages
//
// [config] - Typed layout configuration, sparse partial overrides, defaults
// and validation with remediation suggestions.
//
// [geometry] - Derives page geometry (column width, characters per line,
// lines per column, capacity, density) from a configuration.
//
// [block] - Content block factory, per-type defaults, the pluggable height
// [block.Estimator] and splitting of breakable blocks.
//
// [distribute] - Column distribution with balance and overflow scoring.
//
// [engine] - The layout facade used by the CLI and the HTTP server.
//
// [io] - Reads content units and configuration (TOML or JSON) and writes
// distributions.
//
// [errors] - Structured, code-discriminated errors with suggestions.
//
// [observability] - Per-engine hooks for logging and metrics.
//
// [buildinfo] - Build-time version information.
//
// # Testing
//
//	go test ./...              # All tests
//	go test ./pkg/distribute   # Specific package
//	go test -run Example ./... # Examples only
package pkg
