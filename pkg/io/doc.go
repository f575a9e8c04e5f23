// Package io reads content units and configuration files and writes layout
// results.
//
// # Content Units
//
// Units are the raw input of a sheet. JSON input is an array:
//
//	[
//	  {"id": "h1", "type": "heading", "content": "Derivatives"},
//	  {"id": "f1", "type": "formula", "content": "$$f'(x)$$",
//	   "options": {"priority": 10, "estimatedHeight": 0.4}}
//	]
//
// TOML input uses an array of tables named unit:
//
//	[[unit]]
//	id = "h1"
//	type = "heading"
//	content = "Derivatives"
//
//	[[unit]]
//	id = "f1"
//	type = "formula"
//	content = "$$f'(x)$$"
//	options = { priority = 10, estimated_height = 0.4 }
//
// # Configuration
//
// Configuration files hold a sparse config (see config.Partial) in TOML or
// JSON. Only the fields present override the defaults:
//
//	paper_size = "letter"
//	columns = 3
//
//	[spacing]
//	paragraph_spacing = 0.25
//
// # Formats
//
// File helpers choose the format from the extension: .toml for TOML, .json
// for JSON. Anything else fails with INVALID_FORMAT. Missing files fail with
// FILE_NOT_FOUND.
//
// # Output
//
// [WriteDistribution] encodes a distribution as indented JSON, one entry per
// column in rendering order.
package io
