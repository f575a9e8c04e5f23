// Package block turns raw content units into typed, sized content blocks.
//
// # Types and Defaults
//
// Every [Block] has a [Type] from a closed set. The type decides the default
// placement priority (higher is placed first) and whether the block may be
// split across a column boundary:
//
//	heading      10  unbreakable
//	formula       9  unbreakable
//	example       8  unbreakable
//	definition    7  unbreakable
//	theorem       7  unbreakable
//	list          6  breakable
//	table         6  breakable
//	text          5  breakable
//
// [Options] override any of these per block, including the height.
//
// # Height Estimation
//
// Heights are predicted by an [Estimator]. The default [Heuristic] counts
// display cells (see [DisplayWidth]), wraps them at the geometry's characters
// per line and adds type-specific spacing: heading margins, display-equation
// padding, per-item list spacing. Substitute a better estimator with
// [NewFactory] without touching the distributor.
//
// # Splitting
//
// [Split] cuts breakable blocks at word, item or row boundaries. It returns
// new blocks and leaves its input untouched.
package block
