// Package config defines the compact layout configuration and its validator.
//
// A [Config] is always complete and typed. Callers describe changes with a
// sparse [Partial] (nil fields are left alone) which decodes directly from
// TOML or JSON. The pure pair [ApplyDefaults] and [Validate] implements the
// merge/validation contract; [MergeAndValidate] combines them and turns any
// violation into an INVALID_CONFIG error from pkg/errors.
//
// # Compact Bounds
//
//   - typography.font_size in [10, 11] pt
//   - typography.line_height in [1.15, 1.25]
//   - spacing.paragraph_spacing <= 0.35 em
//   - spacing.list_spacing <= 0.25 em and < paragraph_spacing
//   - columns in {1, 2, 3}
//   - all margins >= 0
//
// Values outside these bounds are rejected, never clamped.
//
// # Usage
//
//	cfg, err := config.MergeAndValidate(config.Defaults(), config.Partial{
//	    Columns: config.Ptr(3),
//	})
//	if err != nil {
//	    fmt.Println(errors.SuggestionOf(err))
//	}
package config
