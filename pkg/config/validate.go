package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/compactsheet/pkg/errors"
)

// ValidationResult reports every problem found in a Config.
// Errors are compact-bound violations; Warnings are legal but risky values.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	suggestions []string
}

// Suggestions returns one remediation hint per entry in Errors.
func (r ValidationResult) Suggestions() []string {
	return r.suggestions
}

func (r *ValidationResult) fail(suggestion, format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.suggestions = append(r.suggestions, suggestion)
}

func (r *ValidationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Thresholds below which values are legal but produce a warning.
const (
	minPrintableMargin = 0.25 // inches
	minColumnWidth     = 2.0  // inches
	maxSectionSpacing  = 1.0  // em
)

// Validate checks c against the compact bounds without modifying it.
func Validate(c Config) ValidationResult {
	r := ValidationResult{Errors: []string{}, Warnings: []string{}}

	if !c.PaperSize.Valid() {
		r.fail("use a supported paper size: a4, letter or legal",
			"unknown paper size %q", c.PaperSize)
	}
	if c.Columns < MinColumns || c.Columns > MaxColumns {
		r.fail(fmt.Sprintf("use a compact column count between %d and %d (e.g. 2)", MinColumns, MaxColumns),
			"columns must be between %d and %d, got %d", MinColumns, MaxColumns, c.Columns)
	}

	if !checkFinite(c, &r) {
		r.Valid = false
		return r
	}

	t := c.Typography
	if t.FontSize < MinFontSize || t.FontSize > MaxFontSize {
		r.fail(fmt.Sprintf("use a compact font size between %gpt and %gpt (e.g. 10)", MinFontSize, MaxFontSize),
			"typography.font_size must be between %g and %g, got %g", MinFontSize, MaxFontSize, t.FontSize)
	}
	if t.LineHeight < MinLineHeight || t.LineHeight > MaxLineHeight {
		r.fail(fmt.Sprintf("use a compact line height between %g and %g (e.g. 1.2)", MinLineHeight, MaxLineHeight),
			"typography.line_height must be between %g and %g, got %g", MinLineHeight, MaxLineHeight, t.LineHeight)
	}
	def := Defaults().Typography.FontFamily
	for _, f := range []struct{ role, value, example string }{
		{"body", t.FontFamily.Body, def.Body},
		{"heading", t.FontFamily.Heading, def.Heading},
		{"math", t.FontFamily.Math, def.Math},
		{"code", t.FontFamily.Code, def.Code},
	} {
		if strings.TrimSpace(f.value) == "" {
			r.fail(fmt.Sprintf("name a font for the %s role (e.g. %q)", f.role, f.example),
				"typography.font_family.%s cannot be empty", f.role)
		}
	}

	s := c.Spacing
	if s.ParagraphSpacing < 0 || s.ParagraphSpacing > MaxParagraphSpacing {
		r.fail(fmt.Sprintf("use a compact paragraph spacing of at most %gem (e.g. 0.3)", MaxParagraphSpacing),
			"spacing.paragraph_spacing must be between 0 and %g, got %g", MaxParagraphSpacing, s.ParagraphSpacing)
	}
	if s.ListSpacing < 0 || s.ListSpacing > MaxListSpacing {
		r.fail(fmt.Sprintf("use a compact list spacing of at most %gem (e.g. 0.2)", MaxListSpacing),
			"spacing.list_spacing must be between 0 and %g, got %g", MaxListSpacing, s.ListSpacing)
	} else if s.ListSpacing >= s.ParagraphSpacing {
		r.fail(fmt.Sprintf("keep compact list spacing below paragraph spacing (e.g. list %g with paragraph %g)",
			s.ParagraphSpacing*2/3, s.ParagraphSpacing),
			"spacing.list_spacing (%g) must be less than spacing.paragraph_spacing (%g)", s.ListSpacing, s.ParagraphSpacing)
	}
	if s.SectionSpacing < 0 {
		r.fail("use a non-negative compact section spacing (e.g. 0.5)",
			"spacing.section_spacing cannot be negative, got %g", s.SectionSpacing)
	} else if s.SectionSpacing > maxSectionSpacing {
		r.warn("spacing.section_spacing %gem exceeds %gem and reduces density", s.SectionSpacing, maxSectionSpacing)
	}
	if s.HeadingMargins.Top < 0 || s.HeadingMargins.Bottom < 0 {
		r.fail("use non-negative compact heading margins (e.g. top 0.4, bottom 0.2)",
			"spacing.heading_margins cannot be negative")
	}

	m := c.Margins
	for _, mg := range []struct {
		name  string
		value float64
	}{
		{"top", m.Top},
		{"bottom", m.Bottom},
		{"left", m.Left},
		{"right", m.Right},
		{"column_gap", m.ColumnGap},
	} {
		if mg.value < 0 {
			r.fail(fmt.Sprintf("use a non-negative compact %s margin (e.g. 0.5)", mg.name),
				"margins.%s cannot be negative, got %g", mg.name, mg.value)
		} else if mg.name != "column_gap" && mg.value < minPrintableMargin {
			r.warn("margins.%s %gin is below %gin and may be clipped by printers", mg.name, mg.value, minPrintableMargin)
		}
	}

	if c.Math.Engine != MathEngineKaTeX && c.Math.Engine != MathEngineMathJax {
		r.fail(fmt.Sprintf("use math engine %q or %q", MathEngineKaTeX, MathEngineMathJax),
			"unknown math.engine %q", c.Math.Engine)
	}

	checkArea(c, &r)

	r.Valid = len(r.Errors) == 0
	return r
}

type numericField struct {
	name  string
	value float64
}

// numericFields lists every float field of c by its config key.
func numericFields(c Config) []numericField {
	return []numericField{
		{"typography.font_size", c.Typography.FontSize},
		{"typography.line_height", c.Typography.LineHeight},
		{"spacing.paragraph_spacing", c.Spacing.ParagraphSpacing},
		{"spacing.list_spacing", c.Spacing.ListSpacing},
		{"spacing.section_spacing", c.Spacing.SectionSpacing},
		{"spacing.heading_margins.top", c.Spacing.HeadingMargins.Top},
		{"spacing.heading_margins.bottom", c.Spacing.HeadingMargins.Bottom},
		{"margins.top", c.Margins.Top},
		{"margins.bottom", c.Margins.Bottom},
		{"margins.left", c.Margins.Left},
		{"margins.right", c.Margins.Right},
		{"margins.column_gap", c.Margins.ColumnGap},
	}
}

// checkFinite rejects NaN and infinite values. Range checks cannot catch NaN,
// so the remaining numeric checks only run when it reports true.
func checkFinite(c Config, r *ValidationResult) bool {
	ok := true
	defaults := numericFields(Defaults())
	for i, f := range numericFields(c) {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			r.fail(fmt.Sprintf("use a finite compact value for %s (e.g. %g)", f.name, defaults[i].value),
				"%s must be a finite number, got %g", f.name, f.value)
			ok = false
		}
	}
	return ok
}

// checkArea rejects margins that leave no room for text.
func checkArea(c Config, r *ValidationResult) {
	pw, ph, ok := c.PaperSize.Dimensions()
	if !ok || c.Columns < MinColumns || c.Columns > MaxColumns {
		return
	}
	m := c.Margins
	if m.Top < 0 || m.Bottom < 0 || m.Left < 0 || m.Right < 0 || m.ColumnGap < 0 {
		return
	}

	colWidth := (pw - m.Left - m.Right - float64(c.Columns-1)*m.ColumnGap) / float64(c.Columns)
	if colWidth <= 0 {
		r.fail("reduce left/right margins or the column gap (e.g. 0.5in margins with a 0.25in gap)",
			"margins leave no horizontal room for %d columns on %s paper", c.Columns, c.PaperSize)
	} else if colWidth < minColumnWidth {
		r.warn("column width %.2fin is below %gin; long words may overflow", colWidth, minColumnWidth)
	}

	lineIn := c.Typography.FontSize * c.Typography.LineHeight / 72
	if ph-m.Top-m.Bottom < lineIn {
		r.fail("reduce top/bottom margins (e.g. 0.5in each)",
			"margins leave no vertical room for a single line on %s paper", c.PaperSize)
	}
}

// Check validates c and converts any violation into an INVALID_CONFIG error.
func Check(c Config) error {
	r := Validate(c)
	if r.Valid {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid compact layout configuration: %s",
		strings.Join(r.Errors, "; ")).
		Suggest("%s", strings.Join(r.suggestions, "; "))
}
