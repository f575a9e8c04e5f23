// Package geometry derives page and column measurements from a validated
// layout configuration.
//
// [Calculate] is a pure function: the returned [Geometry] is a view of the
// configuration with no lifecycle of its own. Lengths are in inches unless
// a field says otherwise.
package geometry

import (
	"math"

	"github.com/matzehuels/compactsheet/pkg/config"
)

const (
	// PointsPerInch converts typographic points to inches.
	PointsPerInch = 72.0

	// AvgCharWidthEm is the monospace-equivalent average glyph advance used
	// to estimate characters per line.
	AvgCharWidthEm = 0.5
)

// Geometry is the page and column layout derived from a Config.
type Geometry struct {
	PageWidth   float64 `json:"page_width"`
	PageHeight  float64 `json:"page_height"`
	ColumnCount int     `json:"column_count"`

	ContentWidth  float64 `json:"content_width"`
	ContentHeight float64 `json:"content_height"`
	ColumnWidth   float64 `json:"column_width"`
	ColumnGap     float64 `json:"column_gap"`

	FontSize float64 `json:"font_size"` // points
	// EffectiveLineHeight is FontSize × LineHeight, in points.
	EffectiveLineHeight float64 `json:"effective_line_height"`
	LineHeightInches    float64 `json:"line_height_inches"`

	CharactersPerLine       int     `json:"characters_per_line"`
	LinesPerColumn          int     `json:"lines_per_column"`
	ColumnCapacity          float64 `json:"column_capacity"`
	EstimatedContentDensity float64 `json:"estimated_content_density"`

	ParagraphSpacing    float64 `json:"paragraph_spacing"`
	ListSpacing         float64 `json:"list_spacing"`
	SectionSpacing      float64 `json:"section_spacing"`
	HeadingMarginTop    float64 `json:"heading_margin_top"`
	HeadingMarginBottom float64 `json:"heading_margin_bottom"`
	DisplayMath         bool    `json:"display_math"`
}

// Calculate computes the geometry for c. c should already be validated;
// degenerate inputs yield zero-sized columns rather than a panic.
func Calculate(c config.Config) Geometry {
	pw, ph, _ := c.PaperSize.Dimensions()
	cols := c.Columns
	if cols < 1 {
		cols = 1
	}
	m := c.Margins
	em := c.Typography.FontSize / PointsPerInch

	g := Geometry{
		PageWidth:           pw,
		PageHeight:          ph,
		ColumnCount:         cols,
		ContentWidth:        pw - m.Left - m.Right,
		ContentHeight:       ph - m.Top - m.Bottom,
		ColumnGap:           m.ColumnGap,
		FontSize:            c.Typography.FontSize,
		EffectiveLineHeight: c.Typography.FontSize * c.Typography.LineHeight,
		ParagraphSpacing:    c.Spacing.ParagraphSpacing * em,
		ListSpacing:         c.Spacing.ListSpacing * em,
		SectionSpacing:      c.Spacing.SectionSpacing * em,
		HeadingMarginTop:    c.Spacing.HeadingMargins.Top * em,
		HeadingMarginBottom: c.Spacing.HeadingMargins.Bottom * em,
		DisplayMath:         c.Math.Enabled && c.Math.DisplayMode,
	}
	g.ColumnWidth = math.Max(0, (g.ContentWidth-float64(cols-1)*g.ColumnGap)/float64(cols))
	g.LineHeightInches = g.EffectiveLineHeight / PointsPerInch

	if charWidth := AvgCharWidthEm * em; charWidth > 0 {
		g.CharactersPerLine = int(math.Floor(g.ColumnWidth/charWidth + eps))
	}
	if g.LineHeightInches > 0 && g.ContentHeight > 0 {
		g.LinesPerColumn = int(math.Floor(g.ContentHeight/g.LineHeightInches + eps))
	}
	g.ColumnCapacity = float64(g.LinesPerColumn) * g.LineHeightInches

	if area := pw * ph; area > 0 {
		g.EstimatedContentDensity = float64(g.CharactersPerLine*g.LinesPerColumn*cols) / area
	}
	return g
}

// eps absorbs float noise so exact multiples do not floor one short.
const eps = 1e-9

// TotalCapacity returns the combined height budget of all columns.
func (g Geometry) TotalCapacity() float64 {
	return g.ColumnCapacity * float64(g.ColumnCount)
}

// EmToInches converts a length in em at the configured font size to inches.
func (g Geometry) EmToInches(em float64) float64 {
	return em * g.FontSize / PointsPerInch
}
