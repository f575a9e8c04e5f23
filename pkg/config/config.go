package config

import "strings"

// PaperSize identifies a supported sheet format.
type PaperSize string

// Supported paper sizes.
const (
	PaperA4     PaperSize = "a4"
	PaperLetter PaperSize = "letter"
	PaperLegal  PaperSize = "legal"
)

// paperDimensions maps each paper size to its portrait width and height in inches.
var paperDimensions = map[PaperSize][2]float64{
	PaperA4:     {8.27, 11.69},
	PaperLetter: {8.5, 11},
	PaperLegal:  {8.5, 14},
}

// Dimensions returns the portrait width and height of p in inches.
// ok is false for unknown paper sizes.
func (p PaperSize) Dimensions() (width, height float64, ok bool) {
	d, ok := paperDimensions[PaperSize(strings.ToLower(string(p)))]
	return d[0], d[1], ok
}

// Valid reports whether p is a known paper size.
func (p PaperSize) Valid() bool {
	_, _, ok := p.Dimensions()
	return ok
}

// Math engines accepted for formula rendering.
const (
	MathEngineKaTeX   = "katex"
	MathEngineMathJax = "mathjax"
)

// Compact bounds. Every Config accepted by Validate stays inside these.
const (
	MinFontSize         = 10.0
	MaxFontSize         = 11.0
	MinLineHeight       = 1.15
	MaxLineHeight       = 1.25
	MaxParagraphSpacing = 0.35
	MaxListSpacing      = 0.25
	MinColumns          = 1
	MaxColumns          = 3
)

// Config is a complete, typed compact layout configuration.
// Spacing values are in em, margins in inches, font size in points.
type Config struct {
	PaperSize  PaperSize  `json:"paper_size" toml:"paper_size"`
	Columns    int        `json:"columns" toml:"columns"`
	Typography Typography `json:"typography" toml:"typography"`
	Spacing    Spacing    `json:"spacing" toml:"spacing"`
	Margins    Margins    `json:"margins" toml:"margins"`
	Math       Math       `json:"math" toml:"math"`
}

// Typography controls font size, leading and font families.
type Typography struct {
	FontSize   float64    `json:"font_size" toml:"font_size"`
	LineHeight float64    `json:"line_height" toml:"line_height"`
	FontFamily FontFamily `json:"font_family" toml:"font_family"`
}

// FontFamily names the font stack per content role.
type FontFamily struct {
	Body    string `json:"body" toml:"body"`
	Heading string `json:"heading" toml:"heading"`
	Math    string `json:"math" toml:"math"`
	Code    string `json:"code" toml:"code"`
}

// Spacing holds vertical rhythm values in em.
type Spacing struct {
	ParagraphSpacing float64        `json:"paragraph_spacing" toml:"paragraph_spacing"`
	ListSpacing      float64        `json:"list_spacing" toml:"list_spacing"`
	SectionSpacing   float64        `json:"section_spacing" toml:"section_spacing"`
	HeadingMargins   HeadingMargins `json:"heading_margins" toml:"heading_margins"`
}

// HeadingMargins are the space above and below a heading, in em.
type HeadingMargins struct {
	Top    float64 `json:"top" toml:"top"`
	Bottom float64 `json:"bottom" toml:"bottom"`
}

// Margins are page margins and the gutter between columns, in inches.
type Margins struct {
	Top       float64 `json:"top" toml:"top"`
	Bottom    float64 `json:"bottom" toml:"bottom"`
	Left      float64 `json:"left" toml:"left"`
	Right     float64 `json:"right" toml:"right"`
	ColumnGap float64 `json:"column_gap" toml:"column_gap"`
}

// Math controls how formula blocks are rendered downstream.
type Math struct {
	Enabled     bool   `json:"enabled" toml:"enabled"`
	DisplayMode bool   `json:"display_mode" toml:"display_mode"`
	Engine      string `json:"engine" toml:"engine"`
}

// Defaults returns the compact default configuration.
func Defaults() Config {
	return Config{
		PaperSize: PaperA4,
		Columns:   2,
		Typography: Typography{
			FontSize:   10,
			LineHeight: 1.2,
			FontFamily: FontFamily{
				Body:    "Times New Roman",
				Heading: "Helvetica",
				Math:    "Latin Modern Math",
				Code:    "Courier New",
			},
		},
		Spacing: Spacing{
			ParagraphSpacing: 0.3,
			ListSpacing:      0.2,
			SectionSpacing:   0.5,
			HeadingMargins:   HeadingMargins{Top: 0.4, Bottom: 0.2},
		},
		Margins: Margins{
			Top:       0.5,
			Bottom:    0.5,
			Left:      0.5,
			Right:     0.5,
			ColumnGap: 0.25,
		},
		Math: Math{
			Enabled:     true,
			DisplayMode: true,
			Engine:      MathEngineKaTeX,
		},
	}
}

// ApplyDefaults fills every field p leaves unset from Defaults.
// It does not validate.
func ApplyDefaults(p Partial) Config {
	return p.ApplyTo(Defaults())
}

// MergeAndValidate overlays p on base and validates the result.
// On failure it returns the zero Config and an INVALID_CONFIG error; base is
// never modified.
func MergeAndValidate(base Config, p Partial) (Config, error) {
	merged := p.ApplyTo(base)
	if err := Check(merged); err != nil {
		return Config{}, err
	}
	return merged, nil
}
