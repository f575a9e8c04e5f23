package config

// Partial is a sparse configuration: nil fields keep the value they are
// applied to. It decodes directly from TOML or JSON.
type Partial struct {
	PaperSize  *PaperSize         `json:"paper_size,omitempty" toml:"paper_size"`
	Columns    *int               `json:"columns,omitempty" toml:"columns"`
	Typography *TypographyPartial `json:"typography,omitempty" toml:"typography"`
	Spacing    *SpacingPartial    `json:"spacing,omitempty" toml:"spacing"`
	Margins    *MarginsPartial    `json:"margins,omitempty" toml:"margins"`
	Math       *MathPartial       `json:"math,omitempty" toml:"math"`
}

// TypographyPartial is the sparse form of Typography.
type TypographyPartial struct {
	FontSize   *float64           `json:"font_size,omitempty" toml:"font_size"`
	LineHeight *float64           `json:"line_height,omitempty" toml:"line_height"`
	FontFamily *FontFamilyPartial `json:"font_family,omitempty" toml:"font_family"`
}

// FontFamilyPartial is the sparse form of FontFamily.
type FontFamilyPartial struct {
	Body    *string `json:"body,omitempty" toml:"body"`
	Heading *string `json:"heading,omitempty" toml:"heading"`
	Math    *string `json:"math,omitempty" toml:"math"`
	Code    *string `json:"code,omitempty" toml:"code"`
}

// SpacingPartial is the sparse form of Spacing.
type SpacingPartial struct {
	ParagraphSpacing *float64               `json:"paragraph_spacing,omitempty" toml:"paragraph_spacing"`
	ListSpacing      *float64               `json:"list_spacing,omitempty" toml:"list_spacing"`
	SectionSpacing   *float64               `json:"section_spacing,omitempty" toml:"section_spacing"`
	HeadingMargins   *HeadingMarginsPartial `json:"heading_margins,omitempty" toml:"heading_margins"`
}

// HeadingMarginsPartial is the sparse form of HeadingMargins.
type HeadingMarginsPartial struct {
	Top    *float64 `json:"top,omitempty" toml:"top"`
	Bottom *float64 `json:"bottom,omitempty" toml:"bottom"`
}

// MarginsPartial is the sparse form of Margins.
type MarginsPartial struct {
	Top       *float64 `json:"top,omitempty" toml:"top"`
	Bottom    *float64 `json:"bottom,omitempty" toml:"bottom"`
	Left      *float64 `json:"left,omitempty" toml:"left"`
	Right     *float64 `json:"right,omitempty" toml:"right"`
	ColumnGap *float64 `json:"column_gap,omitempty" toml:"column_gap"`
}

// MathPartial is the sparse form of Math.
type MathPartial struct {
	Enabled     *bool   `json:"enabled,omitempty" toml:"enabled"`
	DisplayMode *bool   `json:"display_mode,omitempty" toml:"display_mode"`
	Engine      *string `json:"engine,omitempty" toml:"engine"`
}

// Ptr returns a pointer to v. It keeps Partial literals short.
func Ptr[T any](v T) *T { return &v }

// ApplyTo returns base with every non-nil field of p written over it.
// base is passed by value and is never modified.
func (p Partial) ApplyTo(base Config) Config {
	c := base
	set(&c.PaperSize, p.PaperSize)
	set(&c.Columns, p.Columns)

	if t := p.Typography; t != nil {
		set(&c.Typography.FontSize, t.FontSize)
		set(&c.Typography.LineHeight, t.LineHeight)
		if f := t.FontFamily; f != nil {
			set(&c.Typography.FontFamily.Body, f.Body)
			set(&c.Typography.FontFamily.Heading, f.Heading)
			set(&c.Typography.FontFamily.Math, f.Math)
			set(&c.Typography.FontFamily.Code, f.Code)
		}
	}

	if s := p.Spacing; s != nil {
		set(&c.Spacing.ParagraphSpacing, s.ParagraphSpacing)
		set(&c.Spacing.ListSpacing, s.ListSpacing)
		set(&c.Spacing.SectionSpacing, s.SectionSpacing)
		if h := s.HeadingMargins; h != nil {
			set(&c.Spacing.HeadingMargins.Top, h.Top)
			set(&c.Spacing.HeadingMargins.Bottom, h.Bottom)
		}
	}

	if m := p.Margins; m != nil {
		set(&c.Margins.Top, m.Top)
		set(&c.Margins.Bottom, m.Bottom)
		set(&c.Margins.Left, m.Left)
		set(&c.Margins.Right, m.Right)
		set(&c.Margins.ColumnGap, m.ColumnGap)
	}

	if m := p.Math; m != nil {
		set(&c.Math.Enabled, m.Enabled)
		set(&c.Math.DisplayMode, m.DisplayMode)
		set(&c.Math.Engine, m.Engine)
	}
	return c
}

// Merge returns a Partial where fields set in other override those in p.
// It is used to overlay command-line flags on a config file.
func (p Partial) Merge(other Partial) Partial {
	out := p
	pick(&out.PaperSize, other.PaperSize)
	pick(&out.Columns, other.Columns)

	if other.Typography != nil {
		t := TypographyPartial{}
		if p.Typography != nil {
			t = *p.Typography
		}
		pick(&t.FontSize, other.Typography.FontSize)
		pick(&t.LineHeight, other.Typography.LineHeight)
		if of := other.Typography.FontFamily; of != nil {
			f := FontFamilyPartial{}
			if t.FontFamily != nil {
				f = *t.FontFamily
			}
			pick(&f.Body, of.Body)
			pick(&f.Heading, of.Heading)
			pick(&f.Math, of.Math)
			pick(&f.Code, of.Code)
			t.FontFamily = &f
		}
		out.Typography = &t
	}

	if other.Spacing != nil {
		s := SpacingPartial{}
		if p.Spacing != nil {
			s = *p.Spacing
		}
		pick(&s.ParagraphSpacing, other.Spacing.ParagraphSpacing)
		pick(&s.ListSpacing, other.Spacing.ListSpacing)
		pick(&s.SectionSpacing, other.Spacing.SectionSpacing)
		if oh := other.Spacing.HeadingMargins; oh != nil {
			h := HeadingMarginsPartial{}
			if s.HeadingMargins != nil {
				h = *s.HeadingMargins
			}
			pick(&h.Top, oh.Top)
			pick(&h.Bottom, oh.Bottom)
			s.HeadingMargins = &h
		}
		out.Spacing = &s
	}

	if other.Margins != nil {
		m := MarginsPartial{}
		if p.Margins != nil {
			m = *p.Margins
		}
		pick(&m.Top, other.Margins.Top)
		pick(&m.Bottom, other.Margins.Bottom)
		pick(&m.Left, other.Margins.Left)
		pick(&m.Right, other.Margins.Right)
		pick(&m.ColumnGap, other.Margins.ColumnGap)
		out.Margins = &m
	}

	if other.Math != nil {
		m := MathPartial{}
		if p.Math != nil {
			m = *p.Math
		}
		pick(&m.Enabled, other.Math.Enabled)
		pick(&m.DisplayMode, other.Math.DisplayMode)
		pick(&m.Engine, other.Math.Engine)
		out.Math = &m
	}
	return out
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}
