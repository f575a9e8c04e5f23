package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/compactsheet/pkg/config"
	sheetio "github.com/matzehuels/compactsheet/pkg/io"
)

// configFlags binds the configuration file and override flags shared by the
// layout commands.
type configFlags struct {
	file string

	paper            string
	columns          int
	fontSize         float64
	lineHeight       float64
	paragraphSpacing float64
	listSpacing      float64
	margin           float64
	columnGap        float64
	noMath           bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	d := config.Defaults()
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "config", "c", "", "configuration file (.toml or .json)")
	fs.StringVar(&f.paper, "paper", string(d.PaperSize), "paper size: a4, letter, legal")
	fs.IntVar(&f.columns, "columns", d.Columns, "number of columns (1-3)")
	fs.Float64Var(&f.fontSize, "font-size", d.Typography.FontSize, "body font size in points (10-11)")
	fs.Float64Var(&f.lineHeight, "line-height", d.Typography.LineHeight, "line height multiplier (1.15-1.25)")
	fs.Float64Var(&f.paragraphSpacing, "paragraph-spacing", d.Spacing.ParagraphSpacing, "paragraph spacing in em (max 0.35)")
	fs.Float64Var(&f.listSpacing, "list-spacing", d.Spacing.ListSpacing, "list item spacing in em (max 0.25)")
	fs.Float64Var(&f.margin, "margin", d.Margins.Top, "page margin on all sides in inches")
	fs.Float64Var(&f.columnGap, "column-gap", d.Margins.ColumnGap, "gap between columns in inches")
	fs.BoolVar(&f.noMath, "no-math", false, "disable display math padding")
}

// partial loads the configuration file, if any, and overlays the flags the
// user set explicitly.
func (f *configFlags) partial(cmd *cobra.Command) (config.Partial, error) {
	var base config.Partial
	if f.file != "" {
		p, err := sheetio.ImportConfig(f.file)
		if err != nil {
			return config.Partial{}, err
		}
		base = p
	}
	return base.Merge(f.overrides(cmd)), nil
}

func (f *configFlags) overrides(cmd *cobra.Command) config.Partial {
	changed := cmd.Flags().Changed
	var p config.Partial

	if changed("paper") {
		p.PaperSize = config.Ptr(config.PaperSize(f.paper))
	}
	if changed("columns") {
		p.Columns = config.Ptr(f.columns)
	}
	if changed("font-size") || changed("line-height") {
		p.Typography = &config.TypographyPartial{}
		if changed("font-size") {
			p.Typography.FontSize = config.Ptr(f.fontSize)
		}
		if changed("line-height") {
			p.Typography.LineHeight = config.Ptr(f.lineHeight)
		}
	}
	if changed("paragraph-spacing") || changed("list-spacing") {
		p.Spacing = &config.SpacingPartial{}
		if changed("paragraph-spacing") {
			p.Spacing.ParagraphSpacing = config.Ptr(f.paragraphSpacing)
		}
		if changed("list-spacing") {
			p.Spacing.ListSpacing = config.Ptr(f.listSpacing)
		}
	}
	if changed("margin") || changed("column-gap") {
		p.Margins = &config.MarginsPartial{}
		if changed("margin") {
			p.Margins.Top = config.Ptr(f.margin)
			p.Margins.Bottom = config.Ptr(f.margin)
			p.Margins.Left = config.Ptr(f.margin)
			p.Margins.Right = config.Ptr(f.margin)
		}
		if changed("column-gap") {
			p.Margins.ColumnGap = config.Ptr(f.columnGap)
		}
	}
	if changed("no-math") {
		p.Math = &config.MathPartial{Enabled: config.Ptr(!f.noMath)}
	}
	return p
}
