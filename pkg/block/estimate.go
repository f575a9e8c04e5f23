package block

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/matzehuels/compactsheet/pkg/geometry"
)

// Estimator predicts the rendered height of content, in inches.
// Implementations must be pure and monotonic: a prefix of content never
// measures taller than the whole.
type Estimator interface {
	EstimateHeight(content string, t Type, g geometry.Geometry) float64
}

// EstimatorFunc adapts a function to the Estimator interface.
type EstimatorFunc func(content string, t Type, g geometry.Geometry) float64

// EstimateHeight calls f.
func (f EstimatorFunc) EstimateHeight(content string, t Type, g geometry.Geometry) float64 {
	return f(content, t, g)
}

const (
	// displayPaddingEm is the space above and below a display equation.
	displayPaddingEm = 0.5
	// listIndentChars is the width lost to a bullet and its hanging indent.
	listIndentChars = 3
)

// Heuristic estimates height from character counts: wrapped line count times
// line height, plus type-specific vertical spacing.
type Heuristic struct{}

// EstimateHeight implements Estimator.
func (Heuristic) EstimateHeight(content string, t Type, g geometry.Geometry) float64 {
	cpl := g.CharactersPerLine
	lh := g.LineHeightInches

	switch t {
	case TypeHeading:
		return float64(wrappedLines(content, cpl))*lh + g.HeadingMarginTop + g.HeadingMarginBottom

	case TypeFormula:
		lines := float64(wrappedLines(stripMathDelimiters(content), cpl)) * lh
		if g.DisplayMath {
			return lines + 2*g.EmToInches(displayPaddingEm)
		}
		return lines + g.ParagraphSpacing

	case TypeList:
		items := ListItems(content)
		if len(items) == 0 {
			return 0
		}
		n := 0
		for _, item := range items {
			n += wrappedLines(item, cpl-listIndentChars)
		}
		return float64(n)*lh + float64(len(items)-1)*g.ListSpacing + g.ParagraphSpacing

	case TypeTable:
		rows := tableRows(content)
		n := 0
		for _, row := range rows {
			n += wrappedLines(row, cpl)
		}
		return float64(n)*lh + g.ParagraphSpacing

	default:
		return float64(wrappedLines(content, cpl))*lh + g.ParagraphSpacing
	}
}

// DisplayWidth returns the number of character cells s occupies after NFC
// normalization. East Asian wide and fullwidth runes take two cells,
// combining marks and control characters none.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range norm.NFC.String(s) {
		switch {
		case unicode.IsControl(r), unicode.Is(unicode.Mn, r):
		default:
			switch width.LookupRune(r).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				n += 2
			default:
				n++
			}
		}
	}
	return n
}

// wrappedLines counts lines after wrapping every hard line of s at cpl cells.
func wrappedLines(s string, cpl int) int {
	if cpl < 1 {
		cpl = 1
	}
	n := 0
	for _, line := range strings.Split(s, "\n") {
		w := DisplayWidth(strings.TrimSpace(line))
		if w == 0 {
			continue
		}
		n += int(math.Ceil(float64(w) / float64(cpl)))
	}
	if n == 0 && strings.TrimSpace(s) != "" {
		n = 1
	}
	return n
}

func stripMathDelimiters(s string) string {
	s = strings.TrimSpace(s)
	for _, d := range [][2]string{{"$$", "$$"}, {`\[`, `\]`}, {"$", "$"}} {
		if len(s) >= len(d[0])+len(d[1]) && strings.HasPrefix(s, d[0]) && strings.HasSuffix(s, d[1]) {
			return strings.TrimSpace(s[len(d[0]) : len(s)-len(d[1])])
		}
	}
	return s
}

// bulletPattern matches a list marker at the start of a line: bullets,
// "1." / "1)", "a." / "a)" and roman numerals.
var bulletPattern = regexp.MustCompile(`^\s*(?:[-*+•◦▪▸‣→]|\d+[.)]|[a-zA-Z][.)]|[ivxlcdmIVXLCDM]+[.)])\s+`)

// inlineBullets splits "• one • two" into separate items.
var inlineBullets = regexp.MustCompile(`\s+[•◦▪▸‣]\s+`)

// ListItems splits list content into items. Items are separated by line
// breaks or bullet markers; an unmarked line following a marked one
// continues the previous item.
func ListItems(content string) []string {
	var items []string
	sawMarker := false
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		marked := bulletPattern.MatchString(line)
		if !marked && sawMarker && len(items) > 0 && startsIndented(line) {
			items[len(items)-1] += " " + strings.TrimSpace(line)
			continue
		}
		sawMarker = sawMarker || marked
		for _, part := range inlineBullets.Split(line, -1) {
			if p := strings.TrimSpace(part); p != "" {
				items = append(items, p)
			}
		}
	}
	return items
}

func startsIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// tableRows returns the non-empty rows of table content, dropping markdown
// separator rows such as |---|---|.
func tableRows(content string) []string {
	var rows []string
	for _, line := range strings.Split(content, "\n") {
		l := strings.TrimSpace(line)
		if l == "" || isSeparatorRow(l) {
			continue
		}
		rows = append(rows, l)
	}
	return rows
}

func isSeparatorRow(l string) bool {
	return strings.Trim(l, "|-:+ ") == "" && strings.Contains(l, "-")
}
