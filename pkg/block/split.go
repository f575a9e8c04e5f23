package block

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/matzehuels/compactsheet/pkg/geometry"
)

// Split cuts a breakable block so that the head measures at most maxHeight.
// Text is cut between words, lists between items and tables between rows
// (a markdown header is repeated on the remainder). The head keeps b's ID;
// the tail is a new block with ID "<source>-part<n>".
//
// ok is false when b is not breakable or no non-empty head fits.
// b itself is never modified.
func Split(b Block, maxHeight float64, est Estimator, g geometry.Geometry) (head, tail Block, ok bool) {
	if !b.Breakable || maxHeight <= 0 {
		return Block{}, Block{}, false
	}
	if est == nil {
		est = Heuristic{}
	}

	measure := func(s string) float64 {
		if b.HeightOverridden {
			total := DisplayWidth(b.Content)
			if total == 0 {
				return 0
			}
			return b.EstimatedHeight * float64(DisplayWidth(s)) / float64(total)
		}
		return est.EstimateHeight(s, b.Type, g)
	}

	cuts, header := cutPoints(b.Content, b.Type)
	if len(cuts) == 0 {
		return Block{}, Block{}, false
	}

	headAt := func(k int) string {
		return strings.TrimRightFunc(b.Content[:cuts[k]], unicode.IsSpace)
	}
	first := sort.Search(len(cuts), func(k int) bool {
		return measure(headAt(k)) > maxHeight+splitEps
	})
	best := first - 1
	if best < 0 {
		return Block{}, Block{}, false
	}

	headText := headAt(best)
	tailText := strings.TrimLeftFunc(b.Content[cuts[best]:], unicode.IsSpace)
	if header != "" {
		tailText = header + "\n" + tailText
	}
	if strings.TrimSpace(headText) == "" || strings.TrimSpace(tailText) == "" {
		return Block{}, Block{}, false
	}

	head = b
	head.Content = headText
	head.EstimatedHeight = measure(headText)

	tail = b
	tail.Part = b.Part + 1
	tail.ID = fmt.Sprintf("%s-part%d", b.SourceID, tail.Part)
	tail.Content = tailText
	tail.EstimatedHeight = measure(tailText)
	return head, tail, true
}

const splitEps = 1e-9

// cutPoints returns ascending byte offsets at which content may be cut, and
// for tables the header rows to repeat on the remainder.
func cutPoints(content string, t Type) (cuts []int, header string) {
	switch t {
	case TypeList:
		return listCuts(content), ""
	case TypeTable:
		return tableCuts(content)
	default:
		return wordCuts(content), ""
	}
}

// wordCuts returns the offset of every word start after the first.
func wordCuts(s string) []int {
	var cuts []int
	prevSpace := false
	seenWord := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if !space && prevSpace && seenWord {
			cuts = append(cuts, i)
		}
		if !space {
			seenWord = true
		}
		prevSpace = space
	}
	return cuts
}

type lineSpan struct {
	start int
	text  string
}

func nonEmptyLines(s string) []lineSpan {
	var out []lineSpan
	start := 0
	for _, l := range strings.SplitAfter(s, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, lineSpan{start: start, text: l})
		}
		start += len(l)
	}
	return out
}

// listCuts returns the start of every item line after the first. When the
// list has markers only marked lines start items.
func listCuts(s string) []int {
	ls := nonEmptyLines(s)
	marked := false
	for _, l := range ls {
		if bulletPattern.MatchString(l.text) {
			marked = true
			break
		}
	}
	var cuts []int
	for i, l := range ls {
		if i == 0 {
			continue
		}
		if !marked || bulletPattern.MatchString(l.text) {
			cuts = append(cuts, l.start)
		}
	}
	return cuts
}

// tableCuts returns the start of every data row after the first and the
// header block when the table uses a markdown separator row.
func tableCuts(s string) ([]int, string) {
	ls := nonEmptyLines(s)
	dataFrom := 0
	var header string
	if len(ls) > 2 && isSeparatorRow(strings.TrimSpace(ls[1].text)) {
		dataFrom = 2
		header = strings.TrimRight(ls[0].text+ls[1].text, "\n")
	}
	var cuts []int
	for i := dataFrom + 1; i < len(ls); i++ {
		if isSeparatorRow(strings.TrimSpace(ls[i].text)) {
			continue
		}
		cuts = append(cuts, ls[i].start)
	}
	return cuts, header
}
