// Package distribute packs content blocks into page columns.
//
// [Distribute] is a pure function of its inputs. It orders blocks by
// descending priority (stable, so reading order survives among equals) and
// greedily places each one in the least-loaded column. A breakable block that
// does not fit is split in the least-loaded column that still has a later
// column after it: the part that fits stays, the remainder is placed next in
// a later column. Blocks that cannot fit anywhere are either placed
// and reported as overflow ([Lenient]) or rejected with COLUMN_OVERFLOW
// ([Strict]).
//
// The returned [Distribution] carries a balance score (1 means equal column
// heights) and an overflow risk (0 means the content fits the page budget).
package distribute

import (
	"math"
	"sort"

	"github.com/matzehuels/compactsheet/pkg/block"
	"github.com/matzehuels/compactsheet/pkg/errors"
	"github.com/matzehuels/compactsheet/pkg/geometry"
	"github.com/matzehuels/compactsheet/pkg/observability"
)

// Policy decides what happens to content that cannot be placed.
type Policy int

const (
	// Lenient places unplaceable blocks in the least-loaded column and
	// reports them in Distribution.Overflowed.
	Lenient Policy = iota
	// Strict fails with a COLUMN_OVERFLOW error.
	Strict
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParsePolicy converts "lenient" or "strict" into a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "", "lenient":
		return Lenient, true
	case "strict":
		return Strict, true
	}
	return Lenient, false
}

// Options tune a single Distribute call.
type Options struct {
	Policy Policy
	// Estimator re-measures split pieces. Nil selects block.Heuristic.
	Estimator block.Estimator
	// Hooks receive split and overflow events. Nil disables them.
	Hooks observability.LayoutHooks
}

// Column is one page region and the blocks rendered into it, in order.
type Column struct {
	Blocks          []block.Block `json:"blocks"`
	EstimatedHeight float64       `json:"estimated_height"`
	Capacity        float64       `json:"capacity"`
}

// Overflow returns how far the column exceeds its capacity (0 if it fits).
func (c Column) Overflow() float64 {
	return math.Max(0, c.EstimatedHeight-c.Capacity)
}

// Distribution is the result of packing blocks into columns.
type Distribution struct {
	Columns       []Column `json:"columns"`
	TotalHeight   float64  `json:"total_height"`
	TotalCapacity float64  `json:"total_capacity"`
	BalanceScore  float64  `json:"balance_score"`
	OverflowRisk  float64  `json:"overflow_risk"`
	// Overflowed lists the IDs of blocks placed beyond their column's capacity.
	Overflowed []string `json:"overflowed"`
	// Splits counts the cuts made to breakable blocks.
	Splits int `json:"splits"`
}

// BlockCount returns the number of placed blocks, split pieces included.
func (d Distribution) BlockCount() int {
	n := 0
	for _, c := range d.Columns {
		n += len(c.Blocks)
	}
	return n
}

const eps = 1e-9

// Distribute packs blocks into g.ColumnCount columns of g.ColumnCapacity
// inches each. The input slice and its blocks are never modified.
func Distribute(blocks []block.Block, g geometry.Geometry, opts Options) (Distribution, error) {
	d := &distributor{
		geometry:  g,
		policy:    opts.Policy,
		estimator: opts.Estimator,
		hooks:     observability.OrNoop(opts.Hooks),
	}
	if d.estimator == nil {
		d.estimator = block.Heuristic{}
	}

	n := g.ColumnCount
	if n < 1 {
		n = 1
	}
	d.columns = make([]Column, n)
	for i := range d.columns {
		d.columns[i] = Column{Blocks: []block.Block{}, Capacity: g.ColumnCapacity}
	}

	ordered := make([]block.Block, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	for _, b := range ordered {
		if err := d.place(b); err != nil {
			return Distribution{}, err
		}
	}
	return d.result(), nil
}

type distributor struct {
	geometry   geometry.Geometry
	policy     Policy
	estimator  block.Estimator
	hooks      observability.LayoutHooks
	columns    []Column
	overflowed []string
	splits     int
}

// place puts b, and any remainders split from it, into columns.
func (d *distributor) place(b block.Block) error {
	minCol := 0
	last := len(d.columns) - 1
	for {
		if minCol > last {
			// No column left after the one holding the previous piece.
			return d.overflow(b, last)
		}

		target := d.leastLoaded(minCol, last)
		if b.EstimatedHeight <= d.remaining(target)+eps {
			d.append(target, b)
			return nil
		}

		// The remainder of a split needs a later column, so the last column
		// only ever takes whole blocks.
		if b.Breakable && minCol < last {
			col := d.leastLoaded(minCol, last-1)
			if head, tail, ok := block.Split(b, d.remaining(col), d.estimator, d.geometry); ok {
				d.append(col, head)
				d.splits++
				d.hooks.OnBlockSplit(b.SourceID, tail.ID, col)
				b, minCol = tail, col+1
				continue
			}
		}
		return d.overflow(b, target)
	}
}

// overflow handles a block that does not fit column col.
func (d *distributor) overflow(b block.Block, col int) error {
	if d.policy == Strict {
		return errors.New(errors.ErrCodeColumnOverflow,
			"block %q (%.2fin) does not fit in %d column(s) of %.2fin",
			b.ID, b.EstimatedHeight, len(d.columns), d.geometry.ColumnCapacity).
			Suggest("shorten or split the %s content, mark it breakable, or add a column", b.Type).
			ForContent(string(b.Type))
	}
	d.append(col, b)
	excess := d.columns[col].Overflow()
	d.overflowed = append(d.overflowed, b.ID)
	d.hooks.OnOverflow(b.ID, col, excess)
	return nil
}

func (d *distributor) append(col int, b block.Block) {
	c := &d.columns[col]
	c.Blocks = append(c.Blocks, b)
	c.EstimatedHeight += b.EstimatedHeight
}

// leastLoaded returns the index of the shortest column in [from, to];
// ties go to the leftmost.
func (d *distributor) leastLoaded(from, to int) int {
	best := from
	for i := from + 1; i <= to; i++ {
		if d.columns[i].EstimatedHeight < d.columns[best].EstimatedHeight-eps {
			best = i
		}
	}
	return best
}

func (d *distributor) remaining(col int) float64 {
	return d.geometry.ColumnCapacity - d.columns[col].EstimatedHeight
}

func (d *distributor) result() Distribution {
	out := Distribution{
		Columns:       d.columns,
		TotalCapacity: d.geometry.ColumnCapacity * float64(len(d.columns)),
		Overflowed:    d.overflowed,
		Splits:        d.splits,
	}
	if out.Overflowed == nil {
		out.Overflowed = []string{}
	}

	maxH, minH := math.Inf(-1), math.Inf(1)
	for _, c := range d.columns {
		out.TotalHeight += c.EstimatedHeight
		maxH = math.Max(maxH, c.EstimatedHeight)
		minH = math.Min(minH, c.EstimatedHeight)
	}

	out.BalanceScore = BalanceScore(maxH, minH, out.TotalHeight/float64(len(d.columns)))
	out.OverflowRisk = OverflowRisk(out.TotalHeight, out.TotalCapacity)
	return out
}

// BalanceScore returns clamp(1 − (max − min)/avg, 0, 1), or 1 for empty columns.
func BalanceScore(maxHeight, minHeight, avgHeight float64) float64 {
	if avgHeight <= 0 {
		return 1
	}
	return clamp01(1 - (maxHeight-minHeight)/avgHeight)
}

// OverflowRisk returns clamp((total − capacity)/total, 0, 1), or 0 when there
// is no content.
func OverflowRisk(totalHeight, totalCapacity float64) float64 {
	if totalHeight <= 0 {
		return 0
	}
	return clamp01((totalHeight - totalCapacity) / totalHeight)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
