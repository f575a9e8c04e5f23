package distribute

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/compactsheet/pkg/block"
	"github.com/matzehuels/compactsheet/pkg/config"
	"github.com/matzehuels/compactsheet/pkg/errors"
	"github.com/matzehuels/compactsheet/pkg/geometry"
	"github.com/matzehuels/compactsheet/pkg/observability"
)

func geometryWith(columns int) geometry.Geometry {
	c := config.Defaults()
	c.Columns = columns
	return geometry.Calculate(c)
}

func fixed(id string, priority int, height float64) block.Block {
	return block.Block{
		ID:              id,
		Type:            block.TypeDefinition,
		Content:         id,
		EstimatedHeight: height,
		Priority:        priority,
		SourceID:        id,
		Part:            1,
	}
}

func ids(c Column) []string {
	out := make([]string, len(c.Blocks))
	for i, b := range c.Blocks {
		out[i] = b.ID
	}
	return out
}

func TestDistributeEmpty(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		d, err := Distribute(nil, geometryWith(n), Options{})
		if err != nil {
			t.Fatalf("Distribute() error = %v", err)
		}
		if len(d.Columns) != n {
			t.Errorf("columns = %d, want %d", len(d.Columns), n)
		}
		if d.TotalHeight != 0 || d.OverflowRisk != 0 || d.BalanceScore != 1 {
			t.Errorf("empty distribution = %+v", d)
		}
		for i, c := range d.Columns {
			if c.Blocks == nil {
				t.Errorf("column %d has nil Blocks", i)
			}
		}
	}
}

func TestDistributeBalances(t *testing.T) {
	g := geometryWith(2)
	blocks := []block.Block{
		fixed("a", 5, 2), fixed("b", 5, 2), fixed("c", 5, 2), fixed("d", 5, 2),
	}

	d, err := Distribute(blocks, g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids(d.Columns[0]), []string{"a", "c"}) ||
		!reflect.DeepEqual(ids(d.Columns[1]), []string{"b", "d"}) {
		t.Errorf("columns = %v / %v", ids(d.Columns[0]), ids(d.Columns[1]))
	}
	if d.BalanceScore != 1 {
		t.Errorf("BalanceScore = %v, want 1", d.BalanceScore)
	}
	if d.OverflowRisk != 0 {
		t.Errorf("OverflowRisk = %v, want 0 when content fits", d.OverflowRisk)
	}
	if d.TotalHeight != 8 {
		t.Errorf("TotalHeight = %v, want 8", d.TotalHeight)
	}
}

func TestDistributePriorityOrder(t *testing.T) {
	g := geometryWith(2)
	blocks := []block.Block{
		fixed("low", 2, 1), fixed("high", 10, 1), fixed("mid", 6, 1),
		fixed("mid2", 6, 1), fixed("top", 9, 1), fixed("low2", 2, 1),
	}

	d, err := Distribute(blocks, g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for ci, c := range d.Columns {
		for i := 1; i < len(c.Blocks); i++ {
			if c.Blocks[i].Priority > c.Blocks[i-1].Priority {
				t.Errorf("column %d: %s (p%d) placed after %s (p%d)", ci,
					c.Blocks[i].ID, c.Blocks[i].Priority, c.Blocks[i-1].ID, c.Blocks[i-1].Priority)
			}
		}
	}
	if got := d.Columns[0].Blocks[0].ID; got != "high" {
		t.Errorf("first block = %s, want high", got)
	}
	// Equal priorities keep input order.
	if got := ids(d.Columns[0]); !reflect.DeepEqual(got, []string{"high", "mid", "low"}) {
		t.Errorf("column 0 = %v", got)
	}
	if got := ids(d.Columns[1]); !reflect.DeepEqual(got, []string{"top", "mid2", "low2"}) {
		t.Errorf("column 1 = %v", got)
	}
}

func TestDistributeSingleColumn(t *testing.T) {
	g := geometryWith(1)
	f := block.NewFactory(g, nil)
	var blocks []block.Block
	for i := 0; i < 20; i++ {
		b, err := f.Create(fmt.Sprintf("t%02d", i), "A short paragraph of compact text.", block.TypeText, block.Options{})
		if err != nil {
			t.Fatal(err)
		}
		blocks = append(blocks, b)
	}

	d, err := Distribute(blocks, g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Columns) != 1 {
		t.Fatalf("columns = %d, want 1", len(d.Columns))
	}
	seen := map[string]int{}
	for _, b := range d.Columns[0].Blocks {
		seen[b.ID]++
	}
	if len(seen) != 20 {
		t.Errorf("distinct blocks = %d, want 20", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("block %s appears %d times", id, n)
		}
	}
	if d.BalanceScore != 1 {
		t.Errorf("single column BalanceScore = %v, want 1", d.BalanceScore)
	}
}

type recorder struct {
	observability.NoopLayoutHooks
	splits    []string
	overflows []string
}

func (r *recorder) OnBlockSplit(sourceID, tailID string, column int) {
	r.splits = append(r.splits, tailID)
}

func (r *recorder) OnOverflow(blockID string, column int, excess float64) {
	r.overflows = append(r.overflows, blockID)
}

func TestDistributeOversizedBlock(t *testing.T) {
	g := geometryWith(2)
	base := []block.Block{fixed("a", 5, 2), fixed("b", 5, 2)}

	before, err := Distribute(base, g, Options{})
	if err != nil {
		t.Fatal(err)
	}

	huge := fixed("huge", 5, g.ColumnCapacity*1.5)
	rec := &recorder{}
	after, err := Distribute(append(base, huge), g, Options{Hooks: rec})
	if err != nil {
		t.Fatalf("lenient Distribute() error = %v", err)
	}

	if after.BalanceScore > before.BalanceScore {
		t.Errorf("BalanceScore rose from %v to %v", before.BalanceScore, after.BalanceScore)
	}
	if !reflect.DeepEqual(after.Overflowed, []string{"huge"}) {
		t.Errorf("Overflowed = %v, want [huge]", after.Overflowed)
	}
	if !reflect.DeepEqual(rec.overflows, []string{"huge"}) {
		t.Errorf("OnOverflow calls = %v", rec.overflows)
	}
	if after.Columns[0].Overflow() <= 0 {
		t.Errorf("column 0 Overflow() = %v, want > 0", after.Columns[0].Overflow())
	}
	if after.BlockCount() != 3 {
		t.Errorf("BlockCount() = %d, want 3", after.BlockCount())
	}
}

func TestDistributeStrictOverflow(t *testing.T) {
	g := geometryWith(2)
	huge := fixed("huge", 9, g.ColumnCapacity+1)

	_, err := Distribute([]block.Block{huge}, g, Options{Policy: Strict})
	if !errors.Is(err, errors.ErrCodeColumnOverflow) {
		t.Fatalf("error = %v, want COLUMN_OVERFLOW", err)
	}
	if !strings.Contains(err.Error(), "huge") {
		t.Errorf("error %q should name the block", err)
	}
}

func TestDistributeSplitsIntoLaterColumn(t *testing.T) {
	g := geometryWith(2)
	f := block.NewFactory(g, nil)

	fillers := []block.Block{fixed("f0", 10, 1), fixed("f1", 10, 2)}
	text, err := f.Create("long", strings.TrimSpace(strings.Repeat("lorem ipsum ", 300)), block.TypeText, block.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if text.EstimatedHeight <= g.ColumnCapacity-1 {
		t.Fatalf("test text too short: %v", text.EstimatedHeight)
	}

	rec := &recorder{}
	d, err := Distribute(append(fillers, text), g, Options{Hooks: rec})
	if err != nil {
		t.Fatal(err)
	}

	if d.Splits == 0 || len(rec.splits) != d.Splits {
		t.Fatalf("Splits = %d, hook calls = %v", d.Splits, rec.splits)
	}
	colOf := map[string]int{}
	for ci, c := range d.Columns {
		for _, b := range c.Blocks {
			colOf[b.ID] = ci
		}
	}
	head, ok := colOf["long"]
	if !ok {
		t.Fatal("head piece missing")
	}
	tail, ok := colOf["long-part2"]
	if !ok {
		t.Fatal("tail piece long-part2 missing")
	}
	if head != 0 || tail != 1 {
		t.Errorf("head in column %d, tail in column %d, want 0 and 1", head, tail)
	}
	if len(d.Overflowed) != 0 {
		t.Errorf("Overflowed = %v, want none", d.Overflowed)
	}
}

// textOfHeight builds a breakable text block whose estimated height lies in
// [lo, hi] column capacities.
func textOfHeight(t *testing.T, f *block.Factory, g geometry.Geometry, id string, lo, hi float64) block.Block {
	t.Helper()
	for n := 20; n <= 1000; n += 2 {
		b, err := f.Create(id, strings.TrimSpace(strings.Repeat("lorem ipsum ", n)), block.TypeText, block.Options{})
		if err != nil {
			t.Fatal(err)
		}
		if b.EstimatedHeight >= lo*g.ColumnCapacity && b.EstimatedHeight <= hi*g.ColumnCapacity {
			return b
		}
	}
	t.Fatalf("no text between %v and %v of capacity", lo, hi)
	return block.Block{}
}

func TestDistributeSplitLeavesRoomForRemainder(t *testing.T) {
	g := geometryWith(2)
	f := block.NewFactory(g, nil)
	blocks := []block.Block{
		fixed("a", 10, 0.5*g.ColumnCapacity),
		fixed("b", 9, 0.3*g.ColumnCapacity),
		textOfHeight(t, f, g, "long", 0.85, 0.9),
	}

	for _, policy := range []Policy{Lenient, Strict} {
		t.Run(policy.String(), func(t *testing.T) {
			d, err := Distribute(blocks, g, Options{Policy: policy})
			if err != nil {
				t.Fatalf("Distribute() error = %v", err)
			}
			if len(d.Overflowed) != 0 {
				t.Errorf("Overflowed = %v, want none", d.Overflowed)
			}
			if d.OverflowRisk != 0 {
				t.Errorf("OverflowRisk = %v, want 0", d.OverflowRisk)
			}
			for i, c := range d.Columns {
				if c.Overflow() > 0 {
					t.Errorf("column %d exceeds capacity by %v", i, c.Overflow())
				}
			}
			if got := ids(d.Columns[0]); !reflect.DeepEqual(got, []string{"a", "long"}) {
				t.Errorf("column 0 = %v, want [a long]", got)
			}
			if got := ids(d.Columns[1]); !reflect.DeepEqual(got, []string{"b", "long-part2"}) {
				t.Errorf("column 1 = %v, want [b long-part2]", got)
			}
		})
	}
}

func TestDistributeLastColumnTakesWholeBlocks(t *testing.T) {
	g := geometryWith(1)
	f := block.NewFactory(g, nil)
	long := textOfHeight(t, f, g, "long", 1.2, 1.4)

	rec := &recorder{}
	d, err := Distribute([]block.Block{long}, g, Options{Hooks: rec})
	if err != nil {
		t.Fatal(err)
	}
	if d.Splits != 0 || len(rec.splits) != 0 {
		t.Errorf("Splits = %d, hook calls = %v, want none", d.Splits, rec.splits)
	}
	if !reflect.DeepEqual(d.Overflowed, []string{"long"}) {
		t.Errorf("Overflowed = %v, want [long]", d.Overflowed)
	}
}

func TestDistributeDeterministicAndPure(t *testing.T) {
	g := geometryWith(3)
	f := block.NewFactory(g, nil)
	var blocks []block.Block
	for i, typ := range block.Types {
		b, err := f.Create(fmt.Sprintf("b%d", i), strings.Repeat("content ", 40*(i+1)), typ, block.Options{})
		if err != nil {
			t.Fatal(err)
		}
		blocks = append(blocks, b)
	}
	snapshot := make([]block.Block, len(blocks))
	copy(snapshot, blocks)

	first, err := Distribute(blocks, g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Distribute(blocks, g, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Distribute is not deterministic")
	}
	if !reflect.DeepEqual(blocks, snapshot) {
		t.Error("Distribute modified its input")
	}
}

func TestScores(t *testing.T) {
	tests := []struct {
		name            string
		max, min, avg   float64
		total, capacity float64
		balance, risk   float64
	}{
		{"empty", 0, 0, 0, 0, 20, 1, 0},
		{"even", 5, 5, 5, 10, 20, 1, 0},
		{"uneven", 6, 2, 4, 8, 20, 0, 0},
		{"overfull", 15, 15, 15, 30, 20, 1, 1.0 / 3},
		{"clamped", 10, 0, 2, 4, 2, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BalanceScore(tt.max, tt.min, tt.avg); got != tt.balance {
				t.Errorf("BalanceScore() = %v, want %v", got, tt.balance)
			}
			if got := OverflowRisk(tt.total, tt.capacity); got != tt.risk {
				t.Errorf("OverflowRisk() = %v, want %v", got, tt.risk)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, s := range []string{"lenient", "strict"} {
		p, ok := ParsePolicy(s)
		if !ok || p.String() != s {
			t.Errorf("ParsePolicy(%q) = %v, %v", s, p, ok)
		}
	}
	if _, ok := ParsePolicy("loose"); ok {
		t.Error("ParsePolicy(loose) should fail")
	}
}
