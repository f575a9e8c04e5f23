package block

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	g := defaultGeometry()
	f := NewFactory(g, nil)
	content := strings.TrimSpace(strings.Repeat("word ", 60))
	b, err := f.Create("t1", content, TypeText, Options{})
	if err != nil {
		t.Fatal(err)
	}

	limit := 3*g.LineHeightInches + g.ParagraphSpacing
	head, tail, ok := Split(b, limit, Heuristic{}, g)
	if !ok {
		t.Fatal("Split() ok = false, want true")
	}

	if head.ID != "t1" || head.Part != 1 {
		t.Errorf("head = %s part %d, want t1 part 1", head.ID, head.Part)
	}
	if tail.ID != "t1-part2" || tail.Part != 2 || tail.SourceID != "t1" {
		t.Errorf("tail = %s part %d source %s, want t1-part2 part 2 source t1", tail.ID, tail.Part, tail.SourceID)
	}
	if !tail.IsContinuation() || head.IsContinuation() {
		t.Error("IsContinuation mismatch")
	}
	if head.EstimatedHeight > limit+1e-9 {
		t.Errorf("head height %v exceeds limit %v", head.EstimatedHeight, limit)
	}
	if got := head.Content + " " + tail.Content; got != content {
		t.Errorf("head+tail = %q, want original", got)
	}
	if tail.Type != b.Type || tail.Priority != b.Priority || !tail.Breakable {
		t.Error("tail should inherit type, priority and breakability")
	}
	if b.Content != content {
		t.Error("Split modified its input")
	}
}

func TestSplitRemainderAgain(t *testing.T) {
	g := defaultGeometry()
	b, _ := NewFactory(g, nil).Create("t", strings.Repeat("alpha beta ", 80), TypeText, Options{})

	_, tail, ok := Split(b, 0.5, nil, g)
	if !ok {
		t.Fatal("first split failed")
	}
	_, tail2, ok := Split(tail, 0.5, nil, g)
	if !ok {
		t.Fatal("second split failed")
	}
	if tail2.ID != "t-part3" {
		t.Errorf("second tail ID = %q, want t-part3", tail2.ID)
	}
}

func TestSplitRefuses(t *testing.T) {
	g := defaultGeometry()
	f := NewFactory(g, nil)

	formula, _ := f.Create("f", strings.Repeat("x + ", 100), TypeFormula, Options{})
	if _, _, ok := Split(formula, 0.5, nil, g); ok {
		t.Error("unbreakable block must not split")
	}

	text, _ := f.Create("t", strings.Repeat("word ", 60), TypeText, Options{})
	if _, _, ok := Split(text, g.LineHeightInches/2, nil, g); ok {
		t.Error("split should fail when not even one line fits")
	}

	single, _ := f.Create("s", strings.Repeat("x", 400), TypeText, Options{})
	if _, _, ok := Split(single, 0.5, nil, g); ok {
		t.Error("a single unbroken word has no cut points")
	}
}

func TestSplitList(t *testing.T) {
	g := defaultGeometry()
	content := "- one\n- two\n  still two\n- three\n- four"
	b, _ := NewFactory(g, nil).Create("l", content, TypeList, Options{})

	limit := Heuristic{}.EstimateHeight("- one\n- two\n  still two", TypeList, g)
	head, tail, ok := Split(b, limit, nil, g)
	if !ok {
		t.Fatal("Split() ok = false")
	}
	if head.Content != "- one\n- two\n  still two" {
		t.Errorf("head = %q", head.Content)
	}
	if tail.Content != "- three\n- four" {
		t.Errorf("tail = %q", tail.Content)
	}
}

func TestSplitTableRepeatsHeader(t *testing.T) {
	g := defaultGeometry()
	content := "| k | v |\n|---|---|\n| a | 1 |\n| b | 2 |\n| c | 3 |"
	b, _ := NewFactory(g, nil).Create("tbl", content, TypeTable, Options{})

	limit := 3*g.LineHeightInches + g.ParagraphSpacing
	head, tail, ok := Split(b, limit, nil, g)
	if !ok {
		t.Fatal("Split() ok = false")
	}
	if head.Content != "| k | v |\n|---|---|\n| a | 1 |\n| b | 2 |" {
		t.Errorf("head = %q", head.Content)
	}
	if tail.Content != "| k | v |\n|---|---|\n| c | 3 |" {
		t.Errorf("tail = %q", tail.Content)
	}
}

func TestSplitOverriddenHeightIsProportional(t *testing.T) {
	g := defaultGeometry()
	content := strings.TrimSpace(strings.Repeat("abcd ", 20)) // 99 cells
	b, _ := NewFactory(g, nil).Create("o", content, TypeText, Options{
		Breakable:       ptr(true),
		EstimatedHeight: ptr(9.9),
	})

	head, tail, ok := Split(b, 5, nil, g)
	if !ok {
		t.Fatal("Split() ok = false")
	}
	if head.EstimatedHeight > 5 {
		t.Errorf("head height %v exceeds 5", head.EstimatedHeight)
	}
	if !tail.HeightOverridden {
		t.Error("tail should keep proportional override")
	}
	if sum := head.EstimatedHeight + tail.EstimatedHeight; sum > 9.9+1e-9 {
		t.Errorf("head+tail height %v exceeds original 9.9", sum)
	}
}
