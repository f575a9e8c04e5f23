package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/compactsheet/pkg/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleUnits = `
[[unit]]
id = "title"
type = "heading"
content = "Probability"

[[unit]]
id = "bayes"
type = "formula"
content = "$$P(A|B) = P(B|A)P(A)/P(B)$$"

[[unit]]
id = "notes"
type = "text"
content = "Independence means the joint probability factors into the marginals."
`

func TestGeometryCommand(t *testing.T) {
	out, err := execute(t, "geometry", "--json", "--columns", "3", "--paper", "letter")
	if err != nil {
		t.Fatalf("geometry error = %v", err)
	}
	var g struct {
		PageWidth   float64 `json:"page_width"`
		ColumnCount int     `json:"column_count"`
	}
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if g.ColumnCount != 3 || g.PageWidth != 8.5 {
		t.Errorf("geometry = %+v, want 3 columns on letter", g)
	}
}

func TestGeometryCommandSummary(t *testing.T) {
	out, err := execute(t, "geometry")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Characters per line", "50", "Lines per column", "64"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGeometryCommandRejectsInvalidFlags(t *testing.T) {
	_, err := execute(t, "geometry", "--font-size", "12")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, "valid") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "validate", "--paragraph-spacing", "0.5", "--columns", "4")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("error = %v, want INVALID_CONFIG", err)
	}
	if !strings.Contains(out, "compact paragraph spacing") {
		t.Errorf("output should include suggestions:\n%s", out)
	}
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	cfg := writeFile(t, "sheet.toml", "columns = 1\npaper_size = \"legal\"\n")
	out, err := execute(t, "geometry", "--json", "-c", cfg, "--columns", "2")
	if err != nil {
		t.Fatal(err)
	}
	var g struct {
		PageHeight  float64 `json:"page_height"`
		ColumnCount int     `json:"column_count"`
	}
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatal(err)
	}
	if g.ColumnCount != 2 || g.PageHeight != 14 {
		t.Errorf("geometry = %+v, want flag columns and file paper", g)
	}
}

func TestDistributeCommand(t *testing.T) {
	units := writeFile(t, "units.toml", sampleUnits)
	outPath := filepath.Join(t.TempDir(), "layout.json")

	out, err := execute(t, "distribute", units, "-o", outPath)
	if err != nil {
		t.Fatalf("distribute error = %v", err)
	}
	if !strings.Contains(out, "Balance") || !strings.Contains(out, outPath) {
		t.Errorf("summary output:\n%s", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var d struct {
		Columns []struct {
			Blocks []struct {
				ID string `json:"id"`
			} `json:"blocks"`
		} `json:"columns"`
	}
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, c := range d.Columns {
		n += len(c.Blocks)
	}
	if len(d.Columns) != 2 || n != 3 {
		t.Errorf("layout has %d columns and %d blocks, want 2 and 3", len(d.Columns), n)
	}
}

func TestDistributeCommandJSON(t *testing.T) {
	units := writeFile(t, "units.json", `[{"id": "a", "type": "text", "content": "hello"}]`)
	out, err := execute(t, "distribute", units, "--json", "--columns", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"balance_score"`) {
		t.Errorf("output = %s", out)
	}
}

func TestDistributeCommandJSONWithOutput(t *testing.T) {
	units := writeFile(t, "units.toml", sampleUnits)
	outPath := filepath.Join(t.TempDir(), "layout.json")

	out, err := execute(t, "distribute", units, "--json", "-o", outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"balance_score"`) {
		t.Errorf("stdout = %s", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(data) != out {
		t.Errorf("file and stdout differ:\nfile: %s\nstdout: %s", data, out)
	}
}

func TestDistributeCommandErrors(t *testing.T) {
	if _, err := execute(t, "distribute", filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}

	bad := writeFile(t, "bad.json", `[{"id": "", "type": "text", "content": "x"}]`)
	if _, err := execute(t, "distribute", bad); !errors.Is(err, errors.ErrCodeInvalidContentBlock) {
		t.Errorf("bad unit error = %v", err)
	}

	huge := writeFile(t, "huge.json", `[{"id": "p", "type": "theorem", "content": "x", "options": {"estimatedHeight": 40}}]`)
	if _, err := execute(t, "distribute", huge, "--strict"); !errors.Is(err, errors.ErrCodeColumnOverflow) {
		t.Errorf("strict overflow error = %v", err)
	}
	out, err := execute(t, "distribute", huge)
	if err != nil {
		t.Fatalf("lenient overflow error = %v", err)
	}
	if !strings.Contains(out, "does not fit") {
		t.Errorf("lenient output should warn about overflow:\n%s", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "compactsheet") {
		t.Error("bash completion should mention the binary name")
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "compactsheet ") {
		t.Errorf("version output = %q", out)
	}
}
