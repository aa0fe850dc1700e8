package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pyviz/internal/config"
	"pyviz/internal/models"
)

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	return string(data)
}

func TestRunBubbleSortEndToEnd(t *testing.T) {
	p := New(nil)
	result := p.Run(readTestdata(t, "bubble_sort.py"))

	if result.Summary.Error != "" {
		t.Fatalf("unexpected error: %s", result.Summary.Error)
	}
	if result.Summary.VizType != models.VizSorting {
		t.Errorf("VizType = %v, want sorting", result.Summary.VizType)
	}
	if !strings.Contains(result.Algorithm, "function bubble_sort(arr)") {
		t.Errorf("algorithm missing translated function:\n%s", result.Algorithm)
	}
	if result.Blueprint == "" || result.Combined == "" {
		t.Fatal("blueprint or combined output missing with default pipeline config")
	}
	if result.Checks == nil || !result.Checks.OK() {
		t.Errorf("combined output failed checks: %+v", result.Checks)
	}
	if !strings.Contains(result.Combined, "bubble_sort(arr);") {
		t.Errorf("combined output missing entry call:\n%s", result.Combined)
	}
}

func TestRunBinarySearch(t *testing.T) {
	result := New(nil).Run(readTestdata(t, "binary_search.py"))

	if !result.Summary.Searching {
		t.Error("Searching flag not set")
	}
	if !strings.Contains(result.Algorithm, "arrTracer.select(mid);") {
		t.Errorf("midpoint highlight missing:\n%s", result.Algorithm)
	}
	if result.Checks == nil || !result.Checks.OK() {
		t.Errorf("combined output failed checks: %+v", result.Checks)
	}
}

func TestRunBFS(t *testing.T) {
	result := New(nil).Run(readTestdata(t, "bfs.py"))

	if result.Summary.VizType != models.VizGraph {
		t.Errorf("VizType = %v, want graph", result.Summary.VizType)
	}
	if !strings.Contains(result.Blueprint, "GraphTracer") {
		t.Errorf("blueprint missing graph tracer:\n%s", result.Blueprint)
	}
}

func TestRunSyntaxError(t *testing.T) {
	result := New(nil).Run("def f(:\n")

	if result.Summary.Error == "" {
		t.Fatal("expected error summary")
	}
	if result.Algorithm != "" || result.Combined != "" {
		t.Error("generated output present despite parse failure")
	}
}

func TestRunStagesDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pipeline.GenerateBlueprint = false
	cfg.Pipeline.Combine = false
	cfg.Pipeline.Validate = false

	result := New(cfg).Run("arr = [1, 2, 3]\n")
	if result.Algorithm == "" {
		t.Error("translation stage must always run")
	}
	if result.Blueprint != "" || result.Combined != "" || result.Checks != nil {
		t.Error("disabled stages produced output")
	}
}

func TestAnalyzeOnly(t *testing.T) {
	s := New(nil).Analyze("matrix = [[1, 2], [3, 4]]\n")
	if s.VizType != models.VizArray2D {
		t.Errorf("VizType = %v, want array2d", s.VizType)
	}
}

func TestReportFormats(t *testing.T) {
	result := New(nil).Run(readTestdata(t, "bubble_sort.py"))

	js := NewReportGenerator("js").Generate(result)
	if js != result.Combined {
		t.Error("js format must return the combined script")
	}

	raw := NewReportGenerator("json").Generate(result)
	var decoded models.TranslationResult
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("json report not parseable: %v", err)
	}
	if decoded.Summary.VizType != result.Summary.VizType {
		t.Error("json report lost the summary")
	}

	cfg := config.DefaultConfig()
	cfg.Output.Colors = false
	cfg.Output.Verbose = true
	console := NewReportGeneratorWithConfig(cfg).Generate(result)
	for _, want := range []string{"PyViz Translation Report", "Detected structures:", "Patterns: sorting", "Output checks: passed"} {
		if !strings.Contains(console, want) {
			t.Errorf("console report missing %q\n---\n%s", want, console)
		}
	}
}

func TestReportError(t *testing.T) {
	result := New(nil).Run("def broken(:\n")
	cfg := config.DefaultConfig()
	cfg.Output.Colors = false
	out := NewReportGeneratorWithConfig(cfg).Generate(result)
	if !strings.Contains(out, "Error: syntax error") {
		t.Errorf("console report missing error line:\n%s", out)
	}
}
