package combiner

import (
	"strings"
	"testing"
)

const testBlueprint = `const { Array1DTracer, Layout, LogTracer, Randomize, Tracer, VerticalLayout } = require('algorithm-visualizer');

const arrTracer = new Array1DTracer('Arr');
const logger = new LogTracer('Console');

Layout.setRoot(new VerticalLayout([arrTracer, logger]));

const arr = Randomize.Array1D({ N: 10 });
arrTracer.set(arr);
Tracer.delay();
`

const testAlgorithm = `const __sum = arr => arr.reduce((a, b) => a + b, 0);

function bubbleSort(arr) {
  logger.println('sorting');
  return arr;
}

bubbleSort(arr);
`

func TestCombineSectionOrder(t *testing.T) {
	out := Combine(testBlueprint, testAlgorithm)

	positions := []struct {
		label string
		text  string
	}{
		{"imports", "require('algorithm-visualizer')"},
		{"helpers", "const __sum"},
		{"setup", "Layout.setRoot"},
		{"functions", "function bubbleSort"},
		{"entry call", "// Call main algorithm"},
		{"completion log", "logger.println('Algorithm completed');"},
	}

	last := -1
	for _, p := range positions {
		idx := strings.Index(out, p.text)
		if idx == -1 {
			t.Fatalf("combined output missing %s (%q)\n---\n%s", p.label, p.text, out)
		}
		if idx < last {
			t.Errorf("%s appears out of order\n---\n%s", p.label, out)
		}
		last = idx
	}
}

func TestCombineSynthesizesEntryCall(t *testing.T) {
	out := Combine(testBlueprint, testAlgorithm)

	if strings.Count(out, "bubbleSort(arr);") != 1 {
		t.Errorf("want exactly one entry call, got:\n%s", out)
	}
	idx := strings.Index(out, "bubbleSort(arr);")
	def := strings.Index(out, "function bubbleSort")
	if idx < def {
		t.Errorf("entry call precedes the function definition:\n%s", out)
	}
}

func TestCombineMatchesParamsByType(t *testing.T) {
	blueprint := `const { Array2DTracer, GraphTracer, Layout, LogTracer, Randomize, Tracer, VerticalLayout } = require('algorithm-visualizer');

const gridTracer = new Array2DTracer('Grid');
const logger = new LogTracer('Console');

Layout.setRoot(new VerticalLayout([gridTracer, logger]));

const grid = Randomize.Array2D({ N: 5, M: 5 });
const G = Randomize.Graph({ N: 8, ratio: 0.3 });
`
	algorithm := `function explore(matrix, graph) {
  return matrix;
}
`
	out := Combine(blueprint, algorithm)
	if !strings.Contains(out, "explore(grid, G);") {
		t.Errorf("type-heuristic entry call missing:\n%s", out)
	}
}

func TestCombineSkipsHelperAsEntry(t *testing.T) {
	algorithm := `function __idx(arr, i) { return i < 0 ? arr.length + i : i; }

function search(arr) {
  return arr[__idx(arr, -1)];
}
`
	out := Combine(testBlueprint, algorithm)
	if !strings.Contains(out, "search(arr);") {
		t.Errorf("entry call must target the first non-helper function:\n%s", out)
	}
	if strings.Contains(out, "__idx(arr);") {
		t.Errorf("helper used as entry point:\n%s", out)
	}
}

func TestCleanOutputCollapsesBlankRuns(t *testing.T) {
	in := "a;\n\n\n\n\nb;\n\n\n"
	out := cleanOutput(in)
	if strings.Contains(out, "\n\n\n\n") {
		t.Errorf("blank run not collapsed: %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Errorf("trailing blank lines not trimmed: %q", out)
	}
}

func TestValidate(t *testing.T) {
	good := Combine(testBlueprint, testAlgorithm)
	report := Validate(good)
	if !report.OK() {
		t.Errorf("valid output failed checks: %+v", report)
	}

	bad := Validate("function broken( {")
	if bad.BalancedSyntax {
		t.Error("unbalanced code passed the syntax check")
	}
	if bad.HasImports || bad.HasLayout {
		t.Error("missing sections reported present")
	}
}
