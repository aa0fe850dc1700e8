package blueprint

import (
	"strings"
	"testing"

	"pyviz/internal/models"
)

func TestGenerateSortingBlueprint(t *testing.T) {
	summary := &models.AnalysisSummary{
		Vars1D:         []string{"arr"},
		KeyVars:        []string{"arr"},
		AlgorithmFlags: models.AlgorithmFlags{Sorting: true},
		VizType:        models.VizSorting,
	}
	out := Generate(summary)

	want := []string{
		"const { Array1DTracer, ChartTracer, Layout, LogTracer, Randomize, Tracer, VerticalLayout } = require('algorithm-visualizer');",
		"const chart = new ChartTracer();",
		"const arrTracer = new Array1DTracer('Arr');",
		"const logger = new LogTracer('Console');",
		"Layout.setRoot(new VerticalLayout([chart, arrTracer, logger]));",
		"arrTracer.chart(chart);",
		"const arr = Randomize.Array1D({ N: 10 });",
		"arrTracer.set(arr);",
		"logger.println('Starting sorting algorithm...');",
		"Tracer.delay();",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("blueprint missing %q\n---\n%s", line, out)
		}
	}
}

func TestGenerate2DBlueprint(t *testing.T) {
	summary := &models.AnalysisSummary{
		Vars2D:         []string{"dp_table"},
		AlgorithmFlags: models.AlgorithmFlags{DynamicProg: true},
		VizType:        models.VizArray2D,
	}
	out := Generate(summary)

	want := []string{
		"Array2DTracer",
		"const dp_tableTracer = new Array2DTracer('Dp Table');",
		"const dp_table = Randomize.Array2D({ N: 5, M: 7 });",
		"logger.println('Starting dynamic programming solution...');",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("blueprint missing %q\n---\n%s", line, out)
		}
	}

	if strings.Contains(out, "ChartTracer") {
		t.Error("chart emitted without any 1-D variable")
	}
}

func TestGenerateGraphBlueprint(t *testing.T) {
	summary := &models.AnalysisSummary{
		AlgorithmFlags: models.AlgorithmFlags{GraphTraversal: true},
		VizType:        models.VizGraph,
	}
	out := Generate(summary)

	want := []string{
		"const graphTracer = new GraphTracer('Graph');",
		"const G = Randomize.Graph({ N: 8, ratio: 0.3 });",
		"graphTracer.layoutCircle();",
		"logger.println('Starting graph traversal...');",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("blueprint missing %q\n---\n%s", line, out)
		}
	}
}

func TestGenerateStackQueueLabels(t *testing.T) {
	summary := &models.AnalysisSummary{
		Vars1D:    []string{"stack", "q"},
		StackVars: []string{"stack"},
		QueueVars: []string{"q"},
		VizType:   models.VizStackQueue,
	}
	out := Generate(summary)

	if !strings.Contains(out, "new Array1DTracer('Stack (Stack)')") {
		t.Errorf("stack tracer label missing:\n%s", out)
	}
	if !strings.Contains(out, "new Array1DTracer('Q (Queue)')") {
		t.Errorf("queue tracer label missing:\n%s", out)
	}
	// Stack and queue arrays use the smaller size hint.
	if !strings.Contains(out, "const q = Randomize.Array1D({ N: 8 });") {
		t.Errorf("queue size hint missing:\n%s", out)
	}
}
