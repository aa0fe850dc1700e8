// Package blueprint renders the initialization section of a visualization
// script: library imports, tracer declarations, layout, randomized data
// and the opening log line. Its output is merged with the translated
// algorithm by the combiner.
package blueprint

import (
	"fmt"
	"sort"
	"strings"

	"pyviz/internal/models"
)

type Generator struct {
	summary *models.AnalysisSummary
	lines   []string

	vars1D    map[string]bool
	vars2D    map[string]bool
	varsStack map[string]bool
	varsQueue map[string]bool
	varsHeap  map[string]bool
	varsGraph map[string]bool
	varsTree  map[string]bool
}

func NewGenerator(summary *models.AnalysisSummary) *Generator {
	return &Generator{
		summary:   summary,
		vars1D:    toSet(summary.Vars1D),
		vars2D:    toSet(summary.Vars2D),
		varsStack: toSet(summary.StackVars),
		varsQueue: toSet(summary.QueueVars),
		varsHeap:  toSet(summary.HeapVars),
		varsGraph: toSet(summary.GraphVars),
		varsTree:  toSet(summary.TreeVars),
	}
}

// Generate builds the blueprint from an analysis summary.
func Generate(summary *models.AnalysisSummary) string {
	return NewGenerator(summary).Generate()
}

func (g *Generator) Generate() string {
	g.lines = nil
	g.genImports()
	g.genTracers()
	g.genLayout()
	g.genDataInit()
	g.genInitialLog()
	return strings.Join(g.lines, "\n")
}

func (g *Generator) emit(line string) {
	g.lines = append(g.lines, line)
}

func (g *Generator) genImports() {
	needed := map[string]bool{
		"Tracer": true, "Layout": true, "VerticalLayout": true,
		"LogTracer": true, "Randomize": true,
	}
	if g.needsChart() {
		needed["Array1DTracer"] = true
		needed["ChartTracer"] = true
	}
	if len(g.vars2D) > 0 {
		needed["Array2DTracer"] = true
	}
	if g.needsGraph() {
		needed["GraphTracer"] = true
	}

	imports := sortedKeys(needed)
	g.emit("const { " + strings.Join(imports, ", ") + " } = require('algorithm-visualizer');")
	g.emit("")
}

func (g *Generator) genTracers() {
	if g.needsChart() {
		g.emit("const chart = new ChartTracer();")
	}

	for _, v := range sortedKeys(g.vars2D) {
		g.emit(fmt.Sprintf("const %sTracer = new Array2DTracer('%s');", v, makeLabel(v)))
	}

	for _, v := range sortedKeys(g.all1D()) {
		label := makeLabel(v)
		switch {
		case g.varsStack[v]:
			label += " (Stack)"
		case g.varsQueue[v]:
			label += " (Queue)"
		case g.varsHeap[v]:
			label += " (Heap)"
		}
		g.emit(fmt.Sprintf("const %sTracer = new Array1DTracer('%s');", v, label))
	}

	if g.needsGraph() {
		g.emit("const graphTracer = new GraphTracer('Graph');")
	}

	g.emit("const logger = new LogTracer('Console');")
	g.emit("")
}

func (g *Generator) genLayout() {
	var panels []string
	if g.needsChart() {
		panels = append(panels, "chart")
	}
	if g.needsGraph() {
		panels = append(panels, "graphTracer")
	}
	for _, v := range sortedKeys(g.vars2D) {
		panels = append(panels, v+"Tracer")
	}
	for _, v := range sortedKeys(g.all1D()) {
		panels = append(panels, v+"Tracer")
	}
	panels = append(panels, "logger")

	g.emit("Layout.setRoot(new VerticalLayout([" + strings.Join(panels, ", ") + "]));")
	g.emit("")
}

func (g *Generator) genDataInit() {
	if g.needsChart() && len(g.summary.KeyVars) > 0 {
		if primary := g.primary1DVar(); primary != "" {
			g.emit(primary + "Tracer.chart(chart);")
		}
	}

	for _, v := range sortedKeys(g.vars2D) {
		rows, cols := g.matrixSizeHint()
		g.emit(fmt.Sprintf("const %s = Randomize.Array2D({ N: %d, M: %d });", v, rows, cols))
		g.emit(v + "Tracer.set(" + v + ");")
		g.emit("Tracer.delay();")
	}

	for _, v := range sortedKeys(g.all1D()) {
		g.emit(fmt.Sprintf("const %s = Randomize.Array1D({ N: %d });", v, g.arraySizeHint(v)))
		g.emit(v + "Tracer.set(" + v + ");")
		g.emit("Tracer.delay();")
	}

	if g.needsGraph() {
		g.emit("const G = Randomize.Graph({ N: 8, ratio: 0.3 });")
		g.emit("graphTracer.set(G);")
		g.emit("graphTracer.layoutCircle();")
		g.emit("Tracer.delay();")
	}

	if len(g.lines) > 0 && g.lines[len(g.lines)-1] != "" {
		g.emit("")
	}
}

func (g *Generator) genInitialLog() {
	g.emit("logger.println('" + g.initialMessage() + "');")
	g.emit("Tracer.delay();")
	g.emit("")
}

func (g *Generator) initialMessage() string {
	switch {
	case g.summary.Sorting:
		return "Starting sorting algorithm..."
	case g.summary.Searching:
		return "Starting search algorithm..."
	case g.summary.GraphTraversal:
		return "Starting graph traversal..."
	case g.summary.DynamicProg:
		return "Starting dynamic programming solution..."
	default:
		return "Algorithm visualization initialized"
	}
}

func (g *Generator) needsChart() bool {
	return len(g.all1D()) > 0
}

func (g *Generator) needsGraph() bool {
	return len(g.varsGraph) > 0 || len(g.varsTree) > 0 || g.summary.GraphTraversal
}

func (g *Generator) all1D() map[string]bool {
	out := map[string]bool{}
	for _, m := range []map[string]bool{g.vars1D, g.varsStack, g.varsQueue, g.varsHeap} {
		for v := range m {
			out[v] = true
		}
	}
	return out
}

// primary1DVar picks the variable the chart links to, preferring the
// summary's key variables.
func (g *Generator) primary1DVar() string {
	all := g.all1D()
	for _, v := range g.summary.KeyVars {
		if all[v] {
			return v
		}
	}
	if keys := sortedKeys(all); len(keys) > 0 {
		return keys[0]
	}
	return ""
}

func (g *Generator) arraySizeHint(v string) int {
	if g.summary.Sorting {
		return 10
	}
	if g.varsStack[v] || g.varsQueue[v] {
		return 8
	}
	return 12
}

func (g *Generator) matrixSizeHint() (int, int) {
	if g.summary.GraphTraversal {
		return 6, 6
	}
	if g.summary.DynamicProg {
		return 5, 7
	}
	return 5, 5
}

// makeLabel turns a snake_case name into a Title Case display label.
func makeLabel(v string) string {
	words := strings.Fields(strings.ReplaceAll(v, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func toSet(list []string) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, v := range list {
		out[v] = true
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
