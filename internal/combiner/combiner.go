// Package combiner merges a blueprint (imports, tracers, layout, data)
// with a translated algorithm into one runnable visualization script:
// imports first, then helper polyfills, classes, blueprint setup,
// functions, remaining top-level code and a synthesized entry call.
package combiner

import (
	"regexp"
	"strings"

	"pyviz/internal/models"
)

type Combiner struct {
	finalLines []string
}

func NewCombiner() *Combiner {
	return &Combiner{}
}

// Combine is the package-level convenience wrapper.
func Combine(blueprint, algorithm string) string {
	return NewCombiner().Combine(blueprint, algorithm)
}

func (c *Combiner) Combine(blueprint, algorithm string) string {
	blueprintLines := strings.Split(blueprint, "\n")
	algorithmLines := strings.Split(algorithm, "\n")

	algoImports := extractImports(algorithmLines)
	algoHelpers := extractHelpers(algorithmLines)
	algoClasses := extractClasses(algorithmLines)
	algoFunctions := extractFunctions(algorithmLines)
	algoMain := extractMainCode(algorithmLines)

	blueprintImports := extractImports(blueprintLines)
	blueprintSetup := extractSetup(blueprintLines)

	c.finalLines = nil

	if merged := mergeImports(blueprintImports, algoImports); len(merged) > 0 {
		c.append(merged)
		c.append([]string{""})
	}
	if len(algoHelpers) > 0 {
		c.append(algoHelpers)
		c.append([]string{""})
	}
	if len(algoClasses) > 0 {
		c.append(algoClasses)
		c.append([]string{""})
	}
	if len(blueprintSetup) > 0 {
		c.append(blueprintSetup)
		c.append([]string{""})
	}
	if len(algoFunctions) > 0 {
		c.append(algoFunctions)
		c.append([]string{""})
	}

	if main := filterOutFunctionCalls(algoMain, algoFunctions); len(main) > 0 {
		c.append(main)
	}

	if call := generateFunctionCall(algoFunctions, blueprintSetup); len(call) > 0 {
		c.append([]string{""})
		c.append(call)
	}

	return cleanOutput(strings.Join(c.finalLines, "\n"))
}

func (c *Combiner) append(lines []string) {
	c.finalLines = append(c.finalLines, lines...)
}

// ==================== SECTION EXTRACTION ====================

func extractImports(lines []string) []string {
	var imports []string
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, "const {") && strings.Contains(line, "require(") {
			imports = append(imports, line)
		}
	}
	return imports
}

// extractHelpers collects the double-underscore polyfill definitions,
// tracking brace depth so multi-line bodies stay intact.
func extractHelpers(lines []string) []string {
	return extractBlocks(lines, func(s string) bool {
		return strings.HasPrefix(s, "function __") || strings.HasPrefix(s, "const __")
	}, true)
}

func extractClasses(lines []string) []string {
	return extractBlocks(lines, func(s string) bool {
		return strings.HasPrefix(s, "class ")
	}, false)
}

func extractFunctions(lines []string) []string {
	return extractBlocks(lines, func(s string) bool {
		return strings.HasPrefix(s, "function ") && !strings.HasPrefix(s, "function __")
	}, false)
}

func extractBlocks(lines []string, starts func(string) bool, endOnSemi bool) []string {
	var out []string
	inBlock := false
	depth := 0

	for _, line := range lines {
		s := strings.TrimSpace(line)

		if starts(s) {
			inBlock = true
			depth = 0
		}
		if inBlock {
			out = append(out, line)
			depth += strings.Count(line, "{") - strings.Count(line, "}")
			if depth == 0 && (strings.HasSuffix(s, "}") || (endOnSemi && strings.HasSuffix(s, ";"))) {
				inBlock = false
			}
		}
	}
	return out
}

// extractSetup keeps everything from the blueprint except require lines
// and leading blanks.
func extractSetup(lines []string) []string {
	var setup []string
	skipLeading := true

	for _, line := range lines {
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, "const {") && strings.Contains(s, "require(") {
			continue
		}
		if s != "" || !skipLeading {
			setup = append(setup, line)
			skipLeading = false
		}
	}
	return setup
}

// extractMainCode keeps top-level statements: whatever is not a require
// line, helper, class or function body.
func extractMainCode(lines []string) []string {
	var main []string
	inBlock := false
	depth := 0

	for _, line := range lines {
		s := strings.TrimSpace(line)

		if strings.HasPrefix(s, "const {") && strings.Contains(s, "require(") {
			continue
		}
		if strings.HasPrefix(s, "function __") || strings.HasPrefix(s, "const __") ||
			strings.HasPrefix(s, "class ") ||
			(strings.HasPrefix(s, "function ") && !strings.HasPrefix(s, "function __")) {
			inBlock = true
			depth = 0
		}

		if inBlock {
			depth += strings.Count(line, "{") - strings.Count(line, "}")
			if depth == 0 && (strings.HasSuffix(s, "}") || strings.HasSuffix(s, ";")) {
				inBlock = false
			}
			continue
		}

		main = append(main, line)
	}
	return main
}

func mergeImports(blueprintImports, algoImports []string) []string {
	if len(blueprintImports) > 0 {
		return blueprintImports
	}
	return algoImports
}

var funcDeclRe = regexp.MustCompile(`^\s*function\s+(\w+)\s*\(`)
var funcSigRe = regexp.MustCompile(`^\s*function\s+(\w+)\s*\(([^)]*)\)`)

// filterOutFunctionCalls drops bare top-level calls to translated
// functions; the combiner synthesizes its own entry call instead.
func filterOutFunctionCalls(mainCode, functions []string) []string {
	funcNames := map[string]bool{}
	for _, line := range functions {
		if m := funcDeclRe.FindStringSubmatch(line); m != nil {
			funcNames[m[1]] = true
		}
	}

	var filtered []string
	for _, line := range mainCode {
		s := strings.TrimSpace(line)
		isCall := false
		for fname := range funcNames {
			re := regexp.MustCompile(`^` + regexp.QuoteMeta(fname) + `\s*\(.*\)\s*;?\s*$`)
			if re.MatchString(s) {
				isCall = true
				break
			}
		}
		if !isCall {
			filtered = append(filtered, line)
		}
	}
	return filtered
}

// generateFunctionCall synthesizes the entry call: the first translated
// function invoked with the blueprint's randomized variables, matched to
// parameters by name, substring, then type heuristic.
func generateFunctionCall(functions, setup []string) []string {
	funcName, params, ok := findMainFunction(functions)
	if !ok {
		return nil
	}

	initialized := extractInitializedVars(setup)
	args := matchParamsToVars(params, initialized)
	if len(args) == 0 {
		return nil
	}

	return []string{
		"// Call main algorithm",
		funcName + "(" + strings.Join(args, ", ") + ");",
		"",
		"// Log completion",
		"logger.println('Algorithm completed');",
		"Tracer.delay();",
	}
}

func findMainFunction(functions []string) (string, []string, bool) {
	for _, line := range functions {
		m := funcSigRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		if strings.HasPrefix(name, "__") {
			continue
		}
		var params []string
		if p := strings.TrimSpace(m[2]); p != "" {
			for _, part := range strings.Split(p, ",") {
				params = append(params, strings.TrimSpace(part))
			}
		}
		return name, params, true
	}
	return "", nil, false
}

type initializedVar struct {
	name string
	kind string
}

var (
	rand1DRe    = regexp.MustCompile(`^\s*const\s+(\w+)\s*=\s*Randomize\.Array1D`)
	rand2DRe    = regexp.MustCompile(`^\s*const\s+(\w+)\s*=\s*Randomize\.Array2D`)
	randGraphRe = regexp.MustCompile(`^\s*const\s+(\w+)\s*=\s*Randomize\.Graph`)
)

func extractInitializedVars(setup []string) []initializedVar {
	var vars []initializedVar
	for _, line := range setup {
		if m := rand1DRe.FindStringSubmatch(line); m != nil {
			vars = append(vars, initializedVar{m[1], "1d"})
			continue
		}
		if m := rand2DRe.FindStringSubmatch(line); m != nil {
			vars = append(vars, initializedVar{m[1], "2d"})
			continue
		}
		if m := randGraphRe.FindStringSubmatch(line); m != nil {
			vars = append(vars, initializedVar{m[1], "graph"})
		}
	}
	return vars
}

func matchParamsToVars(params []string, initialized []initializedVar) []string {
	if len(params) == 0 {
		return nil
	}

	var args []string
	used := map[string]bool{}

	take := func(name string) {
		args = append(args, name)
		used[name] = true
	}

	for _, param := range params {
		matched := false

		for _, v := range initialized {
			if v.name == param {
				take(v.name)
				matched = true
				break
			}
		}

		if !matched {
			pl := strings.ToLower(param)
			for _, v := range initialized {
				if used[v.name] {
					continue
				}
				vl := strings.ToLower(v.name)
				if strings.Contains(vl, pl) || strings.Contains(pl, vl) {
					take(v.name)
					matched = true
					break
				}
			}
		}

		if !matched {
			target := "1d"
			pl := strings.ToLower(param)
			switch {
			case strings.Contains(pl, "matrix"), strings.Contains(pl, "grid"), strings.Contains(pl, "board"):
				target = "2d"
			case strings.Contains(pl, "graph"):
				target = "graph"
			}
			for _, v := range initialized {
				if v.kind == target && !used[v.name] {
					take(v.name)
					matched = true
					break
				}
			}
		}

		if !matched {
			for _, v := range initialized {
				if !used[v.name] {
					take(v.name)
					break
				}
			}
		}
	}

	return args
}

// cleanOutput trims trailing whitespace and collapses runs of more than
// two blank lines.
func cleanOutput(code string) string {
	lines := strings.Split(code, "\n")
	var cleaned []string
	blanks := 0

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks <= 2 {
				cleaned = append(cleaned, line)
			}
		} else {
			blanks = 0
			cleaned = append(cleaned, line)
		}
	}

	for len(cleaned) > 0 && strings.TrimSpace(cleaned[len(cleaned)-1]) == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}

	return strings.Join(cleaned, "\n")
}

var funcCallSiteRe = regexp.MustCompile(`function \w+\(`)

// Validate runs structural sanity checks over combined output.
func Validate(code string) *models.ValidationReport {
	return &models.ValidationReport{
		HasImports:     strings.Contains(code, "require('algorithm-visualizer')"),
		HasLayout:      strings.Contains(code, "Layout.setRoot"),
		HasLogger:      strings.Contains(code, "logger") || strings.Contains(code, "LogTracer"),
		HasTracerDelay: strings.Contains(code, "Tracer.delay()"),
		HasFunctions:   funcCallSiteRe.MatchString(code),
		BalancedSyntax: balancedSyntax(code),
	}
}

func balancedSyntax(code string) bool {
	pairs := [][2]string{{"{", "}"}, {"(", ")"}, {"[", "]"}}
	for _, p := range pairs {
		if strings.Count(code, p[0]) != strings.Count(code, p[1]) {
			return false
		}
	}
	return true
}
