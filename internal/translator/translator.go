package translator

import (
	"sort"
	"strconv"
	"strings"

	"pyviz/internal/models"
	"pyviz/internal/pysrc"
)

// Translator emits instrumented JavaScript from a parsed tree, weaving
// tracer calls (select/deselect, patch/depatch, delay, logger) around
// comparisons, mutations and loop traversal of traceable variables.
type Translator struct {
	summary     *models.AnalysisSummary
	traceable1D map[string]bool
	traceable2D map[string]bool
	bindings    ParamBindings

	ctx   *TranslationContext
	lines []string
	ind   int
}

func New(summary *models.AnalysisSummary, bindings ParamBindings) *Translator {
	return &Translator{
		summary:     summary,
		traceable1D: toSet(summary.Vars1D),
		traceable2D: toSet(summary.Vars2D),
		bindings:    bindings,
		ctx:         NewTranslationContext(),
	}
}

// Translate renders a module, helper preamble first.
func Translate(mod *pysrc.Module, summary *models.AnalysisSummary) string {
	t := New(summary, CollectParamBindings(mod))
	return t.TranslateModule(mod)
}

// TranslateSource parses and translates one source unit.
func TranslateSource(src string, summary *models.AnalysisSummary) (string, error) {
	mod, err := pysrc.Parse(src)
	if err != nil {
		return "", err
	}
	return Translate(mod, summary), nil
}

func (t *Translator) TranslateModule(mod *pysrc.Module) string {
	for _, stmt := range mod.Body {
		t.visitStmt(stmt)
	}

	helpers := t.ctx.helperPreamble()
	if len(helpers) > 0 {
		all := append(helpers, "")
		all = append(all, t.lines...)
		return strings.Join(all, "\n")
	}
	return strings.Join(t.lines, "\n")
}

func (t *Translator) emit(s string) {
	t.lines = append(t.lines, strings.Repeat("  ", t.ind)+s)
}

func (t *Translator) declOrAssign(name, rhs string) {
	if t.ctx.IsDeclared(name) {
		t.emit(name + " = " + rhs + ";")
	} else {
		t.emit("let " + name + " = " + rhs + ";")
		t.ctx.Declare(name)
	}
}

// mappedTracerBase resolves a parameter name to the caller-visible name
// the tracer was bound to.
func (t *Translator) mappedTracerBase(base string) string {
	if fn := t.ctx.CurrentFunc(); fn != "" {
		return t.bindings.Resolve(fn, base)
	}
	return base
}

// ==================== STATEMENTS ====================

func (t *Translator) visitStmt(s pysrc.Stmt) {
	switch n := s.(type) {
	case *pysrc.FunctionDef:
		t.visitFunctionDef(n)
	case *pysrc.ClassDef:
		t.visitClassDef(n)
	case *pysrc.Assign:
		t.visitAssign(n)
	case *pysrc.AugAssign:
		t.visitAugAssign(n)
	case *pysrc.If:
		t.visitIf(n)
	case *pysrc.For:
		t.visitFor(n)
	case *pysrc.While:
		t.visitWhile(n)
	case *pysrc.ExprStmt:
		t.visitExprStmt(n)
	case *pysrc.Return:
		t.visitReturn(n)
	case *pysrc.Break:
		t.emit("break;")
	case *pysrc.Continue:
		t.emit("continue;")
	case *pysrc.Pass:
		t.emit("/* pass */")
	case *pysrc.Import:
		// Source-language imports have no target equivalent.
	case *pysrc.BadStmt:
		t.emit("/* " + n.Reason + " */")
	}
}

func (t *Translator) visitClassDef(n *pysrc.ClassDef) {
	if n.Name != "TreeNode" {
		t.emit("/* unsupported class " + n.Name + " */")
		return
	}
	t.emit("class TreeNode {")
	t.ind++
	t.emit("constructor(val = 0, left = null, right = null) {")
	t.ind++
	t.emit("this.val = val;")
	t.emit("this.left = left;")
	t.emit("this.right = right;")
	t.ind--
	t.emit("}")
	t.ind--
	t.emit("}")
}

func (t *Translator) visitFunctionDef(n *pysrc.FunctionDef) {
	params := strings.Join(n.Params, ", ")
	t.emit("function " + n.Name + "(" + params + ") {")
	t.ind++

	t.ctx.PushFunc(n.Name)
	t.ctx.PushScope(n.Params)

	t.emit("logger.println('→ " + n.Name + "(" + params + ")');")
	t.emit("Tracer.delay();")

	for _, stmt := range n.Body {
		t.visitStmt(stmt)
	}

	t.ctx.PopScope()
	t.ctx.PopFunc()

	t.ind--
	t.emit("}")
}

func (t *Translator) visitAssign(n *pysrc.Assign) {
	switch target := n.Target.(type) {
	case *pysrc.TupleLit:
		t.handleDestructuring(target.Elts, n.Value)
	case *pysrc.ListLit:
		t.handleDestructuring(target.Elts, n.Value)
	case *pysrc.Name:
		t.declOrAssign(target.ID, t.jsExpr(n.Value))
	case *pysrc.Subscript:
		t.handleSubscriptAssign(target, n.Value)
	}
}

// handleDestructuring emits tuple/list unpacking, recognizing the
// same-base index-swap idiom and instrumenting it.
func (t *Translator) handleDestructuring(targets []pysrc.Expr, value pysrc.Expr) {
	var names []string
	subscriptCount := 0
	for _, el := range targets {
		switch e := el.(type) {
		case *pysrc.Name:
			names = append(names, e.ID)
		case *pysrc.Subscript:
			subscriptCount++
		}
	}

	valueElts, valueIsSeq := sequenceElts(value)

	// Swap pattern: arr[i], arr[j] = arr[j], arr[i]
	if subscriptCount >= 2 && valueIsSeq && len(valueElts) == len(targets) {
		isSwap := true
		for _, rv := range valueElts {
			if _, ok := rv.(*pysrc.Subscript); !ok {
				isSwap = false
				break
			}
		}
		if isSwap {
			t.emitSwap(targets, valueElts)
			return
		}
	}

	if valueIsSeq && len(valueElts) == len(names) {
		for i, name := range names {
			t.declOrAssign(name, t.jsExpr(valueElts[i]))
		}
		return
	}

	tmp := t.ctx.Gensym()
	t.emit("const " + tmp + " = " + t.jsExpr(value) + ";")
	for i, name := range names {
		t.declOrAssign(name, tmp+"["+strconv.Itoa(i)+"]")
	}
}

func (t *Translator) emitSwap(targets, values []pysrc.Expr) {
	lefts := make([]string, len(targets))
	rights := make([]string, len(values))
	for i := range targets {
		lefts[i] = t.jsExpr(targets[i])
		rights[i] = t.jsExpr(values[i])
	}

	t.emit("[" + strings.Join(lefts, ", ") + "] = [" + strings.Join(rights, ", ") + "];")

	if len(lefts) != 2 {
		return
	}

	base1, idx1, ok1 := splitIndexExpr(lefts[0])
	base2, idx2, ok2 := splitIndexExpr(lefts[1])
	if !ok1 || !ok2 || base1 != base2 {
		return
	}

	tracerBase := t.mappedTracerBase(base1)
	if !t.traceable1D[tracerBase] {
		return
	}

	t.emit("logger.println('Swap elements at " + idx1 + " and " + idx2 + "');")
	t.emit(tracerBase + "Tracer.patch(" + idx1 + ", " + lefts[0] + ");")
	t.emit(tracerBase + "Tracer.patch(" + idx2 + ", " + lefts[1] + ");")
	t.emit("Tracer.delay();")
	t.emit(tracerBase + "Tracer.depatch(" + idx1 + ");")
	t.emit(tracerBase + "Tracer.depatch(" + idx2 + ");")
}

func (t *Translator) handleSubscriptAssign(target *pysrc.Subscript, value pysrc.Expr) {
	base, idxs := subscriptChain(target)
	if base == "" {
		return
	}
	rhs := t.jsExpr(value)

	switch len(idxs) {
	case 1:
		idx := t.jsExpr(idxs[0])

		if t.isDefaultMapping(base) {
			t.emit(base + "[" + idx + "].push(" + rhs + ");")
		} else {
			t.emit(base + "[" + idx + "] = " + rhs + ";")
		}

		tracerBase := t.mappedTracerBase(base)
		if t.traceable1D[tracerBase] {
			t.emit("logger.println('Update " + base + "[' + " + idx + " + '] = ' + " + rhs + ");")
			t.emit(tracerBase + "Tracer.patch(" + idx + ", " + rhs + ");")
			t.emit("Tracer.delay();")
			t.emit(tracerBase + "Tracer.depatch(" + idx + ");")
		}

	case 2:
		i := t.normIdx(base, idxs[0])
		j := t.jsExpr(idxs[1])
		t.emit(base + "[" + i + "][" + j + "] = " + rhs + ";")

		tracerBase := t.mappedTracerBase(base)
		if t.traceable2D[tracerBase] {
			t.emit("logger.println('Update " + base + "[' + " + i + " + '][' + " + j + " + '] = ' + " + rhs + ");")
			t.emit(tracerBase + "Tracer.patch(" + i + ", " + j + ", " + rhs + ");")
			t.emit("Tracer.delay();")
			t.emit(tracerBase + "Tracer.depatch(" + i + ", " + j + ");")
		}
	}
}

// isDefaultMapping checks the recorded provenance tags for a
// default-mapping initializer.
func (t *Translator) isDefaultMapping(base string) bool {
	for _, tag := range t.summary.VarSources[base] {
		if strings.Contains(tag, "defaultdict") {
			return true
		}
	}
	return false
}

func (t *Translator) visitAugAssign(n *pysrc.AugAssign) {
	var op string
	switch n.Op {
	case pysrc.OpAdd:
		op = "+"
	case pysrc.OpSub:
		op = "-"
	case pysrc.OpMul:
		op = "*"
	case pysrc.OpDiv:
		op = "/"
	case pysrc.OpMod:
		op = "%"
	default:
		t.emit("/* unsupported augassign */")
		return
	}
	target := t.jsExpr(n.Target)
	t.emit(target + " = (" + target + " " + op + " " + t.jsExpr(n.Value) + ");")
}

// ==================== CONDITIONALS ====================

type vizGroup struct {
	base    string
	indices []string
}

func (t *Translator) visitIf(n *pysrc.If) {
	cond := t.jsExpr(n.Test)
	selectInfo := t.extractComparisonIndices(n.Test)

	if len(selectInfo) > 0 {
		for _, g := range selectInfo {
			tracerBase := t.mappedTracerBase(g.base)
			if len(g.indices) == 2 && (t.traceable1D[tracerBase] || t.traceable2D[tracerBase]) {
				t.emit(tracerBase + "Tracer.select(" + g.indices[0] + ", " + g.indices[1] + ");")
			}
		}
		t.emit("Tracer.delay();")
	}

	t.emit("if (" + cond + ") {")
	t.ind++
	for _, stmt := range n.Body {
		t.visitStmt(stmt)
	}
	t.ind--

	if len(n.Else) > 0 {
		t.emit("} else {")
		t.ind++
		for _, stmt := range n.Else {
			t.visitStmt(stmt)
		}
		t.ind--
	}
	t.emit("}")

	for _, g := range selectInfo {
		tracerBase := t.mappedTracerBase(g.base)
		if len(g.indices) == 2 && (t.traceable1D[tracerBase] || t.traceable2D[tracerBase]) {
			t.emit(tracerBase + "Tracer.deselect(" + g.indices[0] + ", " + g.indices[1] + ");")
		}
	}
}

// extractComparisonIndices groups the subscripted accesses of a
// comparison test by base and keeps the first two distinct index
// expressions per base.
func (t *Translator) extractComparisonIndices(test pysrc.Expr) []vizGroup {
	if _, ok := test.(*pysrc.Compare); !ok {
		return nil
	}

	byBase := map[string][]string{}
	var order []string

	pysrc.Walk(test, func(node pysrc.Node) bool {
		sub, ok := node.(*pysrc.Subscript)
		if !ok {
			return true
		}
		base, idxs := subscriptChain(sub)
		if base == "" || len(idxs) == 0 {
			return true
		}
		if _, seen := byBase[base]; !seen {
			order = append(order, base)
		}
		switch len(idxs) {
		case 1:
			byBase[base] = append(byBase[base], t.jsExpr(idxs[0]))
		case 2:
			byBase[base] = append(byBase[base], t.jsExpr(idxs[0]), t.jsExpr(idxs[1]))
		}
		return true
	})

	var result []vizGroup
	for _, base := range order {
		unique := firstUnique(byBase[base], 2)
		if len(unique) >= 2 {
			result = append(result, vizGroup{base: base, indices: unique})
		}
	}
	return result
}

// ==================== LOOPS ====================

func (t *Translator) visitFor(n *pysrc.For) {
	_, targetIsName := n.Target.(*pysrc.Name)
	loopVar := t.jsExpr(n.Target)

	if call, ok := n.Iter.(*pysrc.Call); ok {
		if fn, ok := call.Func.(*pysrc.Name); ok && fn.ID == "range" {
			t.emitRangeLoop(n, call.Args, loopVar, targetIsName)
			return
		}
	}

	iterable := t.jsExpr(n.Iter)
	if targetIsName && !t.ctx.IsDeclared(loopVar) {
		t.emit("for (let " + loopVar + " of " + iterable + ") {")
		t.ctx.Declare(loopVar)
	} else {
		t.emit("for (" + loopVar + " of " + iterable + ") {")
	}

	t.ind++
	t.ctx.PushLoop(loopVar)
	for _, stmt := range n.Body {
		t.visitStmt(stmt)
	}
	t.ctx.PopLoop()
	t.ind--
	t.emit("}")
}

func (t *Translator) emitRangeLoop(n *pysrc.For, args []pysrc.Expr, loopVar string, targetIsName bool) {
	var init, test, step string
	fresh := targetIsName && !t.ctx.IsDeclared(loopVar)

	initFor := func(start string) string {
		if fresh {
			return "let " + loopVar + " = " + start
		}
		return loopVar + " = " + start
	}

	switch len(args) {
	case 1:
		init = initFor("0")
		test = loopVar + " < " + t.jsExpr(args[0])
		step = loopVar + "++"
	case 2:
		init = initFor(t.jsExpr(args[0]))
		test = loopVar + " < " + t.jsExpr(args[1])
		step = loopVar + "++"
	case 3:
		comp := "<"
		if isNegativeConst(args[2]) {
			comp = ">"
		}
		init = initFor(t.jsExpr(args[0]))
		test = loopVar + " " + comp + " " + t.jsExpr(args[1])
		step = loopVar + " += " + t.jsExpr(args[2])
	default:
		init = "let i = 0"
		test = "i < 0"
		step = "i++"
	}

	if fresh && strings.HasPrefix(init, "let ") {
		t.ctx.Declare(loopVar)
	}

	t.emit("for (" + init + "; " + test + "; " + step + ") {")
	t.ind++
	t.ctx.PushLoop(loopVar)

	// Highlight the loop index on the first traceable array the body
	// touches, in document order.
	primary := t.findPrimaryArrayInLoop(n.Body)
	tracerBase := ""
	if primary != "" {
		tracerBase = t.mappedTracerBase(primary)
		if t.traceable1D[tracerBase] {
			t.emit(tracerBase + "Tracer.select(" + loopVar + ");")
			t.emit("Tracer.delay();")
		}
	}

	for _, stmt := range n.Body {
		t.visitStmt(stmt)
	}

	if primary != "" && t.traceable1D[tracerBase] {
		t.emit(tracerBase + "Tracer.deselect(" + loopVar + ");")
	}

	t.ctx.PopLoop()
	t.ind--
	t.emit("}")
}

func (t *Translator) findPrimaryArrayInLoop(body []pysrc.Stmt) string {
	found := ""
	for _, stmt := range body {
		pysrc.Walk(stmt, func(node pysrc.Node) bool {
			if found != "" {
				return false
			}
			if sub, ok := node.(*pysrc.Subscript); ok {
				if base, _ := subscriptChain(sub); base != "" {
					if t.traceable1D[base] || t.traceable2D[base] {
						found = base
						return false
					}
				}
			}
			return true
		})
		if found != "" {
			break
		}
	}
	return found
}

func (t *Translator) visitWhile(n *pysrc.While) {
	cond := t.jsExpr(n.Test)
	vizInfo := t.extractWhileVizInfo(n.Test)

	t.emit("while (" + cond + ") {")
	t.ind++

	midVar := findMidVariable(n.Body)

	for _, g := range vizInfo {
		tracerBase := t.mappedTracerBase(g.base)
		if t.traceable1D[tracerBase] && len(g.indices) <= 2 {
			t.emit(tracerBase + "Tracer.select(" + strings.Join(g.indices, ", ") + ");")
			t.emit("Tracer.delay();")
		}
	}

	for _, stmt := range n.Body {
		t.visitStmt(stmt)

		// Binary-search midpoint highlight right after the assignment
		// that binds it.
		if midVar != "" && assignsName(stmt, midVar) {
			for _, base := range sortedKeys(t.traceable1D) {
				t.emit(base + "Tracer.select(" + midVar + ");")
				t.emit("Tracer.delay();")
				t.emit(base + "Tracer.deselect(" + midVar + ");")
			}
		}
	}

	for _, g := range vizInfo {
		tracerBase := t.mappedTracerBase(g.base)
		if t.traceable1D[tracerBase] && len(g.indices) <= 2 {
			t.emit(tracerBase + "Tracer.deselect(" + strings.Join(g.indices, ", ") + ");")
		}
	}

	t.ind--
	t.emit("}")
}

// extractWhileVizInfo groups single-index subscripts of the loop test by
// base. With no subscripts at all, a test comparing a traceable 1-D name
// against other bare names is treated as a two-pointer pattern: the
// traceable name becomes the base and the other names its indices.
func (t *Translator) extractWhileVizInfo(test pysrc.Expr) []vizGroup {
	byBase := map[string][]string{}
	var order []string
	nameSet := map[string]bool{}
	var nameOrder []string

	pysrc.Walk(test, func(node pysrc.Node) bool {
		switch e := node.(type) {
		case *pysrc.Subscript:
			base, idxs := subscriptChain(e)
			if base != "" && len(idxs) == 1 {
				if _, seen := byBase[base]; !seen {
					order = append(order, base)
				}
				byBase[base] = append(byBase[base], t.jsExpr(idxs[0]))
			}
		case *pysrc.Name:
			if !nameSet[e.ID] {
				nameSet[e.ID] = true
				nameOrder = append(nameOrder, e.ID)
			}
		}
		return true
	})

	var result []vizGroup
	for _, base := range order {
		unique := firstUnique(byBase[base], 2)
		if len(unique) >= 1 {
			result = append(result, vizGroup{base: base, indices: unique})
		}
	}

	if len(result) == 0 && len(nameOrder) >= 2 {
		for _, vname := range nameOrder {
			if !t.traceable1D[vname] {
				continue
			}
			var others []string
			for _, v := range nameOrder {
				if v != vname && !t.traceable1D[v] {
					others = append(others, v)
				}
			}
			if len(others) > 2 {
				others = others[:2]
			}
			if len(others) > 0 {
				result = append(result, vizGroup{base: vname, indices: others})
			}
			break
		}
	}

	return result
}

// findMidVariable spots the midpoint binding of a binary-search body.
func findMidVariable(body []pysrc.Stmt) string {
	for _, stmt := range body {
		if assign, ok := stmt.(*pysrc.Assign); ok {
			if name, ok := assign.Target.(*pysrc.Name); ok {
				switch name.ID {
				case "mid", "middle", "m":
					return name.ID
				}
			}
		}
	}
	return ""
}

func assignsName(stmt pysrc.Stmt, name string) bool {
	assign, ok := stmt.(*pysrc.Assign)
	if !ok {
		return false
	}
	target, ok := assign.Target.(*pysrc.Name)
	return ok && target.ID == name
}

// ==================== EXPRESSION STATEMENTS ====================

func (t *Translator) visitExprStmt(n *pysrc.ExprStmt) {
	if call, ok := n.Value.(*pysrc.Call); ok {
		if attr, ok := call.Func.(*pysrc.Attribute); ok && attr.Attr == "append" {
			t.emitAppend(attr, call)
			return
		}
		if fn, ok := call.Func.(*pysrc.Name); ok && fn.ID == "print" {
			msg := "''"
			if len(call.Args) > 0 {
				msg = t.jsExpr(call.Args[0])
			}
			t.emit("logger.println(" + msg + ");")
			return
		}
	}
	t.emit(t.jsExpr(n.Value) + ";")
}

func (t *Translator) emitAppend(attr *pysrc.Attribute, call *pysrc.Call) {
	base := t.jsExpr(attr.Value)
	arg := "undefined"
	if len(call.Args) > 0 {
		arg = t.jsExpr(call.Args[0])
	}
	t.emit(base + ".push(" + arg + ");")

	tracerBase := t.mappedTracerBase(base)
	if t.traceable1D[tracerBase] {
		t.emit("logger.println('Append " + arg + " to " + base + "');")
		t.emit(tracerBase + "Tracer.patch(" + base + ".length - 1, " + arg + ");")
		t.emit("Tracer.delay();")
		t.emit(tracerBase + "Tracer.depatch(" + base + ".length - 1);")
	}
}

func (t *Translator) visitReturn(n *pysrc.Return) {
	if n.Value == nil {
		t.emit("logger.println('← return');")
		t.emit("return;")
		return
	}
	v := t.jsExpr(n.Value)
	t.emit("logger.println('← return ' + JSON.stringify(" + v + "));")
	t.emit("return " + v + ";")
}

// ==================== SMALL HELPERS ====================

func sequenceElts(e pysrc.Expr) ([]pysrc.Expr, bool) {
	switch v := e.(type) {
	case *pysrc.TupleLit:
		return v.Elts, true
	case *pysrc.ListLit:
		return v.Elts, true
	}
	return nil, false
}

// splitIndexExpr splits a rendered "base[idx]" access.
func splitIndexExpr(expr string) (base, idx string, ok bool) {
	parts := strings.Split(expr, "[")
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], strings.TrimRight(parts[1], "]"), true
}

func firstUnique(values []string, limit int) []string {
	var unique []string
	seen := map[string]bool{}
	for _, v := range values {
		if !seen[v] {
			unique = append(unique, v)
			seen[v] = true
		}
		if len(unique) >= limit {
			break
		}
	}
	return unique
}

func isNegativeConst(e pysrc.Expr) bool {
	switch v := e.(type) {
	case *pysrc.IntLit:
		return v.Value < 0
	case *pysrc.FloatLit:
		return v.Value < 0
	case *pysrc.Unary:
		if v.Op != pysrc.OpNeg {
			return false
		}
		switch v.Operand.(type) {
		case *pysrc.IntLit, *pysrc.FloatLit:
			return true
		}
	}
	return false
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

