package analyzer

import (
	"sort"

	"pyviz/internal/models"
	"pyviz/internal/pysrc"
)

// Analyzer classifies variables into data-structure shapes and collects
// visualization hook points in a single traversal of the tree. State is
// internal; Summarize finalizes it into an immutable models.AnalysisSummary.
type Analyzer struct {
	vars1D          stringSet
	vars2D          stringSet
	varsGraph       stringSet
	varsTree        stringSet
	varsStack       stringSet
	varsQueue       stringSet
	varsHeap        stringSet
	varsSet         stringSet
	varsDict        stringSet
	varsDefaultDict stringSet
	varsCounter     stringSet

	varDepth    map[string]int
	varSources  map[string]stringSet
	methodCalls map[string]stringSet

	comparisonPoints []models.ComparisonPoint
	updatePoints     []models.UpdatePoint

	flags models.AlgorithmFlags

	loopDepth   int
	currentFunc string
}

// maxSubscriptDepth caps subscript chain walking as a cycle guard.
const maxSubscriptDepth = 10

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		vars1D:          stringSet{},
		vars2D:          stringSet{},
		varsGraph:       stringSet{},
		varsTree:        stringSet{},
		varsStack:       stringSet{},
		varsQueue:       stringSet{},
		varsHeap:        stringSet{},
		varsSet:         stringSet{},
		varsDict:        stringSet{},
		varsDefaultDict: stringSet{},
		varsCounter:     stringSet{},
		varDepth:        map[string]int{},
		varSources:      map[string]stringSet{},
		methodCalls:     map[string]stringSet{},
	}
}

// AnalyzeSource parses and analyzes one source unit. Parse failures come
// back as a summary carrying the error message and empty classification
// data, never as a Go error.
func AnalyzeSource(src string) *models.AnalysisSummary {
	mod, err := pysrc.Parse(src)
	if err != nil {
		return models.NewErrorSummary(err.Error())
	}
	a := NewAnalyzer()
	a.VisitModule(mod)
	return a.Summarize()
}

// VisitModule walks the whole tree once.
func (a *Analyzer) VisitModule(mod *pysrc.Module) {
	a.visitStmts(mod.Body)
}

func (a *Analyzer) visitStmts(stmts []pysrc.Stmt) {
	for _, s := range stmts {
		a.visitStmt(s)
	}
}

func (a *Analyzer) visitStmt(s pysrc.Stmt) {
	switch n := s.(type) {
	case *pysrc.FunctionDef:
		a.visitFunctionDef(n)
	case *pysrc.ClassDef:
		a.visitStmts(n.Body)
	case *pysrc.Assign:
		a.visitAssign(n)
	case *pysrc.AugAssign:
		a.visitExpr(n.Target)
		a.visitExpr(n.Value)
	case *pysrc.ExprStmt:
		a.visitExpr(n.Value)
	case *pysrc.If:
		a.visitExpr(n.Test)
		a.visitStmts(n.Body)
		a.visitStmts(n.Else)
	case *pysrc.For:
		a.visitFor(n)
	case *pysrc.While:
		a.loopDepth++
		a.visitExpr(n.Test)
		a.visitStmts(n.Body)
		a.loopDepth--
	case *pysrc.Return:
		if n.Value != nil {
			a.visitExpr(n.Value)
		}
	}
}

func (a *Analyzer) visitFunctionDef(fn *pysrc.FunctionDef) {
	prev := a.currentFunc
	a.currentFunc = fn.Name
	a.applyNameFlags(fn.Name)
	a.visitStmts(fn.Body)
	a.currentFunc = prev
}

func (a *Analyzer) visitAssign(n *pysrc.Assign) {
	switch target := n.Target.(type) {
	case *pysrc.TupleLit:
		a.markDestructured(target.Elts)
	case *pysrc.ListLit:
		a.markDestructured(target.Elts)
	case *pysrc.Name:
		a.classifyAssign(target.ID, n.Value)
	case *pysrc.Subscript:
		base, depth := subscriptInfo(target)
		if base != "" {
			a.updatePoints = append(a.updatePoints, models.UpdatePoint{
				Line:  target.Line(),
				Var:   base,
				Depth: depth,
			})
		}
	}
	a.visitExpr(n.Target)
	a.visitExpr(n.Value)
}

func (a *Analyzer) markDestructured(elts []pysrc.Expr) {
	for _, el := range elts {
		if name, ok := el.(*pysrc.Name); ok {
			a.addSource(name.ID, "destructured")
		}
	}
}

// classifyAssign infers a shape for name from the form of its initializer.
func (a *Analyzer) classifyAssign(name string, value pysrc.Expr) {
	switch v := value.(type) {
	case *pysrc.ListLit:
		if len(v.Elts) > 0 && allLists(v.Elts) {
			a.vars2D.add(name)
			a.varDepth[name] = 2
			a.addSource(name, "literal_2d")
		} else {
			a.vars1D.add(name)
			a.varDepth[name] = 1
			a.addSource(name, "literal_1d")
		}

	case *pysrc.Binary:
		// Repeat idiom: [0] * n
		if v.Op == pysrc.OpMul && (isListLit(v.Left) || isListLit(v.Right)) {
			a.vars1D.add(name)
			a.varDepth[name] = 1
			a.addSource(name, "list_mult")
		}

	case *pysrc.ListComp:
		if hasNestedGenerator(v.Generators) || len(v.Generators) >= 2 {
			a.vars2D.add(name)
			a.varDepth[name] = 2
			a.addSource(name, "list_comp_2d")
		} else {
			a.vars1D.add(name)
			a.varDepth[name] = 1
			a.addSource(name, "list_comp_1d")
		}

	case *pysrc.Call:
		a.classifyCallAssign(name, v)

	case *pysrc.Name:
		if a.vars1D.has(v.ID) {
			a.vars1D.add(name)
			a.addSource(name, "copy_of_"+v.ID)
		} else if a.vars2D.has(v.ID) {
			a.vars2D.add(name)
			a.addSource(name, "copy_of_"+v.ID)
		}
	}
}

func (a *Analyzer) classifyCallAssign(name string, call *pysrc.Call) {
	fn, ok := call.Func.(*pysrc.Name)
	if !ok {
		return
	}
	switch fn.ID {
	case "deque":
		a.varsQueue.add(name)
		a.vars1D.add(name)
		a.addSource(name, "deque_init")
	case "defaultdict":
		a.varsDefaultDict.add(name)
		a.varsDict.add(name)
		a.addSource(name, "defaultdict_init")
	case "Counter":
		a.varsCounter.add(name)
		a.varsDict.add(name)
		a.addSource(name, "counter_init")
	case "set":
		a.varsSet.add(name)
		a.addSource(name, "set_init")
	case "dict":
		a.varsDict.add(name)
		a.addSource(name, "dict_init")
	case "list":
		a.vars1D.add(name)
		a.addSource(name, "list_init")
	case "sorted", "reversed", "map", "filter":
		a.vars1D.add(name)
		a.addSource(name, fn.ID+"_result")
	}
}

func (a *Analyzer) visitFor(n *pysrc.For) {
	a.loopDepth++

	switch iter := n.Iter.(type) {
	case *pysrc.Call:
		if fn, ok := iter.Func.(*pysrc.Name); ok && fn.ID == "enumerate" {
			if len(iter.Args) > 0 {
				if arr, ok := iter.Args[0].(*pysrc.Name); ok {
					a.vars1D.add(arr.ID)
				}
			}
		}
	case *pysrc.Name:
		a.vars1D.add(iter.ID)
	case *pysrc.Subscript:
		// Iterating a subscript means nested structure traversal.
		if base, _ := subscriptInfo(iter); base != "" {
			a.vars2D.add(base)
			a.flags.GraphTraversal = true
		}
	}

	a.visitExpr(n.Iter)
	a.visitStmts(n.Body)
	a.loopDepth--
}

// visitExpr classifies expression nodes and recurses into children.
func (a *Analyzer) visitExpr(e pysrc.Expr) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *pysrc.Subscript:
		a.visitSubscript(n)
	case *pysrc.Compare:
		a.visitCompare(n)
	case *pysrc.Attribute:
		a.visitAttribute(n)
	case *pysrc.Call:
		a.visitCall(n)
	case *pysrc.Binary:
		a.visitExpr(n.Left)
		a.visitExpr(n.Right)
	case *pysrc.Unary:
		a.visitExpr(n.Operand)
	case *pysrc.BoolOp:
		for _, v := range n.Values {
			a.visitExpr(v)
		}
	case *pysrc.ListLit:
		a.visitExprs(n.Elts)
	case *pysrc.TupleLit:
		a.visitExprs(n.Elts)
	case *pysrc.SetLit:
		a.visitExprs(n.Elts)
	case *pysrc.DictLit:
		a.visitExprs(n.Keys)
		a.visitExprs(n.Values)
	case *pysrc.Slice:
		a.visitExpr(n.Lower)
		a.visitExpr(n.Upper)
		a.visitExpr(n.Step)
	case *pysrc.ListComp:
		a.visitExpr(n.Elt)
		a.visitClauses(n.Generators)
	case *pysrc.GeneratorExp:
		a.visitExpr(n.Elt)
		a.visitClauses(n.Generators)
	}
}

func (a *Analyzer) visitExprs(exprs []pysrc.Expr) {
	for _, e := range exprs {
		a.visitExpr(e)
	}
}

func (a *Analyzer) visitClauses(clauses []pysrc.CompClause) {
	for _, c := range clauses {
		a.visitExpr(c.Iter)
		a.visitExprs(c.Ifs)
	}
}

func (a *Analyzer) visitSubscript(n *pysrc.Subscript) {
	base, depth := subscriptInfo(n)
	if base != "" {
		if depth > a.varDepth[base] {
			a.varDepth[base] = depth
		}
		if depth == 1 {
			a.vars1D.add(base)
		} else if depth >= 2 {
			a.vars2D.add(base)
		}
	}
	a.visitExpr(n.Value)
	a.visitExpr(n.Index)
}

func (a *Analyzer) visitCompare(n *pysrc.Compare) {
	involved := stringSet{}
	collect := func(node pysrc.Node) bool {
		switch e := node.(type) {
		case *pysrc.Name:
			involved.add(e.ID)
		case *pysrc.Subscript:
			if base, _ := subscriptInfo(e); base != "" {
				involved.add(base)
			}
		}
		return true
	}
	pysrc.Walk(n, collect)

	if len(involved) > 0 {
		a.comparisonPoints = append(a.comparisonPoints, models.ComparisonPoint{
			Line: n.Line(),
			Vars: involved.sorted(),
		})
	}

	a.visitExpr(n.Left)
	for _, c := range n.Comparators {
		a.visitExpr(c)
	}
}

func (a *Analyzer) visitAttribute(n *pysrc.Attribute) {
	if base, ok := n.Value.(*pysrc.Name); ok {
		a.recordMethod(base.ID, n.Attr)
		a.classifyByMethod(base.ID, n.Attr)
	}
	a.visitExpr(n.Value)
}

func (a *Analyzer) visitCall(n *pysrc.Call) {
	switch fn := n.Func.(type) {
	case *pysrc.Name:
		switch fn.ID {
		case "sort", "sorted":
			a.flags.Sorting = true
		case "bisect", "bisect_left", "bisect_right":
			a.flags.Searching = true
		case "heappush", "heappop", "heapify":
			a.markHeapCall(n)
		}
	case *pysrc.Attribute:
		if mod, ok := fn.Value.(*pysrc.Name); ok && mod.ID == "heapq" {
			a.markHeapCall(n)
		}
	}

	a.visitExpr(n.Func)
	a.visitExprs(n.Args)
	for _, kw := range n.Keywords {
		a.visitExpr(kw.Value)
	}
}

func (a *Analyzer) markHeapCall(n *pysrc.Call) {
	a.flags.Heap = true
	if len(n.Args) > 0 {
		if arr, ok := n.Args[0].(*pysrc.Name); ok {
			a.varsHeap.add(arr.ID)
			a.vars1D.add(arr.ID)
		}
	}
}

// Summarize finalizes collected state. Two-dimensional classification
// dominates: a name in both sets stays 2-D only.
func (a *Analyzer) Summarize() *models.AnalysisSummary {
	for name := range a.vars2D {
		delete(a.vars1D, name)
	}

	s := &models.AnalysisSummary{
		Vars1D:           a.vars1D.sorted(),
		Vars2D:           a.vars2D.sorted(),
		GraphVars:        a.varsGraph.sorted(),
		TreeVars:         a.varsTree.sorted(),
		StackVars:        a.varsStack.sorted(),
		QueueVars:        a.varsQueue.sorted(),
		HeapVars:         a.varsHeap.sorted(),
		SetVars:          a.varsSet.sorted(),
		DictVars:         a.varsDict.sorted(),
		DefaultDictVars:  a.varsDefaultDict.sorted(),
		CounterVars:      a.varsCounter.sorted(),
		VarDepth:         a.varDepth,
		VarSources:       sortedSets(a.varSources),
		MethodCalls:      sortedSets(a.methodCalls),
		ComparisonPoints: a.comparisonPoints,
		UpdatePoints:     a.updatePoints,
		AlgorithmFlags:   a.flags,
	}
	if s.ComparisonPoints == nil {
		s.ComparisonPoints = []models.ComparisonPoint{}
	}
	if s.UpdatePoints == nil {
		s.UpdatePoints = []models.UpdatePoint{}
	}

	s.VizType = a.vizType()
	s.KeyVars = a.keyVars()
	return s
}

// vizType picks the primary category by fixed priority.
func (a *Analyzer) vizType() models.VizType {
	switch {
	case a.flags.GraphTraversal || len(a.varsGraph) > 0 || len(a.varsTree) > 0:
		return models.VizGraph
	case len(a.vars2D) > 0:
		return models.VizArray2D
	case a.flags.Sorting:
		return models.VizSorting
	case len(a.vars1D) > 0:
		return models.VizArray1D
	case len(a.varsStack) > 0 || len(a.varsQueue) > 0:
		return models.VizStackQueue
	default:
		return models.VizBasic
	}
}

// keyVars picks up to three variables worth tracing, 2-D first.
func (a *Analyzer) keyVars() []string {
	keys := []string{}

	if len(a.vars2D) > 0 {
		two := a.vars2D.sorted()
		if len(two) > 2 {
			two = two[:2]
		}
		keys = append(keys, two...)
	}

	if len(a.vars1D) > 0 && len(keys) < 3 {
		one := a.vars1D.sorted()
		remaining := 3 - len(keys)
		if len(one) > remaining {
			one = one[:remaining]
		}
		keys = append(keys, one...)
	}

	if (len(a.varsStack) > 0 || len(a.varsQueue) > 0) && len(keys) < 3 {
		sq := a.varsStack.union(a.varsQueue).sorted()
		remaining := 3 - len(keys)
		if len(sq) > remaining {
			sq = sq[:remaining]
		}
		keys = append(keys, sq...)
	}

	return keys
}

func (a *Analyzer) addSource(name, tag string) {
	if a.varSources[name] == nil {
		a.varSources[name] = stringSet{}
	}
	a.varSources[name].add(tag)
}

func (a *Analyzer) recordMethod(name, method string) {
	if a.methodCalls[name] == nil {
		a.methodCalls[name] = stringSet{}
	}
	a.methodCalls[name].add(method)
}

// subscriptInfo walks a subscript chain to its root name and returns the
// base name with the chain depth. Depth is capped as a cycle guard; a
// chain not rooted at a name yields an empty base.
func subscriptInfo(n *pysrc.Subscript) (string, int) {
	depth := 0
	var current pysrc.Expr = n
	for {
		sub, ok := current.(*pysrc.Subscript)
		if !ok {
			break
		}
		depth++
		current = sub.Value
		if depth > maxSubscriptDepth {
			break
		}
	}
	if name, ok := current.(*pysrc.Name); ok {
		return name.ID, depth
	}
	return "", depth
}

func allLists(elts []pysrc.Expr) bool {
	for _, e := range elts {
		if !isListLit(e) {
			return false
		}
	}
	return true
}

func isListLit(e pysrc.Expr) bool {
	_, ok := e.(*pysrc.ListLit)
	return ok
}

func hasNestedGenerator(gens []pysrc.CompClause) bool {
	for _, g := range gens {
		switch g.Iter.(type) {
		case *pysrc.ListComp, *pysrc.Subscript:
			return true
		}
	}
	return false
}

// ==================== SET HELPERS ====================

type stringSet map[string]bool

func (s stringSet) add(v string)      { s[v] = true }
func (s stringSet) has(v string) bool { return s[v] }

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s stringSet) union(other stringSet) stringSet {
	out := stringSet{}
	for v := range s {
		out.add(v)
	}
	for v := range other {
		out.add(v)
	}
	return out
}

func sortedSets(m map[string]stringSet) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = v.sorted()
	}
	return out
}
