package translator

import (
	"strconv"
	"strings"

	"pyviz/internal/pysrc"
)

// Canonical index names emitted without normalization even outside an
// active loop, matching the names algorithm snippets conventionally use.
var canonicalIndexNames = map[string]bool{
	"i": true, "j": true, "k": true, "mid": true,
	"left": true, "right": true, "c": true, "r": true,
}

// jsExpr renders one expression. Unsupported node kinds degrade to an
// inline marker instead of failing the whole translation.
func (t *Translator) jsExpr(e pysrc.Expr) string {
	switch n := e.(type) {
	case *pysrc.IntLit:
		return strconv.FormatInt(n.Value, 10)
	case *pysrc.FloatLit:
		if n.Raw != "" {
			return n.Raw
		}
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *pysrc.StringLit:
		return jsString(n.Value)
	case *pysrc.BoolLit:
		if n.Value {
			return "true"
		}
		return "false"
	case *pysrc.NoneLit:
		return "null"
	case *pysrc.Name:
		return n.ID
	case *pysrc.Unary:
		return t.jsUnary(n)
	case *pysrc.Binary:
		return t.jsBinary(n)
	case *pysrc.BoolOp:
		return t.jsBoolOp(n)
	case *pysrc.Compare:
		return t.jsCompare(n)
	case *pysrc.Subscript:
		return t.jsSubscript(n)
	case *pysrc.Attribute:
		return t.jsExpr(n.Value) + "." + n.Attr
	case *pysrc.Call:
		return t.jsCall(n)
	case *pysrc.ListLit:
		return "[" + t.jsExprList(n.Elts) + "]"
	case *pysrc.TupleLit:
		return "[" + t.jsExprList(n.Elts) + "]"
	case *pysrc.SetLit:
		return "new Set([" + t.jsExprList(n.Elts) + "])"
	case *pysrc.DictLit:
		return t.jsDict(n)
	case *pysrc.ListComp:
		return t.jsComprehension(n.Generators, n.Elt, "/*listcomp*/")
	case *pysrc.GeneratorExp:
		return t.jsComprehension(n.Generators, n.Elt, "/*genexp*/")
	case *pysrc.BadExpr:
		return "/*" + n.Reason + "*/"
	default:
		if e == nil {
			return "/*expr*/"
		}
		return "/*" + e.Kind().String() + "*/"
	}
}

func (t *Translator) jsExprList(exprs []pysrc.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = t.jsExpr(e)
	}
	return strings.Join(parts, ", ")
}

func (t *Translator) jsUnary(n *pysrc.Unary) string {
	switch n.Op {
	case pysrc.OpNot:
		return "!(" + t.jsExpr(n.Operand) + ")"
	case pysrc.OpNeg:
		switch v := n.Operand.(type) {
		case *pysrc.IntLit:
			return "-" + strconv.FormatInt(v.Value, 10)
		case *pysrc.FloatLit:
			return "-" + t.jsExpr(v)
		}
		return "-(" + t.jsExpr(n.Operand) + ")"
	case pysrc.OpPos:
		return "+(" + t.jsExpr(n.Operand) + ")"
	default:
		return "/*unary*/(" + t.jsExpr(n.Operand) + ")"
	}
}

func (t *Translator) jsBinary(n *pysrc.Binary) string {
	// Repeat idiom: [x] * n fills a fresh array.
	if n.Op == pysrc.OpMul {
		if lst, ok := n.Left.(*pysrc.ListLit); ok && len(lst.Elts) == 1 {
			return "new Array(" + t.jsExpr(n.Right) + ").fill(" + t.jsExpr(lst.Elts[0]) + ")"
		}
		if lst, ok := n.Right.(*pysrc.ListLit); ok && len(lst.Elts) == 1 {
			return "new Array(" + t.jsExpr(n.Left) + ").fill(" + t.jsExpr(lst.Elts[0]) + ")"
		}
	}

	left := t.jsExpr(n.Left)
	right := t.jsExpr(n.Right)

	switch n.Op {
	case pysrc.OpAdd:
		return "(" + left + " + " + right + ")"
	case pysrc.OpSub:
		return "(" + left + " - " + right + ")"
	case pysrc.OpMul:
		return "(" + left + " * " + right + ")"
	case pysrc.OpDiv:
		return "(" + left + " / " + right + ")"
	case pysrc.OpMod:
		return "(" + left + " % " + right + ")"
	case pysrc.OpFloorDiv:
		return "Math.floor(" + left + " / " + right + ")"
	case pysrc.OpPow:
		return "Math.pow(" + left + ", " + right + ")"
	default:
		return "(" + left + " /*op*/ " + right + ")"
	}
}

func (t *Translator) jsBoolOp(n *pysrc.BoolOp) string {
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		parts[i] = t.jsExpr(v)
	}
	sep := " && "
	if n.Op == pysrc.OpOr {
		sep = " || "
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// jsCompare renders a chained comparison as a conjunction of pairwise
// comparisons.
func (t *Translator) jsCompare(n *pysrc.Compare) string {
	curLeft := t.jsExpr(n.Left)
	parts := make([]string, 0, len(n.Ops))

	for i, op := range n.Ops {
		right := t.jsExpr(n.Comparators[i])
		parts = append(parts, comparePair(op, curLeft, right))
		curLeft = right
	}

	return "(" + strings.Join(parts, " && ") + ")"
}

func comparePair(op pysrc.CompareOp, left, right string) string {
	switch op {
	case pysrc.CmpEq, pysrc.CmpIs:
		return "(" + left + " === " + right + ")"
	case pysrc.CmpNotEq, pysrc.CmpIsNot:
		return "(" + left + " !== " + right + ")"
	case pysrc.CmpLt:
		return "(" + left + " < " + right + ")"
	case pysrc.CmpLtE:
		return "(" + left + " <= " + right + ")"
	case pysrc.CmpGt:
		return "(" + left + " > " + right + ")"
	case pysrc.CmpGtE:
		return "(" + left + " >= " + right + ")"
	case pysrc.CmpIn:
		return "((" + right + " instanceof Set) ? " + right + ".has(" + left + ") : (" + left + " in " + right + "))"
	case pysrc.CmpNotIn:
		return "!(((" + right + " instanceof Set) ? " + right + ".has(" + left + ") : (" + left + " in " + right + ")))"
	default:
		return "(" + left + " /*cmp*/ " + right + ")"
	}
}

func (t *Translator) jsSubscript(n *pysrc.Subscript) string {
	base, idxs := subscriptChain(n)
	if base == "" {
		return "/*subscript*/"
	}

	if slc, ok := n.Index.(*pysrc.Slice); ok {
		return t.jsSlice(base, slc)
	}

	switch len(idxs) {
	case 1:
		return base + "[" + t.normIdx(base, idxs[0]) + "]"
	case 2:
		return base + "[" + t.normIdx(base, idxs[0]) + "][" + t.jsExpr(idxs[1]) + "]"
	default:
		return "/*multi_subscript*/"
	}
}

func (t *Translator) jsSlice(base string, slc *pysrc.Slice) string {
	lower := "0"
	if slc.Lower != nil {
		lower = t.jsExpr(slc.Lower)
	}
	upper := base + ".length"
	if slc.Upper != nil {
		upper = t.jsExpr(slc.Upper)
	}
	step := ""
	if slc.Step != nil {
		step = t.jsExpr(slc.Step)
	}

	switch step {
	case "", "1", "null":
		return base + ".slice(" + lower + ", " + upper + ")"
	case "-1":
		t.ctx.NeedHelper(helperReversed)
		return "__reversed(" + base + ".slice(" + lower + ", " + upper + "))"
	default:
		return "/*slice_step*/ " + base + ".slice(" + lower + ", " + upper + ")"
	}
}

// normIdx applies the tiered index policy: loop variables and canonical
// index names pass through untouched, literal negatives become length
// arithmetic, loop-derived offsets pass through, anything else goes via
// the runtime normalization helper.
func (t *Translator) normIdx(arrJS string, idx pysrc.Expr) string {
	if name, ok := idx.(*pysrc.Name); ok {
		if t.ctx.InLoop(name.ID) || canonicalIndexNames[name.ID] {
			return name.ID
		}
	}

	if un, ok := idx.(*pysrc.Unary); ok && un.Op == pysrc.OpNeg {
		if lit, ok := un.Operand.(*pysrc.IntLit); ok {
			return "(" + arrJS + ".length - " + strconv.FormatInt(lit.Value, 10) + ")"
		}
	}

	if lit, ok := idx.(*pysrc.IntLit); ok {
		if lit.Value < 0 {
			return "(" + arrJS + ".length + " + strconv.FormatInt(lit.Value, 10) + ")"
		}
		return strconv.FormatInt(lit.Value, 10)
	}

	if bin, ok := idx.(*pysrc.Binary); ok {
		if name, ok := bin.Left.(*pysrc.Name); ok && t.ctx.InLoop(name.ID) {
			return t.jsExpr(idx)
		}
	}

	t.ctx.NeedHelper(helperIdx)
	return "__idx(" + arrJS + ", " + t.jsExpr(idx) + ")"
}

// subscriptChain extracts the root name and the index expressions of a
// subscript chain, outermost index last. A chain not rooted at a plain
// name yields an empty base.
func subscriptChain(n *pysrc.Subscript) (string, []pysrc.Expr) {
	var idxs []pysrc.Expr
	var cur pysrc.Expr = n

	for {
		sub, ok := cur.(*pysrc.Subscript)
		if !ok {
			break
		}
		idxs = append([]pysrc.Expr{sub.Index}, idxs...)
		cur = sub.Value
		if len(idxs) > 10 {
			break
		}
	}

	if name, ok := cur.(*pysrc.Name); ok {
		return name.ID, idxs
	}
	return "", idxs
}

func (t *Translator) jsDict(n *pysrc.DictLit) string {
	pairs := make([]string, len(n.Keys))
	for i := range n.Keys {
		pairs[i] = "[" + t.jsExpr(n.Keys[i]) + ", " + t.jsExpr(n.Values[i]) + "]"
	}
	return "Object.fromEntries([" + strings.Join(pairs, ", ") + "])"
}

func (t *Translator) jsCall(n *pysrc.Call) string {
	// float('inf') and friends
	if fn, ok := n.Func.(*pysrc.Name); ok && fn.ID == "float" && len(n.Args) > 0 {
		if lit, ok := n.Args[0].(*pysrc.StringLit); ok {
			switch strings.ToLower(lit.Value) {
			case "inf", "infinity":
				return "Infinity"
			}
		}
	}

	if fn, ok := n.Func.(*pysrc.Name); ok && fn.ID == "len" && len(n.Args) > 0 {
		return t.jsExpr(n.Args[0]) + ".length"
	}

	// Namespaced heap calls
	if attr, ok := n.Func.(*pysrc.Attribute); ok {
		if mod, ok := attr.Value.(*pysrc.Name); ok && mod.ID == "heapq" {
			t.ctx.NeedHelper(helperHeap)
			switch attr.Attr {
			case "heappush":
				if len(n.Args) >= 2 {
					return "__heappush(" + t.jsExpr(n.Args[0]) + ", " + t.jsExpr(n.Args[1]) + ")"
				}
			case "heappop":
				if len(n.Args) >= 1 {
					return "__heappop(" + t.jsExpr(n.Args[0]) + ")"
				}
			}
		}
	}

	if fn, ok := n.Func.(*pysrc.Name); ok {
		if fn.ID == "TreeNode" {
			return "new TreeNode(" + t.jsExprList(n.Args) + ")"
		}
		if out, ok := t.jsBuiltin(fn.ID, n); ok {
			return out
		}
		return fn.ID + "(" + t.jsExprList(n.Args) + ")"
	}

	if attr, ok := n.Func.(*pysrc.Attribute); ok {
		obj := t.jsExpr(attr.Value)
		args := t.jsExprList(n.Args)
		switch attr.Attr {
		case "appendleft":
			return obj + ".unshift(" + args + ")"
		case "popleft":
			return obj + ".shift()"
		}
		return obj + "." + attr.Attr + "(" + args + ")"
	}

	return "/*call*/"
}

// jsBuiltin renders the fixed catalog of recognized builtins. Returns
// false for anything it does not cover.
func (t *Translator) jsBuiltin(fname string, n *pysrc.Call) (string, bool) {
	if len(n.Args) == 0 {
		return "", false
	}
	first := func() string { return t.jsExpr(n.Args[0]) }

	switch fname {
	case "list", "tuple":
		return "[..." + first() + "]", true
	case "set":
		return "new Set(" + first() + ")", true
	case "dict":
		if len(n.Keywords) > 0 {
			pairs := make([]string, len(n.Keywords))
			for i, kw := range n.Keywords {
				pairs[i] = "[" + jsString(kw.Name) + ", " + t.jsExpr(kw.Value) + "]"
			}
			return "Object.fromEntries([" + strings.Join(pairs, ", ") + "])", true
		}
		return "Object.fromEntries(" + first() + ")", true
	case "max":
		if len(n.Args) > 1 {
			return "Math.max(" + t.jsExprList(n.Args) + ")", true
		}
		return "Math.max(..." + first() + ")", true
	case "min":
		if len(n.Args) > 1 {
			return "Math.min(" + t.jsExprList(n.Args) + ")", true
		}
		return "Math.min(..." + first() + ")", true
	case "sum":
		t.ctx.NeedHelper(helperSum)
		return "__sum(" + first() + ")", true
	case "abs":
		return "Math.abs(" + first() + ")", true
	case "sorted":
		t.ctx.NeedHelper(helperSorted)
		return "__sorted(" + first() + ")", true
	case "reversed":
		t.ctx.NeedHelper(helperReversed)
		return "__reversed(" + first() + ")", true
	case "enumerate":
		return "Array.from(" + first() + ".entries())", true
	case "zip":
		t.ctx.NeedHelper(helperZip)
		return "__zip(" + t.jsExprList(n.Args) + ")", true
	case "defaultdict":
		t.ctx.NeedHelper(helperDefaultDict)
		return "__defaultdict(() => [])", true
	case "Counter":
		t.ctx.NeedHelper(helperCounter)
		return "__counter(" + first() + ")", true
	case "heappush":
		if len(n.Args) == 2 {
			t.ctx.NeedHelper(helperHeap)
			return "__heappush(" + first() + ", " + t.jsExpr(n.Args[1]) + ")", true
		}
	case "heappop":
		t.ctx.NeedHelper(helperHeap)
		return "__heappop(" + first() + ")", true
	}

	return "", false
}

// jsComprehension renders a single-generator comprehension as a
// filter/map chain; anything with more generators degrades to a marker.
func (t *Translator) jsComprehension(gens []pysrc.CompClause, elt pysrc.Expr, marker string) string {
	if len(gens) != 1 {
		return marker
	}
	g := gens[0]
	it := t.jsExpr(g.Iter)
	target := t.jsExpr(g.Target)
	body := t.jsExpr(elt)

	if len(g.Ifs) > 0 {
		conds := make([]string, len(g.Ifs))
		for i, c := range g.Ifs {
			conds[i] = t.jsExpr(c)
		}
		cond := strings.Join(conds, " && ")
		return it + ".filter((" + target + ") => (" + cond + ")).map((" + target + ") => " + body + ")"
	}

	return it + ".map((" + target + ") => " + body + ")"
}

// jsString renders a single-quoted string literal.
func jsString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString("\\'")
		case '\\':
			b.WriteString("\\\\")
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
