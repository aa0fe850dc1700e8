package pysrc

import "testing"

func mustParse(t *testing.T, src string) *Module {
	t.Helper()
	mod, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return mod
}

func TestParseFunctionStructure(t *testing.T) {
	src := `def bubble_sort(arr):
    n = len(arr)
    for i in range(n - 1):
        if arr[i] > arr[i + 1]:
            arr[i], arr[i + 1] = arr[i + 1], arr[i]
    return arr
`
	mod := mustParse(t, src)
	if len(mod.Body) != 1 {
		t.Fatalf("module body has %d statements, want 1", len(mod.Body))
	}

	fn, ok := mod.Body[0].(*FunctionDef)
	if !ok {
		t.Fatalf("statement is %T, want *FunctionDef", mod.Body[0])
	}
	if fn.Name != "bubble_sort" {
		t.Errorf("function name = %q, want bubble_sort", fn.Name)
	}
	if len(fn.Params) != 1 || fn.Params[0] != "arr" {
		t.Errorf("params = %v, want [arr]", fn.Params)
	}
	if len(fn.Body) != 3 {
		t.Fatalf("function body has %d statements, want 3", len(fn.Body))
	}

	loop, ok := fn.Body[1].(*For)
	if !ok {
		t.Fatalf("second statement is %T, want *For", fn.Body[1])
	}
	cond, ok := loop.Body[0].(*If)
	if !ok {
		t.Fatalf("loop body starts with %T, want *If", loop.Body[0])
	}

	swap, ok := cond.Body[0].(*Assign)
	if !ok {
		t.Fatalf("if body starts with %T, want *Assign", cond.Body[0])
	}
	if _, ok := swap.Target.(*TupleLit); !ok {
		t.Errorf("swap target is %T, want *TupleLit", swap.Target)
	}
}

func TestParseWhileWithElif(t *testing.T) {
	src := `def binary_search(arr, target):
    left = 0
    right = len(arr) - 1
    while left <= right:
        mid = (left + right) // 2
        if arr[mid] == target:
            return mid
        elif arr[mid] < target:
            left = mid + 1
        else:
            right = mid - 1
    return -1
`
	mod := mustParse(t, src)
	fn := mod.Body[0].(*FunctionDef)
	loop, ok := fn.Body[2].(*While)
	if !ok {
		t.Fatalf("third statement is %T, want *While", fn.Body[2])
	}
	cond, ok := loop.Body[1].(*If)
	if !ok {
		t.Fatalf("while body[1] is %T, want *If", loop.Body[1])
	}
	// elif nests as a single If in the else branch
	if len(cond.Else) != 1 {
		t.Fatalf("else branch has %d statements, want 1", len(cond.Else))
	}
	inner, ok := cond.Else[0].(*If)
	if !ok {
		t.Fatalf("else branch holds %T, want nested *If", cond.Else[0])
	}
	if len(inner.Else) != 1 {
		t.Errorf("nested else has %d statements, want 1", len(inner.Else))
	}
}

func TestParseComparisonChain(t *testing.T) {
	mod := mustParse(t, "ok = a < b <= c\n")
	assign := mod.Body[0].(*Assign)
	cmp, ok := assign.Value.(*Compare)
	if !ok {
		t.Fatalf("value is %T, want *Compare", assign.Value)
	}
	if len(cmp.Ops) != 2 || len(cmp.Comparators) != 2 {
		t.Fatalf("chain has %d ops and %d comparators, want 2 and 2", len(cmp.Ops), len(cmp.Comparators))
	}
	if cmp.Ops[0] != CmpLt || cmp.Ops[1] != CmpLtE {
		t.Errorf("ops = %v, want [Lt LtE]", cmp.Ops)
	}
}

func TestParseChainedAssignmentDegrades(t *testing.T) {
	mod := mustParse(t, "a = b = 1\nc = 2\n")
	if len(mod.Body) != 2 {
		t.Fatalf("module body has %d statements, want 2", len(mod.Body))
	}
	if mod.Body[0].Kind() != KindBadStmt {
		t.Errorf("first statement kind = %v, want bad_stmt", mod.Body[0].Kind())
	}
	// The parser must resynchronize and keep going.
	if _, ok := mod.Body[1].(*Assign); !ok {
		t.Errorf("second statement is %T, want *Assign", mod.Body[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing colon", "if x\n    y = 1\n"},
		{"unterminated call", "x = f(1\n"},
		{"empty block", "def f():\nx = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.src); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.src)
			}
		})
	}
}

func TestParseNegativeIndexAndSlice(t *testing.T) {
	mod := mustParse(t, "last = arr[-1]\nhead = arr[1:3]\n")

	first := mod.Body[0].(*Assign)
	sub := first.Value.(*Subscript)
	un, ok := sub.Index.(*Unary)
	if !ok || un.Op != OpNeg {
		t.Errorf("index is %T, want negation *Unary", sub.Index)
	}

	second := mod.Body[1].(*Assign)
	sub2 := second.Value.(*Subscript)
	if _, ok := sub2.Index.(*Slice); !ok {
		t.Errorf("index is %T, want *Slice", sub2.Index)
	}
}
