package analyzer

import (
	"reflect"
	"testing"

	"pyviz/internal/models"
)

func TestAnalyzeBubbleSort(t *testing.T) {
	src := `def bubble_sort(arr):
    n = len(arr)
    for i in range(n - 1):
        for j in range(n - 1 - i):
            if arr[j] > arr[j + 1]:
                arr[j], arr[j + 1] = arr[j + 1], arr[j]
    return arr
`
	s := AnalyzeSource(src)
	if s.Error != "" {
		t.Fatalf("unexpected error: %s", s.Error)
	}
	if !reflect.DeepEqual(s.Vars1D, []string{"arr"}) {
		t.Errorf("Vars1D = %v, want [arr]", s.Vars1D)
	}
	if !s.Sorting {
		t.Error("Sorting flag not set for bubble_sort")
	}
	if s.VizType != models.VizSorting {
		t.Errorf("VizType = %v, want sorting", s.VizType)
	}
	if len(s.ComparisonPoints) == 0 {
		t.Error("no comparison points recorded")
	}
	if !reflect.DeepEqual(s.KeyVars, []string{"arr"}) {
		t.Errorf("KeyVars = %v, want [arr]", s.KeyVars)
	}
}

func TestAnalyzeBinarySearchFlags(t *testing.T) {
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
	s := AnalyzeSource(src)
	if !s.Searching {
		t.Error("Searching flag not set for binary_search")
	}
	if s.Sorting {
		t.Error("Sorting flag set for binary_search")
	}
	if s.VizType != models.VizArray1D {
		t.Errorf("VizType = %v, want array1d", s.VizType)
	}
}

func TestAnalyze2DDominates1D(t *testing.T) {
	src := `matrix = [[1, 2], [3, 4]]
matrix[0][0] = 5
x = matrix[1]
`
	s := AnalyzeSource(src)
	if !reflect.DeepEqual(s.Vars2D, []string{"matrix"}) {
		t.Errorf("Vars2D = %v, want [matrix]", s.Vars2D)
	}
	for _, v := range s.Vars1D {
		if v == "matrix" {
			t.Error("matrix classified 1-D despite 2-D evidence")
		}
	}
	if s.VizType != models.VizArray2D {
		t.Errorf("VizType = %v, want array2d", s.VizType)
	}
	if len(s.UpdatePoints) != 1 || s.UpdatePoints[0].Var != "matrix" || s.UpdatePoints[0].Depth != 2 {
		t.Errorf("UpdatePoints = %+v, want one depth-2 point on matrix", s.UpdatePoints)
	}
}

func TestAnalyzeCallInitializers(t *testing.T) {
	src := `from collections import deque, defaultdict, Counter

q = deque()
seen = set()
g = defaultdict(list)
counts = Counter(words)
items = list(pairs)
ordered = sorted(values)
`
	s := AnalyzeSource(src)

	if !reflect.DeepEqual(s.QueueVars, []string{"q"}) {
		t.Errorf("QueueVars = %v, want [q]", s.QueueVars)
	}
	if !reflect.DeepEqual(s.SetVars, []string{"seen"}) {
		t.Errorf("SetVars = %v, want [seen]", s.SetVars)
	}
	if !reflect.DeepEqual(s.DefaultDictVars, []string{"g"}) {
		t.Errorf("DefaultDictVars = %v, want [g]", s.DefaultDictVars)
	}
	if !reflect.DeepEqual(s.CounterVars, []string{"counts"}) {
		t.Errorf("CounterVars = %v, want [counts]", s.CounterVars)
	}

	wantDicts := []string{"counts", "g"}
	if !reflect.DeepEqual(s.DictVars, wantDicts) {
		t.Errorf("DictVars = %v, want %v", s.DictVars, wantDicts)
	}

	tags := s.VarSources["g"]
	found := false
	for _, tag := range tags {
		if tag == "defaultdict_init" {
			found = true
		}
	}
	if !found {
		t.Errorf("VarSources[g] = %v, missing defaultdict_init", tags)
	}
}

func TestAnalyzeMethodClassification(t *testing.T) {
	src := `def process(items):
    stack = []
    for item in items:
        stack.append(item)
    while stack:
        stack.pop()
`
	s := AnalyzeSource(src)
	if !reflect.DeepEqual(s.StackVars, []string{"stack"}) {
		t.Errorf("StackVars = %v, want [stack]", s.StackVars)
	}
}

func TestAnalyzeHeapCalls(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bare call", "heappush(h, 3)\n"},
		{"qualified call", "import heapq\nheapq.heappush(h, 3)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := AnalyzeSource(tt.src)
			if !s.Heap {
				t.Error("Heap flag not set")
			}
			if !reflect.DeepEqual(s.HeapVars, []string{"h"}) {
				t.Errorf("HeapVars = %v, want [h]", s.HeapVars)
			}
		})
	}
}

func TestAnalyzeGraphTraversal(t *testing.T) {
	src := `def dfs(graph, node):
    for neighbor in graph[node]:
        dfs(graph, neighbor)
`
	s := AnalyzeSource(src)
	if !s.GraphTraversal {
		t.Error("GraphTraversal flag not set")
	}
	if s.VizType != models.VizGraph {
		t.Errorf("VizType = %v, want graph", s.VizType)
	}
}

func TestAnalyzeKeyVarsCapped(t *testing.T) {
	src := `a = [1]
b = [2]
c = [3]
d = [4]
`
	s := AnalyzeSource(src)
	if len(s.KeyVars) != 3 {
		t.Errorf("KeyVars = %v, want exactly 3 entries", s.KeyVars)
	}
}

func TestAnalyzeSyntaxError(t *testing.T) {
	s := AnalyzeSource("def f(:\n")
	if s.Error == "" {
		t.Fatal("expected error summary for invalid input")
	}
	if len(s.Vars1D) != 0 || len(s.Vars2D) != 0 {
		t.Error("error summary must carry empty classification sets")
	}
	if s.VizType != models.VizBasic {
		t.Errorf("VizType = %v, want basic", s.VizType)
	}
}

func TestNameFlagsFirstMatchWins(t *testing.T) {
	// "merge_search" hits the sorting keyword list before the searching one.
	a := NewAnalyzer()
	a.applyNameFlags("merge_search")
	if !a.flags.Sorting {
		t.Error("Sorting flag not set")
	}
	if a.flags.Searching {
		t.Error("Searching flag set; first keyword match must win")
	}
}
