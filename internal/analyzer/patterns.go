package analyzer

import "strings"

// Keyword groups checked against lowercased function names. Checked in
// order; the first matching group wins, so a name hitting several groups
// records only the first flag.
var (
	sortingKeywords   = []string{"sort", "bubble", "merge", "quick"}
	searchingKeywords = []string{"search", "binary", "find"}
	traversalKeywords = []string{"dfs", "bfs", "traverse", "graph"}
	dpKeywords        = []string{"dp", "dynamic"}
	backtrackKeywords = []string{"backtrack"}
)

// applyNameFlags sets algorithm flags from a function name.
func (a *Analyzer) applyNameFlags(funcName string) {
	name := strings.ToLower(funcName)
	switch {
	case containsAny(name, sortingKeywords):
		a.flags.Sorting = true
	case containsAny(name, searchingKeywords):
		a.flags.Searching = true
	case containsAny(name, traversalKeywords):
		a.flags.GraphTraversal = true
	case containsAny(name, dpKeywords):
		a.flags.DynamicProg = true
	case containsAny(name, backtrackKeywords):
		a.flags.Backtracking = true
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// classifyByMethod infers a shape for a variable from a method invoked on
// it. Tree accessors also imply traversal.
func (a *Analyzer) classifyByMethod(varName, method string) {
	switch method {
	case "append", "pop":
		a.varsStack.add(varName)
		a.vars1D.add(varName)
	case "popleft", "appendleft":
		a.varsQueue.add(varName)
		a.vars1D.add(varName)
	case "left", "right", "parent", "val":
		a.varsTree.add(varName)
		a.flags.GraphTraversal = true
	case "add", "remove", "discard", "union", "intersection":
		a.varsSet.add(varName)
	case "keys", "values", "items", "get":
		a.varsDict.add(varName)
	}
}
