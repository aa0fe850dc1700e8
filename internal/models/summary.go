package models

// VizType is the primary visualization category derived for a source unit.
type VizType string

const (
	VizGraph      VizType = "graph"
	VizArray2D    VizType = "array2d"
	VizSorting    VizType = "sorting"
	VizArray1D    VizType = "array1d"
	VizStackQueue VizType = "stack_queue"
	VizBasic      VizType = "basic"
)

// ComparisonPoint records a comparison site and the variables involved.
type ComparisonPoint struct {
	Line int      `json:"line"`
	Vars []string `json:"vars"`
}

// UpdatePoint records a subscript write site.
type UpdatePoint struct {
	Line  int    `json:"line"`
	Var   string `json:"var"`
	Depth int    `json:"depth"`
}

// AlgorithmFlags marks recognized algorithm patterns. Each flag is set by a
// recognized call or by a keyword in an enclosing function's name.
type AlgorithmFlags struct {
	Sorting        bool `json:"has_sorting"`
	Searching      bool `json:"has_searching"`
	GraphTraversal bool `json:"has_graph_traversal"`
	DynamicProg    bool `json:"has_dp"`
	Backtracking   bool `json:"has_backtracking"`
	Heap           bool `json:"has_heap"`
}

// AnalysisSummary is the immutable result of one analysis pass. Variable
// shape sets are kept sorted so repeated analysis of the same source yields
// identical summaries.
type AnalysisSummary struct {
	Error string `json:"error,omitempty"`

	Vars1D          []string `json:"vars_1d"`
	Vars2D          []string `json:"vars_2d"`
	GraphVars       []string `json:"graph_vars"`
	TreeVars        []string `json:"tree_vars"`
	StackVars       []string `json:"stack_vars"`
	QueueVars       []string `json:"queue_vars"`
	HeapVars        []string `json:"heap_vars"`
	SetVars         []string `json:"set_vars"`
	DictVars        []string `json:"dict_vars"`
	DefaultDictVars []string `json:"defaultdict_vars"`
	CounterVars     []string `json:"counter_vars"`

	VarDepth    map[string]int      `json:"var_depth"`
	VarSources  map[string][]string `json:"var_sources"`
	MethodCalls map[string][]string `json:"method_calls"`

	ComparisonPoints []ComparisonPoint `json:"comparison_points"`
	UpdatePoints     []UpdatePoint     `json:"update_points"`

	AlgorithmFlags

	VizType VizType  `json:"viz_type"`
	KeyVars []string `json:"key_vars"`
}

// NewErrorSummary builds the summary returned when the source fails to
// parse: the error message plus empty classification data.
func NewErrorSummary(msg string) *AnalysisSummary {
	s := emptySummary()
	s.Error = msg
	return s
}

func emptySummary() *AnalysisSummary {
	return &AnalysisSummary{
		Vars1D:           []string{},
		Vars2D:           []string{},
		GraphVars:        []string{},
		TreeVars:         []string{},
		StackVars:        []string{},
		QueueVars:        []string{},
		HeapVars:         []string{},
		SetVars:          []string{},
		DictVars:         []string{},
		DefaultDictVars:  []string{},
		CounterVars:      []string{},
		VarDepth:         map[string]int{},
		VarSources:       map[string][]string{},
		MethodCalls:      map[string][]string{},
		ComparisonPoints: []ComparisonPoint{},
		UpdatePoints:     []UpdatePoint{},
		VizType:          VizBasic,
		KeyVars:          []string{},
	}
}

// Traceable1D reports whether name may receive 1-D instrumentation calls.
func (s *AnalysisSummary) Traceable1D(name string) bool {
	return contains(s.Vars1D, name)
}

// Traceable2D reports whether name may receive 2-D instrumentation calls.
func (s *AnalysisSummary) Traceable2D(name string) bool {
	return contains(s.Vars2D, name)
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

// TranslationResult bundles every artifact produced for one source unit.
type TranslationResult struct {
	Summary   *AnalysisSummary  `json:"summary"`
	Algorithm string            `json:"algorithm_js"`
	Blueprint string            `json:"blueprint_js,omitempty"`
	Combined  string            `json:"combined_js,omitempty"`
	Checks    *ValidationReport `json:"checks,omitempty"`
}

// ValidationReport is a structural sanity check over combined output.
type ValidationReport struct {
	HasImports     bool `json:"has_imports"`
	HasLayout      bool `json:"has_layout"`
	HasLogger      bool `json:"has_logger"`
	HasTracerDelay bool `json:"has_tracer_delay"`
	HasFunctions   bool `json:"has_functions"`
	BalancedSyntax bool `json:"no_syntax_errors"`
}

// OK reports whether every structural check passed.
func (v *ValidationReport) OK() bool {
	return v.HasImports && v.HasLayout && v.HasLogger &&
		v.HasTracerDelay && v.HasFunctions && v.BalancedSyntax
}
