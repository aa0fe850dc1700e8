package pysrc

// AST node types for the supported Python subset. Every node carries its
// source line and a NodeKind tag so downstream passes can switch on the
// kind exhaustively and mark anything unhandled.

type Node interface {
	Line() int
	Kind() NodeKind
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type NodeKind int

const (
	KindModule NodeKind = iota
	KindFunctionDef
	KindClassDef
	KindAssign
	KindAugAssign
	KindExprStmt
	KindIf
	KindFor
	KindWhile
	KindReturn
	KindBreak
	KindContinue
	KindPass
	KindImport
	KindBadStmt
	KindName
	KindIntLit
	KindFloatLit
	KindStringLit
	KindBoolLit
	KindNoneLit
	KindListLit
	KindTupleLit
	KindSetLit
	KindDictLit
	KindSubscript
	KindSlice
	KindAttribute
	KindCall
	KindBinary
	KindUnary
	KindBoolOp
	KindCompare
	KindListComp
	KindGeneratorExp
	KindBadExpr
)

func (k NodeKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindFunctionDef:
		return "function_def"
	case KindClassDef:
		return "class_def"
	case KindAssign:
		return "assign"
	case KindAugAssign:
		return "aug_assign"
	case KindExprStmt:
		return "expr_stmt"
	case KindIf:
		return "if"
	case KindFor:
		return "for"
	case KindWhile:
		return "while"
	case KindReturn:
		return "return"
	case KindBreak:
		return "break"
	case KindContinue:
		return "continue"
	case KindPass:
		return "pass"
	case KindImport:
		return "import"
	case KindBadStmt:
		return "bad_stmt"
	case KindName:
		return "name"
	case KindIntLit:
		return "int"
	case KindFloatLit:
		return "float"
	case KindStringLit:
		return "string"
	case KindBoolLit:
		return "bool"
	case KindNoneLit:
		return "none"
	case KindListLit:
		return "list"
	case KindTupleLit:
		return "tuple"
	case KindSetLit:
		return "set"
	case KindDictLit:
		return "dict"
	case KindSubscript:
		return "subscript"
	case KindSlice:
		return "slice"
	case KindAttribute:
		return "attribute"
	case KindCall:
		return "call"
	case KindBinary:
		return "binary"
	case KindUnary:
		return "unary"
	case KindBoolOp:
		return "bool_op"
	case KindCompare:
		return "compare"
	case KindListComp:
		return "list_comp"
	case KindGeneratorExp:
		return "generator_exp"
	case KindBadExpr:
		return "bad_expr"
	default:
		return "unknown"
	}
}

// position is embedded by every node.
type position struct {
	line int
}

func (p position) Line() int { return p.line }

// ==================== STATEMENTS ====================

type Module struct {
	position
	Body []Stmt
}

func (*Module) Kind() NodeKind { return KindModule }
func (*Module) stmtNode()      {}

type FunctionDef struct {
	position
	Name   string
	Params []string
	Body   []Stmt
}

func (*FunctionDef) Kind() NodeKind { return KindFunctionDef }
func (*FunctionDef) stmtNode()      {}

type ClassDef struct {
	position
	Name string
	Body []Stmt
}

func (*ClassDef) Kind() NodeKind { return KindClassDef }
func (*ClassDef) stmtNode()      {}

type Assign struct {
	position
	Target Expr
	Value  Expr
}

func (*Assign) Kind() NodeKind { return KindAssign }
func (*Assign) stmtNode()      {}

type AugAssign struct {
	position
	Target Expr
	Op     BinaryOp
	Value  Expr
}

func (*AugAssign) Kind() NodeKind { return KindAugAssign }
func (*AugAssign) stmtNode()      {}

type ExprStmt struct {
	position
	Value Expr
}

func (*ExprStmt) Kind() NodeKind { return KindExprStmt }
func (*ExprStmt) stmtNode()      {}

type If struct {
	position
	Test Expr
	Body []Stmt
	Else []Stmt
}

func (*If) Kind() NodeKind { return KindIf }
func (*If) stmtNode()      {}

type For struct {
	position
	Target Expr
	Iter   Expr
	Body   []Stmt
}

func (*For) Kind() NodeKind { return KindFor }
func (*For) stmtNode()      {}

type While struct {
	position
	Test Expr
	Body []Stmt
}

func (*While) Kind() NodeKind { return KindWhile }
func (*While) stmtNode()      {}

type Return struct {
	position
	Value Expr // nil for bare return
}

func (*Return) Kind() NodeKind { return KindReturn }
func (*Return) stmtNode()      {}

type Break struct{ position }

func (*Break) Kind() NodeKind { return KindBreak }
func (*Break) stmtNode()      {}

type Continue struct{ position }

func (*Continue) Kind() NodeKind { return KindContinue }
func (*Continue) stmtNode()      {}

type Pass struct{ position }

func (*Pass) Kind() NodeKind { return KindPass }
func (*Pass) stmtNode()      {}

// Import covers both "import x" and "from x import a, b". The analyzer and
// translator both skip it; it is kept so typical inputs parse cleanly.
type Import struct {
	position
	Module string
	Names  []string
}

func (*Import) Kind() NodeKind { return KindImport }
func (*Import) stmtNode()      {}

type BadStmt struct {
	position
	Reason string
}

func (*BadStmt) Kind() NodeKind { return KindBadStmt }
func (*BadStmt) stmtNode()      {}

// ==================== EXPRESSIONS ====================

type Name struct {
	position
	ID string
}

func (*Name) Kind() NodeKind { return KindName }
func (*Name) exprNode()      {}

type IntLit struct {
	position
	Value int64
}

func (*IntLit) Kind() NodeKind { return KindIntLit }
func (*IntLit) exprNode()      {}

type FloatLit struct {
	position
	Value float64
	Raw   string
}

func (*FloatLit) Kind() NodeKind { return KindFloatLit }
func (*FloatLit) exprNode()      {}

type StringLit struct {
	position
	Value string
}

func (*StringLit) Kind() NodeKind { return KindStringLit }
func (*StringLit) exprNode()      {}

type BoolLit struct {
	position
	Value bool
}

func (*BoolLit) Kind() NodeKind { return KindBoolLit }
func (*BoolLit) exprNode()      {}

type NoneLit struct{ position }

func (*NoneLit) Kind() NodeKind { return KindNoneLit }
func (*NoneLit) exprNode()      {}

type ListLit struct {
	position
	Elts []Expr
}

func (*ListLit) Kind() NodeKind { return KindListLit }
func (*ListLit) exprNode()      {}

type TupleLit struct {
	position
	Elts []Expr
}

func (*TupleLit) Kind() NodeKind { return KindTupleLit }
func (*TupleLit) exprNode()      {}

type SetLit struct {
	position
	Elts []Expr
}

func (*SetLit) Kind() NodeKind { return KindSetLit }
func (*SetLit) exprNode()      {}

type DictLit struct {
	position
	Keys   []Expr
	Values []Expr
}

func (*DictLit) Kind() NodeKind { return KindDictLit }
func (*DictLit) exprNode()      {}

// Subscript is a single bracket access; chains nest through Value.
// Index may be a *Slice.
type Subscript struct {
	position
	Value Expr
	Index Expr
}

func (*Subscript) Kind() NodeKind { return KindSubscript }
func (*Subscript) exprNode()      {}

type Slice struct {
	position
	Lower Expr // nil = start
	Upper Expr // nil = end
	Step  Expr // nil = 1
}

func (*Slice) Kind() NodeKind { return KindSlice }
func (*Slice) exprNode()      {}

type Attribute struct {
	position
	Value Expr
	Attr  string
}

func (*Attribute) Kind() NodeKind { return KindAttribute }
func (*Attribute) exprNode()      {}

type KeywordArg struct {
	Name  string
	Value Expr
}

type Call struct {
	position
	Func     Expr
	Args     []Expr
	Keywords []KeywordArg
}

func (*Call) Kind() NodeKind { return KindCall }
func (*Call) exprNode()      {}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpFloorDiv:
		return "//"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	default:
		return "?"
	}
}

type Binary struct {
	position
	Left  Expr
	Op    BinaryOp
	Right Expr
}

func (*Binary) Kind() NodeKind { return KindBinary }
func (*Binary) exprNode()      {}

type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpPos
	OpNot
)

type Unary struct {
	position
	Op      UnaryOp
	Operand Expr
}

func (*Unary) Kind() NodeKind { return KindUnary }
func (*Unary) exprNode()      {}

type BoolOpKind int

const (
	OpAnd BoolOpKind = iota
	OpOr
)

type BoolOp struct {
	position
	Op     BoolOpKind
	Values []Expr
}

func (*BoolOp) Kind() NodeKind { return KindBoolOp }
func (*BoolOp) exprNode()      {}

type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNotEq
	CmpLt
	CmpLtE
	CmpGt
	CmpGtE
	CmpIs
	CmpIsNot
	CmpIn
	CmpNotIn
)

// Compare holds a full chain: a < b <= c has Ops [Lt, LtE] and
// Comparators [b, c].
type Compare struct {
	position
	Left        Expr
	Ops         []CompareOp
	Comparators []Expr
}

func (*Compare) Kind() NodeKind { return KindCompare }
func (*Compare) exprNode()      {}

// CompClause is one "for target in iter [if cond]*" generator clause.
type CompClause struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
}

type ListComp struct {
	position
	Elt        Expr
	Generators []CompClause
}

func (*ListComp) Kind() NodeKind { return KindListComp }
func (*ListComp) exprNode()      {}

type GeneratorExp struct {
	position
	Elt        Expr
	Generators []CompClause
}

func (*GeneratorExp) Kind() NodeKind { return KindGeneratorExp }
func (*GeneratorExp) exprNode()      {}

type BadExpr struct {
	position
	Reason string
}

func (*BadExpr) Kind() NodeKind { return KindBadExpr }
func (*BadExpr) exprNode()      {}

// Walk calls fn for node and every child expression/statement below it,
// in document order. It is the shared sub-tree scan used by the analyzer
// and the translator's pattern extraction.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Module:
		walkStmts(n.Body, fn)
	case *FunctionDef:
		walkStmts(n.Body, fn)
	case *ClassDef:
		walkStmts(n.Body, fn)
	case *Assign:
		Walk(n.Target, fn)
		Walk(n.Value, fn)
	case *AugAssign:
		Walk(n.Target, fn)
		Walk(n.Value, fn)
	case *ExprStmt:
		Walk(n.Value, fn)
	case *If:
		Walk(n.Test, fn)
		walkStmts(n.Body, fn)
		walkStmts(n.Else, fn)
	case *For:
		Walk(n.Target, fn)
		Walk(n.Iter, fn)
		walkStmts(n.Body, fn)
	case *While:
		Walk(n.Test, fn)
		walkStmts(n.Body, fn)
	case *Return:
		if n.Value != nil {
			Walk(n.Value, fn)
		}
	case *ListLit:
		walkExprs(n.Elts, fn)
	case *TupleLit:
		walkExprs(n.Elts, fn)
	case *SetLit:
		walkExprs(n.Elts, fn)
	case *DictLit:
		walkExprs(n.Keys, fn)
		walkExprs(n.Values, fn)
	case *Subscript:
		Walk(n.Value, fn)
		Walk(n.Index, fn)
	case *Slice:
		if n.Lower != nil {
			Walk(n.Lower, fn)
		}
		if n.Upper != nil {
			Walk(n.Upper, fn)
		}
		if n.Step != nil {
			Walk(n.Step, fn)
		}
	case *Attribute:
		Walk(n.Value, fn)
	case *Call:
		Walk(n.Func, fn)
		walkExprs(n.Args, fn)
		for _, kw := range n.Keywords {
			Walk(kw.Value, fn)
		}
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Unary:
		Walk(n.Operand, fn)
	case *BoolOp:
		walkExprs(n.Values, fn)
	case *Compare:
		Walk(n.Left, fn)
		walkExprs(n.Comparators, fn)
	case *ListComp:
		Walk(n.Elt, fn)
		walkClauses(n.Generators, fn)
	case *GeneratorExp:
		Walk(n.Elt, fn)
		walkClauses(n.Generators, fn)
	}
}

func walkStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		Walk(s, fn)
	}
}

func walkExprs(exprs []Expr, fn func(Node) bool) {
	for _, e := range exprs {
		Walk(e, fn)
	}
}

func walkClauses(clauses []CompClause, fn func(Node) bool) {
	for _, c := range clauses {
		Walk(c.Target, fn)
		Walk(c.Iter, fn)
		walkExprs(c.Ifs, fn)
	}
}
