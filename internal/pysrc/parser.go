package pysrc

import "strconv"

// Parser is a recursive-descent parser over the lexer's token stream.
// It accepts the restricted grammar used by array/matrix/graph algorithm
// snippets; anything outside it is a *SyntaxError.
type Parser struct {
	toks []Token
	pos  int
}

// Parse tokenizes and parses one source unit.
func Parse(src string) (*Module, error) {
	toks, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseModule()
}

func (p *Parser) cur() Token  { return p.toks[p.pos] }
func (p *Parser) peek() Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(tt TokenType) bool { return p.cur().Type == tt }

func (p *Parser) accept(tt TokenType) bool {
	if p.at(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	if p.at(tt) {
		return p.advance(), nil
	}
	return Token{}, &SyntaxError{Line: p.cur().Line, Msg: "expected " + what}
}

func (p *Parser) errf(msg string) error {
	return &SyntaxError{Line: p.cur().Line, Msg: msg}
}

func (p *Parser) parseModule() (*Module, error) {
	mod := &Module{position: position{line: 1}}
	for !p.at(TokenEOF) {
		if p.accept(TokenNewline) {
			continue
		}
		stmts, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		mod.Body = append(mod.Body, stmts...)
	}
	return mod, nil
}

// parseStatement returns a slice because a physical line may carry several
// simple statements separated by semicolons.
func (p *Parser) parseStatement() ([]Stmt, error) {
	switch p.cur().Type {
	case TokenDef:
		s, err := p.parseFunctionDef()
		return wrap(s, err)
	case TokenClass:
		s, err := p.parseClassDef()
		return wrap(s, err)
	case TokenIf:
		s, err := p.parseIf()
		return wrap(s, err)
	case TokenWhile:
		s, err := p.parseWhile()
		return wrap(s, err)
	case TokenFor:
		s, err := p.parseFor()
		return wrap(s, err)
	default:
		return p.parseSimpleLine()
	}
}

func wrap(s Stmt, err error) ([]Stmt, error) {
	if err != nil {
		return nil, err
	}
	return []Stmt{s}, nil
}

func (p *Parser) parseFunctionDef() (Stmt, error) {
	line := p.advance().Line // def
	name, err := p.expect(TokenIdent, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}
	var params []string
	for !p.at(TokenRParen) {
		id, err := p.expect(TokenIdent, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, id.Literal)
		// Default values and annotations are accepted and discarded.
		if p.accept(TokenColon) {
			if _, err := p.parseTest(); err != nil {
				return nil, err
			}
		}
		if p.accept(TokenAssign) {
			if _, err := p.parseTest(); err != nil {
				return nil, err
			}
		}
		if !p.accept(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}
	if p.accept(TokenArrow) {
		if _, err := p.parseTest(); err != nil {
			return nil, err
		}
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &FunctionDef{position: position{line: line}, Name: name.Literal, Params: params, Body: body}, nil
}

func (p *Parser) parseClassDef() (Stmt, error) {
	line := p.advance().Line // class
	name, err := p.expect(TokenIdent, "class name")
	if err != nil {
		return nil, err
	}
	if p.accept(TokenLParen) {
		for !p.at(TokenRParen) {
			if _, err := p.parseTest(); err != nil {
				return nil, err
			}
			if !p.accept(TokenComma) {
				break
			}
		}
		if _, err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &ClassDef{position: position{line: line}, Name: name.Literal, Body: body}, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	line := p.advance().Line // if or elif
	test, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	stmt := &If{position: position{line: line}, Test: test, Body: body}
	if p.at(TokenElif) {
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		stmt.Else = []Stmt{nested}
	} else if p.accept(TokenElse) {
		stmt.Else, err = p.parseSuite()
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	line := p.advance().Line
	test, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &While{position: position{line: line}, Test: test, Body: body}, nil
}

func (p *Parser) parseFor() (Stmt, error) {
	line := p.advance().Line
	target, err := p.parseTargetList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenIn, "'in'"); err != nil {
		return nil, err
	}
	iter, err := p.parseTestList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &For{position: position{line: line}, Target: target, Iter: iter, Body: body}, nil
}

// parseTargetList parses assignment/loop targets. Targets sit below the
// comparison level so a bare "in" is never swallowed.
func (p *Parser) parseTargetList() (Expr, error) {
	line := p.cur().Line
	first, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if !p.at(TokenComma) {
		return first, nil
	}
	elts := []Expr{first}
	for p.accept(TokenComma) {
		if p.at(TokenIn) || p.at(TokenAssign) {
			break // trailing comma
		}
		e, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	return &TupleLit{position: position{line: line}, Elts: elts}, nil
}

// parseSuite parses ":" NEWLINE INDENT stmts DEDENT, or an inline simple
// statement list after the colon.
func (p *Parser) parseSuite() ([]Stmt, error) {
	if _, err := p.expect(TokenColon, "':'"); err != nil {
		return nil, err
	}
	if !p.accept(TokenNewline) {
		return p.parseSimpleLine()
	}
	if _, err := p.expect(TokenIndent, "indented block"); err != nil {
		return nil, err
	}
	var body []Stmt
	for !p.at(TokenDedent) && !p.at(TokenEOF) {
		if p.accept(TokenNewline) {
			continue
		}
		stmts, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmts...)
	}
	p.accept(TokenDedent)
	if len(body) == 0 {
		return nil, p.errf("empty block")
	}
	return body, nil
}

func (p *Parser) parseSimpleLine() ([]Stmt, error) {
	var stmts []Stmt
	for {
		s, err := p.parseSimpleStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if !p.accept(TokenSemicolon) {
			break
		}
		if p.at(TokenNewline) || p.at(TokenEOF) {
			break
		}
	}
	p.accept(TokenNewline)
	return stmts, nil
}

func (p *Parser) parseSimpleStmt() (Stmt, error) {
	line := p.cur().Line
	switch p.cur().Type {
	case TokenReturn:
		p.advance()
		if p.at(TokenNewline) || p.at(TokenSemicolon) || p.at(TokenEOF) || p.at(TokenDedent) {
			return &Return{position: position{line: line}}, nil
		}
		v, err := p.parseTestList()
		if err != nil {
			return nil, err
		}
		return &Return{position: position{line: line}, Value: v}, nil
	case TokenBreak:
		p.advance()
		return &Break{position: position{line: line}}, nil
	case TokenContinue:
		p.advance()
		return &Continue{position: position{line: line}}, nil
	case TokenPass:
		p.advance()
		return &Pass{position: position{line: line}}, nil
	case TokenImport:
		return p.parseImport(line)
	case TokenFrom:
		return p.parseFromImport(line)
	default:
		return p.parseExprOrAssign(line)
	}
}

func (p *Parser) parseImport(line int) (Stmt, error) {
	p.advance() // import
	var names []string
	for {
		id, err := p.expect(TokenIdent, "module name")
		if err != nil {
			return nil, err
		}
		names = append(names, id.Literal)
		if !p.accept(TokenComma) {
			break
		}
	}
	return &Import{position: position{line: line}, Names: names}, nil
}

func (p *Parser) parseFromImport(line int) (Stmt, error) {
	p.advance() // from
	mod, err := p.expect(TokenIdent, "module name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenImport, "'import'"); err != nil {
		return nil, err
	}
	var names []string
	for {
		id, err := p.expect(TokenIdent, "imported name")
		if err != nil {
			return nil, err
		}
		names = append(names, id.Literal)
		if !p.accept(TokenComma) {
			break
		}
	}
	return &Import{position: position{line: line}, Module: mod.Literal, Names: names}, nil
}

func (p *Parser) parseExprOrAssign(line int) (Stmt, error) {
	target, err := p.parseTestList()
	if err != nil {
		return nil, err
	}

	if op, ok := augOp(p.cur().Type); ok {
		p.advance()
		value, err := p.parseTestList()
		if err != nil {
			return nil, err
		}
		return &AugAssign{position: position{line: line}, Target: target, Op: op, Value: value}, nil
	}

	if p.accept(TokenAssign) {
		value, err := p.parseTestList()
		if err != nil {
			return nil, err
		}
		if p.at(TokenAssign) {
			// Chained assignment is outside the subset; keep the stream
			// consistent and degrade to a placeholder statement.
			p.skipToLineEnd()
			return &BadStmt{position: position{line: line}, Reason: "chained assignment"}, nil
		}
		return &Assign{position: position{line: line}, Target: target, Value: value}, nil
	}

	return &ExprStmt{position: position{line: line}, Value: target}, nil
}

func (p *Parser) skipToLineEnd() {
	for !p.at(TokenNewline) && !p.at(TokenEOF) && !p.at(TokenDedent) {
		p.advance()
	}
}

func augOp(tt TokenType) (BinaryOp, bool) {
	switch tt {
	case TokenPlusAssign:
		return OpAdd, true
	case TokenMinusAssign:
		return OpSub, true
	case TokenStarAssign:
		return OpMul, true
	case TokenSlashAssign:
		return OpDiv, true
	case TokenDoubleSlashAssign:
		return OpFloorDiv, true
	case TokenPercentAssign:
		return OpMod, true
	default:
		return 0, false
	}
}

// ==================== EXPRESSIONS ====================

// parseTestList parses test ("," test)*; two or more become a tuple.
func (p *Parser) parseTestList() (Expr, error) {
	line := p.cur().Line
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if !p.at(TokenComma) {
		return first, nil
	}
	elts := []Expr{first}
	for p.accept(TokenComma) {
		if p.at(TokenNewline) || p.at(TokenEOF) || p.at(TokenAssign) || p.at(TokenDedent) {
			break
		}
		e, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	return &TupleLit{position: position{line: line}, Elts: elts}, nil
}

// parseTest is the top expression level; conditional expressions are
// consumed but surface as placeholders (no handler downstream).
func (p *Parser) parseTest() (Expr, error) {
	line := p.cur().Line
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.at(TokenIf) {
		p.advance()
		if _, err := p.parseOr(); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenElse, "'else' in conditional expression"); err != nil {
			return nil, err
		}
		if _, err := p.parseTest(); err != nil {
			return nil, err
		}
		return &BadExpr{position: position{line: line}, Reason: "conditional_expression"}, nil
	}
	return e, nil
}

func (p *Parser) parseOr() (Expr, error) {
	line := p.cur().Line
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if !p.at(TokenOr) {
		return first, nil
	}
	values := []Expr{first}
	for p.accept(TokenOr) {
		v, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return &BoolOp{position: position{line: line}, Op: OpOr, Values: values}, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	line := p.cur().Line
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if !p.at(TokenAnd) {
		return first, nil
	}
	values := []Expr{first}
	for p.accept(TokenAnd) {
		v, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return &BoolOp{position: position{line: line}, Op: OpAnd, Values: values}, nil
}

func (p *Parser) parseNot() (Expr, error) {
	if p.at(TokenNot) {
		line := p.advance().Line
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Unary{position: position{line: line}, Op: OpNot, Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Expr, error) {
	line := p.cur().Line
	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	var ops []CompareOp
	var comparators []Expr
	for {
		op, ok := p.compareOp()
		if !ok {
			break
		}
		right, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
	if len(ops) == 0 {
		return left, nil
	}
	return &Compare{position: position{line: line}, Left: left, Ops: ops, Comparators: comparators}, nil
}

// compareOp consumes one comparison operator if present, handling the
// two-token forms "not in" and "is not".
func (p *Parser) compareOp() (CompareOp, bool) {
	switch p.cur().Type {
	case TokenLt:
		p.advance()
		return CmpLt, true
	case TokenLe:
		p.advance()
		return CmpLtE, true
	case TokenGt:
		p.advance()
		return CmpGt, true
	case TokenGe:
		p.advance()
		return CmpGtE, true
	case TokenEq:
		p.advance()
		return CmpEq, true
	case TokenNe:
		p.advance()
		return CmpNotEq, true
	case TokenIn:
		p.advance()
		return CmpIn, true
	case TokenIs:
		p.advance()
		if p.accept(TokenNot) {
			return CmpIsNot, true
		}
		return CmpIs, true
	case TokenNot:
		if p.peek().Type == TokenIn {
			p.advance()
			p.advance()
			return CmpNotIn, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func (p *Parser) parseArith() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.at(TokenPlus) || p.at(TokenMinus) {
		t := p.advance()
		op := OpAdd
		if t.Type == TokenMinus {
			op = OpSub
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{position: position{line: t.Line}, Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.cur().Type {
		case TokenStar:
			op = OpMul
		case TokenSlash:
			op = OpDiv
		case TokenDoubleSlash:
			op = OpFloorDiv
		case TokenPercent:
			op = OpMod
		default:
			return left, nil
		}
		t := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &Binary{position: position{line: t.Line}, Left: left, Op: op, Right: right}
	}
}

func (p *Parser) parseFactor() (Expr, error) {
	switch p.cur().Type {
	case TokenMinus:
		line := p.advance().Line
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &Unary{position: position{line: line}, Op: OpNeg, Operand: operand}, nil
	case TokenPlus:
		line := p.advance().Line
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &Unary{position: position{line: line}, Op: OpPos, Operand: operand}, nil
	default:
		return p.parsePower()
	}
}

func (p *Parser) parsePower() (Expr, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.at(TokenDoubleStar) {
		t := p.advance()
		exp, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &Binary{position: position{line: t.Line}, Left: base, Op: OpPow, Right: exp}, nil
	}
	return base, nil
}

func (p *Parser) parsePostfix() (Expr, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case TokenLParen:
			e, err = p.parseCall(e)
			if err != nil {
				return nil, err
			}
		case TokenLBracket:
			e, err = p.parseSubscript(e)
			if err != nil {
				return nil, err
			}
		case TokenDot:
			line := p.advance().Line
			attr, err := p.expect(TokenIdent, "attribute name")
			if err != nil {
				return nil, err
			}
			e = &Attribute{position: position{line: line}, Value: e, Attr: attr.Literal}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parseCall(fn Expr) (Expr, error) {
	line := p.advance().Line // (
	call := &Call{position: position{line: line}, Func: fn}
	for !p.at(TokenRParen) {
		if p.at(TokenIdent) && p.peek().Type == TokenAssign {
			name := p.advance().Literal
			p.advance() // =
			v, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			call.Keywords = append(call.Keywords, KeywordArg{Name: name, Value: v})
		} else {
			a, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			// A lone generator argument: sum(x for x in arr)
			if p.at(TokenFor) && len(call.Args) == 0 && len(call.Keywords) == 0 {
				gens, err := p.parseCompClauses()
				if err != nil {
					return nil, err
				}
				a = &GeneratorExp{position: position{line: line}, Elt: a, Generators: gens}
			}
			call.Args = append(call.Args, a)
		}
		if !p.accept(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) parseSubscript(value Expr) (Expr, error) {
	line := p.advance().Line // [
	sub := &Subscript{position: position{line: line}, Value: value}

	var lower Expr
	var err error
	if !p.at(TokenColon) {
		lower, err = p.parseTest()
		if err != nil {
			return nil, err
		}
	}
	if p.accept(TokenColon) {
		slc := &Slice{position: position{line: line}, Lower: lower}
		if !p.at(TokenColon) && !p.at(TokenRBracket) {
			slc.Upper, err = p.parseTest()
			if err != nil {
				return nil, err
			}
		}
		if p.accept(TokenColon) && !p.at(TokenRBracket) {
			slc.Step, err = p.parseTest()
			if err != nil {
				return nil, err
			}
		}
		sub.Index = slc
	} else {
		sub.Index = lower
	}
	if _, err := p.expect(TokenRBracket, "]"); err != nil {
		return nil, err
	}
	return sub, nil
}

func (p *Parser) parseAtom() (Expr, error) {
	t := p.cur()
	switch t.Type {
	case TokenIdent:
		p.advance()
		return &Name{position: position{line: t.Line}, ID: t.Literal}, nil
	case TokenInt:
		p.advance()
		v, err := strconv.ParseInt(t.Literal, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Line: t.Line, Msg: "invalid integer literal"}
		}
		return &IntLit{position: position{line: t.Line}, Value: v}, nil
	case TokenFloat:
		p.advance()
		v, err := strconv.ParseFloat(t.Literal, 64)
		if err != nil {
			return nil, &SyntaxError{Line: t.Line, Msg: "invalid float literal"}
		}
		return &FloatLit{position: position{line: t.Line}, Value: v, Raw: t.Literal}, nil
	case TokenString:
		p.advance()
		return &StringLit{position: position{line: t.Line}, Value: t.Literal}, nil
	case TokenTrue:
		p.advance()
		return &BoolLit{position: position{line: t.Line}, Value: true}, nil
	case TokenFalse:
		p.advance()
		return &BoolLit{position: position{line: t.Line}, Value: false}, nil
	case TokenNone:
		p.advance()
		return &NoneLit{position: position{line: t.Line}}, nil
	case TokenLParen:
		return p.parseParenAtom()
	case TokenLBracket:
		return p.parseListAtom()
	case TokenLBrace:
		return p.parseBraceAtom()
	default:
		return nil, &SyntaxError{Line: t.Line, Msg: "unexpected token " + t.Literal}
	}
}

func (p *Parser) parseParenAtom() (Expr, error) {
	line := p.advance().Line // (
	if p.accept(TokenRParen) {
		return &TupleLit{position: position{line: line}}, nil
	}
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if p.at(TokenFor) {
		gens, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		return &GeneratorExp{position: position{line: line}, Elt: first, Generators: gens}, nil
	}
	if p.at(TokenComma) {
		elts := []Expr{first}
		for p.accept(TokenComma) {
			if p.at(TokenRParen) {
				break
			}
			e, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			elts = append(elts, e)
		}
		if _, err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		return &TupleLit{position: position{line: line}, Elts: elts}, nil
	}
	if _, err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}
	return first, nil
}

func (p *Parser) parseListAtom() (Expr, error) {
	line := p.advance().Line // [
	if p.accept(TokenRBracket) {
		return &ListLit{position: position{line: line}}, nil
	}
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if p.at(TokenFor) {
		gens, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRBracket, "]"); err != nil {
			return nil, err
		}
		return &ListComp{position: position{line: line}, Elt: first, Generators: gens}, nil
	}
	elts := []Expr{first}
	for p.accept(TokenComma) {
		if p.at(TokenRBracket) {
			break
		}
		e, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	if _, err := p.expect(TokenRBracket, "]"); err != nil {
		return nil, err
	}
	return &ListLit{position: position{line: line}, Elts: elts}, nil
}

func (p *Parser) parseBraceAtom() (Expr, error) {
	line := p.advance().Line // {
	if p.accept(TokenRBrace) {
		return &DictLit{position: position{line: line}}, nil
	}
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if p.accept(TokenColon) {
		d := &DictLit{position: position{line: line}}
		v, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		d.Keys = append(d.Keys, first)
		d.Values = append(d.Values, v)
		for p.accept(TokenComma) {
			if p.at(TokenRBrace) {
				break
			}
			k, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenColon, "':' in dict literal"); err != nil {
				return nil, err
			}
			v, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			d.Keys = append(d.Keys, k)
			d.Values = append(d.Values, v)
		}
		if _, err := p.expect(TokenRBrace, "}"); err != nil {
			return nil, err
		}
		return d, nil
	}
	s := &SetLit{position: position{line: line}, Elts: []Expr{first}}
	for p.accept(TokenComma) {
		if p.at(TokenRBrace) {
			break
		}
		e, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		s.Elts = append(s.Elts, e)
	}
	if _, err := p.expect(TokenRBrace, "}"); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseCompClauses() ([]CompClause, error) {
	var clauses []CompClause
	for p.accept(TokenFor) {
		target, err := p.parseTargetList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenIn, "'in'"); err != nil {
			return nil, err
		}
		iter, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		clause := CompClause{Target: target, Iter: iter}
		for p.accept(TokenIf) {
			cond, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			clause.Ifs = append(clause.Ifs, cond)
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}
