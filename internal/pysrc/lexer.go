package pysrc

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType enumerates the tokens of the supported Python subset.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNewline
	TokenIndent
	TokenDedent
	TokenIdent
	TokenInt
	TokenFloat
	TokenString

	// Keywords
	TokenDef
	TokenClass
	TokenReturn
	TokenIf
	TokenElif
	TokenElse
	TokenFor
	TokenWhile
	TokenIn
	TokenAnd
	TokenOr
	TokenNot
	TokenIs
	TokenBreak
	TokenContinue
	TokenPass
	TokenNone
	TokenTrue
	TokenFalse
	TokenImport
	TokenFrom

	// Operators and delimiters
	TokenPlus
	TokenMinus
	TokenStar
	TokenDoubleStar
	TokenSlash
	TokenDoubleSlash
	TokenPercent
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenDoubleSlashAssign
	TokenPercentAssign
	TokenEq
	TokenNe
	TokenLt
	TokenLe
	TokenGt
	TokenGe
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenDot
	TokenSemicolon
	TokenArrow
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

var keywords = map[string]TokenType{
	"def":      TokenDef,
	"class":    TokenClass,
	"return":   TokenReturn,
	"if":       TokenIf,
	"elif":     TokenElif,
	"else":     TokenElse,
	"for":      TokenFor,
	"while":    TokenWhile,
	"in":       TokenIn,
	"and":      TokenAnd,
	"or":       TokenOr,
	"not":      TokenNot,
	"is":       TokenIs,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"pass":     TokenPass,
	"None":     TokenNone,
	"True":     TokenTrue,
	"False":    TokenFalse,
	"import":   TokenImport,
	"from":     TokenFrom,
}

// SyntaxError is the typed hard failure reported when the input does not
// conform to the supported grammar. Callers render it as an error result
// with empty classification fields.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
}

// Lexer produces a token stream with INDENT/DEDENT tokens synthesized from
// leading whitespace, Python style. Brackets suppress line structure.
type Lexer struct {
	src          []rune
	pos          int
	line         int
	indentStack  []int
	bracketDepth int
	atLineStart  bool
	pending      []Token
	err          *SyntaxError
}

func NewLexer(src string) *Lexer {
	// Normalize line endings; tabs count as 4 spaces for indentation.
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return &Lexer{
		src:         []rune(src),
		line:        1,
		indentStack: []int{0},
		atLineStart: true,
	}
}

// Tokenize scans the whole input. It stops at the first lexical error.
// A synthetic NEWLINE is inserted before trailing DEDENT/EOF when the
// source does not end with one, so the parser always sees terminated
// statements.
func (l *Lexer) Tokenize() ([]Token, error) {
	var toks []Token
	for {
		t := l.next()
		if l.err != nil {
			return nil, l.err
		}
		if t.Type == TokenDedent || t.Type == TokenEOF {
			if n := len(toks); n > 0 {
				switch toks[n-1].Type {
				case TokenNewline, TokenIndent, TokenDedent:
				default:
					toks = append(toks, Token{Type: TokenNewline, Line: toks[n-1].Line})
				}
			}
		}
		toks = append(toks, t)
		if t.Type == TokenEOF {
			return toks, nil
		}
	}
}

func (l *Lexer) next() Token {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t
	}

	if l.atLineStart && l.bracketDepth == 0 {
		if t, ok := l.handleLineStart(); ok {
			return t
		}
	}

	l.skipSpacesAndComments()

	if l.pos >= len(l.src) {
		return l.finish()
	}

	ch := l.src[l.pos]

	if ch == '\n' {
		l.pos++
		l.line++
		l.atLineStart = true
		if l.bracketDepth > 0 {
			return l.next() // implicit line joining inside brackets
		}
		return Token{Type: TokenNewline, Line: l.line - 1}
	}

	if ch == '\\' && l.peekAt(1) == '\n' {
		// Explicit line continuation.
		l.pos += 2
		l.line++
		return l.next()
	}

	if unicode.IsLetter(ch) || ch == '_' {
		return l.lexIdent()
	}
	if unicode.IsDigit(ch) {
		return l.lexNumber()
	}
	if ch == '\'' || ch == '"' {
		return l.lexString(ch)
	}

	return l.lexOperator()
}

// handleLineStart measures indentation and emits INDENT/DEDENT tokens.
func (l *Lexer) handleLineStart() (Token, bool) {
	for {
		col := 0
		start := l.pos
		for l.pos < len(l.src) {
			switch l.src[l.pos] {
			case ' ':
				col++
			case '\t':
				col += 4
			default:
				goto measured
			}
			l.pos++
		}
	measured:
		// Blank or comment-only lines contribute no structure.
		if l.pos >= len(l.src) {
			l.pos = start // finish() handles trailing dedents
			l.atLineStart = false
			return Token{}, false
		}
		if l.src[l.pos] == '\n' {
			l.pos++
			l.line++
			continue
		}
		if l.src[l.pos] == '#' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}

		l.atLineStart = false
		top := l.indentStack[len(l.indentStack)-1]
		if col > top {
			l.indentStack = append(l.indentStack, col)
			return Token{Type: TokenIndent, Line: l.line}, true
		}
		for col < l.indentStack[len(l.indentStack)-1] {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.pending = append(l.pending, Token{Type: TokenDedent, Line: l.line})
		}
		if col != l.indentStack[len(l.indentStack)-1] {
			l.err = &SyntaxError{Line: l.line, Msg: "inconsistent indentation"}
			return Token{}, false
		}
		if len(l.pending) > 0 {
			t := l.pending[0]
			l.pending = l.pending[1:]
			return t, true
		}
		return Token{}, false
	}
}

func (l *Lexer) finish() Token {
	// Close any open indentation at EOF.
	if len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		return Token{Type: TokenDedent, Line: l.line}
	}
	return Token{Type: TokenEOF, Line: l.line}
}

func (l *Lexer) skipSpacesAndComments() {
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.pos++
			continue
		}
		if ch == '#' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		return
	}
}

func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}
	return 0
}

func (l *Lexer) lexIdent() Token {
	start := l.pos
	for l.pos < len(l.src) && (unicode.IsLetter(l.src[l.pos]) || unicode.IsDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
	lit := string(l.src[start:l.pos])
	if kw, ok := keywords[lit]; ok {
		return Token{Type: kw, Literal: lit, Line: l.line}
	}
	return Token{Type: TokenIdent, Literal: lit, Line: l.line}
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	isFloat := false
	for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && unicode.IsDigit(l.peekAt(1)) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	lit := string(l.src[start:l.pos])
	if isFloat {
		return Token{Type: TokenFloat, Literal: lit, Line: l.line}
	}
	return Token{Type: TokenInt, Literal: lit, Line: l.line}
}

func (l *Lexer) lexString(quote rune) Token {
	line := l.line
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == '\\' && l.pos+1 < len(l.src) {
			esc := l.src[l.pos+1]
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '\\', '\'', '"':
				sb.WriteRune(esc)
			default:
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}
			l.pos += 2
			continue
		}
		if ch == quote {
			l.pos++
			return Token{Type: TokenString, Literal: sb.String(), Line: line}
		}
		if ch == '\n' {
			break
		}
		sb.WriteRune(ch)
		l.pos++
	}
	l.err = &SyntaxError{Line: line, Msg: "unterminated string literal"}
	return Token{}
}

func (l *Lexer) lexOperator() Token {
	line := l.line
	two := ""
	if l.pos+1 < len(l.src) {
		two = string(l.src[l.pos : l.pos+2])
	}

	switch two {
	case "**":
		if l.peekAt(2) == '=' {
			l.err = &SyntaxError{Line: line, Msg: "unsupported operator **="}
			return Token{}
		}
		l.pos += 2
		return Token{Type: TokenDoubleStar, Literal: "**", Line: line}
	case "//":
		if l.peekAt(2) == '=' {
			l.pos += 3
			return Token{Type: TokenDoubleSlashAssign, Literal: "//=", Line: line}
		}
		l.pos += 2
		return Token{Type: TokenDoubleSlash, Literal: "//", Line: line}
	case "==":
		l.pos += 2
		return Token{Type: TokenEq, Literal: "==", Line: line}
	case "!=":
		l.pos += 2
		return Token{Type: TokenNe, Literal: "!=", Line: line}
	case "<=":
		l.pos += 2
		return Token{Type: TokenLe, Literal: "<=", Line: line}
	case ">=":
		l.pos += 2
		return Token{Type: TokenGe, Literal: ">=", Line: line}
	case "+=":
		l.pos += 2
		return Token{Type: TokenPlusAssign, Literal: "+=", Line: line}
	case "-=":
		l.pos += 2
		return Token{Type: TokenMinusAssign, Literal: "-=", Line: line}
	case "*=":
		l.pos += 2
		return Token{Type: TokenStarAssign, Literal: "*=", Line: line}
	case "/=":
		l.pos += 2
		return Token{Type: TokenSlashAssign, Literal: "/=", Line: line}
	case "%=":
		l.pos += 2
		return Token{Type: TokenPercentAssign, Literal: "%=", Line: line}
	case "->":
		l.pos += 2
		return Token{Type: TokenArrow, Literal: "->", Line: line}
	}

	ch := l.src[l.pos]
	l.pos++
	single := map[rune]TokenType{
		'+': TokenPlus,
		'-': TokenMinus,
		'*': TokenStar,
		'/': TokenSlash,
		'%': TokenPercent,
		'=': TokenAssign,
		'<': TokenLt,
		'>': TokenGt,
		',': TokenComma,
		':': TokenColon,
		'.': TokenDot,
		';': TokenSemicolon,
	}
	if t, ok := single[ch]; ok {
		return Token{Type: t, Literal: string(ch), Line: line}
	}

	switch ch {
	case '(':
		l.bracketDepth++
		return Token{Type: TokenLParen, Literal: "(", Line: line}
	case ')':
		l.bracketDepth--
		return Token{Type: TokenRParen, Literal: ")", Line: line}
	case '[':
		l.bracketDepth++
		return Token{Type: TokenLBracket, Literal: "[", Line: line}
	case ']':
		l.bracketDepth--
		return Token{Type: TokenRBracket, Literal: "]", Line: line}
	case '{':
		l.bracketDepth++
		return Token{Type: TokenLBrace, Literal: "{", Line: line}
	case '}':
		l.bracketDepth--
		return Token{Type: TokenRBrace, Literal: "}", Line: line}
	}

	l.err = &SyntaxError{Line: line, Msg: fmt.Sprintf("unexpected character %q", string(ch))}
	return Token{}
}
