package query

import (
	"fmt"
)

// Token represents a lexical token
type Token struct {
	Kind  TokenKind
	Value string // identifier text, empty for other kinds
	Pos   int    // rune offset of the first character
}

// TokenKind is the type of token
type TokenKind int

const (
	TokIdent TokenKind = iota
	TokAnd
	TokOr
	TokNotIn
	TokLParen
	TokRParen
	TokEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokIdent:
		return "Ident"
	case TokAnd:
		return "And"
	case TokOr:
		return "Or"
	case TokNotIn:
		return "NotIn"
	case TokLParen:
		return "LParen"
	case TokRParen:
		return "RParen"
	case TokEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// describe renders a token for error messages
func (t Token) describe() string {
	switch t.Kind {
	case TokIdent:
		return fmt.Sprintf("identifier %q", t.Value)
	case TokAnd:
		return "'AND'"
	case TokOr:
		return "'OR'"
	case TokNotIn:
		return "'NOT IN'"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	default:
		return "end of expression"
	}
}

func (t Token) isOperator() bool {
	return t.Kind == TokAnd || t.Kind == TokOr || t.Kind == TokNotIn
}

// Lexer tokenizes an execution-logic expression
type Lexer struct {
	src   string
	input []rune
	pos   int
}

// NewLexer creates a new lexer for the input string
func NewLexer(input string) *Lexer {
	return &Lexer{
		src:   input,
		input: []rune(input),
		pos:   0,
	}
}

// Lex tokenizes the entire input. The returned slice always ends with a
// TokEOF token.
func Lex(input string) ([]Token, error) {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok, err := lexer.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}

	return tokens, nil
}

// Next returns the next token
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Kind: TokEOF, Pos: l.pos}, nil
	}

	ch := l.input[l.pos]
	start := l.pos

	switch ch {
	case '(':
		l.pos++
		return Token{Kind: TokLParen, Pos: start}, nil
	case ')':
		l.pos++
		return Token{Kind: TokRParen, Pos: start}, nil
	}

	if isIdentStart(ch) {
		return l.scanWord()
	}

	if isDigit(ch) {
		return Token{}, l.errorf(start, "identifier cannot start with a digit")
	}
	return Token{}, l.errorf(start, "unexpected character %q", ch)
}

func (l *Lexer) errorf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Expression: l.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (l *Lexer) skipWhitespace() int {
	start := l.pos
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
	return l.pos - start
}

func (l *Lexer) scanIdent() (int, string) {
	start := l.pos
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}
	return start, string(l.input[start:l.pos])
}

// scanWord reads an identifier or keyword. NOT and IN are only meaningful as
// the two halves of the NOT IN operator.
func (l *Lexer) scanWord() (Token, error) {
	start, value := l.scanIdent()

	switch value {
	case "AND":
		return Token{Kind: TokAnd, Pos: start}, nil
	case "OR":
		return Token{Kind: TokOr, Pos: start}, nil
	case "IN":
		return Token{}, l.errorf(start, "'IN' must be preceded by 'NOT'")
	case "NOT":
		if l.skipWhitespace() == 0 || l.pos >= len(l.input) || !isIdentStart(l.input[l.pos]) {
			return Token{}, l.errorf(start, "'NOT' must be followed by 'IN'")
		}
		if _, next := l.scanIdent(); next != "IN" {
			return Token{}, l.errorf(start, "'NOT' must be followed by 'IN'")
		}
		return Token{Kind: TokNotIn, Pos: start}, nil
	}

	return Token{Kind: TokIdent, Value: value, Pos: start}, nil
}

// IsIdentifier reports whether s can be used as a leaf name in an expression.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		if i == 0 && !isIdentStart(ch) {
			return false
		}
		if !isIdentChar(ch) {
			return false
		}
	}
	switch s {
	case "AND", "OR", "NOT", "IN":
		return false
	}
	return true
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
