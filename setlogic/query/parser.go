package query

import (
	"fmt"
)

// Parse parses an execution-logic expression into a syntax tree.
//
// Operators have no relative precedence: an unparenthesized chain such as
// "a AND b OR c" groups left to right as "(a AND b) OR c".
func Parse(input string) (Node, error) {
	return NewInterpreter(nopLogger).Parse(input)
}

type parser struct {
	src    string
	tokens []Token
	pos    int
}

func parseTokens(src string, tokens []Token) (Node, error) {
	p := &parser{src: src, tokens: tokens, pos: 0}

	if p.match(TokEOF) {
		return nil, p.errorf(-1, "empty expression")
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.match(TokEOF) {
		tok := p.current()
		if tok.Kind == TokRParen {
			return nil, p.errorf(tok.Pos, "unbalanced parentheses: unexpected ')'")
		}
		return nil, p.errorf(tok.Pos, "unexpected %s", tok.describe())
	}
	return expr, nil
}

// parseExpr parses a left-associative operator chain
func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		var op Op
		switch tok.Kind {
		case TokAnd:
			op = OpAnd
		case TokOr:
			op = OpOr
		case TokNotIn:
			op = OpNotIn
		case TokIdent, TokLParen:
			return nil, p.errorf(tok.Pos, "missing operator before %s", tok.describe())
		default:
			return left, nil
		}
		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseTerm() (Node, error) {
	tok := p.current()

	switch tok.Kind {
	case TokIdent:
		p.advance()
		return Leaf{Name: tok.Value}, nil

	case TokLParen:
		p.advance()
		if p.match(TokRParen) {
			return nil, p.errorf(p.current().Pos, "empty parentheses")
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.match(TokRParen) {
			return nil, p.errorf(tok.Pos, "unbalanced parentheses: '(' is never closed")
		}
		p.advance()
		return expr, nil
	}

	if prev, ok := p.previous(); ok && prev.isOperator() {
		return nil, p.errorf(prev.Pos, "operator %s is missing its right operand", prev.describe())
	}
	if tok.isOperator() {
		return nil, p.errorf(tok.Pos, "operator %s is missing its left operand", tok.describe())
	}
	return nil, p.errorf(tok.Pos, "expected identifier or '(', got %s", tok.describe())
}

func (p *parser) errorf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Expression: p.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Kind: TokEOF}
}

func (p *parser) previous() (Token, bool) {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		return p.tokens[p.pos-1], true
	}
	return Token{}, false
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *parser) match(kind TokenKind) bool {
	return p.current().Kind == kind
}
