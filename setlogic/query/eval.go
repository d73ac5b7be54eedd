package query

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nonibytes/setlogic/setlogic/idset"
)

var nopLogger = zerolog.Nop()

// Interpreter parses and evaluates execution-logic expressions. It holds no
// state besides its logger and is safe for concurrent use.
type Interpreter struct {
	logger zerolog.Logger
}

// NewInterpreter returns an interpreter that traces to logger. Pass
// zerolog.Nop() to disable tracing.
func NewInterpreter(logger zerolog.Logger) *Interpreter {
	return &Interpreter{logger: logger.With().Str("component", "setlogic.query").Logger()}
}

// Parse parses input into a syntax tree. See the package-level Parse.
func (in *Interpreter) Parse(input string) (Node, error) {
	tokens, err := Lex(input)
	if err != nil {
		in.logger.Debug().Err(err).Msg("tokenize failed")
		return nil, err
	}

	node, err := parseTokens(input, tokens)
	if err != nil {
		in.logger.Debug().Err(err).Msg("parse failed")
		return nil, err
	}

	in.logger.Trace().
		Str("expression", input).
		Int("tokens", len(tokens)-1).
		Stringer("tree", node).
		Msg("parsed expression")
	return node, nil
}

// Evaluate computes the result set of node using the sub-query results in
// bindings. See the package-level Evaluate.
func (in *Interpreter) Evaluate(node Node, bindings Bindings) (idset.Set, error) {
	if node == nil {
		return nil, &SyntaxError{Pos: -1, Msg: "empty expression tree"}
	}

	result, err := in.eval(node, bindings)
	if err != nil {
		return nil, err
	}

	// a bare leaf would otherwise hand back the caller's own binding
	if _, ok := node.(Leaf); ok {
		result = result.Clone()
	}
	return result, nil
}

func (in *Interpreter) eval(node Node, bindings Bindings) (idset.Set, error) {
	switch n := node.(type) {
	case Leaf:
		ids, ok := bindings[n.Name]
		if !ok {
			return nil, &BindingError{Name: n.Name}
		}
		return ids, nil

	case BinaryOp:
		left, err := in.eval(n.Left, bindings)
		if err != nil {
			return nil, err
		}
		right, err := in.eval(n.Right, bindings)
		if err != nil {
			return nil, err
		}

		var out idset.Set
		switch n.Op {
		case OpAnd:
			out = idset.Intersect(left, right)
		case OpOr:
			out = idset.Union(left, right)
		case OpNotIn:
			out = idset.Difference(left, right)
		default:
			return nil, fmt.Errorf("unknown operator %d", int(n.Op))
		}

		in.logger.Trace().
			Stringer("op", n.Op).
			Int("left", left.Len()).
			Int("right", right.Len()).
			Int("result", out.Len()).
			Msg("applied set operator")
		return out, nil

	case nil:
		return nil, &SyntaxError{Pos: -1, Msg: "empty expression tree"}

	default:
		return nil, fmt.Errorf("unsupported node type %T", node)
	}
}

// Evaluate computes the result set of node. Every leaf must have an entry in
// bindings, otherwise a *BindingError naming the first unresolved leaf (in
// left-to-right order) is returned. Both operands of every operator are
// evaluated; bindings and node are never modified.
func Evaluate(node Node, bindings Bindings) (idset.Set, error) {
	return NewInterpreter(nopLogger).Evaluate(node, bindings)
}
