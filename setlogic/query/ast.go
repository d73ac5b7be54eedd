package query

import "github.com/nonibytes/setlogic/setlogic/idset"

// Node is a node of a parsed execution-logic expression
type Node interface {
	isNode()
	String() string
}

// Op is a binary set operator
type Op int

const (
	OpAnd   Op = iota // intersection
	OpOr              // union
	OpNotIn           // difference, left minus right
)

func (op Op) String() string {
	switch op {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpNotIn:
		return "NOT IN"
	default:
		return "?"
	}
}

// Leaf references the result set of a named sub-query
type Leaf struct {
	Name string
}

func (Leaf) isNode() {}

func (l Leaf) String() string { return l.Name }

// BinaryOp combines the results of two subtrees
type BinaryOp struct {
	Op    Op
	Left  Node
	Right Node
}

func (BinaryOp) isNode() {}

// String renders the node fully parenthesized, so the output parses back to
// the same tree regardless of how the original text was grouped.
func (b BinaryOp) String() string {
	return "(" + nodeString(b.Left) + " " + b.Op.String() + " " + nodeString(b.Right) + ")"
}

func nodeString(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}

// Bindings maps sub-query names to their result sets
type Bindings map[string]idset.Set

// Leaves returns the distinct leaf names of node in left-to-right order of
// first occurrence.
func Leaves(node Node) []string {
	var names []string
	seen := make(map[string]struct{})
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case Leaf:
			if _, ok := seen[n.Name]; !ok {
				seen[n.Name] = struct{}{}
				names = append(names, n.Name)
			}
		case BinaryOp:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(node)
	return names
}
