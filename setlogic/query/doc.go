// Package query implements the execution-logic language used to combine the
// results of named sub-queries.
//
//	expr  := term (op term)*
//	term  := IDENT | '(' expr ')'
//	op    := 'AND' | 'OR' | 'NOT IN'
//
// AND intersects, OR unites, and NOT IN keeps the members of its left
// operand that are absent from its right operand. All operators share one
// precedence level and chains group left to right. Keywords are upper case;
// identifiers match [A-Za-z_][A-Za-z0-9_]* and are compared case-sensitively.
package query
