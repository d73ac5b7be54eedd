package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/internal/cliutil"
	"github.com/nonibytes/setlogic/setlogic/query"
)

func NewParseCommand(g *cliopt.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse EXPR...",
		Short: "Check an expression and print how it groups",
		Long: fmt.Sprintf(`Parse an expression and print its syntax tree. Arguments are joined with
spaces, so quoting the expression is optional. No store is opened.

Operators have no precedence: %s groups as %s.`,
			color.YellowString("a AND b OR c"), color.GreenString("(a AND b) OR c")),
		Args: cliutil.MinimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := query.NewInterpreter(g.Logger).Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}

			switch cliutil.ParseOutputFormat(g.Format) {
			case cliutil.FormatJSON:
				cliutil.PrintJSON(g.Stdout, treeJSON(node))
			case cliutil.FormatLines:
				fmt.Fprintln(g.Stdout, node.String())
			default:
				fmt.Fprintln(g.Stdout, node.String())
				printTree(g.Stdout, node, "")
			}
			return nil
		},
	}
}

func treeJSON(n query.Node) any {
	switch n := n.(type) {
	case query.Leaf:
		return map[string]any{"set": n.Name}
	case query.BinaryOp:
		return map[string]any{
			"op":    n.Op.String(),
			"left":  treeJSON(n.Left),
			"right": treeJSON(n.Right),
		}
	default:
		return nil
	}
}

func printTree(w io.Writer, n query.Node, indent string) {
	switch n := n.(type) {
	case query.Leaf:
		fmt.Fprintf(w, "%s%s\n", indent, n.Name)
	case query.BinaryOp:
		fmt.Fprintf(w, "%s%s\n", indent, n.Op)
		printTree(w, n.Left, indent+"  ")
		printTree(w, n.Right, indent+"  ")
	}
}
