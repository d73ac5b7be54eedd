package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/internal/cliutil"
	"github.com/nonibytes/setlogic/setlogic/idset"
)

func NewEvalCommand(g *cliopt.GlobalOptions) *cobra.Command {
	var into string

	cmd := &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Evaluate an expression against the stored sets",
		Long: `Evaluate an expression whose identifiers name stored sets and print the
resulting identifiers. Arguments are joined with spaces.

  AND     identifiers in both operands
  OR      identifiers in either operand
  NOT IN  identifiers of the left operand absent from the right one

With --into the result is also stored under the given name.`,
		Example: `  setlogic eval "(q1 OR q2) AND q3"
  setlogic eval q1 NOT IN q2 --into filtered`,
		Args: cliutil.MinimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")

			st, err := cliutil.OpenStore(cmd.Context(), *g, false)
			if err != nil {
				return err
			}
			defer st.Close()

			var result idset.Set
			if into != "" {
				result, err = st.EvaluateInto(cmd.Context(), expr, into)
			} else {
				result, err = st.Evaluate(cmd.Context(), expr)
			}
			if err != nil {
				return err
			}

			printSet(*g, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&into, "into", "", "store the result under this name")
	return cmd
}
