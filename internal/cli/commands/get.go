package commands

import (
	"github.com/spf13/cobra"

	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/internal/cliutil"
)

func NewGetCommand(g *cliopt.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print the members of a stored set",
		Args:  cliutil.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cliutil.OpenStore(cmd.Context(), *g, false)
			if err != nil {
				return err
			}
			defer st.Close()

			ids, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSet(*g, ids)
			return nil
		},
	}
}
