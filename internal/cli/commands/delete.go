package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/internal/cliutil"
	"github.com/nonibytes/setlogic/setlogic"
)

func NewDeleteCommand(g *cliopt.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a stored set",
		Args:  cliutil.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cliutil.OpenStore(cmd.Context(), *g, false)
			if err != nil {
				return err
			}
			defer st.Close()

			deleted, err := st.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return setlogic.NotFoundError(args[0])
			}
			fmt.Fprintf(g.Stdout, "Deleted: %s\n", args[0])
			return nil
		},
	}
}
