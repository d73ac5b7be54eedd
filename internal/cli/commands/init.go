package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/internal/cliutil"
)

func NewInitCommand(g *cliopt.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a set store",
		Args:  cliutil.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cliutil.OpenStore(cmd.Context(), *g, true)
			if err != nil {
				return err
			}
			defer st.Close()

			fmt.Fprintf(g.Stdout, "Created store: %s\n", st.ID())
			return nil
		},
	}
}
