package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/internal/cliutil"
)

func NewPutCommand(g *cliopt.GlobalOptions) *cobra.Command {
	var file string
	var create bool

	cmd := &cobra.Command{
		Use:   "put NAME",
		Short: "Store a set of identifiers read one per line",
		Long: `Store a set of identifiers under NAME, replacing any previous members.

Identifiers are read one per line from --file or stdin. Blank lines and lines
starting with '#' are ignored. NAME must be usable as an identifier in
expressions: letters, digits and '_', not starting with a digit.`,
		Args: cliutil.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			in, err := cliutil.OpenInput(*g, file)
			if err != nil {
				return err
			}
			defer in.Close()

			ids, err := cliutil.ReadIdentifiers(in)
			if err != nil {
				return fmt.Errorf("read identifiers: %w", err)
			}

			st, err := cliutil.OpenStore(cmd.Context(), *g, create)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Put(cmd.Context(), name, ids); err != nil {
				return err
			}
			g.Logger.Info().Str("set", name).Int("size", ids.Len()).Msg("stored set")
			if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatPretty {
				fmt.Fprintf(g.Stdout, "Stored %s: %d identifiers\n", name, ids.Len())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read identifiers from file instead of stdin")
	cmd.Flags().BoolVar(&create, "create", false, "create the store if it does not exist")
	return cmd
}
