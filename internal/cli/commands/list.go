package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/internal/cliutil"
	"github.com/nonibytes/setlogic/setlogic"
)

func NewListCommand(g *cliopt.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sets",
		Args:  cliutil.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cliutil.OpenStore(cmd.Context(), *g, false)
			if err != nil {
				return err
			}
			defer st.Close()

			infos, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			printInfos(*g, infos, time.Now())
			return nil
		},
	}
}

func printInfos(g cliopt.GlobalOptions, infos []setlogic.SetInfo, now time.Time) {
	switch cliutil.ParseOutputFormat(g.Format) {
	case cliutil.FormatJSON:
		if infos == nil {
			infos = []setlogic.SetInfo{}
		}
		cliutil.PrintJSON(g.Stdout, infos)
	case cliutil.FormatLines:
		for _, info := range infos {
			fmt.Fprintln(g.Stdout, info.Name)
		}
	default:
		tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSIZE\tUPDATED\tEXPRESSION")
		for _, info := range infos {
			expr := info.Expression
			if expr == "" {
				expr = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				info.Name,
				humanize.Comma(int64(info.Size)),
				humanize.RelTime(time.UnixMilli(info.UpdatedAtMS), now, "ago", "from now"),
				expr,
			)
		}
		tw.Flush()
	}
}
