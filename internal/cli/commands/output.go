package commands

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/internal/cliutil"
	"github.com/nonibytes/setlogic/setlogic/idset"
)

// printSet writes members in sorted order. Pretty output adds a count on
// stderr so stdout stays pipeable.
func printSet(g cliopt.GlobalOptions, ids idset.Set) {
	members := ids.Sorted()
	switch cliutil.ParseOutputFormat(g.Format) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(g.Stdout, members)
	case cliutil.FormatLines:
		for _, id := range members {
			fmt.Fprintln(g.Stdout, id)
		}
	default:
		for _, id := range members {
			fmt.Fprintln(g.Stdout, id)
		}
		color.New(color.Faint).Fprintf(g.Stderr, "(%d identifiers)\n", len(members))
	}
}
