package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/zerologr"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"

	"github.com/nonibytes/setlogic/internal/cli/commands"
	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/internal/cliutil"
	"github.com/nonibytes/setlogic/internal/logging"
)

// Execute runs the CLI with the process streams and returns an exit code.
func Execute(argv []string) int {
	return Run(context.Background(), argv, os.Stdin, os.Stdout, os.Stderr)
}

// Run runs the CLI and returns an exit code: 0 on success, 1 on runtime
// errors, 2 on usage errors.
func Run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	g := cliopt.DefaultGlobalOptions()
	g.Stdin, g.Stdout, g.Stderr = stdin, stdout, stderr

	root := NewRootCommand(&g)
	root.SetArgs(argv)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "error: %v\n", err)
	if cliutil.IsUsageError(err) || isCobraUsageError(err) {
		fmt.Fprintf(stderr, "run '%s --help' for usage\n", root.Name())
		return 2
	}
	return 1
}

// cobra reports unknown commands and flags as plain errors
func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

func NewRootCommand(g *cliopt.GlobalOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "setlogic",
		Short: "Combine named identifier sets with AND, OR and NOT IN",
		Long: `setlogic stores named sets of identifiers (for example the results of
sub-queries) and evaluates execution-logic expressions over them.

Every flag can also be set through the environment as SETLOGIC_<FLAG>,
for example SETLOGIC_PG_DSN, or from a setlogic.env file in the working
directory.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperDotEnvPreRunE("setlogic", "setlogic.env", zerologr.New(&g.Logger)),
			loggingPreRunE(g),
		),
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cliutil.UsageError{Err: err}
	})

	cliopt.BindGlobalFlags(root.PersistentFlags(), g)

	root.AddCommand(
		commands.NewInitCommand(g),
		commands.NewPutCommand(g),
		commands.NewGetCommand(g),
		commands.NewDeleteCommand(g),
		commands.NewListCommand(g),
		commands.NewParseCommand(g),
		commands.NewEvalCommand(g),
	)
	return root
}

func loggingPreRunE(g *cliopt.GlobalOptions) cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(g.Stderr, g.LogLevel, g.LogFormat)
		if err != nil {
			return &cliutil.UsageError{Err: err}
		}
		g.Logger = logger
		g.Logger.Debug().Str("command", cmd.CommandPath()).Msg("starting")
		return nil
	}
}
