package cliopt

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Store          string
	Backend        string
	SQLitePath     string
	SQLiteDriver   string
	PostgresDSN    string
	PostgresSchema string

	Format    string
	LogLevel  string
	LogFormat string

	// Set by the root command before any subcommand runs.
	Logger zerolog.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Store:          "setlogic",
		Backend:        "sqlite",
		SQLitePath:     ".",
		SQLiteDriver:   "sqlite",
		PostgresSchema: "setlogic",
		Format:         "pretty",
		LogLevel:       "warn",
		LogFormat:      "auto",
		Logger:         zerolog.Nop(),
		Stdin:          os.Stdin,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	}
}

func BindGlobalFlags(fs *pflag.FlagSet, g *GlobalOptions) {
	fs.StringVarP(&g.Store, "store", "s", g.Store, "store name (sqlite: file name or path, postgres: ignored)")
	fs.StringVar(&g.Backend, "backend", g.Backend, "backend: sqlite|postgres")

	fs.StringVar(&g.SQLitePath, "sqlite-path", g.SQLitePath, "directory holding sqlite stores")
	fs.StringVar(&g.SQLiteDriver, "sqlite-driver", g.SQLiteDriver, "sqlite driver: sqlite (pure Go) or sqlite3 (cgo)")

	fs.StringVar(&g.PostgresDSN, "pg-dsn", g.PostgresDSN, "postgres DSN")
	fs.StringVar(&g.PostgresSchema, "pg-schema", g.PostgresSchema, "postgres schema holding the store")

	fs.StringVar(&g.Format, "format", g.Format, "output format: pretty|lines|json")
	fs.StringVar(&g.LogLevel, "log-level", g.LogLevel, "log level: trace|debug|info|warn|error|off")
	fs.StringVar(&g.LogFormat, "log-format", g.LogFormat, "log format: auto|console|json")
}
