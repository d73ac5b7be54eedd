package cliutil

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite" // registers "sqlite"

	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/setlogic"
	"github.com/nonibytes/setlogic/setlogic/idset"
	"github.com/nonibytes/setlogic/setlogic/storage"
	"github.com/nonibytes/setlogic/setlogic/storage/postgres"
	"github.com/nonibytes/setlogic/setlogic/storage/sqlite"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatLines  OutputFormat = "lines"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatLines, FormatJSON:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// UsageError marks an error caused by bad command line input. The root
// command maps it to exit code 2.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// MinimumArgs is cobra.MinimumNArgs reporting a UsageError.
func MinimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return Usagef("%s requires at least %d argument(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// ExactArgs is cobra.ExactArgs reporting a UsageError.
func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return Usagef("%s accepts %d argument(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// ResolveStoreRef transforms the user-provided -s/--store value into a backend-specific reference.
//
//   - sqlite: if the name contains a path separator or ends with .db, treat as explicit path.
//     else: <SQLitePath>/<name>.db
//   - postgres: the store lives in --pg-schema; the name is returned as-is.
func ResolveStoreRef(g cliopt.GlobalOptions, name string) string {
	switch strings.ToLower(g.Backend) {
	case "sqlite":
		if strings.Contains(name, string(filepath.Separator)) || strings.HasSuffix(name, ".db") {
			return name
		}
		return filepath.Join(g.SQLitePath, name+".db")
	default:
		return name
	}
}

// NewAdapter creates the storage adapter selected by the global options.
func NewAdapter(g cliopt.GlobalOptions) (storage.Adapter, error) {
	switch strings.ToLower(g.Backend) {
	case "sqlite":
		switch g.SQLiteDriver {
		case sqlite.DriverModernc, sqlite.DriverMattn:
		default:
			return nil, Usagef("unknown sqlite driver: %s", g.SQLiteDriver)
		}
		return sqlite.NewWithDriver(ResolveStoreRef(g, g.Store), g.SQLiteDriver), nil
	case "postgres", "pg":
		if g.PostgresDSN == "" {
			return nil, Usagef("--pg-dsn is required for the postgres backend")
		}
		return postgres.New(g.PostgresDSN, g.PostgresSchema), nil
	default:
		return nil, Usagef("unknown backend: %s", g.Backend)
	}
}

// OpenStore opens the store selected by the global options, creating it
// first when create is set.
func OpenStore(ctx context.Context, g cliopt.GlobalOptions, create bool) (*setlogic.Store, error) {
	adapter, err := NewAdapter(g)
	if err != nil {
		return nil, err
	}
	opts := setlogic.DefaultStoreOptions()
	opts.Logger = g.Logger
	if create {
		return setlogic.Create(ctx, adapter, opts)
	}
	return setlogic.Open(ctx, adapter, opts)
}

// ReadIdentifiers reads one identifier per line. Surrounding whitespace is
// trimmed; blank lines and lines starting with '#' are skipped.
func ReadIdentifiers(r io.Reader) (idset.Set, error) {
	out := idset.New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out.Add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// OpenInput returns stdin when path is empty or "-", otherwise the named file.
func OpenInput(g cliopt.GlobalOptions, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(g.Stdin), nil
	}
	return os.Open(path)
}
