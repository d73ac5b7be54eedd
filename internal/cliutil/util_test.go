package cliutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nonibytes/setlogic/internal/cliopt"
	"github.com/nonibytes/setlogic/setlogic/storage"
)

func TestReadIdentifiers(t *testing.T) {
	in := "# header\nv1\n\n  v2  \nv1\n\t# indented comment\nv3"
	ids, err := ReadIdentifiers(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"v1", "v2", "v3"}, ids.Sorted())

	ids, err = ReadIdentifiers(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 0, ids.Len())
}

func TestResolveStoreRef(t *testing.T) {
	g := cliopt.DefaultGlobalOptions()
	g.SQLitePath = "/data"

	require.Equal(t, filepath.Join("/data", "results.db"), ResolveStoreRef(g, "results"))
	require.Equal(t, "other.db", ResolveStoreRef(g, "other.db"))
	require.Equal(t, "/tmp/x", ResolveStoreRef(g, "/tmp/x"))

	g.Backend = "postgres"
	require.Equal(t, "results", ResolveStoreRef(g, "results"))
}

func TestNewAdapter(t *testing.T) {
	g := cliopt.DefaultGlobalOptions()
	g.SQLitePath = "/data"

	a, err := NewAdapter(g)
	require.NoError(t, err)
	require.Equal(t, storage.BackendSQLite, a.Backend())
	require.Equal(t, filepath.Join("/data", "setlogic.db"), a.StoreID())

	g.SQLiteDriver = "sqlite3"
	_, err = NewAdapter(g)
	require.NoError(t, err)

	g.SQLiteDriver = "bogus"
	_, err = NewAdapter(g)
	require.True(t, IsUsageError(err))

	g = cliopt.DefaultGlobalOptions()
	g.Backend = "postgres"
	_, err = NewAdapter(g)
	require.True(t, IsUsageError(err), "missing dsn")

	g.PostgresDSN = "postgres://localhost/db"
	a, err = NewAdapter(g)
	require.NoError(t, err)
	require.Equal(t, "postgres:setlogic", a.StoreID())

	g.Backend = "oracle"
	_, err = NewAdapter(g)
	require.True(t, IsUsageError(err))
}

func TestParseOutputFormat(t *testing.T) {
	require.Equal(t, FormatJSON, ParseOutputFormat("json"))
	require.Equal(t, FormatLines, ParseOutputFormat("lines"))
	require.Equal(t, FormatPretty, ParseOutputFormat("table"))
}
