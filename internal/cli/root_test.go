package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	argv := append([]string{"--sqlite-path", dir, "--log-level", "off"}, args...)
	code := Run(context.Background(), argv, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func seed(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	res := run(t, dir, "", "init")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, filepath.Join(dir, "setlogic.db"))

	for name, ids := range map[string]string{
		"q1": "v1\nv2\n",
		"q2": "# comment\nv3\n\n",
		"q3": "v2\n v3 \nv5\n",
	} {
		res := run(t, dir, ids, "put", name)
		require.Equal(t, 0, res.code, res.stderr)
	}
	return dir
}

func TestEvalCommand(t *testing.T) {
	dir := seed(t)

	res := run(t, dir, "", "--format", "lines", "eval", "(q1 OR q2) AND q3")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "v2\nv3\n", res.stdout)

	// unquoted arguments are joined
	res = run(t, dir, "", "--format", "json", "eval", "q3", "NOT", "IN", "q1")
	require.Equal(t, 0, res.code, res.stderr)
	var members []string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &members))
	require.Equal(t, []string{"v3", "v5"}, members)
}

func TestEvalIntoThenGet(t *testing.T) {
	dir := seed(t)

	res := run(t, dir, "", "eval", "q1 NOT IN q3", "--into", "only_q1")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "v1\n", res.stdout)
	require.Contains(t, res.stderr, "(1 identifiers)")

	res = run(t, dir, "", "--format", "lines", "get", "only_q1")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "v1\n", res.stdout)

	res = run(t, dir, "", "--format", "json", "list")
	require.Equal(t, 0, res.code, res.stderr)
	var infos []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &infos))
	require.Len(t, infos, 4)
	require.Equal(t, "only_q1", infos[0]["name"])
	require.Equal(t, "(q1 NOT IN q3)", infos[0]["expression"])

	res = run(t, dir, "", "list")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "NAME")
	require.Contains(t, res.stdout, "(q1 NOT IN q3)")
}

func TestEvalErrors(t *testing.T) {
	dir := seed(t)

	res := run(t, dir, "", "eval", "q1 AND")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "syntax error")

	res = run(t, dir, "", "eval", "q1 OR unknown")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, `"unknown"`)
}

func TestPutFromFileAndDelete(t *testing.T) {
	dir := seed(t)
	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\na\n"), 0o644))

	res := run(t, dir, "", "put", "from_file", "--file", path)
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Stored from_file: 2 identifiers")

	res = run(t, dir, "", "delete", "from_file")
	require.Equal(t, 0, res.code, res.stderr)

	res = run(t, dir, "", "delete", "from_file")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "not_found")

	res = run(t, dir, "", "put", "bad-name")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "invalid_name")
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()

	res := run(t, dir, "", "parse", "a AND b OR c")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "((a AND b) OR c)\nOR\n  AND\n    a\n    b\n  c\n", res.stdout)

	res = run(t, dir, "", "--format", "json", "parse", "a NOT IN b")
	require.Equal(t, 0, res.code, res.stderr)
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &tree))
	require.Equal(t, "NOT IN", tree["op"])
	require.Equal(t, map[string]any{"set": "a"}, tree["left"])

	res = run(t, dir, "", "parse", "a b")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "missing operator")

	// parse never touches the store
	_, err := os.Stat(filepath.Join(dir, "setlogic.db"))
	require.True(t, os.IsNotExist(err))
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()

	for _, args := range [][]string{
		{"get"},
		{"parse"},
		{"frobnicate"},
		{"list", "--no-such-flag"},
		{"--backend", "mongo", "list"},
		{"--log-level", "chatty", "list"},
	} {
		res := run(t, dir, "", args...)
		require.Equal(t, 2, res.code, "%v: %s", args, res.stderr)
	}
}

func TestEnvironmentOverridesFlags(t *testing.T) {
	dir := seed(t)
	t.Setenv("SETLOGIC_FORMAT", "json")

	res := run(t, dir, "", "get", "q2")
	require.Equal(t, 0, res.code, res.stderr)
	require.JSONEq(t, `["v3"]`, res.stdout)
}
