package setlogic_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/nonibytes/setlogic/setlogic"
	"github.com/nonibytes/setlogic/setlogic/idset"
	"github.com/nonibytes/setlogic/setlogic/storage/postgres"
)

// Set SETLOGIC_TEST_PG_DSN to run against a live postgres server.
func newPostgresStore(t *testing.T) *setlogic.Store {
	t.Helper()

	dsn := os.Getenv("SETLOGIC_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("SETLOGIC_TEST_PG_DSN not set")
	}
	schema := fmt.Sprintf("setlogic_test_%d", time.Now().UnixNano())

	opts := setlogic.DefaultStoreOptions()
	opts.Now = monotonicNow(time.Unix(1700000000, 0))

	st, err := setlogic.Create(context.Background(), postgres.New(dsn, schema), opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return
		}
		defer db.Close()
		_, _ = db.Exec(`DROP SCHEMA IF EXISTS "` + schema + `" CASCADE`)
	})
	return st
}

func TestEvaluateInto_Postgres(t *testing.T) {
	st := newPostgresStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "q1", idset.New("v1", "v2")))
	require.NoError(t, st.Put(ctx, "q2", idset.New("v3")))
	require.NoError(t, st.Put(ctx, "q3", idset.New("v2", "v3", "v5")))

	result, err := st.EvaluateInto(ctx, "(q1 OR q2) AND q3", "combined")
	require.NoError(t, err)
	require.Equal(t, []string{"v2", "v3"}, result.Sorted())

	info, err := st.Info(ctx, "combined")
	require.NoError(t, err)
	require.Equal(t, "((q1 OR q2) AND q3)", info.Expression)
	require.Equal(t, 2, info.Size)

	infos, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 4)

	_, err = st.Evaluate(ctx, "q1 NOT IN absent")
	require.True(t, setlogic.IsKind(err, setlogic.ErrBinding))

	deleted, err := st.Delete(ctx, "combined")
	require.NoError(t, err)
	require.True(t, deleted)
}

func TestOpenMissingSchema_Postgres(t *testing.T) {
	dsn := os.Getenv("SETLOGIC_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("SETLOGIC_TEST_PG_DSN not set")
	}

	_, err := setlogic.Open(context.Background(), postgres.New(dsn, "setlogic_never_created"), setlogic.DefaultStoreOptions())
	require.True(t, setlogic.IsKind(err, setlogic.ErrSQL))
}
