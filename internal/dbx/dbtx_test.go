package dbx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestOpen_SQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "dbx.db")

	db, err := Open(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var conn DBTX = db
	_, err = conn.ExecContext(context.Background(), `CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`)
	require.NoError(t, err)

	var n int
	require.NoError(t, conn.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM t`).Scan(&n))
	require.Equal(t, 0, n)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "no-such-driver", "whatever")
	require.Error(t, err)
	require.Contains(t, err.Error(), "db open error")
}

func TestOpen_PingFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "db ping error")
}
