package users

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

func newSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(sqliteSchema)
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func TestSQLite_CreateAndGet(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	u := &models.User{ID: "u-1", Email: "a@x.com", PasswordHash: "h", CreatedAt: time.Now()}
	_, err := repo.Create(ctx, u)
	require.NoError(t, err)

	got, err := repo.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "h", got.PasswordHash)
}

func TestSQLite_EmailIsExactMatch(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{ID: "u-1", Email: "a@x.com", PasswordHash: "h", CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = repo.GetUserByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_DuplicateEmail(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{ID: "u-1", Email: "a@x.com", PasswordHash: "h", CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{ID: "u-2", Email: "a@x.com", PasswordHash: "h2", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestSQLite_ConcurrentDuplicateSignupsCreateOneUser(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	// one connection keeps SQLITE_BUSY out of the picture
	repo.db.(*sql.DB).SetMaxOpenConns(1)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.User{
				ID: "u-" + string(rune('a'+i)), Email: "race@x.com", PasswordHash: "h", CreatedAt: time.Now(),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, common.ErrDuplicateEmail):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestSQLite_GetUnknown(t *testing.T) {
	repo := newSQLiteRepo(t)

	_, err := repo.GetUserByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_DBErrorIsWrapped(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLiteRepository(db)
	_, err = repo.GetUserByEmail(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error:")
	assert.NotErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Create(context.Background(), &models.User{ID: "u", Email: "a@x.com", CreatedAt: time.Now()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrDuplicateEmail)
}
