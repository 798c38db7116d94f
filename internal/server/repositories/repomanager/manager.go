// Package repomanager vends dialect-specific repository implementations and
// applies the matching schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// RepositoryManager binds repositories to a connection and owns the schema.
type RepositoryManager interface {
	// DriverName is the database/sql driver the manager expects.
	DriverName() string
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// New returns the RepositoryManager for a config driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case config.DriverPostgres:
		return &PostgresRepositoryManager{}, nil
	case config.DriverSQLite:
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open opens and pings a pool for m, then brings its schema up to date.
func Open(ctx context.Context, m RepositoryManager, dsn string) (*sql.DB, error) {
	db, err := dbx.Open(ctx, m.DriverName(), dsn)
	if err != nil {
		return nil, err
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return db, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}
