// Package repomanager vends repository implementations for the configured
// database and owns its schema migrations (goose, embedded SQL).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tgauth/internal/dbx"
	"github.com/dmitrijs2005/tgauth/internal/server/repositories/identities"
	"github.com/pressly/goose/v3"
)

// Supported database drivers, as registered with database/sql.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Identities(db dbx.DBTX) identities.Repository
}

// New returns the manager for driver.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case DriverPostgres:
		return &PostgresRepositoryManager{}, nil
	case DriverSQLite:
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}
