package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/common"
	"github.com/dmitrijs2005/tgauth/internal/dbx"
	"github.com/dmitrijs2005/tgauth/internal/server/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository stores timestamps as unix seconds and info as JSON text.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) FindByProviderUID(ctx context.Context, provider, uid string) (*models.LinkedIdentity, error) {
	query := `SELECT id, user_id, provider, provider_uid, info, created_at, updated_at
		FROM linked_identities WHERE provider = ? AND provider_uid = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, provider, uid))
}

func (r *SQLiteRepository) FindByUser(ctx context.Context, userID, provider string) (*models.LinkedIdentity, error) {
	query := `SELECT id, user_id, provider, provider_uid, info, created_at, updated_at
		FROM linked_identities WHERE user_id = ? AND provider = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, provider))
}

func (r *SQLiteRepository) Create(ctx context.Context, li *models.LinkedIdentity) (*models.LinkedIdentity, error) {
	info, err := encodeInfo(li.Info)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO linked_identities (id, user_id, provider, provider_uid, info, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		li.ID, li.UserID, li.Provider, li.ProviderUID, string(info), li.CreatedAt.Unix(), li.UpdatedAt.Unix())
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	return li, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, li *models.LinkedIdentity) error {
	info, err := encodeInfo(li.Info)
	if err != nil {
		return err
	}

	query := `UPDATE linked_identities SET provider_uid = ?, info = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, li.ProviderUID, string(info), li.UpdatedAt.Unix(), li.ID)
	if err != nil {
		return mapSQLiteError(err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM linked_identities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.LinkedIdentity, error) {
	li := &models.LinkedIdentity{}
	var (
		info             string
		created, updated int64
	)

	err := row.Scan(&li.ID, &li.UserID, &li.Provider, &li.ProviderUID, &info, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if li.Info, err = decodeInfo([]byte(info)); err != nil {
		return nil, err
	}
	li.CreatedAt = time.Unix(created, 0).UTC()
	li.UpdatedAt = time.Unix(updated, 0).UTC()
	return li, nil
}

func mapSQLiteError(err error) error {
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		code := sqlErr.Code()
		unique := code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
		// primary code only when extended result codes are off
		if code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqlErr.Error(), "UNIQUE") {
			unique = true
		}
		if unique {
			return fmt.Errorf("%w: %s", common.ErrorConflict, sqlErr.Error())
		}
	}
	return fmt.Errorf("db error: %w", err)
}
