package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tgauth/internal/common"
	"github.com/dmitrijs2005/tgauth/internal/dbx"
	"github.com/dmitrijs2005/tgauth/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByProviderUID(ctx context.Context, provider, uid string) (*models.LinkedIdentity, error) {
	query :=
		`SELECT id, user_id, provider, provider_uid, info, created_at, updated_at FROM linked_identities
		 WHERE provider = $1 AND provider_uid = $2
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, provider, uid))
}

func (r *PostgresRepository) FindByUser(ctx context.Context, userID, provider string) (*models.LinkedIdentity, error) {
	query :=
		`SELECT id, user_id, provider, provider_uid, info, created_at, updated_at FROM linked_identities
		 WHERE user_id = $1 AND provider = $2
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, provider))
}

func (r *PostgresRepository) Create(ctx context.Context, li *models.LinkedIdentity) (*models.LinkedIdentity, error) {
	info, err := encodeInfo(li.Info)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO linked_identities (id, user_id, provider, provider_uid, info, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `
	_, err = r.db.ExecContext(ctx, query,
		li.ID, li.UserID, li.Provider, li.ProviderUID, info, li.CreatedAt, li.UpdatedAt)
	if err != nil {
		return nil, mapPostgresError(err)
	}

	return li, nil
}

func (r *PostgresRepository) Update(ctx context.Context, li *models.LinkedIdentity) error {
	info, err := encodeInfo(li.Info)
	if err != nil {
		return err
	}

	query :=
		`UPDATE linked_identities SET provider_uid = $1, info = $2, updated_at = $3
		 WHERE id = $4
		 `
	res, err := r.db.ExecContext(ctx, query, li.ProviderUID, info, li.UpdatedAt, li.ID)
	if err != nil {
		return mapPostgresError(err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM linked_identities WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.LinkedIdentity, error) {
	li := &models.LinkedIdentity{}
	var info []byte

	err := row.Scan(&li.ID, &li.UserID, &li.Provider, &li.ProviderUID, &info, &li.CreatedAt, &li.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if li.Info, err = decodeInfo(info); err != nil {
		return nil, err
	}
	return li, nil
}

func mapPostgresError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", common.ErrorConflict, pgErr.ConstraintName)
	}
	return fmt.Errorf("db error: %w", err)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
