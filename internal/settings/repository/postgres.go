package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct{ pg *pgxpool.Pool }

func New(pg *pgxpool.Pool) *PostgresRepository { return &PostgresRepository{pg: pg} }

// Get resolves a key with company override first, then the global row.
func (r *PostgresRepository) Get(ctx context.Context, key string, companyID *uuid.UUID) (string, bool, error) {
	if companyID != nil {
		var v string
		err := r.pg.QueryRow(ctx,
			`SELECT value FROM app_settings WHERE key = $1 AND company_id = $2`,
			key, *companyID,
		).Scan(&v)
		if err == nil {
			return v, true, nil
		}
		if err != pgx.ErrNoRows {
			return "", false, err
		}
	}
	var v string
	err := r.pg.QueryRow(ctx,
		`SELECT value FROM app_settings WHERE key = $1 AND company_id IS NULL`,
		key,
	).Scan(&v)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, key string, companyID *uuid.UUID, value string, secret bool) error {
	if companyID != nil {
		_, err := r.pg.Exec(ctx,
			`INSERT INTO app_settings (id, company_id, key, value, is_secret)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (company_id, key) WHERE company_id IS NOT NULL
			 DO UPDATE SET value = EXCLUDED.value, is_secret = EXCLUDED.is_secret, updated_at = now()`,
			uuid.New(), *companyID, key, value, secret,
		)
		return err
	}
	_, err := r.pg.Exec(ctx,
		`INSERT INTO app_settings (id, company_id, key, value, is_secret)
		 VALUES ($1, NULL, $2, $3, $4)
		 ON CONFLICT (key) WHERE company_id IS NULL
		 DO UPDATE SET value = EXCLUDED.value, is_secret = EXCLUDED.is_secret, updated_at = now()`,
		uuid.New(), key, value, secret,
	)
	return err
}
