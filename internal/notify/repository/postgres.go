package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
)

type PostgresRepository struct{ pg *pgxpool.Pool }

func New(pg *pgxpool.Pool) *PostgresRepository { return &PostgresRepository{pg: pg} }

// Insert writes one audit row. Callers treat failures as non-critical.
func (r *PostgresRepository) Insert(ctx context.Context, l domain.EmailLog) error {
	_, err := r.pg.Exec(ctx,
		`INSERT INTO email_logs (id, company_id, template, recipient, subject, message_id, status, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.CompanyID, l.Template, l.Recipient, l.Subject, l.MessageID, l.Status, l.Error, l.CreatedAt,
	)
	return err
}
