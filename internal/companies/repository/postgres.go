package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/domain"
)

type PostgresRepository struct {
	pg *pgxpool.Pool
}

func New(pg *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pg: pg}
}

const companyColumns = `id, name, slug, email, phone, website, is_active, created_at, updated_at`

func scanCompany(row interface {
	Scan(dest ...any) error
}) (domain.Company, error) {
	var co domain.Company
	err := row.Scan(&co.ID, &co.Name, &co.Slug, &co.Email, &co.Phone, &co.Website, &co.IsActive, &co.CreatedAt, &co.UpdatedAt)
	return co, err
}

func (r *PostgresRepository) Create(ctx context.Context, co domain.Company) error {
	_, err := r.pg.Exec(ctx,
		`INSERT INTO companies (id, name, slug, email, phone, website, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		co.ID, co.Name, co.Slug, co.Email, co.Phone, co.Website, co.IsActive,
	)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Company, error) {
	return scanCompany(r.pg.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (domain.Company, error) {
	return scanCompany(r.pg.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE slug = $1`, slug))
}

func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, p domain.UpdateParams) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	add := func(col string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}
	add("name", p.Name)
	add("email", p.Email)
	add("phone", p.Phone)
	add("website", p.Website)
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	q := `UPDATE companies SET ` + strings.Join(sets, ", ") + `, updated_at = now() WHERE id = $` + strconv.Itoa(len(args))
	_, err := r.pg.Exec(ctx, q, args...)
	return err
}

func (r *PostgresRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.pg.Exec(ctx,
		`UPDATE companies SET is_active = false, updated_at = now() WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) List(ctx context.Context, query string, active int, limit, offset int32) ([]domain.Company, int64, error) {
	where := `($1 = '' OR name ILIKE '%' || $1 || '%' OR slug ILIKE '%' || $1 || '%')
		AND ($2 = -1 OR ($2 = 1 AND is_active) OR ($2 = 0 AND NOT is_active))`

	rows, err := r.pg.Query(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE `+where+`
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		query, active, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]domain.Company, 0, limit)
	for rows.Next() {
		co, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, co)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pg.QueryRow(ctx,
		`SELECT count(*) FROM companies WHERE `+where, query, active,
	).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
