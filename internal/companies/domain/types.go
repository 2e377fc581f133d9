package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Company is a tenant of the platform. Slug is a URL-safe identifier derived
// from the name; it also seeds the email routing namespace.
type Company struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Email     string
	Phone     string
	Website   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListOptions for company listing
type ListOptions struct {
	Query    string
	Active   int // -1 any, 1 active, 0 inactive
	Page     int
	PageSize int
}

// ListResult holds items and pagination metadata
type ListResult struct {
	Items      []Company
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// UpdateParams carries optional field updates; nil means leave unchanged.
type UpdateParams struct {
	Name    *string
	Email   *string
	Phone   *string
	Website *string
}

// Repository abstracts persistence for companies.
type Repository interface {
	Create(ctx context.Context, co Company) error
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	GetBySlug(ctx context.Context, slug string) (Company, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateParams) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query string, active int, limit, offset int32) ([]Company, int64, error)
}

// Service encapsulates business logic for companies.
type Service interface {
	Create(ctx context.Context, name, email, phone, website string) (Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	GetBySlug(ctx context.Context, slug string) (Company, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateParams) (Company, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, opts ListOptions) (ListResult, error)
}
