package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/domain"
)

type service struct {
	repo domain.Repository
}

func New(repo domain.Repository) domain.Service {
	return &service{repo: repo}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a company name into a URL-safe slug ("Acme Pest Co." -> "acme-pest-co").
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func (s *service) Create(ctx context.Context, name, email, phone, website string) (domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Company{}, errors.New("company name is required")
	}
	slug := Slugify(name)
	if slug == "" {
		return domain.Company{}, errors.New("company name must contain letters or digits")
	}
	// Enforce uniqueness by slug
	if _, err := s.repo.GetBySlug(ctx, slug); err == nil {
		return domain.Company{}, errors.New("company name already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Company{}, err
	}

	co := domain.Company{
		ID:       uuid.New(),
		Name:     name,
		Slug:     slug,
		Email:    strings.TrimSpace(email),
		Phone:    strings.TrimSpace(phone),
		Website:  strings.TrimSpace(website),
		IsActive: true,
	}
	if err := s.repo.Create(ctx, co); err != nil {
		return domain.Company{}, err
	}
	return s.repo.GetByID(ctx, co.ID)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (domain.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (domain.Company, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, p domain.UpdateParams) (domain.Company, error) {
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		if v == "" {
			return domain.Company{}, errors.New("company name is required")
		}
		p.Name = &v
	}
	if err := s.repo.Update(ctx, id, p); err != nil {
		return domain.Company{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *service) List(ctx context.Context, opts domain.ListOptions) (domain.ListResult, error) {
	if opts.PageSize <= 0 || opts.PageSize > 100 {
		opts.PageSize = 20
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Active != -1 && opts.Active != 0 && opts.Active != 1 {
		opts.Active = -1
	}
	limit := int32(opts.PageSize)
	offset := int32((opts.Page - 1) * opts.PageSize)

	items, total, err := s.repo.List(ctx, opts.Query, opts.Active, limit, offset)
	if err != nil {
		return domain.ListResult{}, err
	}
	totalPages := int(total) / opts.PageSize
	if int(total)%opts.PageSize != 0 {
		totalPages++
	}
	return domain.ListResult{
		Items:      items,
		Total:      total,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: totalPages,
	}, nil
}
