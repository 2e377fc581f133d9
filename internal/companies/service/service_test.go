package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/domain"
)

type mockRepo struct {
	items   []domain.Company
	total   int64
	created *domain.Company
}

func (m *mockRepo) Create(ctx context.Context, co domain.Company) error {
	m.created = &co
	return nil
}
func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Company, error) {
	if m.created != nil && m.created.ID == id {
		return *m.created, nil
	}
	return domain.Company{}, pgx.ErrNoRows
}
func (m *mockRepo) GetBySlug(ctx context.Context, slug string) (domain.Company, error) {
	for _, co := range m.items {
		if co.Slug == slug {
			return co, nil
		}
	}
	return domain.Company{}, pgx.ErrNoRows
}
func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, p domain.UpdateParams) error { return nil }
func (m *mockRepo) Deactivate(ctx context.Context, id uuid.UUID) error                    { return nil }
func (m *mockRepo) List(ctx context.Context, query string, active int, limit, offset int32) ([]domain.Company, int64, error) {
	return m.items, m.total, nil
}

func TestServiceList_DefaultsAndPagination(t *testing.T) {
	m := &mockRepo{
		items: []domain.Company{
			{Name: "a"}, {Name: "b"},
		},
		total: 42,
	}
	s := New(m)

	res, err := s.List(context.Background(), domain.ListOptions{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if res.Page != 1 {
		t.Errorf("expected Page=1 got %d", res.Page)
	}
	if res.PageSize != 20 {
		t.Errorf("expected PageSize=20 got %d", res.PageSize)
	}
	if res.Total != 42 {
		t.Errorf("expected Total=42 got %d", res.Total)
	}
	if res.TotalPages != 3 {
		t.Errorf("expected TotalPages=3 got %d", res.TotalPages)
	}
	if len(res.Items) != 2 {
		t.Errorf("expected Items len=2 got %d", len(res.Items))
	}
}

func TestServiceList_NormalizesActive(t *testing.T) {
	m := &mockRepo{}
	s := New(m)
	_, err := s.List(context.Background(), domain.ListOptions{Active: 99, Page: 0, PageSize: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceCreate_SlugAndUniqueness(t *testing.T) {
	m := &mockRepo{items: []domain.Company{{Slug: "acme-pest-co"}}}
	s := New(m)

	if _, err := s.Create(context.Background(), "Acme Pest Co.", "", "", ""); err == nil {
		t.Fatalf("expected duplicate slug error")
	}

	co, err := s.Create(context.Background(), "Brook Field Exterminators", "ops@brookfield.example", "", "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if co.Slug != "brook-field-exterminators" {
		t.Errorf("unexpected slug %q", co.Slug)
	}
	if !co.IsActive {
		t.Errorf("expected new company to be active")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Pest Co.":  "acme-pest-co",
		"  A&B  PEST  ":  "a-b-pest",
		"---":            "",
		"Already-Sluggy": "already-sluggy",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q)=%q want %q", in, got, want)
		}
	}
}
