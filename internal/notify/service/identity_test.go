package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	codomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/domain"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	sdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/domain"
)

type fakeSettings struct {
	vals map[string]string
	err  error
}

func (f fakeSettings) GetString(ctx context.Context, key string, companyID *uuid.UUID, def string) (string, error) {
	if f.err != nil {
		return def, f.err
	}
	if v, ok := f.vals[key]; ok {
		return v, nil
	}
	return def, nil
}
func (f fakeSettings) GetDuration(ctx context.Context, key string, companyID *uuid.UUID, def time.Duration) (time.Duration, error) {
	return def, f.err
}
func (f fakeSettings) GetInt(ctx context.Context, key string, companyID *uuid.UUID, def int) (int, error) {
	return def, f.err
}

var _ sdomain.Service = fakeSettings{}

type fakeDirectory struct {
	co  codomain.Company
	err error
}

func (f fakeDirectory) GetByID(ctx context.Context, id uuid.UUID) (codomain.Company, error) {
	return f.co, f.err
}

func testConfig() config.Config {
	cfg, _ := config.Load()
	return cfg
}

func TestResolve_NilCompanyUsesPlatform(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(cfg, fakeSettings{}, fakeDirectory{})
	id := r.Resolve(context.Background(), nil)
	if id.FromAddress != cfg.DefaultFromAddress {
		t.Errorf("from=%q want platform default", id.FromAddress)
	}
	if id.FromName != cfg.DefaultFromName {
		t.Errorf("fromName=%q want platform default", id.FromName)
	}
	if id.RoutingNamespace != cfg.DefaultRoutingNamespace {
		t.Errorf("namespace=%q want platform default", id.RoutingNamespace)
	}
}

func TestResolve_LookupFailureFallsBack(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(cfg, fakeSettings{}, fakeDirectory{err: errors.New("db down")})
	cid := uuid.New()
	id := r.Resolve(context.Background(), &cid)
	if id.FromAddress != cfg.DefaultFromAddress || id.FromName != cfg.DefaultFromName {
		t.Fatalf("expected full platform fallback, got %+v", id)
	}
}

func TestResolve_SettingsErrorNeverPanics(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(cfg, fakeSettings{err: errors.New("settings store down")},
		fakeDirectory{co: codomain.Company{Name: "Acme"}})
	cid := uuid.New()
	id := r.Resolve(context.Background(), &cid)
	if id.FromAddress != cfg.DefaultFromAddress {
		t.Errorf("expected platform from address on settings failure, got %q", id.FromAddress)
	}
	if id.FromName != "Acme" {
		t.Errorf("expected company display name, got %q", id.FromName)
	}
}

func TestResolve_UnverifiedDomainUsesPlatformAddress(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(cfg, fakeSettings{vals: map[string]string{
		sdomain.KeyEmailDomain:       "foo.com",
		sdomain.KeyEmailDomainStatus: "pending",
	}}, fakeDirectory{co: codomain.Company{Name: "Foo"}})
	cid := uuid.New()
	id := r.Resolve(context.Background(), &cid)
	if id.FromAddress != cfg.DefaultFromAddress {
		t.Fatalf("pending domain must not be used: got %q", id.FromAddress)
	}
}

func TestResolve_VerifiedDomainBuildsAddress(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(cfg, fakeSettings{vals: map[string]string{
		sdomain.KeyEmailDomain:           "acme.com",
		sdomain.KeyEmailDomainStatus:     "verified",
		sdomain.KeyEmailRoutingNamespace: "acme-a1b2",
	}}, fakeDirectory{co: codomain.Company{Name: "Acme"}})
	cid := uuid.New()
	id := r.Resolve(context.Background(), &cid)
	if id.FromAddress != "noreply@acme.com" {
		t.Errorf("from=%q want noreply@acme.com (default prefix)", id.FromAddress)
	}
	if id.FromName != "Acme" {
		t.Errorf("fromName=%q", id.FromName)
	}
	if id.RoutingNamespace != "acme-a1b2" {
		t.Errorf("namespace=%q", id.RoutingNamespace)
	}
}

func TestResolve_CustomPrefix(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(cfg, fakeSettings{vals: map[string]string{
		sdomain.KeyEmailDomain:       "acme.com",
		sdomain.KeyEmailDomainStatus: "verified",
		sdomain.KeyEmailDomainPrefix: "alerts",
	}}, fakeDirectory{co: codomain.Company{Name: "Acme"}})
	cid := uuid.New()
	id := r.Resolve(context.Background(), &cid)
	if id.FromAddress != "alerts@acme.com" {
		t.Errorf("from=%q want alerts@acme.com", id.FromAddress)
	}
}

func TestResolve_MissingNamespaceSynthesized(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(cfg, fakeSettings{}, fakeDirectory{co: codomain.Company{Name: "Acme"}})
	cid := uuid.New()
	id := r.Resolve(context.Background(), &cid)
	want := "company-" + cid.String()
	if id.RoutingNamespace != want {
		t.Errorf("namespace=%q want %q", id.RoutingNamespace, want)
	}
}

func TestResolve_FromNameOverride(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(cfg, fakeSettings{vals: map[string]string{
		sdomain.KeyEmailFromName: "Acme Alerts",
	}}, fakeDirectory{co: codomain.Company{Name: "Acme"}})
	cid := uuid.New()
	id := r.Resolve(context.Background(), &cid)
	if id.FromName != "Acme Alerts" {
		t.Errorf("fromName=%q want override", id.FromName)
	}
}
