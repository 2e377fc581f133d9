package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	codomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/domain"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/metrics"
	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
	sdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/domain"
)

// CompanyDirectory is the slice of the companies service the resolver needs.
type CompanyDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (codomain.Company, error)
}

// Resolver computes the sending identity for one dispatch. It never returns
// an error: any configuration problem degrades to the platform identity so a
// notification attempt is never aborted over missing company configuration.
type Resolver struct {
	cfg       config.Config
	settings  sdomain.Service
	companies CompanyDirectory
}

func NewResolver(cfg config.Config, settings sdomain.Service, companies CompanyDirectory) *Resolver {
	return &Resolver{cfg: cfg, settings: settings, companies: companies}
}

func (r *Resolver) platform() domain.SenderIdentity {
	return domain.SenderIdentity{
		FromAddress:      r.cfg.DefaultFromAddress,
		FromName:         r.cfg.DefaultFromName,
		RoutingNamespace: r.cfg.DefaultRoutingNamespace,
	}
}

// Resolve derives the sender identity for a company. A nil companyID returns
// the platform identity without any lookup. The identity is recomputed per
// send; it is never cached or persisted.
func (r *Resolver) Resolve(ctx context.Context, companyID *uuid.UUID) domain.SenderIdentity {
	if companyID == nil {
		metrics.IncIdentityFallback("no_company")
		return r.platform()
	}
	id := *companyID

	ident := r.platform()

	co, err := r.companies.GetByID(ctx, id)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("company_id", id.String()).
			Msg("company lookup failed, using platform sender identity")
		metrics.IncIdentityFallback("lookup_failed")
		return ident
	}
	if co.Name != "" {
		ident.FromName = co.Name
	}
	if v, _ := r.settings.GetString(ctx, sdomain.KeyEmailFromName, &id, ""); v != "" {
		ident.FromName = v
	}

	// A company sends from its own domain only once verification completed.
	dom, _ := r.settings.GetString(ctx, sdomain.KeyEmailDomain, &id, "")
	status, _ := r.settings.GetString(ctx, sdomain.KeyEmailDomainStatus, &id, "")
	if dom != "" && status == "verified" {
		prefix, _ := r.settings.GetString(ctx, sdomain.KeyEmailDomainPrefix, &id, "noreply")
		ident.FromAddress = prefix + "@" + dom
	} else if dom != "" {
		log.Ctx(ctx).Warn().Str("company_id", id.String()).Str("domain", dom).Str("status", status).
			Msg("sending domain not verified, using platform from address")
		metrics.IncIdentityFallback("unverified_domain")
	}

	ns, _ := r.settings.GetString(ctx, sdomain.KeyEmailRoutingNamespace, &id, "")
	if ns != "" {
		ident.RoutingNamespace = ns
	} else {
		// Legacy compatibility: synthesize a namespace from the company id so
		// sends still work for companies provisioned before namespaces existed.
		ident.RoutingNamespace = "company-" + id.String()
		log.Ctx(ctx).Warn().Str("company_id", id.String()).Str("routing_namespace", ident.RoutingNamespace).
			Msg("no routing namespace provisioned, synthesizing legacy fallback")
		metrics.IncIdentityFallback("missing_namespace")
	}

	return ident
}
