package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	edomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/email/domain"
	sdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/domain"
)

// Ensure Router implements domain.Transport
var _ edomain.Transport = (*Router)(nil)

type Router struct {
	cfg      config.Config
	settings sdomain.Service
	ses      edomain.Transport
	smtp     edomain.Transport
	devlog   edomain.Transport
}

func NewRouter(settings sdomain.Service, cfg config.Config) *Router {
	return &Router{
		cfg:      cfg,
		settings: settings,
		ses:      NewSES(cfg),
		smtp:     NewSMTP(settings, cfg),
		devlog:   NewDevlog(),
	}
}

func (r *Router) Send(ctx context.Context, companyID uuid.UUID, msg edomain.Message) (edomain.Result, error) {
	prov, _ := r.settings.GetString(ctx, sdomain.KeyEmailProvider, &companyID, r.cfg.EmailProvider)
	switch strings.ToLower(prov) {
	case "ses":
		return r.ses.Send(ctx, companyID, msg)
	case "smtp":
		return r.smtp.Send(ctx, companyID, msg)
	default:
		return r.devlog.Send(ctx, companyID, msg)
	}
}
