package notify

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	companyrepo "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/repository"
	companysvc "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/service"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	emailsvc "github.com/Dykstra-Hamel/DH-portal-sub000/internal/email/service"
	evsvc "github.com/Dykstra-Hamel/DH-portal-sub000/internal/events/service"
	ctrl "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/controller"
	repo "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/repository"
	svc "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/service"
	rl "github.com/Dykstra-Hamel/DH-portal-sub000/internal/platform/ratelimit"
	settingsrepo "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/repository"
	settingssvc "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/service"
)

// Register wires the notification pipeline and registers HTTP routes.
func Register(e *echo.Echo, pg *pgxpool.Pool, cfg config.Config) {
	settings := settingssvc.New(settingsrepo.New(pg))
	companies := companysvc.New(companyrepo.New(pg))

	transport := emailsvc.NewRouter(settings, cfg)
	resolver := svc.NewResolver(cfg, settings, companies)
	dispatcher := svc.NewDispatcher(transport, cfg)

	pipeline := svc.NewService(cfg, settings, resolver, dispatcher).
		WithAudit(repo.New(pg)).
		WithPublisher(evsvc.NewLogger())

	store := rl.NewRedisStore(cfg)
	c := ctrl.New(pipeline, settings).WithRateLimit(store)
	c.Register(e)
}
