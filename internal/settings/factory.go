package settings

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	evsvc "github.com/Dykstra-Hamel/DH-portal-sub000/internal/events/service"
	rl "github.com/Dykstra-Hamel/DH-portal-sub000/internal/platform/ratelimit"
	ctrl "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/controller"
	repo "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/repository"
	svc "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/service"
)

// Register wires the settings module and registers HTTP routes.
func Register(e *echo.Echo, pg *pgxpool.Pool, cfg config.Config) {
	r := repo.New(pg)
	s := svc.New(r)
	c := ctrl.New(r, s)

	store := rl.NewRedisStore(cfg)
	pub := evsvc.NewLogger()

	c.WithRateLimit(store).WithPublisher(pub)
	c.Register(e)
}
