package companies

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	ctrl "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/controller"
	repo "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/repository"
	svc "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/service"
)

// Register wires the companies module and registers HTTP routes.
func Register(e *echo.Echo, pg *pgxpool.Pool) {
	r := repo.New(pg)
	s := svc.New(r)
	c := ctrl.New(s)
	c.Register(e)
}
