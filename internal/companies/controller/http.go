package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/domain"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/platform/validation"
)

type Controller struct {
	svc domain.Service
}

func New(svc domain.Service) *Controller {
	return &Controller{svc: svc}
}

func (h *Controller) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	h.RegisterV1(g)
}

func (h *Controller) RegisterV1(g *echo.Group) {
	g.POST("/companies", h.createCompany)
	g.GET("/companies/:id", h.getCompanyByID)
	g.GET("/companies/by-slug/:slug", h.getCompanyBySlug)
	g.PUT("/companies/:id", h.updateCompany)
	g.PATCH("/companies/:id/deactivate", h.deactivateCompany)
	g.GET("/companies", h.listCompanies)
}

type createCompanyReq struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Website string `json:"website" validate:"omitempty,url"`
}

type updateCompanyReq struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Website *string `json:"website" validate:"omitempty,url"`
}

type companyResp struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Website   string `json:"website,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func toResp(co domain.Company) companyResp {
	r := companyResp{
		ID:       co.ID.String(),
		Name:     co.Name,
		Slug:     co.Slug,
		Email:    co.Email,
		Phone:    co.Phone,
		Website:  co.Website,
		IsActive: co.IsActive,
	}
	if !co.CreatedAt.IsZero() {
		r.CreatedAt = co.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !co.UpdatedAt.IsZero() {
		r.UpdatedAt = co.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return r
}

func (h *Controller) createCompany(c echo.Context) error {
	var req createCompanyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	co, err := h.svc.Create(c.Request().Context(), req.Name, req.Email, req.Phone, req.Website)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, toResp(co))
}

func (h *Controller) getCompanyByID(c echo.Context) error {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	co, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, toResp(co))
}

func (h *Controller) getCompanyBySlug(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "slug required"})
	}
	co, err := h.svc.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, toResp(co))
}

func (h *Controller) updateCompany(c echo.Context) error {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req updateCompanyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	co, err := h.svc.Update(c.Request().Context(), id, domain.UpdateParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Website: req.Website,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, toResp(co))
}

func (h *Controller) deactivateCompany(c echo.Context) error {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.svc.Deactivate(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

type listQuery struct {
	Q        string `query:"q"`
	Active   int    `query:"active"` // -1 any, 1 active, 0 inactive
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

type listResponse struct {
	Items      []companyResp `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

func (h *Controller) listCompanies(c echo.Context) error {
	// Allow both query binding and manual fallback to avoid validation dependence
	q := listQuery{Active: -1}
	if err := c.Bind(&q); err != nil {
		// fallback manual parse
		q.Q = c.QueryParam("q")
		if a := c.QueryParam("active"); a != "" {
			if v, err := strconv.Atoi(a); err == nil {
				q.Active = v
			}
		}
		if p := c.QueryParam("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil {
				q.Page = v
			}
		}
		if ps := c.QueryParam("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil {
				q.PageSize = v
			}
		}
	}

	res, err := h.svc.List(c.Request().Context(), domain.ListOptions{
		Query:    q.Q,
		Active:   q.Active,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	items := make([]companyResp, 0, len(res.Items))
	for _, co := range res.Items {
		items = append(items, toResp(co))
	}
	return c.JSON(http.StatusOK, listResponse{
		Items:      items,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	})
}
