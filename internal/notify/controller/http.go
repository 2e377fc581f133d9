package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/template"
	rl "github.com/Dykstra-Hamel/DH-portal-sub000/internal/platform/ratelimit"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/platform/validation"
	sdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/domain"
)

// Pipeline is the slice of the notify service the HTTP layer uses, kept as
// an interface so handler tests can run against a fake pipeline.
type Pipeline interface {
	SendNotification(ctx context.Context, ev domain.Event, recipients []string, companyID *uuid.UUID) (domain.Report, error)
	Preview(ctx context.Context, templateName string, companyID *uuid.UUID) (domain.RenderedMessage, error)
}

type Controller struct {
	svc      Pipeline
	settings sdomain.Service
	rlStore  rl.Store
}

func New(svc Pipeline, settings sdomain.Service) *Controller {
	return &Controller{svc: svc, settings: settings}
}

// WithRateLimit injects a shared Store for distributed rate limiting.
func (h *Controller) WithRateLimit(store rl.Store) *Controller { h.rlStore = store; return h }

// Register mounts notification endpoints under /v1.
func (h *Controller) Register(e *echo.Echo) {
	sendDefaultWin := time.Minute
	sendDefaultLim := 30
	previewDefaultWin := time.Minute
	previewDefaultLim := 60

	companyFromQuery := func(c echo.Context) *uuid.UUID {
		if cid, err := uuid.Parse(c.QueryParam("company_id")); err == nil {
			return &cid
		}
		return nil
	}
	sendWinF := func(c echo.Context) time.Duration {
		if d, err := h.settings.GetDuration(c.Request().Context(), sdomain.KeyRLNotifySendWindow, companyFromQuery(c), sendDefaultWin); err == nil {
			return d
		}
		return sendDefaultWin
	}
	sendLimF := func(c echo.Context) int {
		if v, err := h.settings.GetInt(c.Request().Context(), sdomain.KeyRLNotifySendLimit, companyFromQuery(c), sendDefaultLim); err == nil {
			return v
		}
		return sendDefaultLim
	}
	previewWinF := func(c echo.Context) time.Duration {
		if d, err := h.settings.GetDuration(c.Request().Context(), sdomain.KeyRLNotifyPreviewWindow, companyFromQuery(c), previewDefaultWin); err == nil {
			return d
		}
		return previewDefaultWin
	}
	previewLimF := func(c echo.Context) int {
		if v, err := h.settings.GetInt(c.Request().Context(), sdomain.KeyRLNotifyPreviewLimit, companyFromQuery(c), previewDefaultLim); err == nil {
			return v
		}
		return previewDefaultLim
	}

	sendPolicy := rl.Policy{Name: "notify:send", Window: sendDefaultWin, Limit: sendDefaultLim, Key: rl.KeyCompanyOrIP("notify:send"), WindowFunc: sendWinF, LimitFunc: sendLimF}
	previewPolicy := rl.Policy{Name: "notify:preview", Window: previewDefaultWin, Limit: previewDefaultLim, Key: rl.KeyCompanyOrIP("notify:preview"), WindowFunc: previewWinF, LimitFunc: previewLimF}

	var sendRL, previewRL echo.MiddlewareFunc
	if h.rlStore != nil {
		sendRL = rl.MiddlewareWithStore(sendPolicy, h.rlStore)
		previewRL = rl.MiddlewareWithStore(previewPolicy, h.rlStore)
	} else {
		sendRL = rl.Middleware(sendPolicy)
		previewRL = rl.Middleware(previewPolicy)
	}

	e.POST("/v1/notifications", h.sendNotification, sendRL)
	e.POST("/v1/templates/preview", h.previewTemplate, previewRL)
	e.POST("/v1/templates/variables", h.extractVariables, previewRL)
}

type sendRequest struct {
	Template   string          `json:"template" validate:"required"`
	CompanyID  *string         `json:"company_id"`
	Recipients []string        `json:"recipients" validate:"required,min=1"`
	Event      json.RawMessage `json:"event" validate:"required"`
}

func (h *Controller) sendNotification(c echo.Context) error {
	var req sendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	var companyID *uuid.UUID
	if req.CompanyID != nil && *req.CompanyID != "" {
		cid, err := uuid.Parse(*req.CompanyID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid company_id"})
		}
		companyID = &cid
	}
	ev, err := domain.DecodeEvent(req.Template, req.Event)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	report, err := h.svc.SendNotification(c.Request().Context(), ev, req.Recipients, companyID)
	if err != nil {
		// Rendering/validation is the only hard failure class.
		if errors.Is(err, domain.ErrUnknownTemplate) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	// Every address invalid: client error with the invalid list. Transport
	// failures for valid addresses still answer 200 with success=false.
	if report.SuccessCount == 0 && len(report.InvalidAddresses) == len(report.Outcomes) && len(report.Outcomes) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":             "no valid recipients",
			"invalid_addresses": report.InvalidAddresses,
		})
	}
	return c.JSON(http.StatusOK, report)
}

type previewRequest struct {
	Template  string  `json:"template" validate:"required"`
	CompanyID *string `json:"company_id"`
}

type previewResponse struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (h *Controller) previewTemplate(c echo.Context) error {
	var req previewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	var companyID *uuid.UUID
	if req.CompanyID != nil && *req.CompanyID != "" {
		cid, err := uuid.Parse(*req.CompanyID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid company_id"})
		}
		companyID = &cid
	}
	msg, err := h.svc.Preview(c.Request().Context(), req.Template, companyID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, previewResponse{Subject: msg.Subject, HTML: msg.HTML})
}

type variablesRequest struct {
	Text string `json:"text" validate:"required"`
}

type variablesResponse struct {
	Variables    []string          `json:"variables"`
	SampleValues map[string]string `json:"sample_values"`
}

func (h *Controller) extractVariables(c echo.Context) error {
	var req variablesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	vars := template.ExtractVariables(req.Text)
	samples := make(map[string]string, len(vars))
	all := template.SampleValues()
	for _, v := range vars {
		if s, ok := all[v]; ok {
			samples[v] = s
		}
	}
	return c.JSON(http.StatusOK, variablesResponse{Variables: vars, SampleValues: samples})
}
