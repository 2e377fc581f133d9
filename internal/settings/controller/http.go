package controller

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	evdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/events/domain"
	rl "github.com/Dykstra-Hamel/DH-portal-sub000/internal/platform/ratelimit"
	sdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/domain"
)

// Controller exposes company-scoped settings management endpoints.
// It intentionally supports a whitelist of keys required for email sending.
type Controller struct {
	repo    sdomain.Repository
	service sdomain.Service
	// Injected concerns
	rlStore rl.Store
	pub     evdomain.Publisher
}

func New(repo sdomain.Repository, service sdomain.Service) *Controller {
	return &Controller{repo: repo, service: service}
}

// Register mounts settings endpoints under /v1.
func (h *Controller) Register(e *echo.Echo) {
	// Build rate limit middlewares (company-scoped) with dynamic overrides from settings service.
	// Defaults: GET 60/min, PUT 10/min
	getDefaultWin := time.Minute
	getDefaultLim := 60
	putDefaultWin := time.Minute
	putDefaultLim := 10

	mkKey := func(prefix string) func(echo.Context) string {
		return func(c echo.Context) string { return prefix + ":co:" + c.Param("id") }
	}
	getWinF := func(c echo.Context) time.Duration {
		if cid, err := uuid.Parse(c.Param("id")); err == nil {
			if d, err := h.service.GetDuration(c.Request().Context(), sdomain.KeyRLSettingsGetWindow, &cid, getDefaultWin); err == nil {
				return d
			}
		}
		return getDefaultWin
	}
	getLimF := func(c echo.Context) int {
		if cid, err := uuid.Parse(c.Param("id")); err == nil {
			if v, err := h.service.GetInt(c.Request().Context(), sdomain.KeyRLSettingsGetLimit, &cid, getDefaultLim); err == nil {
				return v
			}
		}
		return getDefaultLim
	}
	putWinF := func(c echo.Context) time.Duration {
		if cid, err := uuid.Parse(c.Param("id")); err == nil {
			if d, err := h.service.GetDuration(c.Request().Context(), sdomain.KeyRLSettingsPutWindow, &cid, putDefaultWin); err == nil {
				return d
			}
		}
		return putDefaultWin
	}
	putLimF := func(c echo.Context) int {
		if cid, err := uuid.Parse(c.Param("id")); err == nil {
			if v, err := h.service.GetInt(c.Request().Context(), sdomain.KeyRLSettingsPutLimit, &cid, putDefaultLim); err == nil {
				return v
			}
		}
		return putDefaultLim
	}

	getPolicy := rl.Policy{Name: "settings:get", Window: getDefaultWin, Limit: getDefaultLim, Key: mkKey("settings:get"), WindowFunc: getWinF, LimitFunc: getLimF}
	putPolicy := rl.Policy{Name: "settings:put", Window: putDefaultWin, Limit: putDefaultLim, Key: mkKey("settings:put"), WindowFunc: putWinF, LimitFunc: putLimF}

	var getRL echo.MiddlewareFunc
	var putRL echo.MiddlewareFunc
	if h.rlStore != nil {
		getRL = rl.MiddlewareWithStore(getPolicy, h.rlStore)
		putRL = rl.MiddlewareWithStore(putPolicy, h.rlStore)
	} else {
		getRL = rl.Middleware(getPolicy)
		putRL = rl.Middleware(putPolicy)
	}

	e.GET("/v1/companies/:id/settings", h.getCompanySettings, getRL)
	e.PUT("/v1/companies/:id/settings", h.putCompanySettings, putRL)
}

// WithRateLimit injects a shared Store for distributed rate limiting.
func (h *Controller) WithRateLimit(store rl.Store) *Controller { h.rlStore = store; return h }

// WithPublisher injects an audit event publisher.
func (h *Controller) WithPublisher(p evdomain.Publisher) *Controller { h.pub = p; return h }

type settingsResponse struct {
	// Sending identity
	EmailDomain           string `json:"email_domain"`
	EmailDomainStatus     string `json:"email_domain_status"`
	EmailDomainPrefix     string `json:"email_domain_prefix"`
	EmailRoutingNamespace string `json:"email_routing_namespace"`
	EmailFromName         string `json:"email_from_name"`
	// Transport
	EmailProvider string `json:"email_provider"`
	SMTPHost      string `json:"smtp_host,omitempty"`
	SMTPPort      string `json:"smtp_port,omitempty"`
	SMTPUsername  string `json:"smtp_username,omitempty"`
	SMTPPassword  string `json:"smtp_password,omitempty"` // masked
}

type putSettingsRequest struct {
	EmailDomain           *string `json:"email_domain"`
	EmailDomainStatus     *string `json:"email_domain_status"`
	EmailDomainPrefix     *string `json:"email_domain_prefix"`
	EmailRoutingNamespace *string `json:"email_routing_namespace"`
	EmailFromName         *string `json:"email_from_name"`
	EmailProvider         *string `json:"email_provider"`
	SMTPHost              *string `json:"smtp_host"`
	SMTPPort              *string `json:"smtp_port"`
	SMTPUsername          *string `json:"smtp_username"`
	SMTPPassword          *string `json:"smtp_password"`
}

var (
	domainRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*(\.[a-zA-Z0-9][a-zA-Z0-9-]*)+$`)
	prefixRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

func (h *Controller) getCompanySettings(c echo.Context) error {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	// Use typed getters with empty defaults
	dom, _ := h.service.GetString(ctx, sdomain.KeyEmailDomain, &id, "")
	status, _ := h.service.GetString(ctx, sdomain.KeyEmailDomainStatus, &id, "")
	prefix, _ := h.service.GetString(ctx, sdomain.KeyEmailDomainPrefix, &id, "")
	ns, _ := h.service.GetString(ctx, sdomain.KeyEmailRoutingNamespace, &id, "")
	fromName, _ := h.service.GetString(ctx, sdomain.KeyEmailFromName, &id, "")
	provider, _ := h.service.GetString(ctx, sdomain.KeyEmailProvider, &id, "")
	smtpHost, _ := h.service.GetString(ctx, sdomain.KeySMTPHost, &id, "")
	smtpPort, _ := h.service.GetString(ctx, sdomain.KeySMTPPort, &id, "")
	smtpUser, _ := h.service.GetString(ctx, sdomain.KeySMTPUsername, &id, "")
	smtpPass, _ := h.service.GetString(ctx, sdomain.KeySMTPPassword, &id, "")
	// Mask secrets if present
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		if len(s) <= 4 {
			return "****"
		}
		return "****" + s[len(s)-4:]
	}
	resp := settingsResponse{
		EmailDomain:           dom,
		EmailDomainStatus:     status,
		EmailDomainPrefix:     prefix,
		EmailRoutingNamespace: ns,
		EmailFromName:         fromName,
		EmailProvider:         provider,
		SMTPHost:              smtpHost,
		SMTPPort:              smtpPort,
		SMTPUsername:          smtpUser,
		SMTPPassword:          mask(smtpPass),
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Controller) putCompanySettings(c echo.Context) error {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req putSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	ctx := c.Request().Context()
	// Validate inputs
	if req.EmailDomain != nil {
		v := strings.ToLower(strings.TrimSpace(*req.EmailDomain))
		if v != "" && !domainRe.MatchString(v) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid email_domain"})
		}
	}
	if req.EmailDomainStatus != nil {
		v := strings.ToLower(strings.TrimSpace(*req.EmailDomainStatus))
		if v != "" && v != "pending" && v != "verified" && v != "failed" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid email_domain_status"})
		}
	}
	if req.EmailDomainPrefix != nil {
		v := strings.TrimSpace(*req.EmailDomainPrefix)
		if v != "" && !prefixRe.MatchString(v) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid email_domain_prefix"})
		}
	}
	if req.EmailProvider != nil {
		v := strings.ToLower(strings.TrimSpace(*req.EmailProvider))
		if v != "" && v != "ses" && v != "smtp" && v != "devlog" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid email_provider"})
		}
	}
	if req.SMTPPort != nil {
		v := strings.TrimSpace(*req.SMTPPort)
		if v != "" {
			if n, err := strconv.Atoi(v); err != nil || n <= 0 || n > 65535 {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid smtp_port"})
			}
		}
	}

	// Upsert allowed keys and track changes
	type kv struct {
		key    string
		val    *string
		secret bool
		lower  bool
	}
	updates := []kv{
		{sdomain.KeyEmailDomain, req.EmailDomain, false, true},
		{sdomain.KeyEmailDomainStatus, req.EmailDomainStatus, false, true},
		{sdomain.KeyEmailDomainPrefix, req.EmailDomainPrefix, false, false},
		{sdomain.KeyEmailRoutingNamespace, req.EmailRoutingNamespace, false, false},
		{sdomain.KeyEmailFromName, req.EmailFromName, false, false},
		{sdomain.KeyEmailProvider, req.EmailProvider, false, true},
		{sdomain.KeySMTPHost, req.SMTPHost, false, false},
		{sdomain.KeySMTPPort, req.SMTPPort, false, false},
		{sdomain.KeySMTPUsername, req.SMTPUsername, false, false},
		{sdomain.KeySMTPPassword, req.SMTPPassword, true, false},
	}
	changed := make([]string, 0, len(updates))
	for _, u := range updates {
		if u.val == nil {
			continue
		}
		v := strings.TrimSpace(*u.val)
		if u.lower {
			v = strings.ToLower(v)
		}
		if err := h.repo.Upsert(ctx, u.key, &id, v, u.secret); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		changed = append(changed, u.key)
	}
	// Publish audit event (redact secrets)
	if h.pub != nil && len(changed) > 0 {
		meta := map[string]string{
			"changed": strings.Join(changed, ","),
		}
		if req.SMTPPassword != nil {
			meta[sdomain.KeySMTPPassword] = "redacted"
		}
		_ = h.pub.Publish(ctx, evdomain.Event{Type: "settings.update.success", CompanyID: id, Meta: meta, Time: time.Now()})
	}
	return c.NoContent(http.StatusNoContent)
}
