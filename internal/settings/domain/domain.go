package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides typed access to application/company settings with override.
type Service interface {
	GetString(ctx context.Context, key string, companyID *uuid.UUID, def string) (string, error)
	GetDuration(ctx context.Context, key string, companyID *uuid.UUID, def time.Duration) (time.Duration, error)
	GetInt(ctx context.Context, key string, companyID *uuid.UUID, def int) (int, error)
}

// Repository abstracts storage of app settings.
type Repository interface {
	// Get returns (value, found, err) for an exact key and optional company.
	Get(ctx context.Context, key string, companyID *uuid.UUID) (string, bool, error)
	// Upsert stores a key for an optional company.
	Upsert(ctx context.Context, key string, companyID *uuid.UUID, value string, secret bool) error
}

// Common keys
const (
	// Sending identity. A company sends from its own domain only once the
	// domain has been verified ("verified"); anything else falls back to the
	// platform identity.
	KeyEmailDomain           = "email.domain"
	KeyEmailDomainStatus     = "email.domain_status" // values: pending | verified | failed
	KeyEmailDomainPrefix     = "email.domain_prefix" // local part, default "noreply"
	KeyEmailRoutingNamespace = "email.routing_namespace"
	KeyEmailFromName         = "email.from_name"

	// Transport selection and SMTP credentials.
	KeyEmailProvider = "email.provider" // values: ses | smtp | devlog
	KeySMTPHost      = "email.smtp.host"
	KeySMTPPort      = "email.smtp.port"
	KeySMTPUsername  = "email.smtp.username"
	KeySMTPPassword  = "email.smtp.password"

	// KeyNotifySubjectPrefix + template name overrides the default subject
	// line for that template (e.g. "notify.subject.lead-created").
	KeyNotifySubjectPrefix = "notify.subject."
)

// Rate limiting keys (per-endpoint). All are optional and support company
// overrides. Windows use Go duration strings (e.g., "1m", "10s").
const (
	KeyRLNotifySendLimit     = "notify.ratelimit.send.limit"
	KeyRLNotifySendWindow    = "notify.ratelimit.send.window"
	KeyRLNotifyPreviewLimit  = "notify.ratelimit.preview.limit"
	KeyRLNotifyPreviewWindow = "notify.ratelimit.preview.window"
)

// Settings API rate limiting keys (optional, support company overrides).
const (
	// GET /v1/companies/:id/settings
	KeyRLSettingsGetLimit  = "settings.ratelimit.get.limit"
	KeyRLSettingsGetWindow = "settings.ratelimit.get.window"
	// PUT /v1/companies/:id/settings
	KeyRLSettingsPutLimit  = "settings.ratelimit.put.limit"
	KeyRLSettingsPutWindow = "settings.ratelimit.put.window"
)
