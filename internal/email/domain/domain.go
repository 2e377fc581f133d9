package domain

import (
	"context"

	"github.com/google/uuid"
)

// Message is a fully resolved outbound email. From/FromName and
// RoutingNamespace come from the sender identity resolution, so transports
// never consult company settings for identity themselves.
type Message struct {
	// RoutingNamespace segments sending reputation at the provider
	// (SES tenant name). Empty means the provider default.
	RoutingNamespace string
	From             string
	FromName         string
	To               string
	Subject          string
	HTML             string
	Text             string
	// Tags are provider message tags for downstream event attribution.
	Tags map[string]string
}

// Result reports a successful send.
type Result struct {
	MessageID string
}

// Transport is a pluggable email sending interface supporting per-company overrides.
// companyID is required to allow per-company routing/config; use uuid.Nil for global.
type Transport interface {
	Send(ctx context.Context, companyID uuid.UUID, msg Message) (Result, error)
}
