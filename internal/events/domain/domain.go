package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event represents an operational/audit event.
// Type examples: "notify.dispatch.success", "notify.dispatch.failed"
// Meta may contain template, recipient counts, fallback reason, etc.
type Event struct {
	Type      string
	CompanyID uuid.UUID
	Meta      map[string]string
	Time      time.Time
}

// Publisher publishes events to an external system (log, queue, etc.).
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
