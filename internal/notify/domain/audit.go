package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmailLog is one audit row per dispatch attempt. Audit writes are
// non-critical: a failed insert never fails the send.
type EmailLog struct {
	ID        uuid.UUID
	CompanyID *uuid.UUID
	Template  string
	Recipient string
	Subject   string
	MessageID string
	Status    string // sent | failed
	Error     string
	CreatedAt time.Time
}

// AuditRepository persists dispatch outcomes for the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, l EmailLog) error
}
