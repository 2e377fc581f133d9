package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	edomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/email/domain"
)

// Ensure Devlog implements domain.Transport
var _ edomain.Transport = (*Devlog)(nil)

// Devlog logs messages instead of sending them. It is the default transport
// in development so the pipeline can run without provider credentials.
type Devlog struct{}

func NewDevlog() *Devlog { return &Devlog{} }

func (d *Devlog) Send(ctx context.Context, companyID uuid.UUID, msg edomain.Message) (edomain.Result, error) {
	id := "devlog-" + uuid.NewString()
	log.Ctx(ctx).Info().
		Str("company_id", companyID.String()).
		Str("to", msg.To).
		Str("from", msg.From).
		Str("from_name", msg.FromName).
		Str("subject", msg.Subject).
		Str("routing_namespace", msg.RoutingNamespace).
		Int("html_bytes", len(msg.HTML)).
		Str("message_id", id).
		Msg("devlog email")
	return edomain.Result{MessageID: id}, nil
}
