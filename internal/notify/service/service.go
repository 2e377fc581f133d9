package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	evdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/events/domain"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/metrics"
	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/template"
	sdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/domain"
)

// Service orchestrates the notification pipeline: resolve sender identity,
// validate recipients, render, dispatch, aggregate. All collaborators are
// injected so tests can run the whole pipeline with fakes.
type Service struct {
	cfg        config.Config
	settings   sdomain.Service
	resolver   *Resolver
	dispatcher *Dispatcher
	audit      domain.AuditRepository
	pub        evdomain.Publisher
}

func NewService(cfg config.Config, settings sdomain.Service, resolver *Resolver, dispatcher *Dispatcher) *Service {
	return &Service{cfg: cfg, settings: settings, resolver: resolver, dispatcher: dispatcher}
}

// WithAudit injects the audit log repository.
func (s *Service) WithAudit(r domain.AuditRepository) *Service { s.audit = r; return s }

// WithPublisher injects an operational event publisher.
func (s *Service) WithPublisher(p evdomain.Publisher) *Service { s.pub = p; return s }

// SendNotification runs the full pipeline for one event and recipient list.
// The only hard failures are event validation and template rendering; every
// recipient-level problem is reported inside the returned Report instead.
func (s *Service) SendNotification(ctx context.Context, ev domain.Event, recipients []string, companyID *uuid.UUID) (domain.Report, error) {
	start := time.Now()
	templateName := ev.Template()

	if err := ev.Validate(); err != nil {
		return domain.Report{}, err
	}

	identity := s.resolver.Resolve(ctx, companyID)

	rs := ValidateRecipients(recipients)
	metrics.IncInvalidRecipients(len(rs.Invalid))

	pattern, _ := s.settings.GetString(ctx, sdomain.KeyNotifySubjectPrefix+templateName, companyID, "")
	msg, err := template.Render(ev, pattern)
	if err != nil {
		return domain.Report{}, err
	}

	var outcomes []domain.Outcome
	if len(rs.Valid) > 0 {
		cid := uuid.Nil
		if companyID != nil {
			cid = *companyID
		}
		outcomes = s.dispatcher.Dispatch(ctx, cid, identity, rs.Valid, msg, templateName)
	}

	report := Aggregate(rs, outcomes)
	s.recordAudit(ctx, companyID, templateName, msg.Subject, report)
	s.publish(ctx, companyID, templateName, report)
	metrics.ObserveDispatchDuration(templateName, time.Since(start).Seconds())
	return report, nil
}

// recordAudit writes one email_logs row per outcome. Audit failures are
// logged and swallowed; they never fail the send.
func (s *Service) recordAudit(ctx context.Context, companyID *uuid.UUID, templateName, subject string, report domain.Report) {
	if s.audit == nil {
		return
	}
	for _, o := range report.Outcomes {
		status := "failed"
		if o.Success {
			status = "sent"
		}
		l := domain.EmailLog{
			ID:        uuid.New(),
			CompanyID: companyID,
			Template:  templateName,
			Recipient: o.Address,
			Subject:   subject,
			MessageID: o.MessageID,
			Status:    status,
			Error:     o.Error,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.audit.Insert(ctx, l); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("recipient", o.Address).Msg("email audit insert failed")
		}
	}
}

func (s *Service) publish(ctx context.Context, companyID *uuid.UUID, templateName string, report domain.Report) {
	if s.pub == nil {
		return
	}
	typ := "notify.dispatch.success"
	if !report.Success {
		typ = "notify.dispatch.failed"
	}
	cid := uuid.Nil
	if companyID != nil {
		cid = *companyID
	}
	_ = s.pub.Publish(ctx, evdomain.Event{
		Type:      typ,
		CompanyID: cid,
		Meta: map[string]string{
			"template":      templateName,
			"success_count": strconv.Itoa(report.SuccessCount),
			"failure_count": strconv.Itoa(report.FailureCount),
			"invalid_count": strconv.Itoa(len(report.InvalidAddresses)),
		},
		Time: time.Now(),
	})
}

// Preview renders the named template with representative sample data, for
// display in the template editor before real data exists.
func (s *Service) Preview(ctx context.Context, templateName string, companyID *uuid.UUID) (domain.RenderedMessage, error) {
	ev, err := template.SampleEvent(templateName)
	if err != nil {
		return domain.RenderedMessage{}, err
	}
	pattern, _ := s.settings.GetString(ctx, sdomain.KeyNotifySubjectPrefix+templateName, companyID, "")
	return template.Render(ev, pattern)
}
