package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	codomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/companies/domain"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	evdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/events/domain"
	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
)

type captureAudit struct {
	mu   sync.Mutex
	logs []domain.EmailLog
	err  error
}

func (a *captureAudit) Insert(ctx context.Context, l domain.EmailLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logs = append(a.logs, l)
	return a.err
}

type capturePublisher struct{ events []evdomain.Event }

func (p *capturePublisher) Publish(ctx context.Context, e evdomain.Event) error {
	p.events = append(p.events, e)
	return nil
}

func newTestService(t *testing.T, ft *fakeTransport) (*Service, *captureAudit, *capturePublisher) {
	t.Helper()
	cfg, _ := config.Load()
	settings := fakeSettings{}
	resolver := NewResolver(cfg, settings, fakeDirectory{})
	dispatcher := NewDispatcher(ft, cfg)
	audit := &captureAudit{}
	pub := &capturePublisher{}
	s := NewService(cfg, settings, resolver, dispatcher).WithAudit(audit).WithPublisher(pub)
	return s, audit, pub
}

func leadEvent() domain.Event {
	return domain.LeadCreated{CustomerName: "Jane", CompanyName: "Acme", EstimatedValue: 450}
}

func TestSendNotification_AllValidAllSucceed(t *testing.T) {
	s, audit, pub := newTestService(t, &fakeTransport{})

	report, err := s.SendNotification(context.Background(), leadEvent(), []string{"a@x.com", "b@x.com"}, nil)
	if err != nil {
		t.Fatalf("SendNotification returned error: %v", err)
	}
	if report.SuccessCount != 2 || report.FailureCount != 0 || !report.Success {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.InvalidAddresses) != 0 {
		t.Errorf("invalid=%v", report.InvalidAddresses)
	}
	if len(audit.logs) != 2 {
		t.Errorf("expected 2 audit rows, got %d", len(audit.logs))
	}
	if len(pub.events) != 1 || pub.events[0].Type != "notify.dispatch.success" {
		t.Errorf("events=%+v", pub.events)
	}
}

func TestSendNotification_MixedValidity(t *testing.T) {
	s, _, _ := newTestService(t, &fakeTransport{})

	report, err := s.SendNotification(context.Background(), leadEvent(), []string{"a@x.com", "not-an-email"}, nil)
	if err != nil {
		t.Fatalf("SendNotification returned error: %v", err)
	}
	if len(report.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(report.Outcomes))
	}
	if report.SuccessCount != 1 || report.FailureCount != 1 {
		t.Errorf("counts=%d/%d", report.SuccessCount, report.FailureCount)
	}
	if len(report.InvalidAddresses) != 1 || report.InvalidAddresses[0] != "not-an-email" {
		t.Errorf("invalid=%v", report.InvalidAddresses)
	}
}

func TestSendNotification_PartialTransportFailure(t *testing.T) {
	ft := &fakeTransport{failFor: map[string]error{"b@x.com": errors.New("bounce")}}
	s, audit, _ := newTestService(t, ft)

	report, err := s.SendNotification(context.Background(), leadEvent(), []string{"a@x.com", "b@x.com"}, nil)
	if err != nil {
		t.Fatalf("SendNotification returned error: %v", err)
	}
	if report.SuccessCount != 1 || report.FailureCount != 1 || !report.Success {
		t.Fatalf("unexpected report: %+v", report)
	}
	var failed int
	for _, l := range audit.logs {
		if l.Status == "failed" {
			failed++
			if l.Error == "" {
				t.Errorf("failed audit row missing error")
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed audit row, got %d", failed)
	}
}

func TestSendNotification_AuditFailureDoesNotFailSend(t *testing.T) {
	s, audit, _ := newTestService(t, &fakeTransport{})
	audit.err = errors.New("audit table missing")

	report, err := s.SendNotification(context.Background(), leadEvent(), []string{"a@x.com"}, nil)
	if err != nil {
		t.Fatalf("audit failure must not fail the send: %v", err)
	}
	if !report.Success {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestSendNotification_InvalidEventIsHardFailure(t *testing.T) {
	s, _, _ := newTestService(t, &fakeTransport{})

	_, err := s.SendNotification(context.Background(), domain.LeadCreated{CompanyName: "Acme"}, []string{"a@x.com"}, nil)
	if err == nil {
		t.Fatalf("expected validation error for missing customer name")
	}
}

func TestSendNotification_CompanyScopedIdentity(t *testing.T) {
	ft := &fakeTransport{}
	cfg, _ := config.Load()
	settings := fakeSettings{vals: map[string]string{
		"email.domain":        "acme.com",
		"email.domain_status": "verified",
	}}
	resolver := NewResolver(cfg, settings, fakeDirectory{co: codomain.Company{Name: "Acme"}})
	s := NewService(cfg, settings, resolver, NewDispatcher(ft, cfg))

	cid := uuid.New()
	report, err := s.SendNotification(context.Background(), leadEvent(), []string{"a@x.com"}, &cid)
	if err != nil {
		t.Fatalf("SendNotification returned error: %v", err)
	}
	if !report.Success {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(ft.sent) != 1 || ft.sent[0].From != "noreply@acme.com" {
		t.Fatalf("expected verified-domain sender, sent=%+v", ft.sent)
	}
	if ft.sent[0].FromName != "Acme" {
		t.Errorf("fromName=%q", ft.sent[0].FromName)
	}
}

func TestPreview_RendersSampleData(t *testing.T) {
	s, _, _ := newTestService(t, &fakeTransport{})
	msg, err := s.Preview(context.Background(), domain.TemplateCallSummary, nil)
	if err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}
	if msg.Subject == "" || msg.HTML == "" {
		t.Fatalf("empty preview: %+v", msg)
	}
}

func TestPreview_UnknownTemplate(t *testing.T) {
	s, _, _ := newTestService(t, &fakeTransport{})
	if _, err := s.Preview(context.Background(), "nope", nil); !errors.Is(err, domain.ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}
