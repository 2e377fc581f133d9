package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/template"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/platform/validation"
	sdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/domain"
)

type stubSettings struct{}

func (stubSettings) GetString(ctx context.Context, key string, companyID *uuid.UUID, def string) (string, error) {
	return def, nil
}
func (stubSettings) GetDuration(ctx context.Context, key string, companyID *uuid.UUID, def time.Duration) (time.Duration, error) {
	return def, nil
}
func (stubSettings) GetInt(ctx context.Context, key string, companyID *uuid.UUID, def int) (int, error) {
	return def, nil
}

var _ sdomain.Service = stubSettings{}

// fakePipeline validates recipients the same way the real pipeline does but
// stubs out transport behavior per address prefix ("fail-" addresses fail).
type fakePipeline struct {
	lastEvent   domain.Event
	lastCompany *uuid.UUID
}

func (f *fakePipeline) SendNotification(ctx context.Context, ev domain.Event, recipients []string, companyID *uuid.UUID) (domain.Report, error) {
	f.lastEvent = ev
	f.lastCompany = companyID

	report := domain.Report{Outcomes: []domain.Outcome{}, InvalidAddresses: []string{}}
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		switch {
		case !strings.Contains(r, "@") || !strings.Contains(r, "."):
			report.InvalidAddresses = append(report.InvalidAddresses, r)
			report.Outcomes = append(report.Outcomes, domain.Outcome{Address: r, Success: false, Error: "invalid email address format"})
			report.FailureCount++
		case strings.HasPrefix(r, "fail-"):
			report.Outcomes = append(report.Outcomes, domain.Outcome{Address: r, Success: false, Error: "bounce"})
			report.FailureCount++
		default:
			report.Outcomes = append(report.Outcomes, domain.Outcome{Address: r, Success: true, MessageID: "m-" + r})
			report.SuccessCount++
		}
	}
	report.Success = report.SuccessCount > 0
	return report, nil
}

func (f *fakePipeline) Preview(ctx context.Context, templateName string, companyID *uuid.UUID) (domain.RenderedMessage, error) {
	ev, err := template.SampleEvent(templateName)
	if err != nil {
		return domain.RenderedMessage{}, err
	}
	return template.Render(ev, "")
}

func newTestServer() (*echo.Echo, *fakePipeline) {
	e := echo.New()
	e.Validator = validation.New()
	fp := &fakePipeline{}
	New(fp, stubSettings{}).Register(e)
	return e, fp
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSendNotification_OK(t *testing.T) {
	e, fp := newTestServer()
	rec := postJSON(e, "/v1/notifications", `{
		"template": "lead-created",
		"recipients": ["a@x.com", "b@x.com"],
		"event": {"customer_name": "Jane", "company_name": "Acme"}
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var report domain.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if !report.Success || report.SuccessCount != 2 {
		t.Errorf("report=%+v", report)
	}
	if fp.lastEvent == nil || fp.lastEvent.Template() != domain.TemplateLeadCreated {
		t.Errorf("event not decoded: %+v", fp.lastEvent)
	}
}

func TestSendNotification_AllInvalidIs400(t *testing.T) {
	e, _ := newTestServer()
	rec := postJSON(e, "/v1/notifications", `{
		"template": "lead-created",
		"recipients": ["nope", "also-bad"],
		"event": {"customer_name": "Jane", "company_name": "Acme"}
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Invalid []string `json:"invalid_addresses"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Invalid) != 2 {
		t.Errorf("invalid=%v", body.Invalid)
	}
}

func TestSendNotification_TotalTransportFailureIs200(t *testing.T) {
	e, _ := newTestServer()
	rec := postJSON(e, "/v1/notifications", `{
		"template": "lead-created",
		"recipients": ["fail-a@x.com"],
		"event": {"customer_name": "Jane", "company_name": "Acme"}
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("transport failures must not 4xx/5xx: status=%d", rec.Code)
	}
	var report domain.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if report.Success {
		t.Errorf("expected success=false, got %+v", report)
	}
}

func TestSendNotification_UnknownTemplate(t *testing.T) {
	e, _ := newTestServer()
	rec := postJSON(e, "/v1/notifications", `{
		"template": "no-such",
		"recipients": ["a@x.com"],
		"event": {}
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestSendNotification_MissingEventField(t *testing.T) {
	e, _ := newTestServer()
	rec := postJSON(e, "/v1/notifications", `{
		"template": "lead-created",
		"recipients": ["a@x.com"],
		"event": {"company_name": "Acme"}
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestSendNotification_InvalidCompanyID(t *testing.T) {
	e, _ := newTestServer()
	rec := postJSON(e, "/v1/notifications", `{
		"template": "lead-created",
		"company_id": "not-a-uuid",
		"recipients": ["a@x.com"],
		"event": {"customer_name": "Jane", "company_name": "Acme"}
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestPreviewTemplate_OK(t *testing.T) {
	e, _ := newTestServer()
	rec := postJSON(e, "/v1/templates/preview", `{"template": "call-summary"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body previewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Subject == "" || body.HTML == "" {
		t.Errorf("empty preview: %+v", body)
	}
}

func TestExtractVariables_Endpoint(t *testing.T) {
	e, _ := newTestServer()
	rec := postJSON(e, "/v1/templates/variables", `{"text": "Hi {{customerName}} from {{companyName}} ({{customerName}})"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body variablesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Variables) != 2 {
		t.Errorf("variables=%v", body.Variables)
	}
	if body.SampleValues["customerName"] == "" {
		t.Errorf("expected sample value for customerName")
	}
}
