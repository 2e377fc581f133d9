package template

import (
	"strings"
	"testing"

	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
)

func TestRender_DefaultSubject(t *testing.T) {
	msg, err := Render(domain.LeadCreated{
		CustomerName: "Jane",
		CompanyName:  "Acme",
	}, "")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if msg.Subject != "New Lead: Jane - Acme" {
		t.Errorf("subject=%q", msg.Subject)
	}
	if msg.HTML == "" {
		t.Errorf("expected non-empty HTML body")
	}
}

func TestRender_SubjectOverride(t *testing.T) {
	msg, err := Render(domain.QuoteSigned{
		CustomerName: "Jane",
		CompanyName:  "Acme",
		QuoteAmount:  1250.5,
	}, "{{companyName}}: {{customerName}} signed for {{amount}}")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if msg.Subject != "Acme: Jane signed for $1250.50" {
		t.Errorf("subject=%q", msg.Subject)
	}
}

func TestRender_SubjectUnknownTokensSurvive(t *testing.T) {
	msg, err := Render(domain.LeadCreated{CustomerName: "Jane", CompanyName: "Acme"},
		"Lead {{customerName}} via {{channel}}")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if msg.Subject != "Lead Jane via {{channel}}" {
		t.Errorf("subject=%q", msg.Subject)
	}
}

func TestRender_EscapesUserSuppliedHTML(t *testing.T) {
	msg, err := Render(domain.LeadCreated{
		CustomerName: `<script>alert("x")</script>`,
		CompanyName:  "Acme",
	}, "")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Fatalf("unescaped markup leaked into HTML body")
	}
	if !strings.Contains(msg.HTML, "&lt;script&gt;") {
		t.Errorf("expected escaped markup in body")
	}
}

func TestRender_CallSummaryFormatting(t *testing.T) {
	msg, err := Render(domain.CallSummary{
		CustomerName:    "Jane",
		CompanyName:     "Acme",
		CallStatus:      "completed",
		DurationSeconds: 245,
		Sentiment:       "negative",
	}, "")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(msg.HTML, "4:05") {
		t.Errorf("expected M:SS duration in body")
	}
	if !strings.Contains(msg.HTML, "#ef4444") {
		t.Errorf("expected negative sentiment color in body")
	}
	if !strings.Contains(msg.HTML, "#10b981") {
		t.Errorf("expected completed status color in body")
	}
}

func TestRender_AllTemplatesFromSamples(t *testing.T) {
	for _, name := range domain.TemplateNames() {
		ev, err := SampleEvent(name)
		if err != nil {
			t.Fatalf("SampleEvent(%s): %v", name, err)
		}
		msg, err := Render(ev, "")
		if err != nil {
			t.Fatalf("Render(%s): %v", name, err)
		}
		if msg.Subject == "" || msg.HTML == "" {
			t.Errorf("template %s rendered empty subject or body", name)
		}
		if strings.Contains(msg.Subject, "{{") {
			t.Errorf("template %s left tokens in default subject: %q", name, msg.Subject)
		}
	}
}

func TestDefaultSubject_UnknownTemplate(t *testing.T) {
	if _, err := DefaultSubject("no-such-template"); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}
