package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"

	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var funcs = htmltemplate.FuncMap{
	"currency":       FormatCurrency,
	"duration":       FormatDuration,
	"sentimentColor": SentimentColor,
	"statusColor":    CallStatusColor,
	"priorityColor":  PriorityColor,
}

var bodies = htmltemplate.Must(
	htmltemplate.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl"),
)

// defaultSubjects are the built-in subject patterns; companies can override
// them per template via settings.
var defaultSubjects = map[string]string{
	domain.TemplateLeadCreated:        "New Lead: {{customerName}} - {{companyName}}",
	domain.TemplateCallSummary:        "Call Summary: {{customerName}} - {{companyName}}",
	domain.TemplateQuoteSigned:        "Quote Signed: {{customerName}} - {{companyName}}",
	domain.TemplateSchedulingRequired: "Scheduling Required: {{customerName}} - {{companyName}}",
	domain.TemplateProjectCreated:     "New Project: {{projectName}} - {{companyName}}",
}

// DefaultSubject returns the built-in subject pattern for a template name.
func DefaultSubject(templateName string) (string, error) {
	s, ok := defaultSubjects[templateName]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownTemplate, templateName)
	}
	return s, nil
}

// Render composes the final subject and HTML body for an event. The body is
// rendered through html/template so every event field is escaped at the
// substitution boundary. subjectPattern may be empty, selecting the built-in
// pattern; unresolved subject tokens degrade to literal text.
//
// Rendering errors are the only hard failures in the pipeline: no message can
// be legally constructed, so the whole batch aborts before any send.
func Render(ev domain.Event, subjectPattern string) (domain.RenderedMessage, error) {
	name := ev.Template()
	if subjectPattern == "" {
		var err error
		subjectPattern, err = DefaultSubject(name)
		if err != nil {
			return domain.RenderedMessage{}, err
		}
	}

	var buf bytes.Buffer
	if err := bodies.ExecuteTemplate(&buf, name+".tmpl", ev); err != nil {
		return domain.RenderedMessage{}, fmt.Errorf("render %s: %w", name, err)
	}

	return domain.RenderedMessage{
		Subject: Substitute(subjectPattern, Vars(ev)),
		HTML:    buf.String(),
	}, nil
}
