package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Template names form a closed set; unknown names are rejected before any
// rendering or sending happens.
const (
	TemplateLeadCreated        = "lead-created"
	TemplateCallSummary        = "call-summary"
	TemplateQuoteSigned        = "quote-signed"
	TemplateSchedulingRequired = "scheduling-required"
	TemplateProjectCreated     = "project-created"
)

// TemplateNames lists every known template.
func TemplateNames() []string {
	return []string{
		TemplateLeadCreated,
		TemplateCallSummary,
		TemplateQuoteSigned,
		TemplateSchedulingRequired,
		TemplateProjectCreated,
	}
}

var ErrUnknownTemplate = errors.New("unknown template")

// Event is one member of the closed union of notification payloads. Events
// are immutable once constructed and validated at the boundary.
type Event interface {
	Template() string
	Validate() error
}

// LeadCreated announces a new inbound lead.
type LeadCreated struct {
	CustomerName   string  `json:"customer_name"`
	CustomerEmail  string  `json:"customer_email"`
	CustomerPhone  string  `json:"customer_phone"`
	CompanyName    string  `json:"company_name"`
	PestType       string  `json:"pest_type"`
	Urgency        string  `json:"urgency"` // urgent | high | medium | low
	Address        string  `json:"address"`
	HomeSize       int     `json:"home_size"`
	EstimatedValue float64 `json:"estimated_value"`
	Notes          string  `json:"notes"`
	CreatedAt      string  `json:"created_at"`
}

func (e LeadCreated) Template() string { return TemplateLeadCreated }

func (e LeadCreated) Validate() error {
	if e.CustomerName == "" {
		return errors.New("customer_name is required")
	}
	if e.CompanyName == "" {
		return errors.New("company_name is required")
	}
	if e.EstimatedValue < 0 {
		return errors.New("estimated_value must not be negative")
	}
	return nil
}

// CallSummary reports a completed (or attempted) phone call.
type CallSummary struct {
	CustomerName    string `json:"customer_name"`
	CompanyName     string `json:"company_name"`
	FromNumber      string `json:"from_number"`
	CallStatus      string `json:"call_status"` // completed | failed | no-answer | busy | cancelled
	DurationSeconds int    `json:"duration_seconds"`
	Sentiment       string `json:"sentiment"` // positive | neutral | negative
	Summary         string `json:"summary"`
	CreatedAt       string `json:"created_at"`
}

func (e CallSummary) Template() string { return TemplateCallSummary }

func (e CallSummary) Validate() error {
	if e.CustomerName == "" {
		return errors.New("customer_name is required")
	}
	if e.CompanyName == "" {
		return errors.New("company_name is required")
	}
	if e.DurationSeconds < 0 {
		return errors.New("duration_seconds must not be negative")
	}
	return nil
}

// QuoteSigned reports a customer signing a service quote.
type QuoteSigned struct {
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CompanyName   string  `json:"company_name"`
	ServiceType   string  `json:"service_type"`
	QuoteAmount   float64 `json:"quote_amount"`
	SignedAt      string  `json:"signed_at"`
}

func (e QuoteSigned) Template() string { return TemplateQuoteSigned }

func (e QuoteSigned) Validate() error {
	if e.CustomerName == "" {
		return errors.New("customer_name is required")
	}
	if e.CompanyName == "" {
		return errors.New("company_name is required")
	}
	if e.QuoteAmount < 0 {
		return errors.New("quote_amount must not be negative")
	}
	return nil
}

// SchedulingRequired asks staff to schedule a requested service.
type SchedulingRequired struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CompanyName   string `json:"company_name"`
	ServiceType   string `json:"service_type"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	Notes         string `json:"notes"`
}

func (e SchedulingRequired) Template() string { return TemplateSchedulingRequired }

func (e SchedulingRequired) Validate() error {
	if e.CustomerName == "" {
		return errors.New("customer_name is required")
	}
	if e.CompanyName == "" {
		return errors.New("company_name is required")
	}
	return nil
}

// ProjectCreated announces a new project for a company.
type ProjectCreated struct {
	ProjectName  string `json:"project_name"`
	CompanyName  string `json:"company_name"`
	CustomerName string `json:"customer_name"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date"`
	RequestedBy  string `json:"requested_by"`
}

func (e ProjectCreated) Template() string { return TemplateProjectCreated }

func (e ProjectCreated) Validate() error {
	if e.ProjectName == "" {
		return errors.New("project_name is required")
	}
	if e.CompanyName == "" {
		return errors.New("company_name is required")
	}
	return nil
}

// DecodeEvent parses a raw JSON payload into the event type for the given
// template and validates it.
func DecodeEvent(template string, raw json.RawMessage) (Event, error) {
	var ev Event
	switch template {
	case TemplateLeadCreated:
		var e LeadCreated
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode %s event: %w", template, err)
		}
		ev = e
	case TemplateCallSummary:
		var e CallSummary
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode %s event: %w", template, err)
		}
		ev = e
	case TemplateQuoteSigned:
		var e QuoteSigned
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode %s event: %w", template, err)
		}
		ev = e
	case TemplateSchedulingRequired:
		var e SchedulingRequired
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode %s event: %w", template, err)
		}
		ev = e
	case TemplateProjectCreated:
		var e ProjectCreated
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode %s event: %w", template, err)
		}
		ev = e
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, template)
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return ev, nil
}
