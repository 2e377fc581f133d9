package template

import (
	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
)

// Vars builds the substitution values for subject templates from an event.
// Formatted fields (currency, duration) are pre-rendered here so subject
// patterns can reference them directly.
func Vars(ev domain.Event) map[string]string {
	switch e := ev.(type) {
	case domain.LeadCreated:
		return map[string]string{
			"customerName":   e.CustomerName,
			"customerEmail":  e.CustomerEmail,
			"customerPhone":  e.CustomerPhone,
			"companyName":    e.CompanyName,
			"pestType":       e.PestType,
			"urgency":        e.Urgency,
			"address":        e.Address,
			"estimatedValue": FormatCurrency(e.EstimatedValue),
			"createdAt":      e.CreatedAt,
		}
	case domain.CallSummary:
		return map[string]string{
			"customerName": e.CustomerName,
			"companyName":  e.CompanyName,
			"fromNumber":   e.FromNumber,
			"callStatus":   e.CallStatus,
			"duration":     FormatDuration(e.DurationSeconds),
			"sentiment":    e.Sentiment,
			"createdAt":    e.CreatedAt,
		}
	case domain.QuoteSigned:
		return map[string]string{
			"customerName":  e.CustomerName,
			"customerEmail": e.CustomerEmail,
			"companyName":   e.CompanyName,
			"serviceType":   e.ServiceType,
			"amount":        FormatCurrency(e.QuoteAmount),
			"signedAt":      e.SignedAt,
		}
	case domain.SchedulingRequired:
		return map[string]string{
			"customerName":  e.CustomerName,
			"customerPhone": e.CustomerPhone,
			"companyName":   e.CompanyName,
			"serviceType":   e.ServiceType,
			"preferredDate": e.PreferredDate,
			"preferredTime": e.PreferredTime,
		}
	case domain.ProjectCreated:
		return map[string]string{
			"projectName":  e.ProjectName,
			"companyName":  e.CompanyName,
			"customerName": e.CustomerName,
			"dueDate":      e.DueDate,
			"requestedBy":  e.RequestedBy,
		}
	default:
		return map[string]string{}
	}
}

// SampleValues maps every known variable name to a representative placeholder
// for previewing templates before real data exists.
func SampleValues() map[string]string {
	return map[string]string{
		"customerName":   "Jane Doe",
		"customerEmail":  "jane.doe@example.com",
		"customerPhone":  "(555) 123-4567",
		"companyName":    "Acme Pest Control",
		"pestType":       "Termites",
		"urgency":        "high",
		"address":        "123 Main St, Springfield",
		"estimatedValue": "$450.00",
		"createdAt":      "2026-08-01T09:30:00Z",
		"fromNumber":     "(555) 987-6543",
		"callStatus":     "completed",
		"duration":       "4:05",
		"sentiment":      "positive",
		"serviceType":    "Quarterly Treatment",
		"amount":         "$1250.00",
		"signedAt":       "2026-08-02T14:00:00Z",
		"preferredDate":  "2026-08-10",
		"preferredTime":  "Morning",
		"projectName":    "Spring Campaign",
		"dueDate":        "2026-09-01",
		"requestedBy":    "Dana Ops",
	}
}

// SampleEvent returns a representative event for previewing the named
// template.
func SampleEvent(templateName string) (domain.Event, error) {
	switch templateName {
	case domain.TemplateLeadCreated:
		return domain.LeadCreated{
			CustomerName:   "Jane Doe",
			CustomerEmail:  "jane.doe@example.com",
			CustomerPhone:  "(555) 123-4567",
			CompanyName:    "Acme Pest Control",
			PestType:       "Termites",
			Urgency:        "high",
			Address:        "123 Main St, Springfield",
			HomeSize:       2400,
			EstimatedValue: 450,
			Notes:          "Saw droppings near the garage.",
			CreatedAt:      "2026-08-01T09:30:00Z",
		}, nil
	case domain.TemplateCallSummary:
		return domain.CallSummary{
			CustomerName:    "Jane Doe",
			CompanyName:     "Acme Pest Control",
			FromNumber:      "(555) 987-6543",
			CallStatus:      "completed",
			DurationSeconds: 245,
			Sentiment:       "positive",
			Summary:         "Customer confirmed the quarterly treatment appointment.",
			CreatedAt:       "2026-08-01T10:15:00Z",
		}, nil
	case domain.TemplateQuoteSigned:
		return domain.QuoteSigned{
			CustomerName:  "Jane Doe",
			CustomerEmail: "jane.doe@example.com",
			CompanyName:   "Acme Pest Control",
			ServiceType:   "Quarterly Treatment",
			QuoteAmount:   1250,
			SignedAt:      "2026-08-02T14:00:00Z",
		}, nil
	case domain.TemplateSchedulingRequired:
		return domain.SchedulingRequired{
			CustomerName:  "Jane Doe",
			CustomerPhone: "(555) 123-4567",
			CompanyName:   "Acme Pest Control",
			ServiceType:   "Quarterly Treatment",
			PreferredDate: "2026-08-10",
			PreferredTime: "Morning",
			Notes:         "Prefers a call 30 minutes before arrival.",
		}, nil
	case domain.TemplateProjectCreated:
		return domain.ProjectCreated{
			ProjectName:  "Spring Campaign",
			CompanyName:  "Acme Pest Control",
			CustomerName: "Jane Doe",
			Description:  "Seasonal outreach for existing customers.",
			DueDate:      "2026-09-01",
			RequestedBy:  "Dana Ops",
		}, nil
	default:
		return nil, domain.ErrUnknownTemplate
	}
}
