package service

import (
	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
)

// invalidFormatError is the fixed error recorded for addresses that never
// reach the transport.
const invalidFormatError = "invalid email address format"

// Aggregate combines validation output and dispatch outcomes into the final
// report. Invalid addresses are appended as failed outcomes so the caller
// sees every input address accounted for exactly once.
func Aggregate(validation domain.RecipientSet, outcomes []domain.Outcome) domain.Report {
	all := make([]domain.Outcome, 0, len(outcomes)+len(validation.Invalid))
	all = append(all, outcomes...)
	for _, addr := range validation.Invalid {
		all = append(all, domain.Outcome{Address: addr, Success: false, Error: invalidFormatError})
	}

	success := 0
	for _, o := range all {
		if o.Success {
			success++
		}
	}

	invalid := validation.Invalid
	if invalid == nil {
		invalid = []string{}
	}
	return domain.Report{
		Success:          success > 0,
		Outcomes:         all,
		SuccessCount:     success,
		FailureCount:     len(all) - success,
		InvalidAddresses: invalid,
	}
}
