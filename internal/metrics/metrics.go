package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rateLimitExceeded counts HTTP 429 events from the rate limit middleware.
	// Labels:
	// - endpoint: short name like "notify:send", "notify:preview", ...
	// - source:   "company" or "ip"
	rateLimitExceeded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "http",
			Name:      "rate_limit_exceeded_total",
			Help:      "Number of requests rejected due to rate limiting (HTTP 429)",
		},
		[]string{"endpoint", "source"},
	)

	// dispatchOutcomes counts per-recipient dispatch outcomes.
	// Labels:
	// - template: notification template name
	// - status:   "sent" or "failed"
	dispatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "notify",
			Name:      "dispatch_outcomes_total",
			Help:      "Per-recipient notification dispatch outcomes",
		},
		[]string{"template", "status"},
	)

	// invalidRecipients counts addresses rejected by format validation.
	invalidRecipients = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "notify",
			Name:      "invalid_recipients_total",
			Help:      "Recipient addresses rejected by format validation",
		},
	)

	// identityFallbacks counts sends that fell back to the platform identity.
	// Labels:
	// - reason: "no_company", "lookup_failed", "unverified_domain", "missing_namespace"
	identityFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "notify",
			Name:      "identity_fallbacks_total",
			Help:      "Sender identity resolutions that used a platform fallback",
		},
		[]string{"reason"},
	)

	// dispatchDuration tracks the duration of a full dispatch batch.
	// Labels:
	// - template: notification template name
	dispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portal",
			Subsystem: "notify",
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of a notification dispatch batch",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"template"},
	)
)

// IncRateLimitExceeded increments the 429 counter for the given endpoint and source.
func IncRateLimitExceeded(endpoint, source string) {
	if endpoint == "" {
		endpoint = "unknown"
	}
	if source == "" {
		source = "unknown"
	}
	rateLimitExceeded.WithLabelValues(endpoint, source).Inc()
}

// IncDispatchOutcome increments the per-recipient outcome counter.
func IncDispatchOutcome(template string, success bool) {
	if template == "" {
		template = "unknown"
	}
	status := "sent"
	if !success {
		status = "failed"
	}
	dispatchOutcomes.WithLabelValues(template, status).Inc()
}

// IncInvalidRecipients adds n to the invalid recipient counter.
func IncInvalidRecipients(n int) {
	if n <= 0 {
		return
	}
	invalidRecipients.Add(float64(n))
}

// IncIdentityFallback increments the identity fallback counter.
func IncIdentityFallback(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	identityFallbacks.WithLabelValues(reason).Inc()
}

// ObserveDispatchDuration records the duration of a dispatch batch in seconds.
func ObserveDispatchDuration(template string, seconds float64) {
	if template == "" {
		template = "unknown"
	}
	dispatchDuration.WithLabelValues(template).Observe(seconds)
}
