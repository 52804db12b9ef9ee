package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	EmailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "emails_sent_total", Help: "Number of outbound email attempts by template and result."},
		[]string{"template", "result"},
	)
	EventsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "analytics_events_total", Help: "Number of analytics events recorded by type."},
		[]string{"type"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(EmailsSent)
	reg.MustRegister(EventsRecorded)
}
