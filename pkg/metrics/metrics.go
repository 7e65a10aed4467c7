package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ticketdesk"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)

	TicketsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "tickets_created_total", Help: "Number of tickets created."},
	)
	TicketsUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "tickets_updated_total", Help: "Number of ticket updates applied."},
	)
	TicketNotFound = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "ticket_not_found_total", Help: "Lookups of unknown ticket ids by operation."},
		[]string{"operation"},
	)
	Tickets = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "tickets", Help: "Number of tickets in the collection."},
	)
	AuditFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "audit_failures_total", Help: "Audit events that could not be recorded."},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by method, route and status code."},
		[]string{"method", "route", "code"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(TicketsCreated)
	reg.MustRegister(TicketsUpdated)
	reg.MustRegister(TicketNotFound)
	reg.MustRegister(Tickets)
	reg.MustRegister(AuditFailures)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
}
