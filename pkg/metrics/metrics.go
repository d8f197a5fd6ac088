package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "termspage", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "termspage", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	TermsRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "termspage", Name: "terms_requests_total", Help: "Terms lookups by HTTP status."},
		[]string{"status"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "termspage", Name: "terms_cache_lookups_total", Help: "Terms cache lookups by result (hit|miss)."},
		[]string{"result"},
	)
	SeededDocuments = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "termspage", Name: "terms_seeded_documents_total", Help: "Documents inserted by seeding."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(TermsRequests)
	reg.MustRegister(CacheLookups)
	reg.MustRegister(SeededDocuments)
}
