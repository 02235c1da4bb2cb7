package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors of the site.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	APIRequests     *prometheus.CounterVec
	APIDuration     *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
	Submissions     *prometheus.CounterVec
	PaymentOutcomes *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_api_requests_total",
			Help: "Calls made to the registrations/payments API, by operation and outcome",
		}, []string{"operation", "outcome"}),
		APIDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clinic_api_request_duration_seconds",
			Help:    "Latency of calls to the registrations/payments API",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_http_requests_total",
			Help: "HTTP requests served, by route pattern, method and status code",
		}, []string{"route", "method", "status"}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_registration_submissions_total",
			Help: "Registration form submissions, by result",
		}, []string{"result"}),
		PaymentOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_payment_outcomes_total",
			Help: "Hosted widget confirmation outcomes",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveAPICall(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(operation, outcome).Inc()
	m.APIDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveHTTP(route, method, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, status).Inc()
}

func (m *Metrics) IncSubmission(result string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(result).Inc()
}

func (m *Metrics) IncPaymentOutcome(outcome string) {
	if m == nil {
		return
	}
	m.PaymentOutcomes.WithLabelValues(outcome).Inc()
}
