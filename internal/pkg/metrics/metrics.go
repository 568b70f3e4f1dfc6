package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service.
// Each instance owns its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	AccountsRegistered prometheus.Counter
	SignIns            *prometheus.CounterVec
	DraftsCreated      *prometheus.CounterVec
	StatusTransitions  *prometheus.CounterVec
	OTPIssued          prometheus.Counter
	ExpiredPurged      *prometheus.CounterVec
}

// New creates and registers all metrics
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AccountsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "willeasy_accounts_registered_total",
			Help: "Total number of accounts registered",
		}),
		SignIns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "willeasy_sign_ins_total",
			Help: "Sign-in attempts by outcome",
		}, []string{"outcome"}),
		DraftsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "willeasy_drafts_created_total",
			Help: "Draft Wills created by language",
		}, []string{"language"}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "willeasy_status_transitions_total",
			Help: "Will status transitions by target status",
		}, []string{"to"}),
		OTPIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "willeasy_signup_otp_issued_total",
			Help: "Total number of signup OTPs issued",
		}),
		ExpiredPurged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "willeasy_expired_purged_total",
			Help: "Expired records removed by the cleanup job",
		}, []string{"kind"}),
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// IncSignIn records a sign-in attempt; outcome is "success" or "failure"
func (m *Metrics) IncSignIn(outcome string) {
	if m == nil {
		return
	}
	m.SignIns.WithLabelValues(outcome).Inc()
}

// IncAccountsRegistered records a new account
func (m *Metrics) IncAccountsRegistered() {
	if m == nil {
		return
	}
	m.AccountsRegistered.Inc()
}

// IncDraftCreated records a new draft in language
func (m *Metrics) IncDraftCreated(language string) {
	if m == nil {
		return
	}
	m.DraftsCreated.WithLabelValues(language).Inc()
}

// IncStatusTransition records a document moving to status
func (m *Metrics) IncStatusTransition(to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(to).Inc()
}

// IncOTPIssued records an issued signup OTP
func (m *Metrics) IncOTPIssued() {
	if m == nil {
		return
	}
	m.OTPIssued.Inc()
}

// AddExpiredPurged records n purged records of kind
func (m *Metrics) AddExpiredPurged(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ExpiredPurged.WithLabelValues(kind).Add(float64(n))
}
