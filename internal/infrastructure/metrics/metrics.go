package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lending_ledger"

// Metrics is nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	BlocksAppended  *prometheus.CounterVec
	LoanTransitions *prometheus.CounterVec
	VerifyRuns      *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BlocksAppended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_appended_total",
			Help:      "Blocks committed to the ledger, by event type.",
		}, []string{"event_type"}),
		LoanTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loan_transitions_total",
			Help:      "Committed loan state changes, by resulting status.",
		}, []string{"status"}),
		VerifyRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_verifications_total",
			Help:      "Chain verifications, by outcome.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.BlocksAppended, m.LoanTransitions, m.VerifyRuns)
	return m
}

func (m *Metrics) BlockAppended(eventType string) {
	if m == nil {
		return
	}
	m.BlocksAppended.WithLabelValues(eventType).Inc()
}

func (m *Metrics) LoanTransition(status string) {
	if m == nil {
		return
	}
	m.LoanTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) VerifyCompleted(valid bool) {
	if m == nil {
		return
	}
	result := "valid"
	if !valid {
		result = "invalid"
	}
	m.VerifyRuns.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
