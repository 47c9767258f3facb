package engine

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aaeabdo/sloburn/model"
)

// Metrics exposes the engine's derived state to Prometheus. Gauges track
// the latest status; counters accumulate across the session. Everything
// hangs off a private registry so scrapes never see unrelated collectors.
type Metrics struct {
	registry *prometheus.Registry

	badPercent  *prometheus.GaugeVec
	burnRate    *prometheus.GaugeVec
	errorBudget prometheus.Gauge
	openAlerts  *prometheus.GaugeVec
	opsScore    prometheus.Gauge
	eventsTotal *prometheus.CounterVec
	alertsFired *prometheus.CounterVec

	mu       sync.Mutex
	lastGood int64
	lastBad  int64
}

// NewMetrics builds and registers the full metric set.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		badPercent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sloburn_window_bad_percent",
			Help: "Bad event percentage per rolling window, judged against the live policy.",
		}, []string{"window"}),
		burnRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sloburn_window_burn_rate",
			Help: "Error budget burn rate per rolling window (1.0 = sustainable pace).",
		}, []string{"window"}),
		errorBudget: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sloburn_error_budget_percent",
			Help: "Allowed bad percentage under the live availability target.",
		}),
		openAlerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sloburn_open_alerts",
			Help: "Currently open alerts by severity.",
		}, []string{"severity"}),
		opsScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sloburn_ops_score",
			Help: "Blended operator score, 0-100.",
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sloburn_events_total",
			Help: "Events ingested, by goodness at ingest time.",
		}, []string{"result"}),
		alertsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sloburn_alerts_fired_total",
			Help: "Alerts fired since startup, by type.",
		}, []string{"type"}),
	}
	m.registry.MustRegister(
		m.badPercent, m.burnRate, m.errorBudget,
		m.openAlerts, m.opsScore, m.eventsTotal, m.alertsFired,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Update refreshes the gauges from a status and advances the event
// counters by the delta since the previous update.
func (m *Metrics) Update(st Status) {
	for _, r := range st.Rules {
		m.badPercent.WithLabelValues(windowLabel(r.Rule.ShortSec)).Set(r.Short.BadPercent)
		m.burnRate.WithLabelValues(windowLabel(r.Rule.ShortSec)).Set(r.Short.Burn)
		m.badPercent.WithLabelValues(windowLabel(r.Rule.LongSec)).Set(r.Long.BadPercent)
		m.burnRate.WithLabelValues(windowLabel(r.Rule.LongSec)).Set(r.Long.Burn)
	}
	m.errorBudget.Set(st.Policy.ErrorBudget())
	m.opsScore.Set(st.Score.Score)

	var pages, tickets float64
	for i := range st.Alerts {
		if !st.Alerts[i].Open() {
			continue
		}
		if st.Alerts[i].Severity == model.SeverityPage {
			pages++
		} else {
			tickets++
		}
	}
	m.openAlerts.WithLabelValues(string(model.SeverityPage)).Set(pages)
	m.openAlerts.WithLabelValues(string(model.SeverityTicket)).Set(tickets)

	m.mu.Lock()
	if d := st.Ingested.Good - m.lastGood; d > 0 {
		m.eventsTotal.WithLabelValues("good").Add(float64(d))
		m.lastGood = st.Ingested.Good
	}
	if d := st.Ingested.Bad - m.lastBad; d > 0 {
		m.eventsTotal.WithLabelValues("bad").Add(float64(d))
		m.lastBad = st.Ingested.Bad
	}
	m.mu.Unlock()
}

// ObserveFired counts freshly fired alerts by type.
func (m *Metrics) ObserveFired(fired []model.Alert) {
	for i := range fired {
		m.alertsFired.WithLabelValues(fired[i].Type).Inc()
	}
}
