package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bot.
type Metrics struct {
	// Command invocations by command name and result ("ok", "error", "unsupported")
	Invocations *prometheus.CounterVec

	// End-to-end handler latency by command name
	InvocationLatency *prometheus.HistogramVec

	// Dispatch outcomes by record kind and outcome ("delivered", "degraded", "partial", "failed")
	DispatchOutcomes *prometheus.CounterVec

	// Dispatch error kinds by record kind
	DispatchErrors *prometheus.CounterVec

	// Notification target resolutions by method
	Resolutions *prometheus.CounterVec

	// 1 while the gateway session is connected
	GatewayConnected prometheus.Gauge
}

// New creates and registers all metrics on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tradelog_invocations_total",
			Help: "Total slash command invocations by command and result",
		}, []string{"command", "result"}),

		InvocationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tradelog_invocation_duration_seconds",
			Help:    "Duration of slash command handling including platform calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"command"}),

		DispatchOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tradelog_dispatch_outcomes_total",
			Help: "Audit record dispatch outcomes by record kind",
		}, []string{"kind", "outcome"}),

		DispatchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tradelog_dispatch_errors_total",
			Help: "Audit record dispatch errors by record kind and error kind",
		}, []string{"kind", "error"}),

		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tradelog_notification_resolutions_total",
			Help: "Notification target resolutions by method",
		}, []string{"method"}),

		GatewayConnected: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tradelog_gateway_connected",
			Help: "Gateway connection state (1=connected, 0=disconnected)",
		}),
	}
}

// ObserveInvocation records one handled invocation.
func (m *Metrics) ObserveInvocation(command, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.Invocations.WithLabelValues(command, result).Inc()
	m.InvocationLatency.WithLabelValues(command).Observe(d.Seconds())
}

// IncDispatchOutcome counts one dispatch outcome.
func (m *Metrics) IncDispatchOutcome(kind, outcome string) {
	if m != nil {
		m.DispatchOutcomes.WithLabelValues(kind, outcome).Inc()
	}
}

// IncDispatchError counts one dispatch error kind.
func (m *Metrics) IncDispatchError(kind, errKind string) {
	if m != nil {
		m.DispatchErrors.WithLabelValues(kind, errKind).Inc()
	}
}

// IncResolution counts one notification target resolution.
func (m *Metrics) IncResolution(method string) {
	if m != nil {
		m.Resolutions.WithLabelValues(method).Inc()
	}
}

// SetGatewayConnected flips the connection gauge.
func (m *Metrics) SetGatewayConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.GatewayConnected.Set(1)
		return
	}
	m.GatewayConnected.Set(0)
}
