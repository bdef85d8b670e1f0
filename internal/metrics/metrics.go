// Package metrics holds the prometheus instruments for visit lifecycle events.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks scheduling, session and review activity. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	VisitsScheduled  *prometheus.CounterVec
	SessionsStarted  *prometheus.CounterVec
	ReviewsClosed    *prometheus.CounterVec
	PendingReviews   prometheus.Gauge
	ActiveVisits     prometheus.Gauge
	ToolCallDuration *prometheus.HistogramVec
}

// New creates a Metrics instance on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		VisitsScheduled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visitdesk_visits_scheduled_total",
			Help: "Total number of visits added to the plan",
		}, []string{"mode", "status"}),
		SessionsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visitdesk_sessions_started_total",
			Help: "Total number of live visit sessions started",
		}, []string{"mode", "existing"}),
		ReviewsClosed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visitdesk_reviews_closed_total",
			Help: "Total number of post-visit reviews closed, by action",
		}, []string{"action"}),
		PendingReviews: factory.NewGauge(prometheus.GaugeOpts{
			Name: "visitdesk_pending_reviews",
			Help: "Customers with a deferred follow-up",
		}),
		ActiveVisits: factory.NewGauge(prometheus.GaugeOpts{
			Name: "visitdesk_active_visits",
			Help: "Visits in the plan with status active",
		}),
		ToolCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visitdesk_tool_call_duration_seconds",
			Help:    "Duration of MCP tool calls",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"tool"}),
	}
}

// Registry exposes the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncrementVisitScheduled records a visit upserted into the plan.
func (m *Metrics) IncrementVisitScheduled(mode, status string) {
	if m == nil {
		return
	}
	m.VisitsScheduled.WithLabelValues(mode, status).Inc()
}

// IncrementSessionStarted records a session start.
func (m *Metrics) IncrementSessionStarted(mode string, existing bool) {
	if m == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(mode, strconv.FormatBool(existing)).Inc()
}

// IncrementReviewClosed records a review close. An empty action is labeled
// "dismiss".
func (m *Metrics) IncrementReviewClosed(action string) {
	if m == nil {
		return
	}
	if action == "" {
		action = "dismiss"
	}
	m.ReviewsClosed.WithLabelValues(action).Inc()
}

// SetPlanGauges publishes the current pending and active counts.
func (m *Metrics) SetPlanGauges(pending, active int) {
	if m == nil {
		return
	}
	m.PendingReviews.Set(float64(pending))
	m.ActiveVisits.Set(float64(active))
}

// ObserveToolCall records the duration of a tool call.
// Call with time.Now() at the start of the call.
func (m *Metrics) ObserveToolCall(tool string, start time.Time) {
	if m == nil {
		return
	}
	m.ToolCallDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}
