package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rpggio/visitdesk/internal/metrics"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New()

	m.IncrementVisitScheduled("phone", "planned")
	m.IncrementVisitScheduled("phone", "planned")
	m.IncrementSessionStarted("in-person", true)
	m.IncrementReviewClosed("")
	m.IncrementReviewClosed("completed")
	m.SetPlanGauges(2, 1)

	require.Equal(t, 2.0, testutil.ToFloat64(m.VisitsScheduled.WithLabelValues("phone", "planned")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SessionsStarted.WithLabelValues("in-person", "true")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ReviewsClosed.WithLabelValues("dismiss")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ReviewsClosed.WithLabelValues("completed")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.PendingReviews))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ActiveVisits))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.IncrementVisitScheduled("phone", "planned")
		m.IncrementSessionStarted("phone", false)
		m.IncrementReviewClosed("follow-up")
		m.SetPlanGauges(1, 1)
		m.ObserveToolCall("get_state", time.Now())
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.IncrementReviewClosed("follow-up")
	m.ObserveToolCall("get_state", time.Now())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `visitdesk_reviews_closed_total{action="follow-up"} 1`))
	require.True(t, strings.Contains(body, "visitdesk_tool_call_duration_seconds"))
}
