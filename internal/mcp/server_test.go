package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rpggio/visitdesk/internal/directory"
	"github.com/rpggio/visitdesk/internal/domain/activity"
	"github.com/rpggio/visitdesk/internal/domain/live"
	"github.com/rpggio/visitdesk/internal/domain/session"
	"github.com/rpggio/visitdesk/internal/domain/visit"
	"github.com/rpggio/visitdesk/internal/metrics"
	"github.com/rpggio/visitdesk/internal/schedule"
	"github.com/rpggio/visitdesk/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type idleTicker struct{ ch chan time.Time }

func (t idleTicker) C() <-chan time.Time { return t.ch }
func (t idleTicker) Stop()               {}

type testEnv struct {
	client  *sdkmcp.ClientSession
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	dir := directory.Default()
	m := metrics.New()
	feed := live.NewFeed(nil, time.Second, func(time.Duration) live.Ticker {
		return idleTicker{ch: make(chan time.Time)}
	}, nil)

	ctrl := session.NewController(session.Options{
		IDs:       visit.NewSequenceGenerator("v"),
		Directory: dir,
		Feed:      feed,
		Activity:  activitySvc,
		Metrics:   m,
	})
	t.Cleanup(ctrl.Close)

	now := func() time.Time { return time.Date(2025, 12, 1, 9, 0, 0, 0, time.Local) }
	server := NewServer(Config{
		Controller: ctrl,
		Directory:  dir,
		Activity:   activitySvc,
		Schedules:  schedule.NewParser(now),
		Metrics:    m,
	})

	st, ct := sdkmcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })

	return &testEnv{client: cs, metrics: m}
}

func (e *testEnv) call(t *testing.T, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := e.client.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func (e *testEnv) decode(t *testing.T, name string, args map[string]any, out any) {
	t.Helper()
	res := e.call(t, name, args)
	require.False(t, res.IsError, "tool %s failed: %s", name, resultText(res))
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), out))
}

func resultText(res *sdkmcp.CallToolResult) string {
	if len(res.Content) == 0 {
		return ""
	}
	if text, ok := res.Content[0].(*sdkmcp.TextContent); ok {
		return text.Text
	}
	return ""
}

func TestServer_ListsAllTools(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.client.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"get_state", "select_tab", "list_customers", "get_customer", "schedule_visit",
		"start_visit", "start_in_person", "start_planned_visit", "start_recording",
		"get_live_feed", "end_visit", "get_review_sheet", "toggle_task", "add_task",
		"schedule_next_visit", "close_review", "open_review", "list_visits", "recent_activity",
	} {
		require.True(t, names[want], "missing tool %s", want)
	}
}

func TestServer_FullLifecycle(t *testing.T) {
	env := newTestEnv(t)

	var st session.State
	env.decode(t, "schedule_visit", map[string]any{"customer_id": "p1", "mode": "phone", "when": "2025-12-05 14:00"}, &st)
	require.Len(t, st.Plans, 1)
	require.Equal(t, "2025-12-05 14:00", st.Plans[0].ScheduledAt)
	visitID := st.Plans[0].ID

	env.decode(t, "start_visit", map[string]any{"customer_id": "p1", "mode": "phone", "visit_id": visitID, "existing": false}, &st)
	require.Equal(t, session.ScreenActiveVisit, st.Screen)
	require.Equal(t, visitID, st.Session.ID)
	require.Equal(t, visit.StatusActive, st.Plans[0].Status)
	require.True(t, st.HasActive)

	var feed LiveFeedResponse
	env.decode(t, "get_live_feed", nil, &feed)
	require.True(t, feed.Running)
	require.True(t, feed.Recording)

	env.decode(t, "end_visit", nil, &st)
	require.Equal(t, session.ScreenReview, st.Screen)
	require.Equal(t, visit.StatusCompleted, st.Plans[0].Status)

	var sheet ReviewSheetResponse
	env.decode(t, "toggle_task", map[string]any{"task_id": 1}, &sheet)
	require.True(t, sheet.Open)
	require.Equal(t, []int{1}, sheet.Sheet.SelectedIDs)
	require.Equal(t, "p1", sheet.Review.CustomerID)

	env.decode(t, "add_task", map[string]any{"attachment_name": "报价单.pdf"}, &sheet)
	require.Len(t, sheet.Sheet.Tasks, 4)

	env.decode(t, "schedule_next_visit", map[string]any{"date": "2025-12-12", "time": "10:30"}, &st)
	require.Equal(t, session.ScreenReview, st.Screen)
	require.Len(t, st.Plans, 2)
	require.Equal(t, "2025-12-12 10:30", st.Plans[0].ScheduledAt)

	env.decode(t, "close_review", map[string]any{"action": "follow-up"}, &st)
	require.Equal(t, session.ScreenDashboard, st.Screen)
	require.Equal(t, []string{"p1"}, st.PendingIDs)

	var cards []CustomerCard
	env.decode(t, "list_customers", map[string]any{"kind": "prospect"}, &cards)
	require.Len(t, cards, 2)
	require.True(t, cards[0].PendingReview)

	env.decode(t, "open_review", map[string]any{"customer_id": "p1"}, &st)
	require.Equal(t, session.ReopenedSource, st.Review.SourceVisitID)
	env.decode(t, "close_review", map[string]any{"action": "completed"}, &st)
	require.Empty(t, st.PendingIDs)

	var trail ActivityResponse
	env.decode(t, "recent_activity", map[string]any{"customer_id": "p1"}, &trail)
	require.Len(t, trail.Entries, 7)
	require.Equal(t, activity.TypeReviewClosed, trail.Entries[0].ActivityType)

	var visits ListVisitsResponse
	env.decode(t, "list_visits", map[string]any{"status": "planned"}, &visits)
	require.Len(t, visits.Visits, 1)
	require.Equal(t, 1, visits.OpenCount)

	require.Greater(t, testutil.CollectAndCount(env.metrics.ToolCallDuration), 0)
}

func TestServer_InPersonAutoStart(t *testing.T) {
	env := newTestEnv(t)

	var st session.State
	env.decode(t, "start_in_person", map[string]any{"customer_id": "p2"}, &st)
	require.Equal(t, session.TabPlanned, st.Tab)
	require.Equal(t, session.ScreenActiveVisit, st.Screen)
	require.False(t, st.Session.IsExistingCustomer)
	require.Equal(t, visit.StatusActive, st.Plans[0].Status)

	var feed LiveFeedResponse
	env.decode(t, "get_live_feed", nil, &feed)
	require.False(t, feed.Recording)

	env.decode(t, "start_recording", nil, &st)
	env.decode(t, "get_live_feed", nil, &feed)
	require.True(t, feed.Recording)
}

func TestServer_StateMismatchIsNotAnError(t *testing.T) {
	env := newTestEnv(t)

	var st session.State
	env.decode(t, "end_visit", nil, &st)
	require.Equal(t, session.ScreenDashboard, st.Screen)

	env.decode(t, "close_review", map[string]any{"action": "completed"}, &st)
	require.Equal(t, session.ScreenDashboard, st.Screen)

	var sheet ReviewSheetResponse
	env.decode(t, "get_review_sheet", nil, &sheet)
	require.False(t, sheet.Open)
}

func TestServer_InputErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		tool string
		args map[string]any
		code string
	}{
		{name: "unknown customer", tool: "schedule_visit", args: map[string]any{"customer_id": "zz", "mode": "phone", "when": "now"}, code: "UNKNOWN_CUSTOMER"},
		{name: "bad mode", tool: "start_visit", args: map[string]any{"customer_id": "p1", "mode": "video"}, code: "INVALID_INPUT"},
		{name: "bad schedule", tool: "schedule_visit", args: map[string]any{"customer_id": "p1", "mode": "phone", "when": "qwzx plorb"}, code: "INVALID_SCHEDULE"},
		{name: "missing schedule", tool: "schedule_visit", args: map[string]any{"customer_id": "p1", "mode": "phone"}, code: "INVALID_SCHEDULE"},
		{name: "bad tab", tool: "select_tab", args: map[string]any{"tab": "ARCHIVE"}, code: "INVALID_INPUT"},
		{name: "bad action", tool: "close_review", args: map[string]any{"action": "later"}, code: "INVALID_INPUT"},
		{name: "bad activity type", tool: "recent_activity", args: map[string]any{"type": "nope"}, code: "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.call(t, tt.tool, tt.args)
			require.True(t, res.IsError)
			require.Contains(t, resultText(res), tt.code)
		})
	}
}

func TestServer_SelectTabAcceptsLowercase(t *testing.T) {
	env := newTestEnv(t)

	var st session.State
	env.decode(t, "select_tab", map[string]any{"tab": "maintenance"}, &st)
	require.Equal(t, session.TabMaintenance, st.Tab)

	env.decode(t, "start_visit", map[string]any{"customer_id": "e1", "mode": "phone"}, &st)
	require.True(t, st.Session.IsExistingCustomer)
}

func TestServer_WorkflowResource(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.client.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "visitdesk://docs/workflow"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "# visitdesk workflow")
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(context.Canceled))
	require.Equal(t, "UNKNOWN_CUSTOMER", MapError(ErrUnknownCustomer).Code)
	require.Equal(t, "INVALID_SCHEDULE", MapError(schedule.ErrEmptyInput).Code)
	require.Equal(t, "INVALID_INPUT", MapError(visit.ErrInvalidMode).Code)
}
