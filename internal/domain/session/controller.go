// Package session owns the visit lifecycle state machine: which screen is
// current, the running session, the open review and the bookkeeping that ties
// them to the plan and the pending-review set.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/visitdesk/internal/domain/activity"
	"github.com/rpggio/visitdesk/internal/domain/customer"
	"github.com/rpggio/visitdesk/internal/domain/live"
	"github.com/rpggio/visitdesk/internal/domain/review"
	"github.com/rpggio/visitdesk/internal/domain/visit"
	"github.com/rpggio/visitdesk/internal/metrics"
)

// Options configures a Controller. Every field is optional.
type Options struct {
	IDs       visit.IDGenerator
	Directory customer.Directory
	Feed      *live.Feed
	Activity  ActivityRecorder
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	Now       func() time.Time
}

// Controller is the only mutation path for lifecycle state. Events that do
// not apply to the current screen are ignored and return the unchanged state.
type Controller struct {
	mu sync.Mutex

	tab     Tab
	session *ActiveSession
	review  *ReviewRequest
	sheet   *review.Sheet
	handle  *live.Handle

	plans   *visit.PlanStore
	pending *review.PendingRegistry
	builder *visit.Builder

	directory customer.Directory
	feed      *live.Feed
	activity  ActivityRecorder
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewController creates a controller on the prospecting dashboard.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	feed := opts.Feed
	if feed == nil {
		feed = live.NewFeed(nil, 0, nil, logger)
	}
	recorder := opts.Activity
	if recorder == nil {
		recorder = noopRecorder{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Controller{
		tab:       TabProspecting,
		plans:     visit.NewPlanStore(),
		pending:   review.NewPendingRegistry(),
		builder:   visit.NewBuilder(opts.IDs),
		directory: opts.Directory,
		feed:      feed,
		activity:  recorder,
		metrics:   opts.Metrics,
		logger:    logger,
		now:       now,
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Plan returns the plan tab view: active visits, upcoming planned visits in
// schedule order and the number of visits not yet completed.
func (c *Controller) Plan() PlanView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PlanView{
		Active:    c.plans.Active(),
		Upcoming:  c.plans.Upcoming(),
		OpenCount: c.plans.OpenCount(),
	}
}

// ScheduleVisit adds a planned visit for the customer.
func (c *Controller) ScheduleVisit(ctx context.Context, cust visit.Customer, mode visit.Mode, sched visit.Schedule) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen() != ScreenDashboard {
		return c.ignore("schedule_visit")
	}

	v := c.builder.Build(visit.BuildRequest{
		Customer: cust,
		Mode:     mode,
		Schedule: sched,
		Status:   visit.StatusPlanned,
	})
	c.addVisit(ctx, v, activity.TypeVisitScheduled)
	return c.snapshot()
}

// StartDirectly opens the active-visit screen. An explicit isExisting wins;
// without it the customer counts as existing iff the maintenance tab is
// selected.
func (c *Controller) StartDirectly(ctx context.Context, req StartRequest, isExisting *bool) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen() != ScreenDashboard {
		return c.ignore("start_directly")
	}

	c.startSession(ctx, req, c.resolveExisting(isExisting))
	return c.snapshot()
}

// SelectInPersonAutoStart records an active in-person visit starting now,
// switches to the plan tab and starts its session.
func (c *Controller) SelectInPersonAutoStart(ctx context.Context, cust visit.Customer, isExisting *bool) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen() != ScreenDashboard {
		return c.ignore("select_in_person_auto_start")
	}

	// Resolved against the tab the rep clicked from, before the switch.
	existing := c.resolveExisting(isExisting)

	v := c.builder.Build(visit.BuildRequest{
		Customer: cust,
		Mode:     visit.ModeInPerson,
		Schedule: visit.Now,
		Status:   visit.StatusActive,
		IDPrefix: visit.PrefixAutoStart,
	})
	c.addVisit(ctx, v, activity.TypeVisitScheduled)

	c.startSession(ctx, StartRequest{
		VisitID:     v.ID,
		CustomerID:  v.CustomerID,
		DisplayName: v.CustomerName,
		Mode:        v.Mode,
	}, existing)
	return c.snapshot()
}

// StartPlannedVisit starts a visit from the plan list, promoting it to active.
// Unknown and completed visits are ignored.
func (c *Controller) StartPlannedVisit(ctx context.Context, visitID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen() != ScreenDashboard {
		return c.ignore("start_planned_visit")
	}
	v, ok := c.plans.Get(visitID)
	if !ok || v.Status == visit.StatusCompleted {
		return c.ignore("start_planned_visit")
	}

	c.startSession(ctx, StartRequest{
		VisitID:     v.ID,
		CustomerID:  v.CustomerID,
		DisplayName: v.CustomerName,
		Mode:        v.Mode,
	}, c.resolveExisting(nil))
	return c.snapshot()
}

// StartRecording begins the clock of a waiting in-person session.
func (c *Controller) StartRecording(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle == nil {
		return c.ignore("start_recording")
	}
	c.handle.StartRecording()
	return c.snapshot()
}

// LiveFeed returns the running session's feed, if any.
func (c *Controller) LiveFeed() (live.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle == nil {
		return live.Snapshot{}, false
	}
	return c.handle.Snapshot(), true
}

// EndVisit stops the session, completes its plan entry if one exists and
// opens the review for the same customer.
func (c *Controller) EndVisit(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return c.ignore("end_visit")
	}

	s := *c.session
	var feed live.Snapshot
	if c.handle != nil {
		c.handle.Stop()
		feed = c.handle.Snapshot()
		c.handle = nil
	}

	c.plans.MarkCompleted(s.ID)
	c.session = nil
	c.openReview(ReviewRequest{
		SourceVisitID:      s.ID,
		CustomerID:         s.CustomerID,
		DisplayName:        s.DisplayName,
		IsExistingCustomer: s.IsExistingCustomer,
	})

	c.record(ctx, activity.TypeSessionEnded, s.ID, s.CustomerID,
		fmt.Sprintf("Ended %s visit with %s", s.Mode, s.DisplayName),
		map[string]any{
			"elapsed_seconds":       feed.Elapsed,
			"transcript_lines":      len(feed.Transcript),
			"rep_talk_seconds":      feed.RepTalk,
			"customer_talk_seconds": feed.CustomerTalk,
		})
	c.publishGauges()
	return c.snapshot()
}

// OpenReview reopens a deferred review from a customer card.
func (c *Controller) OpenReview(ctx context.Context, customerID, name string, isExisting bool) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen() != ScreenDashboard {
		return c.ignore("open_review")
	}

	c.openReview(ReviewRequest{
		SourceVisitID:      ReopenedSource,
		CustomerID:         customerID,
		DisplayName:        name,
		IsExistingCustomer: isExisting,
	})
	c.record(ctx, activity.TypeReviewOpened, "", customerID,
		fmt.Sprintf("Reopened review for %s", name), nil)
	return c.snapshot()
}

// CloseReview leaves the review screen. follow-up keeps the customer pending,
// completed clears it and returns to the prospecting tab, and the empty action
// only closes.
func (c *Controller) CloseReview(ctx context.Context, action review.Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.review == nil {
		return c.ignore("close_review")
	}

	r := *c.review
	switch action {
	case review.ActionFollowUp:
		c.pending.Add(r.CustomerID)
	case review.ActionCompleted:
		c.pending.Remove(r.CustomerID)
		c.tab = TabProspecting
	}
	c.review = nil
	c.sheet = nil

	c.record(ctx, activity.TypeReviewClosed, sourceVisit(r), r.CustomerID,
		fmt.Sprintf("Closed review for %s", r.DisplayName),
		map[string]any{"action": string(action), "reopened": r.Reopened()})
	c.metrics.IncrementReviewClosed(string(action))
	c.publishGauges()
	return c.snapshot()
}

// ScheduleNext adds the follow-up visit drafted on the review sheet. The
// review stays open.
func (c *Controller) ScheduleNext(ctx context.Context, req NextVisitRequest) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.review == nil {
		return c.ignore("schedule_next")
	}

	if req.Schedule != nil {
		c.sheet.SetNextVisit(req.Schedule.Date, req.Schedule.Time, req.Goal)
	} else if req.Goal != "" {
		c.sheet.SetNextVisit("", "", req.Goal)
	}
	draft := c.sheet.NextVisit()

	sched := visit.At(draft.Date, draft.Time)
	if req.Schedule != nil && req.Schedule.Immediate {
		sched = visit.Now
	}
	mode := req.Mode
	if mode == "" {
		mode = visit.ModeInPerson
	}

	v := c.builder.Build(visit.BuildRequest{
		Customer: c.reviewCustomer(*c.review),
		Mode:     mode,
		Schedule: sched,
		Status:   visit.StatusPlanned,
		IDPrefix: visit.PrefixReviewNext,
	})
	c.sheet.MarkScheduled()
	c.addVisit(ctx, v, activity.TypeNextVisitScheduled)
	return c.snapshot()
}

// SelectTab changes the dashboard section. Outside the dashboard the choice
// is kept for when the rep returns.
func (c *Controller) SelectTab(ctx context.Context, tab Tab) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tab == tab {
		return c.snapshot()
	}
	prev := c.tab
	c.tab = tab
	c.record(ctx, activity.TypeTabSelected, "", "",
		fmt.Sprintf("Selected %s tab", tab),
		map[string]any{"from": string(prev), "screen": string(c.screen())})
	return c.snapshot()
}

// ToggleTask flips a follow-up task on the open review sheet.
func (c *Controller) ToggleTask(ctx context.Context, taskID int) (review.SheetView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sheet == nil {
		c.ignore("toggle_task")
		return review.SheetView{}, false
	}
	c.sheet.ToggleTask(taskID)
	return c.sheet.Snapshot(), true
}

// AddTask appends a custom follow-up task to the open review sheet.
func (c *Controller) AddTask(ctx context.Context, text string, attachment *review.Attachment) (review.SheetView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sheet == nil {
		c.ignore("add_task")
		return review.SheetView{}, false
	}
	if _, ok := c.sheet.AddCustomTask(text, attachment); !ok {
		c.logger.Debug("empty custom task ignored")
	}
	return c.sheet.Snapshot(), true
}

// ReviewSheet returns the open review's checklist.
func (c *Controller) ReviewSheet() (review.SheetView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sheet == nil {
		return review.SheetView{}, false
	}
	return c.sheet.Snapshot(), true
}

// Close stops any running live feed. The controller stays usable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}
}

func (c *Controller) screen() Screen {
	switch {
	case c.review != nil:
		return ScreenReview
	case c.session != nil:
		return ScreenActiveVisit
	default:
		return ScreenDashboard
	}
}

func (c *Controller) snapshot() State {
	st := State{
		Screen:     c.screen(),
		Tab:        c.tab,
		Plans:      c.plans.List(),
		PendingIDs: c.pending.IDs(),
		HasActive:  c.plans.HasActive(),
	}
	if c.session != nil {
		s := *c.session
		st.Session = &s
	}
	if c.review != nil {
		r := *c.review
		st.Review = &r
	}
	return st
}

func (c *Controller) ignore(event string) State {
	c.logger.Debug("event ignored", "event", event, "screen", c.screen())
	return c.snapshot()
}

func (c *Controller) resolveExisting(explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	return c.tab == TabMaintenance
}

func (c *Controller) addVisit(ctx context.Context, v visit.Visit, kind activity.ActivityType) {
	if !c.plans.Upsert(v) {
		c.logger.Debug("visit already planned", "visit_id", v.ID)
		return
	}
	if v.Status == visit.StatusActive && v.Mode == visit.ModeInPerson {
		c.tab = TabPlanned
	}

	c.record(ctx, kind, v.ID, v.CustomerID,
		fmt.Sprintf("Planned %s visit with %s at %s", v.Mode, v.CustomerName, v.ScheduledAt),
		map[string]any{"mode": string(v.Mode), "status": string(v.Status), "scheduled_at": v.ScheduledAt})
	c.metrics.IncrementVisitScheduled(string(v.Mode), string(v.Status))
	c.publishGauges()
}

func (c *Controller) startSession(ctx context.Context, req StartRequest, existing bool) {
	id := req.VisitID
	if id == "" {
		id = c.builder.SessionID()
	} else {
		// A carried plan entry is in progress for the whole session.
		c.plans.Start(id)
	}

	c.session = &ActiveSession{
		ID:                 id,
		CustomerID:         req.CustomerID,
		DisplayName:        req.DisplayName,
		Mode:               req.Mode,
		IsExistingCustomer: existing,
		StartedAt:          c.now(),
	}
	c.handle = c.feed.Start(context.WithoutCancel(ctx), id, req.Mode == visit.ModePhone)

	c.record(ctx, activity.TypeSessionStarted, id, req.CustomerID,
		fmt.Sprintf("Started %s visit with %s", req.Mode, req.DisplayName),
		map[string]any{"mode": string(req.Mode), "existing": existing, "tracked": req.VisitID != ""})
	c.metrics.IncrementSessionStarted(string(req.Mode), existing)
	c.publishGauges()
}

func (c *Controller) openReview(r ReviewRequest) {
	c.review = &r
	c.sheet = review.NewSheet(r.IsExistingCustomer)
}

func (c *Controller) reviewCustomer(r ReviewRequest) visit.Customer {
	if c.directory != nil {
		if cust, ok := c.directory.Lookup(r.CustomerID); ok {
			return cust
		}
	}
	return customer.Customer{ID: r.CustomerID, Name: r.DisplayName}
}

func (c *Controller) record(ctx context.Context, kind activity.ActivityType, visitID, customerID, summary string, details map[string]any) {
	c.activity.Record(ctx, &activity.ActivityEntry{
		ActivityType: kind,
		VisitID:      activity.Ref(visitID),
		CustomerID:   activity.Ref(customerID),
		Summary:      summary,
		Details:      activity.EncodeDetails(details),
	})
}

func (c *Controller) publishGauges() {
	c.metrics.SetPlanGauges(c.pending.Len(), len(c.plans.Active()))
}

func sourceVisit(r ReviewRequest) string {
	if r.Reopened() {
		return ""
	}
	return r.SourceVisitID
}
