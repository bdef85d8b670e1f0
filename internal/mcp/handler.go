package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/visitdesk/internal/domain/activity"
	"github.com/rpggio/visitdesk/internal/domain/customer"
	"github.com/rpggio/visitdesk/internal/domain/live"
	"github.com/rpggio/visitdesk/internal/domain/review"
	"github.com/rpggio/visitdesk/internal/domain/session"
	"github.com/rpggio/visitdesk/internal/domain/visit"
)

// Controller defines the lifecycle operations needed by MCP.
type Controller interface {
	State() session.State
	Plan() session.PlanView
	SelectTab(ctx context.Context, tab session.Tab) session.State
	ScheduleVisit(ctx context.Context, c visit.Customer, mode visit.Mode, sched visit.Schedule) session.State
	StartDirectly(ctx context.Context, req session.StartRequest, isExisting *bool) session.State
	SelectInPersonAutoStart(ctx context.Context, c visit.Customer, isExisting *bool) session.State
	StartPlannedVisit(ctx context.Context, visitID string) session.State
	StartRecording(ctx context.Context) session.State
	LiveFeed() (live.Snapshot, bool)
	EndVisit(ctx context.Context) session.State
	OpenReview(ctx context.Context, customerID, name string, isExisting bool) session.State
	CloseReview(ctx context.Context, action review.Action) session.State
	ScheduleNext(ctx context.Context, req session.NextVisitRequest) session.State
	ToggleTask(ctx context.Context, taskID int) (review.SheetView, bool)
	AddTask(ctx context.Context, text string, attachment *review.Attachment) (review.SheetView, bool)
	ReviewSheet() (review.SheetView, bool)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// ScheduleParser resolves user-supplied visit times.
type ScheduleParser interface {
	Parse(input string) (visit.Schedule, error)
	ParseParts(date, clock string) (visit.Schedule, error)
}

// Handler adapts tool arguments to controller calls.
type Handler struct {
	controller Controller
	directory  customer.Directory
	activity   ActivityService
	schedules  ScheduleParser
}

// NewHandler creates a new MCP handler.
func NewHandler(controller Controller, directory customer.Directory, activitySvc ActivityService, schedules ScheduleParser) *Handler {
	return &Handler{
		controller: controller,
		directory:  directory,
		activity:   activitySvc,
		schedules:  schedules,
	}
}

func (h *Handler) GetState(ctx context.Context, _ EmptyParams) (session.State, error) {
	return h.controller.State(), nil
}

func (h *Handler) SelectTab(ctx context.Context, req SelectTabParams) (session.State, error) {
	tab, err := session.ParseTab(strings.ToUpper(strings.TrimSpace(req.Tab)))
	if err != nil {
		return session.State{}, fmt.Errorf("tab %q: %w", req.Tab, err)
	}
	return h.controller.SelectTab(ctx, tab), nil
}

func (h *Handler) ListCustomers(ctx context.Context, req ListCustomersParams) ([]CustomerCard, error) {
	var list []customer.Customer
	switch customer.Kind(req.Kind) {
	case "":
		list = append(h.directory.ExistingCustomers(), h.directory.ProspectCustomers()...)
	case customer.KindExisting:
		list = h.directory.ExistingCustomers()
	case customer.KindProspect:
		list = h.directory.ProspectCustomers()
	default:
		return nil, fmt.Errorf("kind %q: %w", req.Kind, ErrInvalidInput)
	}

	state := h.controller.State()
	cards := make([]CustomerCard, 0, len(list))
	for _, c := range list {
		cards = append(cards, CustomerCard{Customer: c, PendingReview: state.IsPending(c.ID)})
	}
	return cards, nil
}

func (h *Handler) GetCustomer(ctx context.Context, req GetCustomerParams) (CustomerCard, error) {
	c, err := h.lookup(req.ID)
	if err != nil {
		return CustomerCard{}, err
	}
	return CustomerCard{Customer: c, PendingReview: h.controller.State().IsPending(c.ID)}, nil
}

func (h *Handler) ScheduleVisit(ctx context.Context, req ScheduleVisitParams) (session.State, error) {
	c, err := h.lookup(req.CustomerID)
	if err != nil {
		return session.State{}, err
	}
	mode, err := visit.ParseMode(req.Mode)
	if err != nil {
		return session.State{}, err
	}
	sched, err := h.parseSchedule(req.When, req.Date, req.Time)
	if err != nil {
		return session.State{}, err
	}
	return h.controller.ScheduleVisit(ctx, c, mode, sched), nil
}

func (h *Handler) StartVisit(ctx context.Context, req StartVisitParams) (session.State, error) {
	c, err := h.lookup(req.CustomerID)
	if err != nil {
		return session.State{}, err
	}
	mode, err := visit.ParseMode(req.Mode)
	if err != nil {
		return session.State{}, err
	}
	return h.controller.StartDirectly(ctx, session.StartRequest{
		VisitID:     req.VisitID,
		CustomerID:  c.ID,
		DisplayName: c.Name,
		Mode:        mode,
	}, req.Existing), nil
}

func (h *Handler) StartInPerson(ctx context.Context, req StartInPersonParams) (session.State, error) {
	c, err := h.lookup(req.CustomerID)
	if err != nil {
		return session.State{}, err
	}
	return h.controller.SelectInPersonAutoStart(ctx, c, req.Existing), nil
}

func (h *Handler) StartPlannedVisit(ctx context.Context, req StartPlannedVisitParams) (session.State, error) {
	if strings.TrimSpace(req.VisitID) == "" {
		return session.State{}, fmt.Errorf("visit_id is required: %w", ErrInvalidInput)
	}
	return h.controller.StartPlannedVisit(ctx, req.VisitID), nil
}

func (h *Handler) StartRecording(ctx context.Context, _ EmptyParams) (session.State, error) {
	return h.controller.StartRecording(ctx), nil
}

func (h *Handler) GetLiveFeed(ctx context.Context, _ EmptyParams) (LiveFeedResponse, error) {
	snap, ok := h.controller.LiveFeed()
	return LiveFeedResponse{Running: ok, Snapshot: snap}, nil
}

func (h *Handler) EndVisit(ctx context.Context, _ EmptyParams) (session.State, error) {
	return h.controller.EndVisit(ctx), nil
}

func (h *Handler) GetReviewSheet(ctx context.Context, _ EmptyParams) (ReviewSheetResponse, error) {
	sheet, ok := h.controller.ReviewSheet()
	return h.sheetResponse(sheet, ok), nil
}

func (h *Handler) ToggleTask(ctx context.Context, req ToggleTaskParams) (ReviewSheetResponse, error) {
	sheet, ok := h.controller.ToggleTask(ctx, req.TaskID)
	return h.sheetResponse(sheet, ok), nil
}

func (h *Handler) AddTask(ctx context.Context, req AddTaskParams) (ReviewSheetResponse, error) {
	var attachment *review.Attachment
	if req.AttachmentName != "" || req.AttachmentURL != "" || req.AttachmentType != "" {
		kind := review.AttachmentType(req.AttachmentType)
		switch kind {
		case "", review.AttachmentFile, review.AttachmentImage:
		default:
			return ReviewSheetResponse{}, fmt.Errorf("attachment_type %q: %w", req.AttachmentType, ErrInvalidInput)
		}
		if kind == "" {
			kind = review.AttachmentFile
		}
		attachment = &review.Attachment{Name: req.AttachmentName, URL: req.AttachmentURL, Type: kind}
	}
	sheet, ok := h.controller.AddTask(ctx, req.Text, attachment)
	return h.sheetResponse(sheet, ok), nil
}

func (h *Handler) ScheduleNextVisit(ctx context.Context, req ScheduleNextVisitParams) (session.State, error) {
	next := session.NextVisitRequest{Goal: req.Goal}
	if req.Mode != "" {
		mode, err := visit.ParseMode(req.Mode)
		if err != nil {
			return session.State{}, err
		}
		next.Mode = mode
	}
	if req.When != "" || req.Date != "" || req.Time != "" {
		sched, err := h.parseSchedule(req.When, req.Date, req.Time)
		if err != nil {
			return session.State{}, err
		}
		next.Schedule = &sched
	}
	return h.controller.ScheduleNext(ctx, next), nil
}

func (h *Handler) CloseReview(ctx context.Context, req CloseReviewParams) (session.State, error) {
	action, err := review.ParseAction(strings.TrimSpace(req.Action))
	if err != nil {
		return session.State{}, fmt.Errorf("action %q: %w", req.Action, err)
	}
	return h.controller.CloseReview(ctx, action), nil
}

func (h *Handler) OpenReview(ctx context.Context, req OpenReviewParams) (session.State, error) {
	c, err := h.lookup(req.CustomerID)
	if err != nil {
		return session.State{}, err
	}
	return h.controller.OpenReview(ctx, c.ID, c.Name, c.IsExisting()), nil
}

func (h *Handler) ListVisits(ctx context.Context, req ListVisitsParams) (ListVisitsResponse, error) {
	var status visit.Status
	if req.Status != "" {
		status = visit.Status(req.Status)
		switch status {
		case visit.StatusPlanned, visit.StatusActive, visit.StatusCompleted:
		default:
			return ListVisitsResponse{}, fmt.Errorf("status %q: %w", req.Status, ErrInvalidInput)
		}
	}

	plan := h.controller.Plan()
	visits := make([]visit.Visit, 0)
	for _, v := range h.controller.State().Plans {
		if status == "" || v.Status == status {
			visits = append(visits, v)
		}
	}
	return ListVisitsResponse{
		Visits:    visits,
		Active:    len(plan.Active),
		Upcoming:  plan.Upcoming,
		OpenCount: plan.OpenCount,
	}, nil
}

func (h *Handler) RecentActivity(ctx context.Context, req RecentActivityParams) (ActivityResponse, error) {
	if h.activity == nil {
		return ActivityResponse{Entries: []activity.ActivityEntry{}}, nil
	}
	if req.Limit < 0 || req.Offset < 0 {
		return ActivityResponse{}, fmt.Errorf("limit and offset must be non-negative: %w", ErrInvalidInput)
	}

	opts := activity.ListActivityOptions{
		CustomerID: activity.Ref(req.CustomerID),
		VisitID:    activity.Ref(req.VisitID),
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	if req.Type != "" {
		t := activity.ActivityType(req.Type)
		if !t.IsValid() {
			return ActivityResponse{}, fmt.Errorf("type %q: %w", req.Type, ErrInvalidInput)
		}
		opts.ActivityType = &t
	}

	entries, err := h.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return ActivityResponse{}, err
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	return ActivityResponse{Entries: entries}, nil
}

func (h *Handler) lookup(id string) (customer.Customer, error) {
	c, ok := h.directory.Lookup(strings.TrimSpace(id))
	if !ok {
		return customer.Customer{}, fmt.Errorf("%q: %w", id, ErrUnknownCustomer)
	}
	return c, nil
}

func (h *Handler) parseSchedule(when, date, clock string) (visit.Schedule, error) {
	if when != "" {
		return h.schedules.Parse(when)
	}
	return h.schedules.ParseParts(date, clock)
}

func (h *Handler) sheetResponse(sheet review.SheetView, ok bool) ReviewSheetResponse {
	if !ok {
		return ReviewSheetResponse{Open: false}
	}
	resp := ReviewSheetResponse{Open: true, Sheet: &sheet}
	if st := h.controller.State(); st.Review != nil {
		resp.Review = st.Review
	}
	return resp
}
