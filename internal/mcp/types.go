package mcp

import (
	"github.com/rpggio/visitdesk/internal/domain/activity"
	"github.com/rpggio/visitdesk/internal/domain/customer"
	"github.com/rpggio/visitdesk/internal/domain/live"
	"github.com/rpggio/visitdesk/internal/domain/review"
	"github.com/rpggio/visitdesk/internal/domain/session"
	"github.com/rpggio/visitdesk/internal/domain/visit"
)

type EmptyParams struct{}

type SelectTabParams struct {
	Tab string `json:"tab" jsonschema:"dashboard tab: PROSPECTING, MAINTENANCE or PLANNED"`
}

type ListCustomersParams struct {
	Kind string `json:"kind,omitempty" jsonschema:"filter by kind: existing or prospect"`
}

type GetCustomerParams struct {
	ID string `json:"id" jsonschema:"customer id, e.g. e1 or p2"`
}

type ScheduleVisitParams struct {
	CustomerID string `json:"customer_id" jsonschema:"customer to visit"`
	Mode       string `json:"mode" jsonschema:"phone or in-person"`
	When       string `json:"when,omitempty" jsonschema:"free-form time: now, 2025-12-05 14:00, +2d, tomorrow 3pm"`
	Date       string `json:"date,omitempty" jsonschema:"date as YYYY-MM-DD, used when 'when' is empty"`
	Time       string `json:"time,omitempty" jsonschema:"time as HH:MM, defaults to 09:00"`
}

type StartVisitParams struct {
	CustomerID string `json:"customer_id" jsonschema:"customer to call or visit"`
	Mode       string `json:"mode" jsonschema:"phone or in-person"`
	VisitID    string `json:"visit_id,omitempty" jsonschema:"planned visit id to carry over; omit for an untracked session"`
	Existing   *bool  `json:"existing,omitempty" jsonschema:"treat as existing customer; omit to infer from the selected tab"`
}

type StartInPersonParams struct {
	CustomerID string `json:"customer_id" jsonschema:"customer being visited now"`
	Existing   *bool  `json:"existing,omitempty" jsonschema:"treat as existing customer; omit to infer from the selected tab"`
}

type StartPlannedVisitParams struct {
	VisitID string `json:"visit_id" jsonschema:"id of a planned or active visit"`
}

type ToggleTaskParams struct {
	TaskID int `json:"task_id" jsonschema:"follow-up task id"`
}

type AddTaskParams struct {
	Text           string `json:"text,omitempty" jsonschema:"task text; falls back to the attachment name"`
	AttachmentName string `json:"attachment_name,omitempty" jsonschema:"attached file or image name"`
	AttachmentURL  string `json:"attachment_url,omitempty" jsonschema:"attachment location"`
	AttachmentType string `json:"attachment_type,omitempty" jsonschema:"file or image"`
}

type ScheduleNextVisitParams struct {
	When string `json:"when,omitempty" jsonschema:"free-form time overriding the drafted next visit"`
	Date string `json:"date,omitempty" jsonschema:"date as YYYY-MM-DD"`
	Time string `json:"time,omitempty" jsonschema:"time as HH:MM"`
	Mode string `json:"mode,omitempty" jsonschema:"phone or in-person, default in-person"`
	Goal string `json:"goal,omitempty" jsonschema:"goal of the next visit"`
}

type CloseReviewParams struct {
	Action string `json:"action,omitempty" jsonschema:"follow-up keeps the customer pending, completed clears it, empty just closes"`
}

type OpenReviewParams struct {
	CustomerID string `json:"customer_id" jsonschema:"customer whose deferred review to open"`
}

type ListVisitsParams struct {
	Status string `json:"status,omitempty" jsonschema:"planned, active or completed"`
}

type RecentActivityParams struct {
	CustomerID string `json:"customer_id,omitempty" jsonschema:"filter by customer"`
	VisitID    string `json:"visit_id,omitempty" jsonschema:"filter by visit or session id"`
	Type       string `json:"type,omitempty" jsonschema:"filter by activity type"`
	Limit      int    `json:"limit,omitempty" jsonschema:"max entries, default 50"`
	Offset     int    `json:"offset,omitempty" jsonschema:"entries to skip"`
}

type CustomerCard struct {
	customer.Customer
	PendingReview bool `json:"pending_review"`
}

type LiveFeedResponse struct {
	Running bool `json:"running"`
	live.Snapshot
}

type ReviewSheetResponse struct {
	Open   bool                   `json:"open"`
	Review *session.ReviewRequest `json:"review,omitempty"`
	Sheet  *review.SheetView      `json:"sheet,omitempty"`
}

type ListVisitsResponse struct {
	Visits    []visit.Visit `json:"visits"`
	Active    int           `json:"active"`
	Upcoming  []visit.Visit `json:"upcoming"`
	OpenCount int           `json:"open_count"`
}

type ActivityResponse struct {
	Entries []activity.ActivityEntry `json:"entries"`
}
