package session

import (
	"time"

	"github.com/rpggio/visitdesk/internal/domain/visit"
)

// Screen is the top-level view the rep is looking at.
type Screen string

const (
	ScreenDashboard   Screen = "dashboard"
	ScreenActiveVisit Screen = "active-visit"
	ScreenReview      Screen = "review"
)

// Tab is the dashboard section.
type Tab string

const (
	TabProspecting Tab = "PROSPECTING"
	TabMaintenance Tab = "MAINTENANCE"
	TabPlanned     Tab = "PLANNED"
)

// ParseTab validates a wire value.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabProspecting, TabMaintenance, TabPlanned:
		return Tab(s), nil
	default:
		return "", ErrInvalidTab
	}
}

// ReopenedSource is the review source id used when a review is reopened from
// the pending list rather than produced by ending a session.
const ReopenedSource = "reopened"

// ActiveSession is the single running visit interaction.
type ActiveSession struct {
	ID                 string     `json:"id"`
	CustomerID         string     `json:"customer_id"`
	DisplayName        string     `json:"display_name"`
	Mode               visit.Mode `json:"mode"`
	IsExistingCustomer bool       `json:"is_existing_customer"`
	StartedAt          time.Time  `json:"started_at"`
}

// ReviewRequest describes the open review screen.
type ReviewRequest struct {
	SourceVisitID      string `json:"source_visit_id"`
	CustomerID         string `json:"customer_id"`
	DisplayName        string `json:"display_name"`
	IsExistingCustomer bool   `json:"is_existing_customer"`
}

// Reopened reports whether the review came from the pending list.
func (r ReviewRequest) Reopened() bool {
	return r.SourceVisitID == ReopenedSource
}

// StartRequest starts a session. An empty VisitID gets a synthetic id.
type StartRequest struct {
	VisitID     string
	CustomerID  string
	DisplayName string
	Mode        visit.Mode
}

// NextVisitRequest overrides the review sheet's next-visit draft.
type NextVisitRequest struct {
	Schedule *visit.Schedule
	Mode     visit.Mode
	Goal     string
}

// State is an immutable snapshot of the controller.
type State struct {
	Screen     Screen         `json:"screen"`
	Tab        Tab            `json:"tab"`
	Session    *ActiveSession `json:"session,omitempty"`
	Review     *ReviewRequest `json:"review,omitempty"`
	Plans      []visit.Visit  `json:"plans"`
	PendingIDs []string       `json:"pending_ids"`
	HasActive  bool           `json:"has_active"`
}

// IsPending reports whether the snapshot lists the customer as pending.
func (s State) IsPending(customerID string) bool {
	for _, id := range s.PendingIDs {
		if id == customerID {
			return true
		}
	}
	return false
}

// PlanView groups the plan list the way the plan tab shows it.
type PlanView struct {
	Active    []visit.Visit `json:"active"`
	Upcoming  []visit.Visit `json:"upcoming"`
	OpenCount int           `json:"open_count"`
}
