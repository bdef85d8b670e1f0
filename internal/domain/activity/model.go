package activity

import (
	"encoding/json"
	"time"
)

// ActivityType represents the type of lifecycle event
type ActivityType string

const (
	TypeVisitScheduled     ActivityType = "visit_scheduled"
	TypeSessionStarted     ActivityType = "session_started"
	TypeSessionEnded       ActivityType = "session_ended"
	TypeReviewOpened       ActivityType = "review_opened"
	TypeReviewClosed       ActivityType = "review_closed"
	TypeNextVisitScheduled ActivityType = "next_visit_scheduled"
	TypeTabSelected        ActivityType = "tab_selected"
)

// IsValid reports whether t is a known activity type.
func (t ActivityType) IsValid() bool {
	switch t {
	case TypeVisitScheduled, TypeSessionStarted, TypeSessionEnded, TypeReviewOpened,
		TypeReviewClosed, TypeNextVisitScheduled, TypeTabSelected:
		return true
	default:
		return false
	}
}

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ActivityType ActivityType `json:"type"`
	VisitID      *string      `json:"visit_id,omitempty"`
	CustomerID   *string      `json:"customer_id,omitempty"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}

// EncodeDetails renders a details map as the JSON string stored on an entry.
// Encoding failures yield an empty string.
func EncodeDetails(details map[string]any) string {
	if len(details) == 0 {
		return ""
	}
	data, err := json.Marshal(details)
	if err != nil {
		return ""
	}
	return string(data)
}

// Ref returns a pointer to s, or nil when s is empty.
func Ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
