package review

// Action is how the rep leaves the review screen.
type Action string

const (
	// ActionFollowUp defers the review; the customer stays pending.
	ActionFollowUp Action = "follow-up"
	// ActionCompleted finishes the follow-up and clears the pending flag.
	ActionCompleted Action = "completed"
	// ActionDismiss closes without touching the pending set.
	ActionDismiss Action = ""
)

// ParseAction validates a wire value.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionFollowUp, ActionCompleted, ActionDismiss:
		return Action(s), nil
	default:
		return "", ErrInvalidAction
	}
}

// AttachmentType describes what a task carries.
type AttachmentType string

const (
	AttachmentNone  AttachmentType = "none"
	AttachmentFile  AttachmentType = "file"
	AttachmentImage AttachmentType = "image"
)

// Attachment is a file or image picked for a follow-up task.
type Attachment struct {
	Name string         `json:"name"`
	URL  string         `json:"url,omitempty"`
	Type AttachmentType `json:"type"`
}

// Task is one follow-up action item.
type Task struct {
	ID         int            `json:"id"`
	Text       string         `json:"text"`
	Priority   string         `json:"priority"`
	FileName   string         `json:"file_name,omitempty"`
	FileURL    string         `json:"file_url,omitempty"`
	FileType   AttachmentType `json:"file_type"`
	IsCustom   bool           `json:"is_custom"`
	IsSelected bool           `json:"is_selected"`
}

// CoachMetric is one dimension of the rep's diagnostic scorecard.
type CoachMetric struct {
	Label string `json:"label"`
	Score int    `json:"score"`
	Icon  string `json:"icon"`
}

// NextVisitDraft is the pre-filled plan for the follow-up visit.
type NextVisitDraft struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Goal string `json:"goal"`
}
