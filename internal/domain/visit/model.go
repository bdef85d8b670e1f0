// Package visit models scheduled and in-progress customer visits.
package visit

import "fmt"

// Mode is how the rep reaches the customer.
type Mode string

const (
	ModePhone    Mode = "phone"
	ModeInPerson Mode = "in-person"
)

// ParseMode validates a wire value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePhone, ModeInPerson:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Label returns a short human-readable name.
func (m Mode) Label() string {
	switch m {
	case ModePhone:
		return "Phone"
	case ModeInPerson:
		return "In person"
	default:
		return string(m)
	}
}

// Status is the visit lifecycle position.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

func (s Status) rank() int {
	switch s {
	case StatusPlanned:
		return 1
	case StatusActive:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 0
	}
}

// CanTransition reports whether a visit may move from one status to another.
// Status moves one step forward at a time and nothing leaves completed.
func CanTransition(from, to Status) bool {
	if from.rank() == 0 || to.rank() == 0 {
		return false
	}
	return to.rank() == from.rank()+1
}

// Visit is one planned, active or completed customer interaction.
type Visit struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	ScheduledAt  string `json:"scheduled_at"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	Mode         Mode   `json:"mode"`
	Status       Status `json:"status"`
}
