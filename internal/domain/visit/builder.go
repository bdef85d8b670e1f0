package visit

import (
	"strings"

	"github.com/rpggio/visitdesk/internal/domain/customer"
)

// Fallback contact used when a customer has none on file.
const (
	FallbackContactName  = "王经理"
	FallbackContactPhone = "159123482"
)

// NowLabel is the display string for visits that start immediately.
const NowLabel = "现在"

// Id prefixes recording where a visit or session came from.
const (
	PrefixScheduled  = ""
	PrefixAutoStart  = "auto_"
	PrefixDirect     = "direct_"
	PrefixReviewNext = "review_next_"
)

// Customer is the capability set a visit draft needs from a directory entry.
type Customer interface {
	CustomerID() string
	CustomerName() string
	PrimaryContact() (customer.Contact, bool)
}

// Schedule is either an explicit date and time or "now".
type Schedule struct {
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Immediate bool   `json:"immediate,omitempty"`
}

// Now is the sentinel schedule for visits that begin immediately.
var Now = Schedule{Immediate: true}

// At builds an explicit schedule.
func At(date, clock string) Schedule {
	return Schedule{Date: date, Time: clock}
}

// Display renders the schedule the way plan cards show it.
func (s Schedule) Display() string {
	if s.Immediate {
		return NowLabel
	}
	return strings.TrimSpace(s.Date + " " + s.Time)
}

// BuildRequest describes a visit draft.
type BuildRequest struct {
	Customer Customer
	Mode     Mode
	Schedule Schedule
	Status   Status
	IDPrefix string
}

// Builder constructs visit drafts with fresh ids.
type Builder struct {
	ids IDGenerator
}

// NewBuilder creates a builder. A nil generator falls back to UUIDs.
func NewBuilder(ids IDGenerator) *Builder {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Builder{ids: ids}
}

// Build returns a new visit. It never fails: missing contacts use the fallback
// placeholders and an empty status defaults to planned.
func (b *Builder) Build(req BuildRequest) Visit {
	status := req.Status
	if status == "" {
		status = StatusPlanned
	}

	v := Visit{
		ID:           req.IDPrefix + b.ids.Next(),
		ScheduledAt:  req.Schedule.Display(),
		ContactName:  FallbackContactName,
		ContactPhone: FallbackContactPhone,
		Mode:         req.Mode,
		Status:       status,
	}
	if req.Customer == nil {
		return v
	}

	v.CustomerID = req.Customer.CustomerID()
	v.CustomerName = req.Customer.CustomerName()
	if contact, ok := req.Customer.PrimaryContact(); ok {
		v.ContactName = contact.Name
		v.ContactPhone = contact.Phone
	}
	return v
}

// SessionID issues an id for a session that has no plan entry.
func (b *Builder) SessionID() string {
	return PrefixDirect + b.ids.Next()
}
