// Package customer defines the customer records a sales rep works through.
package customer

// Kind distinguishes contracted accounts from candidates.
type Kind string

const (
	KindExisting Kind = "existing"
	KindProspect Kind = "prospect"
)

// IsValid reports whether the kind is recognized.
func (k Kind) IsValid() bool {
	return k == KindExisting || k == KindProspect
}

// Contact is a person at the customer the rep can call or meet.
type Contact struct {
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role,omitempty" yaml:"role"`
	Phone string `json:"phone" yaml:"phone"`
}

// Customer is a read-only directory entry.
type Customer struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Kind     Kind      `json:"kind" yaml:"kind"`
	Address  string    `json:"address,omitempty" yaml:"address"`
	Industry string    `json:"industry,omitempty" yaml:"industry"`
	Contacts []Contact `json:"contacts,omitempty" yaml:"contacts"`

	// Existing accounts.
	Status         string `json:"status,omitempty" yaml:"status"`
	Score          int    `json:"score,omitempty" yaml:"score"`
	ScoreTrend     string `json:"score_trend,omitempty" yaml:"score_trend"`
	ContractStatus string `json:"contract_status,omitempty" yaml:"contract_status"`
	BriefTip       string `json:"brief_tip,omitempty" yaml:"brief_tip"`
	LastVisit      string `json:"last_visit,omitempty" yaml:"last_visit"`
	NextMilestone  string `json:"next_milestone,omitempty" yaml:"next_milestone"`

	// Prospects.
	Size          string `json:"size,omitempty" yaml:"size"`
	NeedIntensity string `json:"need_intensity,omitempty" yaml:"need_intensity"`
	Reason        string `json:"reason,omitempty" yaml:"reason"`
}

// CustomerID returns the directory id.
func (c Customer) CustomerID() string { return c.ID }

// CustomerName returns the display name.
func (c Customer) CustomerName() string { return c.Name }

// PrimaryContact returns the first listed contact, if any.
func (c Customer) PrimaryContact() (Contact, bool) {
	if len(c.Contacts) == 0 {
		return Contact{}, false
	}
	return c.Contacts[0], true
}

// IsExisting reports whether the customer is under contract.
func (c Customer) IsExisting() bool {
	return c.Kind == KindExisting
}
