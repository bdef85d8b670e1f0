package visit

import "sort"

// PlanStore is the session's ordered, append-only list of visits, newest first.
// It is not safe for concurrent use; the session controller serializes access.
type PlanStore struct {
	visits []Visit
}

// NewPlanStore creates an empty store.
func NewPlanStore() *PlanStore {
	return &PlanStore{}
}

// Upsert prepends v unless a visit with the same id exists. Re-submissions are
// ignored, not merged. It reports whether v was inserted.
func (s *PlanStore) Upsert(v Visit) bool {
	if s.indexOf(v.ID) >= 0 {
		return false
	}
	s.visits = append([]Visit{v}, s.visits...)
	return true
}

// MarkCompleted completes the active visit with the given id. Unknown ids,
// planned visits and visits already completed are left alone.
func (s *PlanStore) MarkCompleted(id string) bool {
	return s.transition(id, StatusCompleted)
}

// Start moves a planned visit to active.
func (s *PlanStore) Start(id string) bool {
	return s.transition(id, StatusActive)
}

func (s *PlanStore) transition(id string, to Status) bool {
	i := s.indexOf(id)
	if i < 0 || !CanTransition(s.visits[i].Status, to) {
		return false
	}
	s.visits[i].Status = to
	return true
}

// Get returns the visit with the given id.
func (s *PlanStore) Get(id string) (Visit, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Visit{}, false
	}
	return s.visits[i], true
}

// List returns a copy of all visits, most recent first.
func (s *PlanStore) List() []Visit {
	return append([]Visit(nil), s.visits...)
}

// Len returns the number of visits.
func (s *PlanStore) Len() int {
	return len(s.visits)
}

// HasActive reports whether any visit is in progress.
func (s *PlanStore) HasActive() bool {
	for _, v := range s.visits {
		if v.Status == StatusActive {
			return true
		}
	}
	return false
}

// Active returns in-progress visits in list order.
func (s *PlanStore) Active() []Visit {
	return s.filter(StatusActive)
}

// Upcoming returns planned visits ordered by their schedule string.
func (s *PlanStore) Upcoming() []Visit {
	planned := s.filter(StatusPlanned)
	sort.SliceStable(planned, func(i, j int) bool {
		return planned[i].ScheduledAt < planned[j].ScheduledAt
	})
	return planned
}

// OpenCount counts visits that are not completed.
func (s *PlanStore) OpenCount() int {
	n := 0
	for _, v := range s.visits {
		if v.Status != StatusCompleted {
			n++
		}
	}
	return n
}

func (s *PlanStore) filter(status Status) []Visit {
	var out []Visit
	for _, v := range s.visits {
		if v.Status == status {
			out = append(out, v)
		}
	}
	return out
}

func (s *PlanStore) indexOf(id string) int {
	for i, v := range s.visits {
		if v.ID == id {
			return i
		}
	}
	return -1
}
