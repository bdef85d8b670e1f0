// Package review holds post-visit review state: deferred reviews and the
// follow-up checklist shown on the review screen.
package review

import "sort"

// PendingRegistry is the set of customers whose follow-up is still outstanding.
type PendingRegistry struct {
	ids map[string]struct{}
}

// NewPendingRegistry creates an empty registry.
func NewPendingRegistry() *PendingRegistry {
	return &PendingRegistry{ids: make(map[string]struct{})}
}

// Add marks a customer as pending. Adding twice is a no-op.
func (r *PendingRegistry) Add(customerID string) {
	r.ids[customerID] = struct{}{}
}

// Remove clears a customer. Removing an absent id is a no-op.
func (r *PendingRegistry) Remove(customerID string) {
	delete(r.ids, customerID)
}

// Has reports whether the customer has a deferred review.
func (r *PendingRegistry) Has(customerID string) bool {
	_, ok := r.ids[customerID]
	return ok
}

// Len returns the number of pending customers.
func (r *PendingRegistry) Len() int {
	return len(r.ids)
}

// IDs returns the pending customer ids, sorted.
func (r *PendingRegistry) IDs() []string {
	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
