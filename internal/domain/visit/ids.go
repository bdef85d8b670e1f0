package visit

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out visit and session identifiers.
type IDGenerator interface {
	Next() string
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

// Next returns a new UUID string.
func (UUIDGenerator) Next() string {
	return uuid.NewString()
}

// SequenceGenerator issues prefix1, prefix2, ... in order.
type SequenceGenerator struct {
	Prefix string
	n      atomic.Int64
}

// NewSequenceGenerator creates a deterministic generator.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{Prefix: prefix}
}

// Next returns the next id in the sequence.
func (g *SequenceGenerator) Next() string {
	return g.Prefix + strconv.FormatInt(g.n.Add(1), 10)
}
