package session

import (
	"context"

	"github.com/rpggio/visitdesk/internal/domain/activity"
)

// ActivityRecorder appends lifecycle events to the audit trail. Implementations
// must not fail the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, entry *activity.ActivityEntry)
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, *activity.ActivityEntry) {}
