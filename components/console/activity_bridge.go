package console

import (
	"context"

	"github.com/goliatone/go-supplychain/pkg/activity"
)

// ActivityContext captures actor/user/tenant identifiers for activity events.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

type activityContextKey struct{}

// ContextWithActivity stores activity context on the provided context.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

func activityContextFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	if meta, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
		return meta
	}
	return ActivityContext{}
}

// EmitterHook forwards timeline entries to an activity emitter so console
// refreshes land in the audit trail.
type EmitterHook struct {
	Emitter   *activity.Emitter
	ProductID string
}

var _ ActivityHook = EmitterHook{}

// ActivityRecorded maps a timeline entry onto an activity event.
func (h EmitterHook) ActivityRecorded(ctx context.Context, entry ActivityEntry) error {
	if !h.Emitter.Enabled() {
		return nil
	}
	verb := entry.Type
	if verb == "" {
		verb = "activity"
	}
	objectID := h.ProductID
	if objectID == "" {
		objectID = "timeline"
	}
	meta := activityContextFrom(ctx)
	return h.Emitter.Emit(ctx, activity.Event{
		Verb:       verb,
		ActorID:    meta.ActorID,
		UserID:     meta.UserID,
		TenantID:   meta.TenantID,
		ObjectType: "console",
		ObjectID:   objectID,
		Metadata: map[string]any{
			"description": entry.Description,
			"icon":        entry.Icon,
		},
		OccurredAt: entry.Timestamp,
	})
}
