package usersink

import (
	"context"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-supplychain/pkg/activity"
)

// Sink is the portion of the go-users activity logger this hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook adapts activity events into go-users activity records so console
// actions land in the same audit trail as user management events.
type Hook struct {
	Sink Sink
}

// Notify maps and forwards one event. Events without a verb are ignored.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	n := activity.NormalizeEvent(evt)
	if n.Verb == "" {
		return nil
	}

	data := make(map[string]any, len(n.Metadata)+2)
	for k, v := range n.Metadata {
		data[k] = v
	}
	if n.DefinitionCode != "" {
		data["definition_code"] = n.DefinitionCode
	}
	if len(n.Recipients) > 0 {
		data["recipients"] = n.Recipients
	}

	record := types.ActivityRecord{
		ActorID:    parseID(n.ActorID),
		UserID:     parseID(n.UserID),
		TenantID:   parseID(n.TenantID),
		Verb:       n.Verb,
		ObjectType: n.ObjectType,
		ObjectID:   n.ObjectID,
		Channel:    n.Channel,
		OccurredAt: n.OccurredAt,
		Data:       data,
	}
	return h.Sink.Log(ctx, record)
}

func parseID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
