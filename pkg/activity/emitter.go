package activity

import (
	"context"
	"time"
)

// DefaultChannel tags events that don't declare their own channel.
const DefaultChannel = "console"

// Config controls emitter behavior.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter is the application-facing entry point for activity events.
type Emitter struct {
	hooks   Hooks
	enabled bool
	channel string
}

// NewEmitter builds an emitter over the provided hooks. An emitter with no
// hooks reports itself disabled so callers can skip event assembly.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	channel := cfg.Channel
	if channel == "" {
		channel = DefaultChannel
	}
	return &Emitter{
		hooks:   hooks,
		enabled: cfg.Enabled && len(hooks) > 0,
		channel: channel,
	}
}

// Enabled reports whether emitted events will reach any hook.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Emit stamps defaults onto the event and fans it out.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.channel
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}
	return e.hooks.Notify(ctx, evt)
}
