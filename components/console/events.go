package console

import (
	"context"
	"fmt"
	"time"
)

// EventTag names an interaction the controller knows how to handle. The set
// is closed: Dispatch rejects anything else instead of silently ignoring it.
type EventTag string

const (
	EventThemeToggled EventTag = "theme-toggled"
	EventPollTick     EventTag = "poll-tick"
	EventSearchInput  EventTag = "search-input"
	EventFormSubmit   EventTag = "form-submit"
	EventNotify       EventTag = "notify"
	EventDismiss      EventTag = "dismiss"
)

// Event is one dispatched interaction. Only the fields relevant to its tag
// are read.
type Event struct {
	Tag        EventTag
	Query      string
	ResultType string
	Form       string
	Message    string
	Kind       Kind
	Duration   time.Duration
	Poll       PollKind
}

// Dispatch routes an event to its handler. Unknown tags are an error so new
// interactions must be added here explicitly.
func (c *Controller) Dispatch(ctx context.Context, evt Event) error {
	switch evt.Tag {
	case EventThemeToggled:
		c.ToggleTheme(ctx)
		return nil
	case EventPollTick:
		return c.pollNow(ctx, evt.Poll)
	case EventSearchInput:
		c.SearchInput(ctx, evt.Query, evt.ResultType)
		return nil
	case EventFormSubmit:
		return c.submitForm(evt.Form)
	case EventNotify:
		c.notify.Notify(evt.Message, evt.Kind, evt.Duration)
		return nil
	case EventDismiss:
		c.notify.Dismiss()
		return nil
	default:
		return fmt.Errorf("console: unknown event tag %q", evt.Tag)
	}
}

// pollNow forces one refresh of the named poller without touching its timer.
func (c *Controller) pollNow(ctx context.Context, kind PollKind) error {
	switch kind {
	case PollStats:
		c.refreshStats(ctx)
	case PollAlerts:
		c.refreshAlerts(ctx)
	case PollStatus:
		c.refreshStatus(ctx)
	default:
		return fmt.Errorf("console: unknown poll kind %q", kind)
	}
	return nil
}

func (c *Controller) submitForm(name string) error {
	c.mu.Lock()
	form, ok := c.doc.Forms[name]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("console: unknown form %q", name)
	}
	form.BeginSubmit()
	return nil
}
