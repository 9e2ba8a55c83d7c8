package console

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDispatchRejectsUnknownTag(t *testing.T) {
	ctrl := newTestController(t, Options{})
	err := ctrl.Dispatch(context.Background(), Event{Tag: EventTag("drag-drop")})
	if err == nil {
		t.Fatalf("expected error for unknown tag")
	}
	if !strings.Contains(err.Error(), "drag-drop") {
		t.Fatalf("expected the tag named in the error, got %v", err)
	}
}

func TestDispatchThemeToggled(t *testing.T) {
	ctrl := newTestController(t, Options{})
	if err := ctrl.Dispatch(context.Background(), Event{Tag: EventThemeToggled}); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if got := ctrl.Document().Theme.Active; got != ThemeDark {
		t.Fatalf("expected dark theme after toggle, got %q", got)
	}
}

func TestDispatchPollTick(t *testing.T) {
	backend := &fakeBackend{}
	ctrl := newTestController(t, Options{Backend: backend})

	if err := ctrl.Dispatch(context.Background(), Event{Tag: EventPollTick, Poll: PollStats}); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	stats, activities, _, _, _ := backend.counts()
	if stats != 1 || activities != 1 {
		t.Fatalf("expected one forced refresh, got stats=%d activities=%d", stats, activities)
	}
}

func TestDispatchUnknownPollKind(t *testing.T) {
	ctrl := newTestController(t, Options{})
	err := ctrl.Dispatch(context.Background(), Event{Tag: EventPollTick, Poll: PollKind("weather")})
	if err == nil {
		t.Fatalf("expected error for unknown poll kind")
	}
}

func TestDispatchNotifyAndDismiss(t *testing.T) {
	ctrl := newTestController(t, Options{})
	if err := ctrl.Dispatch(context.Background(), Event{Tag: EventNotify, Message: "Saved", Kind: KindSuccess}); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if banner := ctrl.Banner(); banner == nil || banner.Message != "Saved" {
		t.Fatalf("unexpected banner %+v", ctrl.Banner())
	}
	if err := ctrl.Dispatch(context.Background(), Event{Tag: EventDismiss}); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if banner := ctrl.Banner(); banner != nil {
		t.Fatalf("expected dismissed banner, got %+v", banner)
	}
}

func TestUpdateHookFailureIsRecorded(t *testing.T) {
	telemetry := &fakeTelemetry{}
	var events []UpdateEvent
	ctrl := newTestController(t, Options{
		Backend:   &fakeBackend{stats: StatPatch{"total_products": 1}},
		Telemetry: telemetry,
		UpdateHook: UpdateHookFunc(func(_ context.Context, evt UpdateEvent) error {
			events = append(events, evt)
			return errors.New("transport closed")
		}),
	})

	ctrl.ApplyStats(context.Background(), StatPatch{"total_products": 1})

	if len(events) != 1 || events[0].Kind != PollStats {
		t.Fatalf("expected one stats update, got %v", events)
	}
	if !telemetry.has("console.update.error") {
		t.Fatalf("expected update error telemetry, got %v", telemetry.events)
	}
}

func TestDispatchFormSubmit(t *testing.T) {
	ctrl := newTestController(t, Options{})
	form := ctrl.NewForm("register", &Field{Name: "name", Required: true, Value: "Farm Fresh Ltd"})

	if err := ctrl.Dispatch(context.Background(), Event{Tag: EventFormSubmit, Form: "register"}); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if !form.Processing {
		t.Fatalf("expected form in processing state")
	}

	if err := ctrl.Dispatch(context.Background(), Event{Tag: EventFormSubmit, Form: "missing"}); err == nil {
		t.Fatalf("expected error for unknown form")
	}
}
