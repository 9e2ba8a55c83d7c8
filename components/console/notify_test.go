package console

import (
	"testing"
	"time"
)

func TestNotifyReplacesBanner(t *testing.T) {
	center := NewNotificationCenter()
	center.Notify("first", KindSuccess, time.Minute)
	second := center.Notify("second", KindWarning, time.Minute)

	current := center.Current()
	if current == nil {
		t.Fatalf("expected a banner")
	}
	if current.ID != second.ID || current.Message != "second" {
		t.Fatalf("expected second banner to win, got %q", current.Message)
	}
	if current.Kind != KindWarning {
		t.Fatalf("unexpected kind %q", current.Kind)
	}
}

func TestNotifyAutoDismisses(t *testing.T) {
	center := NewNotificationCenter()
	center.Notify("short lived", KindInfo, 10*time.Millisecond)
	if center.Current() == nil {
		t.Fatalf("expected banner before timer fires")
	}
	time.Sleep(40 * time.Millisecond)
	if center.Current() != nil {
		t.Fatalf("expected banner dismissed after duration")
	}
}

func TestNotifyReplacementOutlivesFirstTimer(t *testing.T) {
	center := NewNotificationCenter()
	center.Notify("first", KindInfo, 10*time.Millisecond)
	center.Notify("second", KindInfo, time.Minute)

	time.Sleep(40 * time.Millisecond)
	current := center.Current()
	if current == nil || current.Message != "second" {
		t.Fatalf("expected second banner to survive the first timer, got %#v", current)
	}
}

func TestNotifyDefaultsDuration(t *testing.T) {
	center := NewNotificationCenter()
	banner := center.Notify("plain", KindInfo, 0)
	if banner.Duration != DefaultNotifyDuration {
		t.Fatalf("expected default duration, got %v", banner.Duration)
	}
}

func TestNotifyUnknownKindFallsBackToInfoIcon(t *testing.T) {
	center := NewNotificationCenter()
	banner := center.Notify("odd", Kind("plaid"), time.Minute)
	if banner.Icon != kindIcons[KindInfo] {
		t.Fatalf("expected info icon, got %q", banner.Icon)
	}
	if banner.Class != "alert-plaid" {
		t.Fatalf("expected caller kind preserved in class, got %q", banner.Class)
	}
}

func TestDismiss(t *testing.T) {
	center := NewNotificationCenter()
	center.Notify("to close", KindInfo, time.Minute)
	center.Dismiss()
	if center.Current() != nil {
		t.Fatalf("expected banner cleared")
	}
}
