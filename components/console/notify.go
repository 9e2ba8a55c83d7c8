package console

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification banner.
type Kind string

const (
	KindSuccess Kind = "success"
	KindDanger  Kind = "danger"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// DefaultNotifyDuration is applied when callers pass a non-positive duration.
const DefaultNotifyDuration = 5 * time.Second

// alertDuration is the longer-lived duration used for high-severity fraud
// alerts.
const alertDuration = 10 * time.Second

var kindIcons = map[Kind]string{
	KindSuccess: "check-circle",
	KindDanger:  "exclamation-triangle",
	KindWarning: "exclamation-circle",
	KindInfo:    "info-circle",
}

// Banner is the single floating notification. At most one exists at a time.
type Banner struct {
	ID       string
	Message  string
	Kind     Kind
	Icon     string
	Class    string
	Duration time.Duration
	ShownAt  time.Time
}

// NotificationCenter owns the banner slot and its auto-dismiss timer.
// Issuing a new notification cancels any pending dismissal and replaces the
// current banner: last notify wins, there is no queue.
type NotificationCenter struct {
	mu      sync.Mutex
	current *Banner
	timer   *time.Timer
}

// NewNotificationCenter creates an empty center.
func NewNotificationCenter() *NotificationCenter {
	return &NotificationCenter{}
}

// Notify replaces the current banner and schedules its auto-dismissal.
// Unrecognized kinds fall back to the info icon but keep the caller's style
// class.
func (n *NotificationCenter) Notify(message string, kind Kind, duration time.Duration) *Banner {
	if duration <= 0 {
		duration = DefaultNotifyDuration
	}
	icon, ok := kindIcons[kind]
	if !ok {
		icon = kindIcons[KindInfo]
	}
	banner := &Banner{
		ID:       uuid.NewString(),
		Message:  message,
		Kind:     kind,
		Icon:     icon,
		Class:    "alert-" + string(kind),
		Duration: duration,
		ShownAt:  time.Now(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = banner
	id := banner.ID
	n.timer = time.AfterFunc(duration, func() {
		n.dismissIf(id)
	})
	return banner
}

// Dismiss removes the banner immediately, independent of the timer.
func (n *NotificationCenter) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
}

// Current returns the visible banner, or nil.
func (n *NotificationCenter) Current() *Banner {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *NotificationCenter) dismissIf(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil || n.current.ID != id {
		return
	}
	n.current = nil
	n.timer = nil
}

func (n *NotificationCenter) teardown() {
	n.Dismiss()
}

// ViewModel renders the banner into template data.
func (b *Banner) ViewModel() map[string]any {
	if b == nil {
		return nil
	}
	return map[string]any{
		"id":      b.ID,
		"message": b.Message,
		"kind":    string(b.Kind),
		"icon":    b.Icon,
		"class":   b.Class,
	}
}

// Notify surfaces a banner through the controller. It mirrors the standalone
// center but also records telemetry.
func (c *Controller) Notify(message string, kind Kind, duration time.Duration) *Banner {
	return c.notify.Notify(message, kind, duration)
}

// Banner exposes the current floating notification, or nil.
func (c *Controller) Banner() *Banner {
	return c.notify.Current()
}

// DismissBanner removes the banner via the close control.
func (c *Controller) DismissBanner() {
	c.notify.Dismiss()
}
