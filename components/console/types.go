package console

import (
	"context"
	"net/url"
	"time"
)

// View identifies the page surface the console is attached to. Pollers and
// chart bootstrapping are derived from it.
type View string

const (
	// ViewNone attaches no background refreshers.
	ViewNone View = ""
	// ViewDashboard enables the quick-stats/activity refresher.
	ViewDashboard View = "dashboard"
	// ViewAnalytics enables the fraud-alert refresher.
	ViewAnalytics View = "analytics"
	// ViewProduct enables the product-status refresher.
	ViewProduct View = "product"
)

// StatPatch maps stat keys to numeric values used to animate counters.
// Keys are arbitrary strings matched against counter keys after
// normalization.
type StatPatch map[string]float64

// ActivityEntry is a rendered-only timeline item; the console keeps no
// history beyond the current list.
type ActivityEntry struct {
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Icon        string    `json:"icon,omitempty"`
	Type        string    `json:"type,omitempty"`
}

// FraudAlert is a backend-detected anomaly. Only high severity entries are
// surfaced to the viewer.
type FraudAlert struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// SearchResult is a clickable search hit. No pagination or ranking state is
// kept on the client.
type SearchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// EnvironmentalConditions carries optional sensor readings for a product.
type EnvironmentalConditions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Pressure    *float64 `json:"pressure,omitempty"`
}

// ProductStatusSnapshot is applied directly to the product view; no history
// is retained.
type ProductStatusSnapshot struct {
	Status                  string                  `json:"status"`
	EnvironmentalConditions EnvironmentalConditions `json:"environmental_conditions"`
}

// TrackResult is returned by the explicit "track now" action.
type TrackResult struct {
	Success bool           `json:"success"`
	Product map[string]any `json:"product"`
}

// Backend is the HTTP surface the console consumes. Implementations decide
// transport details; the console only renders whatever comes back.
type Backend interface {
	QuickStats(ctx context.Context) (StatPatch, error)
	RecentActivities(ctx context.Context) ([]ActivityEntry, error)
	FraudAlerts(ctx context.Context) ([]FraudAlert, error)
	ProductStatus(ctx context.Context, productID string) (ProductStatusSnapshot, error)
	TrackNow(ctx context.Context, productID string) (TrackResult, error)
	Search(ctx context.Context, query, resultType string) ([]SearchResult, error)
	AdvancedSearch(ctx context.Context, fields url.Values) ([]SearchResult, error)
	VerifyRecord(ctx context.Context, recordID string) (bool, error)
	Fragment(ctx context.Context, fragmentURL string) (string, error)
	ChartData(ctx context.Context, dataURL string) (ChartData, error)
}

// Clipboard writes text to the host clipboard. The console tries the
// configured implementation first and falls back to an in-memory buffer.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Position is a one-shot geolocation fix.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locator resolves the current position once per request.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// WindowOpener opens server-rendered content (QR pages, print views) in a
// new window or tab.
type WindowOpener interface {
	Open(target string) error
}

// DownloadSink receives exported files.
type DownloadSink interface {
	Save(filename, contentType string, data []byte) error
}

// UpdateHook notifies transports (WebSocket/SSE) about applied updates.
type UpdateHook interface {
	ConsoleUpdated(ctx context.Context, event UpdateEvent) error
}

// UpdateEvent describes a view mutation transports might care about.
type UpdateEvent struct {
	View    View           `json:"view"`
	Kind    PollKind       `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`
}

// UpdateHookFunc adapts a plain function to the UpdateHook interface.
type UpdateHookFunc func(ctx context.Context, event UpdateEvent) error

func (f UpdateHookFunc) ConsoleUpdated(ctx context.Context, event UpdateEvent) error {
	return f(ctx, event)
}

// ActivityHook observes timeline entries as they are applied, so external
// activity logs can record them.
type ActivityHook interface {
	ActivityRecorded(ctx context.Context, entry ActivityEntry) error
}

// ActivityHookFunc adapts a plain function to the ActivityHook interface.
type ActivityHookFunc func(ctx context.Context, entry ActivityEntry) error

func (f ActivityHookFunc) ActivityRecorded(ctx context.Context, entry ActivityEntry) error {
	return f(ctx, entry)
}

// PollKind tags the independent background refreshers.
type PollKind string

const (
	// PollStats covers quick stats and recent activities (fetched in parallel).
	PollStats PollKind = "stats"
	// PollAlerts covers fraud alerts.
	PollAlerts PollKind = "alerts"
	// PollStatus covers the product tracking snapshot.
	PollStatus PollKind = "status"
)

// Intervals configures timer-driven behavior. Zero values fall back to the
// defaults matching the page script this console replaces.
type Intervals struct {
	Stats      time.Duration
	Alerts     time.Duration
	Status     time.Duration
	Debounce   time.Duration
	Tween      time.Duration
	TweenSteps int
}

const (
	defaultStatsInterval  = 30 * time.Second
	defaultAlertsInterval = 60 * time.Second
	defaultStatusInterval = 60 * time.Second
	defaultDebounce       = 300 * time.Millisecond
	defaultTweenDuration  = time.Second
	defaultTweenSteps     = 20
)

func (iv Intervals) normalized() Intervals {
	if iv.Stats <= 0 {
		iv.Stats = defaultStatsInterval
	}
	if iv.Alerts <= 0 {
		iv.Alerts = defaultAlertsInterval
	}
	if iv.Status <= 0 {
		iv.Status = defaultStatusInterval
	}
	if iv.Debounce <= 0 {
		iv.Debounce = defaultDebounce
	}
	if iv.Tween <= 0 {
		iv.Tween = defaultTweenDuration
	}
	if iv.TweenSteps <= 0 {
		iv.TweenSteps = defaultTweenSteps
	}
	return iv
}

// overlaid fills zero fields from another set of intervals. Explicitly
// configured values win over manifest overrides.
func (iv Intervals) overlaid(other Intervals) Intervals {
	if iv.Stats == 0 {
		iv.Stats = other.Stats
	}
	if iv.Alerts == 0 {
		iv.Alerts = other.Alerts
	}
	if iv.Status == 0 {
		iv.Status = other.Status
	}
	if iv.Debounce == 0 {
		iv.Debounce = other.Debounce
	}
	return iv
}

// Options configures the console Controller. Every collaborator is provided
// via interface so applications can swap implementations without importing
// internal go-supplychain packages.
type Options struct {
	Backend    Backend
	ThemeStore ThemeStore
	Clipboard  Clipboard
	Locator    Locator
	Windows    WindowOpener
	Downloads  DownloadSink
	Renderer   Renderer
	Telemetry  Telemetry
	UpdateHook UpdateHook
	Activity   ActivityHook
	Manifest   *PageManifest
	Intervals  Intervals
	View       View
	ProductID  string
}

type noopUpdateHook struct{}

func (noopUpdateHook) ConsoleUpdated(context.Context, UpdateEvent) error { return nil }

type noopActivityHook struct{}

func (noopActivityHook) ActivityRecorded(context.Context, ActivityEntry) error { return nil }
