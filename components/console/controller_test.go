package console

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"
)

// fakeBackend lets tests script every endpoint and count fetches.
type fakeBackend struct {
	mu sync.Mutex

	stats      StatPatch
	statsErr   error
	statsCalls int

	activities     []ActivityEntry
	activityErr    error
	activityCalls  int
	alerts         []FraudAlert
	alertsErr      error
	alertsCalls    int
	snapshot       ProductStatusSnapshot
	snapshotErr    error
	snapshotCalls  int
	track          TrackResult
	trackErr       error
	searchResults  []SearchResult
	searchErr      error
	searchCalls    int
	searchQueries  []string
	verified       bool
	verifyErr      error
	fragment       string
	fragmentErr    error
	chart          ChartData
	chartErr       error
	advancedFields url.Values
}

func (f *fakeBackend) QuickStats(context.Context) (StatPatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	return f.stats, f.statsErr
}

func (f *fakeBackend) RecentActivities(context.Context) ([]ActivityEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activityCalls++
	return f.activities, f.activityErr
}

func (f *fakeBackend) FraudAlerts(context.Context) ([]FraudAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alertsCalls++
	return f.alerts, f.alertsErr
}

func (f *fakeBackend) ProductStatus(context.Context, string) (ProductStatusSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshotCalls++
	return f.snapshot, f.snapshotErr
}

func (f *fakeBackend) TrackNow(context.Context, string) (TrackResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.track, f.trackErr
}

func (f *fakeBackend) Search(_ context.Context, query, _ string) ([]SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.searchQueries = append(f.searchQueries, query)
	return f.searchResults, f.searchErr
}

func (f *fakeBackend) AdvancedSearch(_ context.Context, fields url.Values) ([]SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advancedFields = fields
	return f.searchResults, f.searchErr
}

func (f *fakeBackend) VerifyRecord(context.Context, string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verified, f.verifyErr
}

func (f *fakeBackend) Fragment(context.Context, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fragment, f.fragmentErr
}

func (f *fakeBackend) ChartData(context.Context, string) (ChartData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chart, f.chartErr
}

func (f *fakeBackend) counts() (stats, activities, alerts, snapshots, searches int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statsCalls, f.activityCalls, f.alertsCalls, f.snapshotCalls, f.searchCalls
}

type fakeTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeTelemetry) has(event string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e == event {
			return true
		}
	}
	return false
}

func newTestController(t *testing.T, opts Options) *Controller {
	t.Helper()
	if opts.Backend == nil {
		opts.Backend = &fakeBackend{}
	}
	ctrl, err := NewController(opts)
	if err != nil {
		t.Fatalf("NewController returned error: %v", err)
	}
	return ctrl
}

func TestNewControllerRequiresBackend(t *testing.T) {
	if _, err := NewController(Options{}); err == nil {
		t.Fatalf("expected error without backend")
	}
}

func TestAttachStartsConfiguredPoller(t *testing.T) {
	backend := &fakeBackend{stats: StatPatch{"total_products": 3}}
	ctrl := newTestController(t, Options{
		Backend: backend,
		View:    ViewDashboard,
		Intervals: Intervals{
			Stats:      20 * time.Millisecond,
			Tween:      time.Millisecond,
			TweenSteps: 2,
		},
	})

	if err := ctrl.Attach(context.Background()); err != nil {
		t.Fatalf("Attach returned error: %v", err)
	}
	defer ctrl.Teardown()

	stats, activities, _, _, _ := backend.counts()
	if stats != 1 || activities != 1 {
		t.Fatalf("expected immediate refresh, got stats=%d activities=%d", stats, activities)
	}

	time.Sleep(50 * time.Millisecond)
	stats, _, _, _, _ = backend.counts()
	if stats < 2 {
		t.Fatalf("expected periodic refreshes, got %d", stats)
	}
}

func TestAttachTwiceIsNoop(t *testing.T) {
	ctrl := newTestController(t, Options{View: ViewNone})
	if err := ctrl.Attach(context.Background()); err != nil {
		t.Fatalf("Attach returned error: %v", err)
	}
	if err := ctrl.Attach(context.Background()); err != nil {
		t.Fatalf("second Attach returned error: %v", err)
	}
	ctrl.Teardown()
}

func TestTeardownStopsPollers(t *testing.T) {
	backend := &fakeBackend{}
	ctrl := newTestController(t, Options{
		Backend:   backend,
		View:      ViewAnalytics,
		Intervals: Intervals{Alerts: 10 * time.Millisecond},
	})
	if err := ctrl.Attach(context.Background()); err != nil {
		t.Fatalf("Attach returned error: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	ctrl.Teardown()

	_, _, before, _, _ := backend.counts()
	time.Sleep(30 * time.Millisecond)
	_, _, after, _, _ := backend.counts()
	if after != before {
		t.Fatalf("expected no polls after teardown, got %d -> %d", before, after)
	}
}

func TestTeardownDismissesBanner(t *testing.T) {
	ctrl := newTestController(t, Options{View: ViewNone})
	if err := ctrl.Attach(context.Background()); err != nil {
		t.Fatalf("Attach returned error: %v", err)
	}
	ctrl.Notify("hello", KindInfo, time.Minute)
	ctrl.Teardown()
	if ctrl.Banner() != nil {
		t.Fatalf("expected banner cleared on teardown")
	}
}

func TestTrackNowNotifiesOnOutcome(t *testing.T) {
	backend := &fakeBackend{track: TrackResult{Success: true, Product: map[string]any{"status": "delivered"}}}
	telemetry := &fakeTelemetry{}
	ctrl := newTestController(t, Options{Backend: backend, Telemetry: telemetry, ProductID: "prod-1"})

	result, err := ctrl.TrackNow(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("TrackNow returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success result")
	}
	banner := ctrl.Banner()
	if banner == nil || banner.Kind != KindSuccess {
		t.Fatalf("expected success banner, got %#v", banner)
	}
	if doc := ctrl.Document(); doc.Product.BadgeClass != "info" {
		t.Fatalf("expected delivered badge applied, got %q", doc.Product.BadgeClass)
	}

	backend.trackErr = errors.New("boom")
	if _, err := ctrl.TrackNow(context.Background(), "prod-1"); err == nil {
		t.Fatalf("expected error")
	}
	banner = ctrl.Banner()
	if banner == nil || banner.Kind != KindDanger {
		t.Fatalf("expected danger banner, got %#v", banner)
	}
}

func TestVerifyRecordNotifies(t *testing.T) {
	backend := &fakeBackend{verified: true}
	ctrl := newTestController(t, Options{Backend: backend})

	verified, err := ctrl.VerifyRecord(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("VerifyRecord returned error: %v", err)
	}
	if !verified {
		t.Fatalf("expected verified")
	}
	if banner := ctrl.Banner(); banner == nil || banner.Kind != KindSuccess {
		t.Fatalf("expected success banner, got %#v", banner)
	}

	backend.verified = false
	if _, err := ctrl.VerifyRecord(context.Background(), "rec-1"); err != nil {
		t.Fatalf("VerifyRecord returned error: %v", err)
	}
	if banner := ctrl.Banner(); banner == nil || banner.Kind != KindDanger {
		t.Fatalf("expected danger banner, got %#v", banner)
	}
}

func TestDocumentSnapshotIsIsolated(t *testing.T) {
	ctrl := newTestController(t, Options{
		Backend:   &fakeBackend{},
		Intervals: Intervals{Tween: time.Millisecond, TweenSteps: 1},
	})

	ctrl.ApplyStats(context.Background(), StatPatch{"total_products": 100})
	time.Sleep(20 * time.Millisecond)

	snapshot := ctrl.Document()
	if got := snapshot.Stats.Counters["total_products"].Displayed; got != 100 {
		t.Fatalf("expected settled counter, got %v", got)
	}

	ctrl.ApplyStats(context.Background(), StatPatch{"total_products": 200})
	time.Sleep(20 * time.Millisecond)

	if got := snapshot.Stats.Counters["total_products"].Displayed; got != 100 {
		t.Fatalf("snapshot must not follow later tweens, got %v", got)
	}
	if got := ctrl.Document().Stats.Counters["total_products"].Displayed; got != 200 {
		t.Fatalf("live document should show the new value, got %v", got)
	}
}

func TestDocumentSnapshotCopiesForms(t *testing.T) {
	ctrl := newTestController(t, Options{Backend: &fakeBackend{}})
	form := ctrl.NewForm("register", &Field{Name: "name", Required: true})

	snapshot := ctrl.Document()
	form.Field("name").Value = "Farm Fresh Ltd"
	form.BeginSubmit()

	copied := snapshot.Forms["register"]
	if copied.Processing {
		t.Fatalf("snapshot must not see the later submit")
	}
	if copied.Field("name").Value != "" {
		t.Fatalf("snapshot must not see later field edits, got %q", copied.Field("name").Value)
	}
}
