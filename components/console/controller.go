package console

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Controller owns one page's live state: theme, notifications, polling
// refreshers, debounced search, forms, and the shared modal. It is the
// explicit replacement for scattered per-widget glue. Create it with
// NewController, start background refreshers with Attach, and stop them with
// Teardown.
type Controller struct {
	opts      Options
	intervals Intervals
	telemetry Telemetry
	updates   UpdateHook
	activity  ActivityHook

	mu  sync.Mutex
	doc *Document

	notify *NotificationCenter

	attached bool
	done     chan struct{}
	wg       sync.WaitGroup

	tweenGen     map[string]uint64
	clipFallback *BufferClipboard
	charts       *ChartRenderer

	searchMu    sync.Mutex
	searchTimer *time.Timer
}

// NewController builds a controller with safe defaults. A nil Backend is
// rejected; every other dependency gets a working noop.
func NewController(opts Options) (*Controller, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("console: backend is required")
	}
	if opts.ThemeStore == nil {
		opts.ThemeStore = NewMemoryThemeStore()
	}
	if opts.Manifest != nil {
		if opts.View == ViewNone {
			opts.View = opts.Manifest.View
		}
		if opts.ProductID == "" {
			opts.ProductID = opts.Manifest.ProductID
		}
		opts.Intervals = opts.Intervals.overlaid(opts.Manifest.ControllerIntervals())
	}
	c := &Controller{
		opts:      opts,
		intervals: opts.Intervals.normalized(),
		telemetry: normalizeTelemetry(opts.Telemetry),
		updates:   opts.UpdateHook,
		activity:  opts.Activity,
		doc:       newDocument(),
		notify:    NewNotificationCenter(),
		tweenGen:  map[string]uint64{},
	}
	if c.updates == nil {
		c.updates = noopUpdateHook{}
	}
	if c.activity == nil {
		c.activity = noopActivityHook{}
	}
	c.mu.Lock()
	c.applyThemeLocked(c.Theme())
	c.mu.Unlock()
	return c, nil
}

// View reports which page this controller drives.
func (c *Controller) View() View {
	return c.opts.View
}

// Attach performs an immediate refresh for every poller the page uses and
// then starts the periodic tickers. Attaching twice is a no-op.
func (c *Controller) Attach(ctx context.Context) error {
	c.mu.Lock()
	if c.attached {
		c.mu.Unlock()
		return nil
	}
	c.attached = true
	c.done = make(chan struct{})
	c.mu.Unlock()

	view := c.View()
	if view == ViewDashboard {
		c.startPoller(ctx, c.intervals.Stats, c.refreshStats)
	}
	if view == ViewAnalytics {
		c.startPoller(ctx, c.intervals.Alerts, c.refreshAlerts)
	}
	if view == ViewProduct && c.opts.ProductID != "" {
		c.startPoller(ctx, c.intervals.Status, c.refreshStatus)
	}
	c.bootstrapCharts(ctx)
	c.telemetry.Record(ctx, "console.attach", map[string]any{"view": string(view)})
	return nil
}

// bootstrapCharts resolves the manifest's chart declarations. A chart that
// fails to load is marked failed and left for the page to render a
// placeholder; it never blocks the attach.
func (c *Controller) bootstrapCharts(ctx context.Context) {
	if c.opts.Manifest == nil {
		return
	}
	for _, decl := range c.opts.Manifest.Charts {
		view := ChartView{ID: decl.ID, Type: decl.Type, Updated: time.Now()}
		html, err := c.LoadChart(ctx, decl.DataURL)
		if err != nil {
			view.Failed = true
		} else {
			view.HTML = html
		}
		c.mu.Lock()
		c.doc.Charts[decl.ID] = view
		c.mu.Unlock()
	}
}

// Teardown stops every ticker, cancels the pending debounce, and dismisses
// the banner. The controller can be attached again afterwards.
func (c *Controller) Teardown() {
	c.mu.Lock()
	if !c.attached {
		c.mu.Unlock()
		return
	}
	c.attached = false
	close(c.done)
	c.mu.Unlock()

	c.wg.Wait()
	c.cancelSearch()
	c.notify.teardown()
}

func (c *Controller) startPoller(ctx context.Context, interval time.Duration, refresh func(context.Context)) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	refresh(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh(ctx)
			}
		}
	}()
}

// Document returns a snapshot copy of the render state. Counters and forms
// are copied out so running tweens and later submits never show through the
// snapshot.
func (c *Controller) Document() Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.clone()
}

func (c *Controller) emitUpdate(ctx context.Context, evt UpdateEvent) {
	if evt.View == "" {
		evt.View = c.View()
	}
	if err := c.updates.ConsoleUpdated(ctx, evt); err != nil {
		c.telemetry.Record(ctx, "console.update.error", map[string]any{"error": err.Error()})
	}
}

func (c *Controller) recordActivity(ctx context.Context, entry ActivityEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if err := c.activity.ActivityRecorded(ctx, entry); err != nil {
		c.telemetry.Record(ctx, "console.activity.error", map[string]any{"error": err.Error()})
	}
}

// RenderPage renders the named template with the document's view model. The
// manifest supplies the template name when one is configured.
func (c *Controller) RenderPage(out ...io.Writer) (string, error) {
	if c.opts.Renderer == nil {
		return "", fmt.Errorf("console: renderer not configured")
	}
	name := "console/dashboard"
	if c.opts.Manifest != nil && c.opts.Manifest.Template != "" {
		name = c.opts.Manifest.Template
	}
	c.mu.Lock()
	data := c.doc.ViewModel()
	c.mu.Unlock()
	data["banner"] = c.notify.Current().ViewModel()
	return c.opts.Renderer.Render(name, data, out...)
}
