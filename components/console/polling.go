package console

import (
	"context"
	"time"

	"github.com/ettle/strcase"
	"golang.org/x/sync/errgroup"
)

// statusBadgeClass maps product lifecycle statuses to badge style classes.
// Unknown statuses get the neutral class rather than an error.
func statusBadgeClass(status string) string {
	switch status {
	case "created":
		return "success"
	case "in_transit":
		return "warning"
	case "delivered":
		return "info"
	case "expired":
		return "danger"
	default:
		return "secondary"
	}
}

// refreshStats pulls quick stats and the activity feed in parallel. Either
// fetch failing leaves that slice of state untouched; the other still lands.
func (c *Controller) refreshStats(ctx context.Context) {
	var (
		patch   StatPatch
		entries []ActivityEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := c.opts.Backend.QuickStats(gctx)
		if err != nil {
			c.pollError(gctx, PollStats, "quick_stats", err)
			return nil
		}
		patch = stats
		return nil
	})
	g.Go(func() error {
		list, err := c.opts.Backend.RecentActivities(gctx)
		if err != nil {
			c.pollError(gctx, PollStats, "recent_activities", err)
			return nil
		}
		entries = list
		return nil
	})
	_ = g.Wait()

	if patch != nil {
		c.ApplyStats(ctx, patch)
	}
	if entries != nil {
		c.ReplaceTimeline(ctx, entries)
	}
}

// ApplyStats sets new counter targets and animates the displayed values
// toward them. Keys are normalized to snake_case so backend and template
// naming can disagree.
func (c *Controller) ApplyStats(ctx context.Context, patch StatPatch) {
	c.mu.Lock()
	keys := make([]string, 0, len(patch))
	for raw, target := range patch {
		key := strcase.ToSnake(raw)
		counter, ok := c.doc.Stats.Counters[key]
		if !ok {
			counter = &StatCounter{Key: key}
			c.doc.Stats.Counters[key] = counter
			c.doc.Stats.Order = append(c.doc.Stats.Order, key)
		}
		counter.Target = target
		keys = append(keys, key)
	}
	c.doc.Stats.UpdatedAt = time.Now()
	c.mu.Unlock()

	for _, key := range keys {
		c.startTween(key)
	}
	c.emitUpdate(ctx, UpdateEvent{Kind: PollStats, Payload: map[string]any{"stats": patch}})
}

// startTween animates one counter toward its target in fixed steps. Starting
// a new tween for the same key invalidates the running one, so a fresh poll
// never fights a stale animation.
func (c *Controller) startTween(key string) {
	c.mu.Lock()
	c.tweenGen[key]++
	gen := c.tweenGen[key]
	counter, ok := c.doc.Stats.Counters[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	from := counter.Displayed
	target := counter.Target
	c.mu.Unlock()

	steps := c.intervals.TweenSteps
	pause := c.intervals.Tween / time.Duration(steps)
	delta := (target - from) / float64(steps)
	if delta == 0 {
		return
	}

	go func() {
		for i := 1; i <= steps; i++ {
			time.Sleep(pause)
			c.mu.Lock()
			if c.tweenGen[key] != gen {
				c.mu.Unlock()
				return
			}
			counter, ok := c.doc.Stats.Counters[key]
			if !ok {
				c.mu.Unlock()
				return
			}
			if i == steps {
				counter.Displayed = target
			} else {
				counter.Displayed = from + delta*float64(i)
			}
			c.mu.Unlock()
		}
	}()
}

// ReplaceTimeline swaps the activity feed wholesale and forwards each entry
// to the activity hook.
func (c *Controller) ReplaceTimeline(ctx context.Context, entries []ActivityEntry) {
	c.mu.Lock()
	c.doc.Timeline = ActivityTimeline{Entries: entries, UpdatedAt: time.Now()}
	c.mu.Unlock()

	for _, entry := range entries {
		c.recordActivity(ctx, entry)
	}
	c.emitUpdate(ctx, UpdateEvent{Kind: PollStats, Payload: map[string]any{"activities": len(entries)}})
}

// refreshAlerts surfaces high severity fraud alerts as long-lived danger
// notifications. Lower severities are counted but never shown.
func (c *Controller) refreshAlerts(ctx context.Context) {
	alerts, err := c.opts.Backend.FraudAlerts(ctx)
	if err != nil {
		c.pollError(ctx, PollAlerts, "fraud_alerts", err)
		return
	}
	c.ApplyAlerts(ctx, alerts)
}

func (c *Controller) ApplyAlerts(ctx context.Context, alerts []FraudAlert) {
	dropped := 0
	shown := 0
	for _, alert := range alerts {
		if alert.Severity != "high" {
			dropped++
			continue
		}
		c.notify.Notify("Fraud Alert: "+alert.Message, KindDanger, alertDuration)
		shown++
	}
	if dropped > 0 {
		c.telemetry.Record(ctx, "console.alerts.dropped", map[string]any{"count": dropped})
	}
	if shown > 0 {
		c.emitUpdate(ctx, UpdateEvent{Kind: PollAlerts, Payload: map[string]any{"shown": shown}})
	}
}

// refreshStatus pulls the tracked product's snapshot and repaints the status
// badge and sensor readouts in place.
func (c *Controller) refreshStatus(ctx context.Context) {
	snapshot, err := c.opts.Backend.ProductStatus(ctx, c.opts.ProductID)
	if err != nil {
		c.pollError(ctx, PollStatus, "product_status", err)
		return
	}
	c.ApplyStatus(ctx, snapshot)
}

func (c *Controller) ApplyStatus(ctx context.Context, snapshot ProductStatusSnapshot) {
	c.mu.Lock()
	c.doc.Product = ProductStatusView{
		ProductID:   c.opts.ProductID,
		Status:      snapshot.Status,
		BadgeClass:  statusBadgeClass(snapshot.Status),
		Temperature: snapshot.EnvironmentalConditions.Temperature,
		Humidity:    snapshot.EnvironmentalConditions.Humidity,
		Pressure:    snapshot.EnvironmentalConditions.Pressure,
		UpdatedAt:   time.Now(),
	}
	view := c.doc.Product
	c.mu.Unlock()

	c.emitUpdate(ctx, UpdateEvent{Kind: PollStatus, Payload: map[string]any{"status": view.Status}})
}

// pollError records a failed fetch without disturbing rendered state. The
// next tick simply tries again.
func (c *Controller) pollError(ctx context.Context, kind PollKind, op string, err error) {
	c.telemetry.Record(ctx, "console.poll.error", map[string]any{
		"kind":  string(kind),
		"op":    op,
		"error": err.Error(),
	})
}
