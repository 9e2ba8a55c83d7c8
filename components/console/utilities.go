package console

import (
	"context"
	"fmt"
)

// Locate asks the locator for one position fix and hands it to the callback.
// Missing or failing locators warn the viewer instead of erroring out.
func (c *Controller) Locate(ctx context.Context, callback func(Position)) {
	if c.opts.Locator == nil {
		c.notify.Notify("Geolocation is not supported", KindWarning, 0)
		return
	}
	pos, err := c.opts.Locator.CurrentPosition(ctx)
	if err != nil {
		c.notify.Notify("Unable to retrieve your location", KindWarning, 0)
		c.telemetry.Record(ctx, "console.locate.error", map[string]any{"error": err.Error()})
		return
	}
	if callback != nil {
		callback(pos)
	}
	c.telemetry.Record(ctx, "console.locate", map[string]any{
		"latitude":  pos.Latitude,
		"longitude": pos.Longitude,
	})
}

// QRCodeURL is the server-rendered QR page for a product.
func QRCodeURL(productID string) string {
	return "/products/" + productID + "/qrcode"
}

// PrintURL is the printable rendering of a record.
func PrintURL(recordID string) string {
	return "/records/" + recordID + "/print"
}

// ShowQRCode opens the product's QR page in a new window.
func (c *Controller) ShowQRCode(productID string) error {
	return c.openWindow(QRCodeURL(productID))
}

// PrintRecord opens the printable view in a new window.
func (c *Controller) PrintRecord(recordID string) error {
	return c.openWindow(PrintURL(recordID))
}

func (c *Controller) openWindow(target string) error {
	if c.opts.Windows == nil {
		return fmt.Errorf("console: window opener not configured")
	}
	return c.opts.Windows.Open(target)
}
