package console

import "context"

// TrackNow forces an immediate tracking update for a product. Unlike the
// background status poller, this is viewer-initiated, so both outcomes are
// surfaced as notifications.
func (c *Controller) TrackNow(ctx context.Context, productID string) (TrackResult, error) {
	result, err := c.opts.Backend.TrackNow(ctx, productID)
	if err != nil {
		c.notify.Notify("Tracking update failed", KindDanger, 0)
		return TrackResult{}, err
	}
	if !result.Success {
		c.notify.Notify("Tracking update failed", KindDanger, 0)
		return result, nil
	}
	c.notify.Notify("Tracking information updated", KindSuccess, 0)
	c.recordActivity(ctx, ActivityEntry{
		Description: "Tracking updated for product " + productID,
		Icon:        "map-marker",
		Type:        "tracking",
	})
	c.telemetry.Record(ctx, "console.track", map[string]any{"product_id": productID})

	if status, ok := result.Product["status"].(string); ok {
		c.mu.Lock()
		c.doc.Product.ProductID = productID
		c.doc.Product.Status = status
		c.doc.Product.BadgeClass = statusBadgeClass(status)
		c.mu.Unlock()
	}
	return result, nil
}

// VerifyRecord checks a record's integrity and reports the outcome to the
// viewer.
func (c *Controller) VerifyRecord(ctx context.Context, recordID string) (bool, error) {
	verified, err := c.opts.Backend.VerifyRecord(ctx, recordID)
	if err != nil {
		c.notify.Notify("Verification failed. Please try again.", KindDanger, 0)
		return false, err
	}
	if verified {
		c.notify.Notify("Record verified successfully", KindSuccess, 0)
	} else {
		c.notify.Notify("Record verification failed", KindDanger, 0)
	}
	c.telemetry.Record(ctx, "console.verify", map[string]any{
		"record_id": recordID,
		"verified":  verified,
	})
	return verified, nil
}
