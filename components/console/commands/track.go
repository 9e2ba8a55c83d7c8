package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-supplychain/components/console"
)

// TrackProductInput identifies the product to refresh.
type TrackProductInput struct {
	ProductID string
}

type trackService interface {
	TrackNow(ctx context.Context, productID string) (console.TrackResult, error)
}

// TrackProductCommand wraps the controller's explicit tracking refresh so
// transports can invoke it without linking against the controller.
type TrackProductCommand struct {
	service   trackService
	telemetry Telemetry
}

// NewTrackProductCommand creates a command instance.
func NewTrackProductCommand(service trackService, telemetry Telemetry) *TrackProductCommand {
	return &TrackProductCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[TrackProductInput] = (*TrackProductCommand)(nil)

// Execute delegates to the console controller.
func (c *TrackProductCommand) Execute(ctx context.Context, msg TrackProductInput) error {
	if c.service == nil {
		return errors.New("track command requires service")
	}
	result, err := c.service.TrackNow(ctx, msg.ProductID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.track", map[string]any{
		"product_id": msg.ProductID,
		"success":    result.Success,
	})
	return nil
}
