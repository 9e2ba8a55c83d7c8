package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-supplychain/components/console"
)

// DispatchEventInput wraps one console event.
type DispatchEventInput struct {
	Event console.Event
}

type dispatchService interface {
	Dispatch(ctx context.Context, evt console.Event) error
}

// DispatchEventCommand routes interaction events into the controller so
// transports never reach into it directly.
type DispatchEventCommand struct {
	service   dispatchService
	telemetry Telemetry
}

// NewDispatchEventCommand creates the command.
func NewDispatchEventCommand(service dispatchService, telemetry Telemetry) *DispatchEventCommand {
	return &DispatchEventCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DispatchEventInput] = (*DispatchEventCommand)(nil)

// Execute routes the event through the controller's dispatcher.
func (c *DispatchEventCommand) Execute(ctx context.Context, msg DispatchEventInput) error {
	if c.service == nil {
		return errors.New("dispatch command requires service")
	}
	if err := c.service.Dispatch(ctx, msg.Event); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.dispatch", map[string]any{
		"tag": string(msg.Event.Tag),
	})
	return nil
}
