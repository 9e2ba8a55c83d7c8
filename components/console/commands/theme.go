package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-supplychain/components/console"
)

// ToggleThemeInput carries no payload; the toggle flips whatever is stored.
type ToggleThemeInput struct{}

type themeService interface {
	ToggleTheme(ctx context.Context) console.Theme
}

// ToggleThemeCommand flips the persisted theme preference.
type ToggleThemeCommand struct {
	service   themeService
	telemetry Telemetry
}

// NewToggleThemeCommand creates a command instance.
func NewToggleThemeCommand(service themeService, telemetry Telemetry) *ToggleThemeCommand {
	return &ToggleThemeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleThemeInput] = (*ToggleThemeCommand)(nil)

// Execute delegates to the console controller.
func (c *ToggleThemeCommand) Execute(ctx context.Context, _ ToggleThemeInput) error {
	if c.service == nil {
		return errors.New("theme command requires service")
	}
	next := c.service.ToggleTheme(ctx)
	c.telemetry.Record(ctx, "console.command.theme", map[string]any{
		"theme": string(next),
	})
	return nil
}
