package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
)

// ExportInput describes one export run.
type ExportInput struct {
	Basename string
	Format   string
	Columns  []string
	Rows     []map[string]any
}

type exportService interface {
	ExportCSV(ctx context.Context, basename string, columns []string, rows []map[string]any) error
	ExportJSON(ctx context.Context, basename string, rows []map[string]any) error
}

// ExportCommand serializes table rows and hands them to the download sink.
type ExportCommand struct {
	service   exportService
	telemetry Telemetry
}

// NewExportCommand creates a command instance.
func NewExportCommand(service exportService, telemetry Telemetry) *ExportCommand {
	return &ExportCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ExportInput] = (*ExportCommand)(nil)

// Execute delegates to the console controller.
func (c *ExportCommand) Execute(ctx context.Context, msg ExportInput) error {
	if c.service == nil {
		return errors.New("export command requires service")
	}
	var err error
	switch msg.Format {
	case "csv", "":
		err = c.service.ExportCSV(ctx, msg.Basename, msg.Columns, msg.Rows)
	case "json":
		err = c.service.ExportJSON(ctx, msg.Basename, msg.Rows)
	default:
		return fmt.Errorf("unsupported export format: %s", msg.Format)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.export", map[string]any{
		"format": msg.Format,
		"rows":   len(msg.Rows),
	})
	return nil
}
