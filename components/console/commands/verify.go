package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// VerifyRecordInput identifies the record to check.
type VerifyRecordInput struct {
	RecordID string
}

type verifyService interface {
	VerifyRecord(ctx context.Context, recordID string) (bool, error)
}

// VerifyRecordCommand runs an integrity check through the controller.
type VerifyRecordCommand struct {
	service   verifyService
	telemetry Telemetry
}

// NewVerifyRecordCommand creates a command instance.
func NewVerifyRecordCommand(service verifyService, telemetry Telemetry) *VerifyRecordCommand {
	return &VerifyRecordCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[VerifyRecordInput] = (*VerifyRecordCommand)(nil)

// Execute delegates to the console controller.
func (c *VerifyRecordCommand) Execute(ctx context.Context, msg VerifyRecordInput) error {
	if c.service == nil {
		return errors.New("verify command requires service")
	}
	verified, err := c.service.VerifyRecord(ctx, msg.RecordID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.verify", map[string]any{
		"record_id": msg.RecordID,
		"verified":  verified,
	})
	return nil
}
