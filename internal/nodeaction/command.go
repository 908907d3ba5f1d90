package nodeaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/wire"
)

// CommandExecutor runs an arbitrary command on the host, streaming
// its output lines back as they're produced.
type CommandExecutor struct{}

func (e *CommandExecutor) Execute(ctx context.Context, id uuid.UUID, payload []byte, out chan<- wire.ActionMessage) error {
	d := wire.NewDecoder(payload)
	cmd, err := d.String()
	if err != nil {
		return fmt.Errorf("command: decode cmd: %w", err)
	}
	args, err := d.StringList()
	if err != nil {
		return fmt.Errorf("command: decode args: %w", err)
	}

	if err := runCommand(ctx, id, out, cmd, args); err != nil {
		return fmt.Errorf("command %s: %w", cmd, err)
	}
	return nil
}
