package nodeaction

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/wire"
)

// FileExecutor asserts a path's presence/absence and type on the
// host: "file" touches an empty file if none exists, "directory"
// creates the directory tree, "absent" removes whatever is there.
type FileExecutor struct{}

func (e *FileExecutor) Execute(ctx context.Context, id uuid.UUID, payload []byte, out chan<- wire.ActionMessage) error {
	d := wire.NewDecoder(payload)
	path, err := d.String()
	if err != nil {
		return fmt.Errorf("file: decode path: %w", err)
	}
	state, err := d.String()
	if err != nil {
		return fmt.Errorf("file: decode state: %w", err)
	}

	switch state {
	case "directory":
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("file: mkdir %s: %w", path, err)
		}
		out <- wire.OutputLine(id, fmt.Sprintf("directory %s ensured", path), wire.LevelSuccess)
	case "absent":
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("file: remove %s: %w", path, err)
		}
		out <- wire.OutputLine(id, fmt.Sprintf("%s removed", path), wire.LevelSuccess)
	case "file":
		if _, err := os.Stat(path); err == nil {
			out <- wire.OutputLine(id, fmt.Sprintf("%s already exists", path), wire.LevelInfo)
			return nil
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("file: stat %s: %w", path, err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("file: create %s: %w", path, err)
		}
		f.Close()
		out <- wire.OutputLine(id, fmt.Sprintf("%s created", path), wire.LevelSuccess)
	default:
		return fmt.Errorf("file: unknown state %q", state)
	}

	return nil
}
