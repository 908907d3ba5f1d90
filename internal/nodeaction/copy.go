package nodeaction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/wire"
)

// CopyExecutor writes a controller-supplied file's content to dest,
// creating parent directories as needed. The content already
// travelled inside the payload at compile time, so execution never
// touches the controller's filesystem.
type CopyExecutor struct{}

func (e *CopyExecutor) Execute(ctx context.Context, id uuid.UUID, payload []byte, out chan<- wire.ActionMessage) error {
	d := wire.NewDecoder(payload)
	dest, err := d.String()
	if err != nil {
		return fmt.Errorf("copy: decode dest: %w", err)
	}
	content, err := d.RawBytes()
	if err != nil {
		return fmt.Errorf("copy: decode content: %w", err)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("copy: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return fmt.Errorf("copy: write %s: %w", dest, err)
	}

	out <- wire.OutputLine(id, fmt.Sprintf("copied %d bytes to %s", len(content), dest), wire.LevelSuccess)
	return nil
}
