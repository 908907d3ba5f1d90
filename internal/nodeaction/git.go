package nodeaction

import (
	"context"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/wire"
)

// GitExecutor clones repo to dest. An existing, already-cloned dest
// is left alone: re-running the same action is a no-op rather than
// an error.
type GitExecutor struct{}

func (e *GitExecutor) Execute(ctx context.Context, id uuid.UUID, payload []byte, out chan<- wire.ActionMessage) error {
	d := wire.NewDecoder(payload)
	repo, err := d.String()
	if err != nil {
		return fmt.Errorf("git: decode repo: %w", err)
	}
	dest, err := d.String()
	if err != nil {
		return fmt.Errorf("git: decode dest: %w", err)
	}

	if _, err := os.Stat(dest); err == nil {
		if _, openErr := git.PlainOpen(dest); openErr == nil {
			out <- wire.OutputLine(id, fmt.Sprintf("%s already cloned", dest), wire.LevelInfo)
			return nil
		}
	}

	if _, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{URL: repo}); err != nil {
		return fmt.Errorf("git: clone %s: %w", repo, err)
	}

	out <- wire.OutputLine(id, fmt.Sprintf("cloned %s to %s", repo, dest), wire.LevelSuccess)
	return nil
}
