package nodeaction

import (
	"bufio"
	"context"
	"io"
	"os/exec"

	"github.com/google/uuid"
	"github.com/tiron-sh/tiron/internal/wire"
)

// runCommand runs program with args, streaming each stdout/stderr
// line to out as it's produced rather than buffering the whole
// output, so a long-running remote command's progress is visible as
// it happens instead of only once it exits.
func runCommand(ctx context.Context, id uuid.UUID, out chan<- wire.ActionMessage, program string, args []string) error {
	cmd := exec.CommandContext(ctx, program, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan struct{}, 2)
	go streamLines(id, out, stdout, wire.LevelInfo, done)
	go streamLines(id, out, stderr, wire.LevelWarn, done)
	<-done
	<-done

	return cmd.Wait()
}

func streamLines(id uuid.UUID, out chan<- wire.ActionMessage, r io.Reader, level wire.OutputLevel, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		out <- wire.OutputLine(id, scanner.Text(), level)
	}
}
