package orchestrator

import (
	"context"
	"io"
	"os/exec"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Worker is one spawned instance of the sort, wired to its parent by a
// dedicated input channel and a dedicated output channel. Each channel has
// exactly one reader and one writer; the worker never sees its sibling's
// channels.
type Worker interface {
	// ID identifies the worker in diagnostics and progress events.
	ID() string

	// Input is the worker's input channel. The parent must close it once
	// the worker's half is fully written, or the worker waits forever for
	// an EOF that cannot arrive.
	Input() io.WriteCloser

	// Output is the worker's output channel, carrying its sorted half.
	Output() io.Reader

	// Wait blocks until the worker terminates and returns a non-nil error
	// for any outcome other than clean success.
	Wait() error
}

// Spawner creates workers that run another instance of this same sort logic.
// It is passed down the orchestration path explicitly, replacing the
// program-name global the classic fork-based design keys its recursion on.
type Spawner interface {
	Spawn(ctx context.Context) (Worker, error)
}

// ProcessSpawner runs each worker as a separate OS process by re-executing
// Program with no arguments. The worker inherits only its two redirected
// standard streams and stderr; os/exec closes the parent-side and
// child-side pipe ends that each party has no business holding.
type ProcessSpawner struct {
	// Program is the path of the image to execute.
	Program string

	// Stderr is inherited by every worker for diagnostics.
	Stderr io.Writer
}

// Spawn starts one worker process with stdin and stdout bound to fresh pipes.
func (s *ProcessSpawner) Spawn(ctx context.Context) (Worker, error) {
	cmd := exec.CommandContext(ctx, s.Program)
	cmd.Stderr = s.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "spawn: input pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "spawn: output pipe")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "spawn: starting %s", s.Program)
	}

	return &processWorker{id: shortID(), cmd: cmd, stdin: stdin, stdout: stdout}, nil
}

type processWorker struct {
	id     string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.Reader
}

func (w *processWorker) ID() string            { return w.id }
func (w *processWorker) Input() io.WriteCloser { return w.stdin }
func (w *processWorker) Output() io.Reader     { return w.stdout }

// Wait reaps the process. The output channel must be fully drained first;
// the orchestrator merges before reaping for exactly that reason.
func (w *processWorker) Wait() error {
	if err := w.cmd.Wait(); err != nil {
		return errors.Wrapf(err, "worker %s", w.id)
	}
	return nil
}

// shortID returns a compact worker identifier for diagnostics.
func shortID() string {
	return uuid.NewString()[:8]
}
