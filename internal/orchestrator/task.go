package orchestrator

import (
	"context"
	"io"
	"sync/atomic"
)

// TaskSpawner runs workers as goroutines of the current process, connected
// to the parent by in-memory pipes. It is used when process mode cannot
// locate the running image, and it is the mode the tests drive, since no
// external binary is involved.
type TaskSpawner struct {
	sorter  *Sorter
	spawned atomic.Int64
}

// Spawn starts one worker goroutine running the full sort recursion over an
// input pipe and an output pipe.
func (s *TaskSpawner) Spawn(ctx context.Context) (Worker, error) {
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	w := &taskWorker{id: shortID(), input: inW, output: outR, done: make(chan error, 1)}
	s.spawned.Add(1)

	go func() {
		err := s.sorter.Run(ctx, inR, outW)
		// Deliver failure on every path the parent can block on: its read
		// of our output, its write of our input, and its Wait.
		outW.CloseWithError(err)
		inR.CloseWithError(err)
		w.done <- err
	}()

	return w, nil
}

// Spawned reports how many workers this spawner has created over its
// lifetime, counting every node of the sort tree below the root.
func (s *TaskSpawner) Spawned() int64 {
	return s.spawned.Load()
}

type taskWorker struct {
	id     string
	input  io.WriteCloser
	output io.Reader
	done   chan error
}

func (w *taskWorker) ID() string            { return w.id }
func (w *taskWorker) Input() io.WriteCloser { return w.input }
func (w *taskWorker) Output() io.Reader     { return w.output }

func (w *taskWorker) Wait() error {
	err := <-w.done
	// Allow repeated Wait calls during cleanup.
	w.done <- err
	return err
}
