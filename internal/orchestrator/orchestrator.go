// Package orchestrator coordinates the recursive divide-and-conquer sort:
// it ingests lines, splits them into two contiguous halves, hands each half
// to a freshly spawned worker running the same logic, and merges the two
// sorted streams the workers send back.
//
// Every node of the sort tree runs the identical procedure down to the
// single-line base case, so a worker cannot tell whether it is the root or
// a descendant; only the channel wiring done by its parent differs.
package orchestrator

import (
	"context"
	"io"

	"github.com/convox/logger"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/forksort/internal/line"
	"github.com/dusk-indust/forksort/internal/merge"
)

// Compile-time interface checks.
var (
	_ Spawner = (*ProcessSpawner)(nil)
	_ Spawner = (*TaskSpawner)(nil)
	_ Worker  = (*processWorker)(nil)
	_ Worker  = (*taskWorker)(nil)
)

// Sorter runs one node of the sort tree and owns the wiring shared by the
// whole run: the spawner, the progress reporter, and the stderr logger.
type Sorter struct {
	cfg      Config
	spawner  Spawner
	progress *Reporter
	stderr   io.Writer
	log      *logger.Logger
}

// New creates a Sorter wired per cfg. Diagnostics and progress go to
// stderr; stdout is reserved for sorted data.
func New(cfg Config, stderr io.Writer) (*Sorter, error) {
	s := &Sorter{
		cfg:      cfg,
		progress: NewReporter(),
		stderr:   stderr,
		log:      logger.NewWriter("ns=forksort.orchestrator", stderr),
	}

	spawner, err := s.resolveSpawner()
	if err != nil {
		return nil, s.log.Error(err)
	}
	s.spawner = spawner

	return s, nil
}

// Progress exposes worker lifecycle events for optional consumption. Events
// are dropped, never blocked on, when nobody drains them.
func (s *Sorter) Progress() *Reporter {
	return s.progress
}

// Run sorts every line read from in onto out. The root calls it with the
// process streams; task-mode workers call it again with their pipe ends.
//
// Failure anywhere in the subtree is fatal for this node: there is no retry
// and no partial-result salvage, and a worker's non-zero status is treated
// exactly like a local error.
func (s *Sorter) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines, err := line.NewReader(in).ReadAll()
	if err != nil {
		return s.log.Error(err)
	}

	w := line.NewWriter(out)

	// Base cases: zero or one line is already sorted, no workers needed.
	if len(lines) <= 1 {
		if len(lines) == 1 {
			if err := w.Emit(lines[0]); err != nil {
				return s.log.Error(err)
			}
		}
		if err := w.Flush(); err != nil {
			return s.log.Error(err)
		}
		return nil
	}

	left, right := Split(lines)

	g, gctx := errgroup.WithContext(ctx)

	lw, err := s.spawner.Spawn(gctx)
	if err != nil {
		return s.log.Error(err)
	}
	s.progress.Emit(Event{Worker: lw.ID(), Status: StatusSpawned})

	rw, err := s.spawner.Spawn(gctx)
	if err != nil {
		// The first worker is already running; give it EOF and reap it
		// before reporting the spawn failure.
		_ = lw.Input().Close()
		_ = lw.Wait()
		return s.log.Error(err)
	}
	s.progress.Emit(Event{Worker: rw.ID(), Status: StatusSpawned})

	// Feed both halves and merge the results under one group: the first
	// failure cancels the group context, which kills spawned processes and
	// unblocks the other goroutines.
	g.Go(func() error { return s.feed(lw, left) })
	g.Go(func() error { return s.feed(rw, right) })
	g.Go(func() error {
		s.progress.Emit(Event{Status: StatusMerging})
		return merge.New(lw.Output(), len(left), rw.Output(), len(right), w).Run()
	})

	runErr := g.Wait()

	// Reap both workers regardless of the merge outcome; their status
	// decides success even when output already looked complete.
	lerr := s.reap(lw)
	rerr := s.reap(rw)

	// g.Wait returns the first failure, which is the root cause; worker
	// exit status still decides success when feeding and merging went
	// through.
	switch {
	case runErr != nil:
		return s.log.Error(runErr)
	case lerr != nil:
		return s.log.Error(lerr)
	case rerr != nil:
		return s.log.Error(rerr)
	}

	s.progress.Emit(Event{Status: StatusMerged})

	if err := w.Flush(); err != nil {
		return s.log.Error(err)
	}
	return nil
}

// feed streams half to the worker in order, then closes the worker's input
// channel to deliver EOF. Writes block while the worker is slow to drain;
// that is backpressure, not failure.
func (s *Sorter) feed(w Worker, half []string) error {
	lw := line.NewWriter(w.Input())
	for _, v := range half {
		if err := lw.Emit(v); err != nil {
			_ = w.Input().Close()
			return errors.Wrapf(err, "feeding worker %s", w.ID())
		}
	}
	if err := lw.Flush(); err != nil {
		_ = w.Input().Close()
		return errors.Wrapf(err, "feeding worker %s", w.ID())
	}
	if err := w.Input().Close(); err != nil {
		return errors.Wrapf(err, "closing input of worker %s", w.ID())
	}

	s.progress.Emit(Event{Worker: w.ID(), Status: StatusFed, Lines: len(half)})
	return nil
}

// reap waits for a worker and records its completion.
func (s *Sorter) reap(w Worker) error {
	if err := w.Wait(); err != nil {
		return err
	}
	s.progress.Emit(Event{Worker: w.ID(), Status: StatusDone})
	return nil
}
