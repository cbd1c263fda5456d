package orchestrator

import "fmt"

// Status classifies a progress event in a worker's lifecycle.
type Status int

const (
	// StatusSpawned means the worker process or task has started.
	StatusSpawned Status = iota

	// StatusFed means the worker's half has been fully written and its
	// input channel closed.
	StatusFed

	// StatusDone means the worker terminated successfully.
	StatusDone

	// StatusMerging means both output streams are being merged.
	StatusMerging

	// StatusMerged means the merged stream is complete.
	StatusMerged
)

// Event is one progress observation during a sort run.
type Event struct {
	// Worker is the short ID of the worker concerned; empty for merge events.
	Worker string

	// Status classifies the event.
	Status Status

	// Lines is the number of lines fed, set for StatusFed.
	Lines int
}

// Reporter emits progress events through a buffered channel.
type Reporter struct {
	ch chan Event
}

// NewReporter creates a Reporter with a buffered channel of size 64.
func NewReporter() *Reporter {
	return &Reporter{
		ch: make(chan Event, 64),
	}
}

// Emit sends a progress event in a non-blocking fashion.
// If the channel is full, the event is silently dropped.
func (r *Reporter) Emit(event Event) {
	select {
	case r.ch <- event:
	default:
		// Drop the event if the channel is full.
	}
}

// Subscribe returns a read-only channel for consuming progress events.
func (r *Reporter) Subscribe() <-chan Event {
	return r.ch
}

// Close closes the progress event channel.
func (r *Reporter) Close() {
	close(r.ch)
}

// FormatEvent formats an Event as a human-readable status line.
func FormatEvent(event Event) string {
	switch event.Status {
	case StatusSpawned:
		return fmt.Sprintf("worker=%s state=spawned", event.Worker)
	case StatusFed:
		return fmt.Sprintf("worker=%s state=fed lines=%d", event.Worker, event.Lines)
	case StatusDone:
		return fmt.Sprintf("worker=%s state=done", event.Worker)
	case StatusMerging:
		return "state=merging"
	case StatusMerged:
		return "state=merged"
	default:
		return fmt.Sprintf("worker=%s state=unknown", event.Worker)
	}
}
