package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_EmitAndSubscribe(t *testing.T) {
	r := NewReporter()

	r.Emit(Event{Worker: "ab12cd34", Status: StatusSpawned})
	r.Emit(Event{Worker: "ab12cd34", Status: StatusFed, Lines: 7})
	r.Close()

	var got []Event
	for event := range r.Subscribe() {
		got = append(got, event)
	}

	require.Len(t, got, 2)
	assert.Equal(t, StatusSpawned, got[0].Status)
	assert.Equal(t, 7, got[1].Lines)
}

func TestReporter_EmitNeverBlocks(t *testing.T) {
	r := NewReporter()

	// Nobody is draining; emits beyond the buffer must drop, not block.
	for i := 0; i < 1000; i++ {
		r.Emit(Event{Status: StatusMerging})
	}
}

func TestFormatEvent(t *testing.T) {
	assert.Equal(t, "worker=ab12cd34 state=spawned",
		FormatEvent(Event{Worker: "ab12cd34", Status: StatusSpawned}))
	assert.Equal(t, "worker=ab12cd34 state=fed lines=3",
		FormatEvent(Event{Worker: "ab12cd34", Status: StatusFed, Lines: 3}))
	assert.Equal(t, "worker=ab12cd34 state=done",
		FormatEvent(Event{Worker: "ab12cd34", Status: StatusDone}))
	assert.Equal(t, "state=merging", FormatEvent(Event{Status: StatusMerging}))
	assert.Equal(t, "state=merged", FormatEvent(Event{Status: StatusMerged}))
}
