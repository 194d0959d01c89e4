package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genie-sim/genie/internal/core/event"
)

func TestBus_EventsWaitForFlush(t *testing.T) {
	b := event.NewBus()
	var got []uint64
	event.Subscribe(b, func(e event.FrameCompleted) { got = append(got, e.Frame) })

	event.Emit(b, event.FrameCompleted{Frame: 1})
	event.Emit(b, event.FrameCompleted{Frame: 2})
	assert.Empty(t, got)
	assert.Equal(t, 2, b.Pending())

	b.Flush()
	assert.Equal(t, []uint64{1, 2}, got)
	assert.Equal(t, 0, b.Pending())

	b.Flush()
	assert.Equal(t, []uint64{1, 2}, got, "flushed events are not redelivered")
}

func TestBus_RoutesByType(t *testing.T) {
	b := event.NewBus()
	frames, stops := 0, 0
	event.Subscribe(b, func(event.FrameCompleted) { frames++ })
	event.Subscribe(b, func(event.Stopped) { stops++ })
	event.Subscribe(b, func(event.Stopped) { stops++ })

	event.Emit(b, event.FrameCompleted{})
	event.Emit(b, event.Stopped{})
	event.Emit(b, event.SceneChanged{})
	b.Flush()

	assert.Equal(t, 1, frames)
	assert.Equal(t, 2, stops)
}

func TestBus_HandlerEmitsGoToNextFlush(t *testing.T) {
	b := event.NewBus()
	stops := 0
	event.Subscribe(b, func(e event.FrameCompleted) { event.Emit(b, event.Stopped{Frames: e.Frame}) })
	event.Subscribe(b, func(event.Stopped) { stops++ })

	event.Emit(b, event.FrameCompleted{Frame: 3})
	b.Flush()
	assert.Equal(t, 0, stops)
	assert.Equal(t, 1, b.Pending())

	b.Flush()
	assert.Equal(t, 1, stops)
}
