package director_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/clock"
	"github.com/genie-sim/genie/internal/core/director"
	"github.com/genie-sim/genie/internal/core/event"
	"github.com/genie-sim/genie/internal/core/script"
)

const step = 10 * time.Millisecond

// steadyWall advances by perSample on every read, so every frame observes the
// same elapsed wall time.
func steadyWall(perSample time.Duration) func() time.Time {
	t := time.Unix(1_700_000_000, 0)
	return func() time.Time {
		t = t.Add(perSample)
		return t
	}
}

func newDirector(perFrame time.Duration, opts ...director.Option) *director.Director {
	clk := clock.New(step, clock.WithNow(steadyWall(perFrame)))
	return director.New(append([]director.Option{director.WithClock(clk)}, opts...)...)
}

// stopAfter stops the director once the given number of frames have started.
func stopAfter(frames int) *script.FuncAction {
	n := 0
	return script.Func(script.Input, 1000, func(_ *cast.Actors, _ *script.Actions, _ *clock.Clock, cb script.Callback) {
		n++
		if n >= frames {
			cb.OnStop()
		}
	})
}

func recorder(log *[]string, category script.Category, priority int, name string) *script.FuncAction {
	return script.Func(category, priority, func(*cast.Actors, *script.Actions, *clock.Clock, script.Callback) {
		*log = append(*log, name)
	})
}

func TestDirector_PhaseOrder(t *testing.T) {
	var log []string
	d := newDirector(2 * step)
	actions := script.NewActions(
		recorder(&log, script.Output, 0, "output"),
		recorder(&log, script.Update, 0, "update"),
		recorder(&log, script.Input, 0, "input"),
		stopAfter(1),
	)

	require.NoError(t, d.DirectScene(cast.NewActors(), actions))
	assert.Equal(t, []string{"input", "update", "update", "output"}, log)
	assert.Equal(t, uint64(1), d.Frame())
	assert.False(t, d.Directing())
}

func TestDirector_StopTakesEffectAtFrameBoundary(t *testing.T) {
	var log []string
	d := newDirector(step)
	stopper := script.Func(script.Input, 0, func(_ *cast.Actors, _ *script.Actions, _ *clock.Clock, cb script.Callback) {
		log = append(log, "stop")
		cb.OnStop()
	})
	actions := script.NewActions(
		stopper,
		recorder(&log, script.Input, 1, "input-after-stop"),
		recorder(&log, script.Update, 0, "update"),
		recorder(&log, script.Output, 0, "output"),
	)

	require.NoError(t, d.DirectScene(cast.NewActors(), actions))
	assert.Equal(t, []string{"stop", "input-after-stop", "update", "output"}, log)
	assert.Equal(t, uint64(1), d.Frame())
}

func TestDirector_PriorityOrderWithinPhase(t *testing.T) {
	var log []string
	d := newDirector(step)
	actions := script.NewActions(
		recorder(&log, script.Update, 3, "3"),
		recorder(&log, script.Update, 1, "1"),
		recorder(&log, script.Update, 2, "2"),
		stopAfter(1),
	)

	require.NoError(t, d.DirectScene(cast.NewActors(), actions))
	assert.Equal(t, []string{"1", "2", "3"}, log)
}

func TestDirector_UpdatesFollowLag(t *testing.T) {
	updates := 0
	d := newDirector(step / 2)
	actions := script.NewActions(
		script.Func(script.Update, 0, func(*cast.Actors, *script.Actions, *clock.Clock, script.Callback) { updates++ }),
		stopAfter(4),
	)

	require.NoError(t, d.DirectScene(cast.NewActors(), actions))
	// Half a step per frame: frames 2 and 4 each owe one full step.
	assert.Equal(t, 2, updates)
	assert.Equal(t, 2*step, d.Clock().SimTime())
}

func TestDirector_RemovalsApplyAtFrameBoundary(t *testing.T) {
	x := cast.NewActor()
	y := cast.NewActor()
	actors := cast.NewActors(x, y)

	var remover *script.FuncAction
	remover = script.Func(script.Output, 0, func(actors *cast.Actors, actions *script.Actions, _ *clock.Clock, _ script.Callback) {
		actors.Remove(x)
		actions.Remove(remover)
	})

	var sameFrameActors []*cast.Actor
	var sameFrameOutputs int
	observer := script.Func(script.Output, 1, func(actors *cast.Actors, actions *script.Actions, _ *clock.Clock, _ script.Callback) {
		if sameFrameActors == nil {
			sameFrameActors = actors.Query(nil)
			sameFrameOutputs = len(actions.Select(script.Output))
		}
	})

	var nextFrameActors []*cast.Actor
	var nextFrameHasRemover bool
	frames := 0
	checker := script.Func(script.Input, 0, func(actors *cast.Actors, actions *script.Actions, _ *clock.Clock, cb script.Callback) {
		frames++
		if frames == 2 {
			nextFrameActors = actors.Query(nil)
			nextFrameHasRemover = actions.Has(remover)
			cb.OnStop()
		}
	})

	d := newDirector(step)
	require.NoError(t, d.DirectScene(actors, script.NewActions(remover, observer, checker)))

	assert.ElementsMatch(t, []*cast.Actor{x, y}, sameFrameActors)
	assert.Equal(t, 2, sameFrameOutputs)
	assert.ElementsMatch(t, []*cast.Actor{y}, nextFrameActors)
	assert.False(t, nextFrameHasRemover)
	assert.Equal(t, 0, actors.Pending())
}

func TestDirector_ActionAddedMidPhaseRunsNextFrame(t *testing.T) {
	var log []string
	late := recorder(&log, script.Input, 5, "late")
	adder := script.Func(script.Input, 0, func(_ *cast.Actors, actions *script.Actions, _ *clock.Clock, _ script.Callback) {
		actions.Add(late)
	})
	d := newDirector(step)

	require.NoError(t, d.DirectScene(cast.NewActors(), script.NewActions(adder, stopAfter(2))))
	assert.Equal(t, []string{"late"}, log)
}

func sceneSwitcher(next *script.Actions, nextActors *cast.Actors) *script.FuncAction {
	done := false
	return script.Func(script.Input, 0, func(_ *cast.Actors, _ *script.Actions, _ *clock.Clock, cb script.Callback) {
		if !done {
			done = true
			cb.OnNext(nextActors, next)
		}
	})
}

func TestDirector_OnNextDeferredSwapsAtBoundary(t *testing.T) {
	var log []string
	nextActors := cast.NewActors(cast.NewActor())
	next := script.NewActions(recorder(&log, script.Update, 0, "new-update"), stopAfter(1))

	first := script.NewActions(
		sceneSwitcher(next, nextActors),
		recorder(&log, script.Update, 0, "old-update"),
		recorder(&log, script.Output, 0, "old-output"),
	)
	var changes []event.SceneChanged
	d := newDirector(step)
	event.Subscribe(d.Bus(), func(e event.SceneChanged) { changes = append(changes, e) })

	require.NoError(t, d.DirectScene(cast.NewActors(), first))
	assert.Equal(t, []string{"old-update", "old-output", "new-update"}, log)
	assert.Same(t, nextActors, d.Actors())
	assert.Same(t, next, d.Actions())
	require.Len(t, changes, 1)
	assert.Equal(t, uint64(1), changes[0].Frame)
	assert.Equal(t, 1, changes[0].Actors)
}

func TestDirector_OnNextImmediateSwapsSameFrame(t *testing.T) {
	var log []string
	nextActors := cast.NewActors()
	next := script.NewActions(
		recorder(&log, script.Update, 0, "new-update"),
		recorder(&log, script.Output, 0, "new-output"),
		stopAfter(1),
	)
	var seenActors *cast.Actors
	probe := script.Func(script.Input, 1, func(actors *cast.Actors, _ *script.Actions, _ *clock.Clock, _ script.Callback) {
		seenActors = actors
	})

	first := script.NewActions(
		sceneSwitcher(next, nextActors),
		probe,
		recorder(&log, script.Update, 0, "old-update"),
		recorder(&log, script.Output, 0, "old-output"),
	)
	d := newDirector(step, director.WithTransition(director.TransitionImmediate))

	require.NoError(t, d.DirectScene(cast.NewActors(), first))
	// The old input selection finishes, but later phases see the new scene.
	assert.Same(t, nextActors, seenActors)
	assert.Equal(t, []string{"new-update", "new-output", "new-update", "new-output"}, log)
}

func TestDirector_OnNextLastRequestWins(t *testing.T) {
	a := script.NewActions(stopAfter(1))
	b := script.NewActions(stopAfter(1))
	twice := script.Func(script.Output, 0, func(_ *cast.Actors, _ *script.Actions, _ *clock.Clock, cb script.Callback) {
		cb.OnNext(nil, a)
		cb.OnNext(nil, b)
	})
	actors := cast.NewActors()
	d := newDirector(step)

	require.NoError(t, d.DirectScene(actors, script.NewActions(twice)))
	assert.Same(t, b, d.Actions())
	assert.Same(t, actors, d.Actors(), "nil actors keeps the current set")
}

func TestDirector_RejectsReentryAndNilScene(t *testing.T) {
	d := newDirector(step)
	assert.ErrorIs(t, d.DirectScene(nil, script.NewActions()), director.ErrNilScene)
	assert.ErrorIs(t, d.DirectScene(cast.NewActors(), nil), director.ErrNilScene)

	var reentry error
	nested := script.Func(script.Input, 0, func(actors *cast.Actors, actions *script.Actions, _ *clock.Clock, cb script.Callback) {
		reentry = d.DirectScene(actors, actions)
		cb.OnStop()
	})
	require.NoError(t, d.DirectScene(cast.NewActors(), script.NewActions(nested)))
	assert.ErrorIs(t, reentry, director.ErrAlreadyDirecting)
}

func TestDirector_RejectsReentryAfterStop(t *testing.T) {
	d := newDirector(step)
	outerActors, outerActions := cast.NewActors(), script.NewActions()

	var (
		reentry       error
		directing     bool
		nestedFrames  int
		outputActors  *cast.Actors
		outputActions *script.Actions
	)
	stop := script.Func(script.Input, 0, func(_ *cast.Actors, _ *script.Actions, _ *clock.Clock, cb script.Callback) {
		cb.OnStop()
	})
	nested := script.Func(script.Input, 1, func(*cast.Actors, *script.Actions, *clock.Clock, script.Callback) {
		directing = d.Directing()
		inner := script.Func(script.Input, 0, func(_ *cast.Actors, _ *script.Actions, _ *clock.Clock, cb script.Callback) {
			nestedFrames++
			cb.OnStop()
		})
		reentry = d.DirectScene(cast.NewActors(), script.NewActions(inner))
	})
	output := script.Func(script.Output, 0, func(actors *cast.Actors, actions *script.Actions, _ *clock.Clock, _ script.Callback) {
		outputActors, outputActions = actors, actions
	})
	outerActions.Add(stop)
	outerActions.Add(nested)
	outerActions.Add(output)

	require.NoError(t, d.DirectScene(outerActors, outerActions))

	assert.True(t, directing, "still directing after OnStop until the frame ends")
	assert.ErrorIs(t, reentry, director.ErrAlreadyDirecting)
	assert.Zero(t, nestedFrames)
	assert.Same(t, outerActors, outputActors)
	assert.Same(t, outerActions, outputActions)
	assert.Equal(t, uint64(1), d.Frame())
	assert.False(t, d.Directing())
}

func TestDirector_ActionPanicPropagates(t *testing.T) {
	var log []string
	boom := script.Func(script.Update, 0, func(*cast.Actors, *script.Actions, *clock.Clock, script.Callback) {
		panic("boom")
	})
	actions := script.NewActions(boom, recorder(&log, script.Output, 0, "output"))
	d := newDirector(step)

	assert.PanicsWithValue(t, "boom", func() {
		_ = d.DirectScene(cast.NewActors(), actions)
	})
	assert.Empty(t, log, "the rest of the frame does not run")
	assert.False(t, d.Directing())

	// The director can direct again afterwards.
	require.NoError(t, d.DirectScene(cast.NewActors(), script.NewActions(stopAfter(1))))
}

func TestDirector_EmitsLifecycleEvents(t *testing.T) {
	d := newDirector(3 * step)
	var frames []event.FrameCompleted
	var stopped []event.Stopped
	event.Subscribe(d.Bus(), func(e event.FrameCompleted) { frames = append(frames, e) })
	event.Subscribe(d.Bus(), func(e event.Stopped) { stopped = append(stopped, e) })

	actors := cast.NewActors(cast.NewActor(), cast.NewActor())
	require.NoError(t, d.DirectScene(actors, script.NewActions(stopAfter(2))))

	require.Len(t, frames, 2)
	assert.Equal(t, uint64(1), frames[0].Frame)
	assert.Equal(t, 3, frames[0].Updates)
	assert.Equal(t, 2, frames[1].Actors)
	assert.Equal(t, 1, frames[1].Actions)
	assert.Equal(t, []event.Stopped{{Frames: 2}}, stopped)
	assert.Equal(t, 0, d.Bus().Pending())
}

func TestTransition_Parse(t *testing.T) {
	for _, tr := range []director.Transition{director.TransitionDeferred, director.TransitionImmediate} {
		got, err := director.ParseTransition(tr.String())
		require.NoError(t, err)
		assert.Equal(t, tr, got)
	}
	_, err := director.ParseTransition("later")
	assert.Error(t, err)
}
