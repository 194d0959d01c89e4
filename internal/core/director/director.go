package director

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/clock"
	"github.com/genie-sim/genie/internal/core/event"
	"github.com/genie-sim/genie/internal/core/script"
)

var (
	ErrAlreadyDirecting = errors.New("director: already directing a scene")
	ErrNilScene         = errors.New("director: scene needs both actors and actions")
)

// Transition selects when OnNext swaps scenes.
type Transition int

const (
	// TransitionDeferred queues the swap and applies it at the frame boundary,
	// after the outgoing scene's removals. The last request in a frame wins.
	TransitionDeferred Transition = iota
	// TransitionImmediate swaps as soon as OnNext is called, so the rest of
	// the current frame already runs against the new scene.
	TransitionImmediate
)

func (t Transition) String() string {
	switch t {
	case TransitionDeferred:
		return "deferred"
	case TransitionImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("transition(%d)", int(t))
	}
}

// ParseTransition is the inverse of Transition.String.
func ParseTransition(s string) (Transition, error) {
	switch s {
	case "deferred", "":
		return TransitionDeferred, nil
	case "immediate":
		return TransitionImmediate, nil
	}
	return 0, fmt.Errorf("unknown transition mode %q", s)
}

type scene struct {
	actors  *cast.Actors
	actions *script.Actions
}

// Director runs the frame loop of a scene: input actions once per frame, update
// actions once per caught-up clock step, output actions once per frame, then
// deferred removals. It is also the Callback handed to every action.
//
// A Director is single-goroutine: DirectScene blocks until an action calls
// OnStop, and nothing else may touch the director meanwhile.
type Director struct {
	clock      *clock.Clock
	bus        *event.Bus
	log        *zap.Logger
	transition Transition

	actors    *cast.Actors
	actions   *script.Actions
	next      *scene
	directing bool // between DirectScene entry and return
	stopping  bool // OnStop seen; the loop ends after this frame
	frame     uint64
	phase     script.Category
}

type Option func(*Director)

func WithClock(c *clock.Clock) Option {
	return func(d *Director) {
		if c != nil {
			d.clock = c
		}
	}
}

func WithBus(b *event.Bus) Option {
	return func(d *Director) {
		if b != nil {
			d.bus = b
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(d *Director) {
		if log != nil {
			d.log = log
		}
	}
}

func WithTransition(t Transition) Option {
	return func(d *Director) { d.transition = t }
}

func New(opts ...Option) *Director {
	d := &Director{
		clock:   clock.New(clock.DefaultStep),
		bus:     event.NewBus(),
		log:     zap.NewNop(),
		actors:  cast.NewActors(),
		actions: script.NewActions(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DirectScene installs the given scene and runs frames until OnStop is
// called. A panic raised by an action is logged and propagates to the caller
// unrecovered; the director is left idle.
func (d *Director) DirectScene(actors *cast.Actors, actions *script.Actions) error {
	if d.directing {
		return ErrAlreadyDirecting
	}
	if actors == nil || actions == nil {
		return ErrNilScene
	}

	d.actors, d.actions = actors, actions
	d.next = nil
	d.directing = true
	d.stopping = false
	d.clock.Reset()
	d.log.Info("directing scene",
		zap.Int("actors", actors.Len()),
		zap.Int("actions", actions.Len()),
		zap.Duration("step", d.clock.Step()),
		zap.Stringer("transition", d.transition),
	)

	defer func() {
		d.directing = false
		if r := recover(); r != nil {
			d.log.Error("action fault, scene aborted",
				zap.Any("panic", r),
				zap.Uint64("frame", d.frame),
				zap.Stringer("phase", d.phase),
			)
			panic(r)
		}
	}()

	for !d.stopping {
		d.bus.Flush()
		d.runFrame()
	}

	d.log.Info("direction stopped", zap.Uint64("frames", d.frame))
	event.Emit(d.bus, event.Stopped{Frames: d.frame})
	d.bus.Flush()
	return nil
}

func (d *Director) runFrame() {
	start := time.Now()
	d.frame++

	d.doInputs()
	updates := d.doUpdates()
	d.doOutputs()

	event.Emit(d.bus, event.FrameCompleted{
		Frame:    d.frame,
		Updates:  updates,
		Actors:   d.actors.Len(),
		Actions:  d.actions.Len(),
		Duration: time.Since(start),
	})
}

// doInputs ticks the clock, since this is the start of the frame, then cues
// the input actions.
func (d *Director) doInputs() {
	d.phase = script.Input
	d.clock.Tick()
	d.cue(script.Input)
}

// doUpdates cues the update actions once per step owed by the clock.
func (d *Director) doUpdates() int {
	d.phase = script.Update
	steps := 0
	for d.clock.IsLagging() {
		d.cue(script.Update)
		d.clock.CatchUp()
		steps++
	}
	return steps
}

// doOutputs cues the output actions and then applies the frame's removals and
// any queued scene change.
func (d *Director) doOutputs() {
	d.phase = script.Output
	d.cue(script.Output)
	d.actors.Apply()
	d.actions.Apply()

	if d.next != nil {
		next := d.next
		d.next = nil
		d.install(next.actors, next.actions)
	}
}

// cue runs the actions of one category. The selection is taken once, so
// actions added or removed during the walk do not change who runs this time.
// Each action receives the scene current at the moment it runs.
func (d *Director) cue(category script.Category) {
	for _, a := range d.actions.Select(category) {
		a.Execute(d.actors, d.actions, d.clock, d)
	}
}

func (d *Director) install(actors *cast.Actors, actions *script.Actions) {
	d.actors, d.actions = actors, actions
	d.log.Debug("scene changed",
		zap.Uint64("frame", d.frame),
		zap.Int("actors", actors.Len()),
		zap.Int("actions", actions.Len()),
	)
	event.Emit(d.bus, event.SceneChanged{
		Frame:   d.frame,
		Actors:  actors.Len(),
		Actions: actions.Len(),
	})
}

// OnStop ends direction after the current frame's remaining phases.
func (d *Director) OnStop() {
	d.stopping = true
}

// OnNext switches to the given scene, either at the end of this frame or
// right away depending on the director's Transition. Nil arguments keep the
// corresponding current set.
func (d *Director) OnNext(actors *cast.Actors, actions *script.Actions) {
	if actors == nil {
		actors = d.actors
	}
	if actions == nil {
		actions = d.actions
	}
	if d.transition == TransitionImmediate {
		d.install(actors, actions)
		return
	}
	d.next = &scene{actors: actors, actions: actions}
}

func (d *Director) Directing() bool          { return d.directing }
func (d *Director) Frame() uint64            { return d.frame }
func (d *Director) Clock() *clock.Clock      { return d.clock }
func (d *Director) Bus() *event.Bus          { return d.bus }
func (d *Director) Actors() *cast.Actors     { return d.actors }
func (d *Director) Actions() *script.Actions { return d.actions }

var _ script.Callback = (*Director)(nil)
