package clock

import "time"

// DefaultStep is one update per 1/60th of a simulation second.
const DefaultStep = time.Second / 60

// Clock decouples wall time from fixed-size simulation steps. Tick adds the
// wall time elapsed since the previous Tick to the lag; while IsLagging, the
// owner runs one update step and calls CatchUp, which pays back one step.
//
// Lag never goes negative: CatchUp panics when called without a full step of lag.
type Clock struct {
	step    time.Duration
	lag     time.Duration
	simTime time.Duration
	prev    time.Time
	frames  uint64
	now     func() time.Time
}

type Option func(*Clock)

// WithNow replaces the wall clock source.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a clock with the given step. A non-positive step falls back to
// DefaultStep.
func New(step time.Duration, opts ...Option) *Clock {
	if step <= 0 {
		step = DefaultStep
	}
	c := &Clock{step: step, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.prev = c.now()
	return c
}

// Tick samples wall time and adds the time elapsed since the previous sample
// to the lag. Called once at the start of every frame.
func (c *Clock) Tick() {
	now := c.now()
	if elapsed := now.Sub(c.prev); elapsed > 0 {
		c.lag += elapsed
	}
	c.prev = now
	c.frames++
}

// IsLagging reports whether at least one full step of lag is owed.
func (c *Clock) IsLagging() bool {
	return c.lag >= c.step
}

// CatchUp pays back one step of lag and advances simulation time by one step.
// It must only follow a true IsLagging.
func (c *Clock) CatchUp() {
	if c.lag < c.step {
		panic("clock: catch up without lag")
	}
	c.lag -= c.step
	c.simTime += c.step
}

// Reset clears the lag and re-samples wall time, so time that passed before a
// scene starts is not owed to it. Simulation time and frame count are kept.
func (c *Clock) Reset() {
	c.lag = 0
	c.prev = c.now()
}

func (c *Clock) Step() time.Duration    { return c.step }
func (c *Clock) Lag() time.Duration     { return c.lag }
func (c *Clock) SimTime() time.Duration { return c.simTime }
func (c *Clock) Frames() uint64         { return c.frames }

// Alpha is the fraction of a step currently owed, in [0, 1) after the update
// phase has drained the lag. Output behaviors use it to interpolate.
func (c *Clock) Alpha() float64 {
	return float64(c.lag) / float64(c.step)
}
