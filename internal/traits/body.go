package traits

import "time"

// Body places an actor on the stage. Velocities are in units per simulation
// second.
type Body struct {
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
	VX     float64 `mapstructure:"vx"`
	VY     float64 `mapstructure:"vy"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

func (b *Body) Position() (x, y float64) { return b.X, b.Y }

func (b *Body) SetPosition(x, y float64) {
	b.X, b.Y = x, y
}

// Move advances the body by its velocity over dt.
func (b *Body) Move(dt time.Duration) {
	s := dt.Seconds()
	b.X += b.VX * s
	b.Y += b.VY * s
}

// Center returns the midpoint of the body's bounding box.
func (b *Body) Center() (x, y float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}
