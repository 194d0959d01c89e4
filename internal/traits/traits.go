package traits

import "time"

// Image is the visual drawn for an actor. RenderConsole prints its path and
// scale next to the body position.
type Image struct {
	Path     string  `mapstructure:"path"`
	Scale    float64 `mapstructure:"scale"`
	Rotation float64 `mapstructure:"rotation"`
}

// Label names an actor for logs and console output.
type Label struct {
	Text string `mapstructure:"text"`
}

// Lifetime is the simulation time an actor has left before ExpireActors
// removes it.
type Lifetime struct {
	Remaining time.Duration `mapstructure:"remaining"`
}

// Tick consumes dt and reports whether the lifetime has run out.
func (l *Lifetime) Tick(dt time.Duration) bool {
	l.Remaining -= dt
	return l.Remaining <= 0
}
