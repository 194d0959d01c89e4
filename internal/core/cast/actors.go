package cast

import "github.com/genie-sim/genie/internal/core/deferred"

// Actors is the deferred set of actors in a scene. Removals take effect at the
// next Apply, which the director calls at the end of every frame.
type Actors struct {
	*deferred.Set[*Actor]
}

func NewActors(actors ...*Actor) *Actors {
	return &Actors{Set: deferred.Of(actors...)}
}

// WithTraits returns the active actors carrying every listed kind.
func (s *Actors) WithTraits(kinds ...Kind) []*Actor {
	return s.Query(func(a *Actor) bool { return a.HasTraits(kinds...) })
}

// Each1 calls fn for every active actor carrying a trait of type A.
func Each1[A Trait](s *Actors, fn func(*Actor, A)) {
	s.Each(func(a *Actor) {
		if ta, ok := Get[A](a); ok {
			fn(a, ta)
		}
	})
}

// Each2 calls fn for every active actor carrying traits of both type A and B.
func Each2[A, B Trait](s *Actors, fn func(*Actor, A, B)) {
	s.Each(func(a *Actor) {
		ta, ok := Get[A](a)
		if !ok {
			return
		}
		tb, ok := Get[B](a)
		if !ok {
			return
		}
		fn(a, ta, tb)
	})
}
