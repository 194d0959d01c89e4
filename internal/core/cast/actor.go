package cast

import "reflect"

// Actor is an identity that owns a set of traits. Actors compare by pointer:
// two actors with equal traits are still distinct.
type Actor struct {
	traits map[Kind]Trait
}

func NewActor(traits ...Trait) *Actor {
	a := &Actor{traits: make(map[Kind]Trait, len(traits))}
	for _, t := range traits {
		a.AddTrait(t)
	}
	return a
}

// AddTrait stores t under its kind, replacing any trait of the same kind.
// Nil traits, including typed nil pointers, are ignored.
func (a *Actor) AddTrait(t Trait) {
	if isNil(t) {
		return
	}
	a.traits[KindOfValue(t)] = t
}

// Trait returns the trait of the given kind, or false if the actor has none.
func (a *Actor) Trait(kind Kind) (Trait, bool) {
	t, ok := a.traits[kind]
	return t, ok
}

// HasTraits reports whether the actor has every listed kind. With no kinds it
// is true for every actor.
func (a *Actor) HasTraits(kinds ...Kind) bool {
	for _, k := range kinds {
		if _, ok := a.traits[k]; !ok {
			return false
		}
	}
	return true
}

// RemoveTrait removes the trait whose kind matches t's kind. Removing an
// absent kind is a no-op.
func (a *Actor) RemoveTrait(t Trait) {
	if t == nil {
		return
	}
	delete(a.traits, KindOfValue(t))
}

// Traits returns the number of traits held.
func (a *Actor) Traits() int { return len(a.traits) }

// Get returns the actor's trait of type T.
func Get[T Trait](a *Actor) (T, bool) {
	t, ok := a.traits[KindOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := t.(T)
	return v, ok
}

// Has reports whether the actor carries a trait of type T.
func Has[T Trait](a *Actor) bool {
	_, ok := a.traits[KindOf[T]()]
	return ok
}

// Remove drops the actor's trait of type T, if any.
func Remove[T Trait](a *Actor) {
	delete(a.traits, KindOf[T]())
}

func isNil(t Trait) bool {
	if t == nil {
		return true
	}
	switch v := reflect.ValueOf(t); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
