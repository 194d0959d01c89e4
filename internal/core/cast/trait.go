package cast

import "reflect"

// Trait is a capability fragment attached to an Actor. Any concrete type can
// be a trait; its dynamic type is its kind, and an actor holds at most one
// trait per kind. Use pointer types for traits that are mutated in place.
type Trait interface{}

// Kind identifies a trait type. It is the key of an actor's trait registry.
type Kind = reflect.Type

// KindOf returns the kind of trait type T.
func KindOf[T Trait]() Kind {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// KindOfValue returns the kind of the given trait value.
func KindOfValue(t Trait) Kind {
	return reflect.TypeOf(t)
}
