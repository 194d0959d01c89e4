package event

import (
	"reflect"
	"sync"
)

type envelope struct {
	t  reflect.Type
	ev any
}

// Bus is a double-buffered event bus. Events emitted during frame N become
// visible when the owner calls Flush, which the director does at the start of
// frame N+1 and once more when direction ends.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []envelope
	back     []envelope
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]envelope, 0, 16),
		back:     make([]envelope, 0, 16),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	b.back = append(b.back, envelope{t: typeKey[T](), ev: event})
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := typeKey[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// Flush rotates back to front and delivers the front events to their
// handlers in emission order. Events emitted by handlers land in the new back
// buffer and wait for the next Flush.
func (b *Bus) Flush() {
	b.front, b.back = b.back, b.front[:0]
	for _, env := range b.front {
		for _, h := range b.handlers[env.t] {
			h(env.ev)
		}
	}
	clear(b.front)
	b.front = b.front[:0]
}

// Pending returns the number of events waiting for the next Flush.
func (b *Bus) Pending() int { return len(b.back) }
