package deferred

// Set is a generic collection with deferred removal. Items marked with Remove
// stay active (visible to Query, Each and Has) until the next Apply, so a caller
// iterating the active items can flag removals without disturbing the iteration.
// Apply is called by the owner at a frame boundary.
//
// Single-goroutine access only.
type Set[T comparable] struct {
	active  map[T]struct{}
	pending map[T]struct{}
}

func New[T comparable]() *Set[T] {
	return &Set[T]{
		active:  make(map[T]struct{}, 64),
		pending: make(map[T]struct{}, 16),
	}
}

// Of returns a set whose active items are the given items.
func Of[T comparable](items ...T) *Set[T] {
	s := New[T]()
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts item into the active items. Adding an item twice is a no-op.
func (s *Set[T]) Add(item T) {
	s.active[item] = struct{}{}
}

// Remove marks item for removal at the next Apply. Marking an item that is not
// active is allowed and has no effect once applied.
func (s *Set[T]) Remove(item T) {
	s.pending[item] = struct{}{}
}

// Apply drops every marked item from the active items and clears the marks.
func (s *Set[T]) Apply() {
	if len(s.pending) == 0 {
		return
	}
	for it := range s.pending {
		delete(s.active, it)
	}
	clear(s.pending)
}

// Query returns the active items satisfying pred, in no particular order.
// A nil pred matches everything.
func (s *Set[T]) Query(pred func(T) bool) []T {
	out := make([]T, 0, len(s.active))
	for it := range s.active {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Each calls fn for every active item. fn may call Add or Remove; items added
// during the walk may or may not be visited.
func (s *Set[T]) Each(fn func(T)) {
	for it := range s.active {
		fn(it)
	}
}

// Has reports whether item is active. Items marked for removal are still
// active until Apply.
func (s *Set[T]) Has(item T) bool {
	_, ok := s.active[item]
	return ok
}

// Marked reports whether item is waiting for the next Apply.
func (s *Set[T]) Marked(item T) bool {
	_, ok := s.pending[item]
	return ok
}

func (s *Set[T]) Len() int     { return len(s.active) }
func (s *Set[T]) Pending() int { return len(s.pending) }
