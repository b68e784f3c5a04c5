// Package state holds the application's global, observable state. Stores are
// written by action handlers and read by view components through Select, which
// gates change notifications per subscription.
package state

import "sync"

type Store[S any] struct {
	mu        sync.Mutex
	state     S
	nextID    uint64
	listeners []listener[S]
}

type listener[S any] struct {
	id uint64
	fn func(S)
}

func New[S any](initial S) *Store[S] {
	return &Store[S]{state: initial}
}

func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update replaces the state with fn(current) and notifies listeners on the
// caller's goroutine, after the lock is released. fn must not mutate maps or
// slices reachable from the current state; it returns a new value instead.
func (s *Store[S]) Update(fn func(S) S) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.state = fn(s.state)
	next := s.state
	snapshot := make([]listener[S], len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		if !s.subscribed(l.id) {
			continue
		}
		l.fn(next)
	}
}

// Subscribe registers fn for every Update. The returned func is idempotent.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[S]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store[S]) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *Store[S]) subscribed(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

func (s *Store[S]) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id != id {
			continue
		}
		next := make([]listener[S], 0, len(s.listeners)-1)
		next = append(next, s.listeners[:i]...)
		next = append(next, s.listeners[i+1:]...)
		s.listeners = next
		return
	}
}

type EqualFunc[T any] func(a, b T) bool

// Equal is the EqualFunc for comparable projections: field-by-field shallow
// equality for structs of scalars.
func Equal[T comparable](a, b T) bool {
	return a == b
}

// Select subscribes to a projection of store. onChange runs only when the
// projection differs from the last one this subscription delivered; other
// subscriptions keep their own last value.
func Select[S, T any](store *Store[S], selector func(S) T, equal EqualFunc[T], onChange func(T)) (T, func()) {
	var mu sync.Mutex
	var last T
	mu.Lock()
	defer mu.Unlock()
	unsubscribe := store.Subscribe(func(next S) {
		projected := selector(next)
		mu.Lock()
		if equal(last, projected) {
			mu.Unlock()
			return
		}
		last = projected
		mu.Unlock()
		if onChange != nil {
			onChange(projected)
		}
	})
	last = selector(store.Get())
	return last, unsubscribe
}
