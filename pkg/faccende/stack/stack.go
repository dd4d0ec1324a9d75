// Package stack provides the observable navigation stack backing each
// window's screen history. Observers are notified of every structural
// mutation, so UI state such as breadcrumbs can react without polling.
package stack

import (
	"errors"
	"sync"
)

// ErrEmpty is returned when popping an empty stack.
var ErrEmpty = errors.New("stack: empty")

// Op identifies the kind of structural mutation reported to observers.
type Op int

const (
	OpPush   Op = iota // An item was pushed onto the top
	OpPop              // The top item was popped
	OpRemove           // An item was removed from within the stack
	OpClear            // All items were removed
)

// Change describes one structural mutation. Item is the zero value for
// OpClear. Size is the stack size after the mutation.
type Change[T any] struct {
	Op   Op
	Item T
	Size int
}

// Observer receives stack mutations.
type Observer[T any] func(Change[T])

// Stack is an observable LIFO stack. The last element is the top.
// The element sequence is never exposed for direct mutation; all changes
// go through Push, Pop, Remove, and Clear.
type Stack[T comparable] struct {
	mu        sync.Mutex
	items     []T
	observers map[string]Observer[T]
}

// New creates a new empty stack.
func New[T comparable]() *Stack[T] {
	return &Stack[T]{
		items:     make([]T, 0),
		observers: make(map[string]Observer[T]),
	}
}

// Push appends item to the top. Always succeeds.
func (s *Stack[T]) Push(item T) {
	s.mu.Lock()
	s.items = append(s.items, item)
	size := len(s.items)
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notify(obs, Change[T]{Op: OpPush, Item: item, Size: size})
}

// Pop removes and returns the top element. Returns ErrEmpty if the stack
// is empty.
func (s *Stack[T]) Pop() (T, error) {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		var zero T
		return zero, ErrEmpty
	}
	item := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	size := len(s.items)
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notify(obs, Change[T]{Op: OpPop, Item: item, Size: size})
	return item, nil
}

// Peek returns the element at offset without removing it: Peek(0) is the
// top, Peek(-1) one below the top, and so on. Any out-of-range offset,
// positive offsets included, yields the zero value and false rather than
// an error.
func (s *Stack[T]) Peek(offset int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := len(s.items) - 1 + offset
	if idx < 0 || idx >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[idx], true
}

// IsEmpty returns true if the stack has no elements.
func (s *Stack[T]) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Len returns the number of elements.
func (s *Stack[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear removes all elements.
func (s *Stack[T]) Clear() {
	s.mu.Lock()
	s.items = s.items[:0]
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notify(obs, Change[T]{Op: OpClear, Size: 0})
}

// Remove deletes the first occurrence of item searching from the top and
// reports whether it was found.
func (s *Stack[T]) Remove(item T) bool {
	s.mu.Lock()
	found := false
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i] == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return false
	}
	size := len(s.items)
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notify(obs, Change[T]{Op: OpRemove, Item: item, Size: size})
	return true
}

// Items returns a copy of the elements, bottom first.
func (s *Stack[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Observe registers fn under id to be called on every structural mutation.
// Re-registering an existing id replaces the previous observer.
func (s *Stack[T]) Observe(id string, fn Observer[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers[id] = fn
}

// Unobserve removes the observer registered under id and reports whether
// one was present.
func (s *Stack[T]) Unobserve(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.observers[id]; !ok {
		return false
	}
	delete(s.observers, id)
	return true
}

// snapshotObservers must be called with the mutex held.
func (s *Stack[T]) snapshotObservers() []Observer[T] {
	obs := make([]Observer[T], 0, len(s.observers))
	for _, fn := range s.observers {
		obs = append(obs, fn)
	}
	return obs
}

func notify[T any](obs []Observer[T], c Change[T]) {
	for _, fn := range obs {
		fn(c)
	}
}
