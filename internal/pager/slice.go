package pager

import "sync"

// Slice is a Source backed by an in-memory slice. Watchers are notified with the
// new length after every mutation, outside the Slice's lock.
type Slice[T any] struct {
	mu       sync.RWMutex
	items    []T
	watchers map[int]func(int)
	nextID   int
}

// NewSlice returns a Slice holding a copy of items.
func NewSlice[T any](items ...T) *Slice[T] {
	s := &Slice[T]{watchers: make(map[int]func(int))}
	s.items = append(s.items, items...)
	return s
}

// Len returns the number of items.
func (s *Slice[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Slice returns a copy of items[start:end], with the bounds clipped to the
// current length.
func (s *Slice[T]) Slice(start, end int) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if start < 0 {
		start = 0
	}
	if end > len(s.items) {
		end = len(s.items)
	}
	if start >= end {
		return []T{}
	}
	out := make([]T, end-start)
	copy(out, s.items[start:end])
	return out
}

// Set replaces all items.
func (s *Slice[T]) Set(items []T) {
	s.mu.Lock()
	s.items = append(s.items[:0:0], items...)
	n := len(s.items)
	s.mu.Unlock()
	s.notify(n)
}

// Append adds items to the end.
func (s *Slice[T]) Append(items ...T) {
	s.mu.Lock()
	s.items = append(s.items, items...)
	n := len(s.items)
	s.mu.Unlock()
	s.notify(n)
}

// RemoveAt deletes the item at index i. Out-of-range indexes are ignored.
func (s *Slice[T]) RemoveAt(i int) {
	s.mu.Lock()
	if i < 0 || i >= len(s.items) {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	n := len(s.items)
	s.mu.Unlock()
	s.notify(n)
}

// Watch registers fn to be called with the new length after each mutation and
// returns a function that removes it.
func (s *Slice[T]) Watch(fn func(n int)) func() {
	s.mu.Lock()
	if s.watchers == nil {
		s.watchers = make(map[int]func(int))
	}
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

func (s *Slice[T]) notify(n int) {
	s.mu.RLock()
	fns := make([]func(int), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(n)
	}
}
