package wizard

import (
	"sync"
	"time"
)

type storeEntry[T any] struct {
	v    T
	seen time.Time
}

// Store keeps open controllers addressable by id. Every Put and Get counts
// as activity for Expire.
type Store[T any] struct {
	mu    sync.Mutex
	items map[string]*storeEntry[T]
	now   func() time.Time
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[string]*storeEntry[T]), now: time.Now}
}

func (s *Store[T]) Put(id string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = &storeEntry[T]{v: v, seen: s.now()}
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.seen = s.now()
	return e.v, true
}

func (s *Store[T]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Expire removes and returns the entries untouched for longer than idle.
func (s *Store[T]) Expire(idle time.Duration) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-idle)
	var out []T
	for id, e := range s.items {
		if e.seen.Before(cutoff) {
			out = append(out, e.v)
			delete(s.items, id)
		}
	}
	return out
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
