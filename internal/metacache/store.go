// Package metacache shields upstream metadata lookups behind keyed TTL
// caches so repeated requests within the TTL window cost one network call.
package metacache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// entry is one cached result. found distinguishes "fetched, found nothing"
// from a value; a missing map key means "not fetched yet". Expired entries
// are replaced whole on the next fetch, never mutated in place.
type entry[V any] struct {
	value      V
	found      bool
	insertedAt time.Time
}

// Store is a keyed TTL cache. Concurrent first accesses to the same key
// collapse into a single in-flight fetch; the others wait for its result.
// Expiry is checked lazily on access, there is no eviction goroutine.
type Store[V any] struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]entry[V]
	group   singleflight.Group
}

// NewStore creates a store whose entries live for ttl.
func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[V]),
	}
}

type fetched[V any] struct {
	value V
	found bool
}

// GetOrFetch returns the cached value for key when present and unexpired;
// otherwise it runs fetch and stores the outcome. A definitive "found
// nothing" (false with nil error) is cached like a value, so known-missing
// data is not re-queried within the TTL window. A fetch error is returned
// to the caller and nothing is cached, leaving the key retryable.
func (s *Store[V]) GetOrFetch(key string, fetch func() (V, bool, error)) (V, bool, error) {
	if e, ok := s.lookup(key); ok {
		return e.value, e.found, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// another waiter may have installed the value while this caller
		// was blocked on the flight
		if e, ok := s.lookup(key); ok {
			return fetched[V]{value: e.value, found: e.found}, nil
		}
		value, found, err := fetch()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.entries[key] = entry[V]{value: value, found: found, insertedAt: s.now()}
		s.mu.Unlock()
		return fetched[V]{value: value, found: found}, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	f := v.(fetched[V])
	return f.value, f.found, nil
}

func (s *Store[V]) lookup(key string) (entry[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok || s.now().Sub(e.insertedAt) >= s.ttl {
		return entry[V]{}, false
	}
	return e, true
}

// Len returns the number of stored entries, including expired ones that
// have not been replaced yet.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
