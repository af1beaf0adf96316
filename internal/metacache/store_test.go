package metacache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrFetch_Idempotent(t *testing.T) {
	s := NewStore[string](time.Hour)
	calls := 0
	fetch := func() (string, bool, error) {
		calls++
		return "value", true, nil
	}
	for i := 0; i < 3; i++ {
		v, found, err := s.GetOrFetch("k", fetch)
		if err != nil {
			t.Fatal(err)
		}
		if !found || v != "value" {
			t.Errorf("got %q, %v", v, found)
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
}

func TestGetOrFetch_CachesNotFound(t *testing.T) {
	s := NewStore[string](time.Hour)
	calls := 0
	fetch := func() (string, bool, error) {
		calls++
		return "", false, nil
	}
	for i := 0; i < 2; i++ {
		_, found, err := s.GetOrFetch("missing", fetch)
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Error("expected not found")
		}
	}
	if calls != 1 {
		t.Errorf("known-empty result re-fetched: %d calls", calls)
	}
}

func TestGetOrFetch_ErrorNotCached(t *testing.T) {
	s := NewStore[int](time.Hour)
	calls := 0
	fetch := func() (int, bool, error) {
		calls++
		if calls == 1 {
			return 0, false, fmt.Errorf("boom")
		}
		return 7, true, nil
	}
	if _, _, err := s.GetOrFetch("k", fetch); err == nil {
		t.Fatal("expected error")
	}
	v, found, err := s.GetOrFetch("k", fetch)
	if err != nil || !found || v != 7 {
		t.Errorf("retry after error: %v %v %v", v, found, err)
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2", calls)
	}
}

func TestGetOrFetch_Expiry(t *testing.T) {
	s := NewStore[string](time.Hour)
	current := time.Unix(1000, 0)
	s.now = func() time.Time { return current }

	calls := 0
	fetch := func() (string, bool, error) {
		calls++
		return fmt.Sprintf("v%d", calls), true, nil
	}

	v, _, _ := s.GetOrFetch("k", fetch)
	if v != "v1" {
		t.Errorf("got %q", v)
	}
	current = current.Add(59 * time.Minute)
	if v, _, _ = s.GetOrFetch("k", fetch); v != "v1" {
		t.Errorf("within ttl: got %q", v)
	}
	current = current.Add(2 * time.Minute)
	if v, _, _ = s.GetOrFetch("k", fetch); v != "v2" {
		t.Errorf("after ttl: got %q", v)
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2", calls)
	}
}

func TestGetOrFetch_ConcurrentSingleFlight(t *testing.T) {
	s := NewStore[string](time.Hour)
	var calls atomic.Int32
	fetch := func() (string, bool, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "shared", true, nil
	}

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, found, err := s.GetOrFetch("k", fetch)
			if err != nil || !found || v != "shared" {
				t.Errorf("got %q, %v, %v", v, found, err)
			}
		}()
	}
	wg.Wait()
	if got := calls.Load(); got != 1 {
		t.Errorf("fetch called %d times under concurrent access, want 1", got)
	}
}

func TestGetOrFetch_DistinctKeys(t *testing.T) {
	s := NewStore[int](time.Hour)
	calls := 0
	fetch := func() (int, bool, error) {
		calls++
		return calls, true, nil
	}
	a, _, _ := s.GetOrFetch("a", fetch)
	b, _, _ := s.GetOrFetch("b", fetch)
	if a == b {
		t.Errorf("distinct keys shared a value: %d %d", a, b)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d", s.Len())
	}
}
