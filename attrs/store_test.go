package attrs_test

import (
	"sync"
	"testing"

	"github.com/mickamy/craftd-proxy/attrs"
)

func TestGetPutDelete(t *testing.T) {
	t.Parallel()
	s := attrs.New()

	if _, ok := s.Get("k"); ok {
		t.Fatal("expected missing key to report not-ok")
	}

	s.Put("k", 42)
	v, ok := s.Get("k")
	if !ok || v.(int) != 42 {
		t.Fatalf("got (%v, %v), want (42, true)", v, ok)
	}

	s.Delete("k")
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected key to be gone after Delete")
	}
}

func TestRangeVisitsEveryEntry(t *testing.T) {
	t.Parallel()
	s := attrs.New()
	s.Put("a", 1)
	s.Put("b", 2)
	s.Put("c", 3)

	seen := make(map[string]int)
	s.Range(func(key string, value any) bool {
		seen[key] = value.(int)
		return true
	})
	if len(seen) != 3 || seen["a"] != 1 || seen["b"] != 2 || seen["c"] != 3 {
		t.Fatalf("got %v, want a:1 b:2 c:3", seen)
	}
}

func TestRangeStopsEarly(t *testing.T) {
	t.Parallel()
	s := attrs.New()
	s.Put("a", 1)
	s.Put("b", 2)

	count := 0
	s.Range(func(key string, value any) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("got %d callbacks, want 1", count)
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()
	s := attrs.New()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "key"
			s.Put(key, i)
			s.Get(key)
			s.Range(func(string, any) bool { return true })
		}(i)
	}
	wg.Wait()
}
