package survival_test

import (
	"testing"

	"github.com/mickamy/craftd-proxy/survival"
)

func TestBufferAppendAndTake(t *testing.T) {
	t.Parallel()
	b := survival.NewBuffer()
	b.Append([]byte{1, 2, 3})
	b.Append([]byte{4, 5})
	if b.Len() != 5 {
		t.Fatalf("got len %d, want 5", b.Len())
	}
	got := b.Take(2)
	if got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}
	if b.Len() != 3 {
		t.Fatalf("got len %d, want 3 after take", b.Len())
	}
}

func TestBufferPeekAtDoesNotConsume(t *testing.T) {
	t.Parallel()
	b := survival.NewBuffer()
	b.Append([]byte{9, 8, 7, 6})
	p, ok := b.PeekAt(1, 2)
	if !ok {
		t.Fatal("expected PeekAt to succeed")
	}
	if p[0] != 8 || p[1] != 7 {
		t.Fatalf("got %v, want [8 7]", p)
	}
	if b.Len() != 4 {
		t.Fatalf("PeekAt must not consume, got len %d, want 4", b.Len())
	}
	if _, ok := b.PeekAt(3, 2); ok {
		t.Fatal("expected PeekAt past the end to fail")
	}
}

func TestBufferTakePanicsBeyondLength(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected Take beyond Len() to panic")
		}
	}()
	b := survival.NewBuffer()
	b.Append([]byte{1})
	b.Take(2)
}

func TestBufferReclaim(t *testing.T) {
	t.Parallel()
	b := survival.NewBuffer()
	b.Append([]byte{1, 2, 3, 4})
	b.Take(2)
	b.Reclaim()
	if b.Len() != 2 {
		t.Fatalf("got len %d, want 2", b.Len())
	}
	p, ok := b.PeekAt(0, 2)
	if !ok || p[0] != 3 || p[1] != 4 {
		t.Fatalf("got %v, ok=%v, want [3 4]", p, ok)
	}
}
