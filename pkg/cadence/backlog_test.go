// ABOUTME: Tests for the sample backlog ring buffer
// ABOUTME: Tests append/take ordering, wraparound, and growth
package cadence

import "testing"

func seq(start, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(start + i)
	}
	return out
}

func TestBacklogAppendTake(t *testing.T) {
	b := NewBacklog()

	b.Append(seq(0, 10))
	if b.Len() != 10 {
		t.Fatalf("expected len 10, got %d", b.Len())
	}

	got := b.Take(4)
	for i, v := range got {
		if v != float32(i) {
			t.Errorf("sample %d: expected %d, got %f", i, i, v)
		}
	}
	if b.Len() != 6 {
		t.Errorf("expected len 6 after take, got %d", b.Len())
	}
}

func TestBacklogPreservesOrderAcrossAppends(t *testing.T) {
	b := NewBacklog()

	b.Append(seq(0, 5))
	b.Append(seq(5, 5))

	got := b.Take(10)
	for i, v := range got {
		if v != float32(i) {
			t.Fatalf("sample %d: expected %d, got %f", i, i, v)
		}
	}
}

func TestBacklogWraparound(t *testing.T) {
	b := NewBacklog()

	// Fill to minimum capacity, drain most of it, then append enough to
	// wrap the write position past the end of the ring.
	b.Append(seq(0, backlogMinCap))
	b.Take(backlogMinCap - 10)
	b.Append(seq(backlogMinCap, 500))

	if b.Len() != 510 {
		t.Fatalf("expected len 510, got %d", b.Len())
	}

	got := b.Take(510)
	for i, v := range got {
		expected := float32(backlogMinCap - 10 + i)
		if v != expected {
			t.Fatalf("sample %d: expected %f, got %f", i, expected, v)
		}
	}
}

func TestBacklogGrowthPreservesContents(t *testing.T) {
	b := NewBacklog()

	// Force a wrapped state, then grow past capacity
	b.Append(seq(0, backlogMinCap))
	b.Take(backlogMinCap / 2)
	b.Append(seq(backlogMinCap, backlogMinCap*2))

	expectedLen := backlogMinCap/2 + backlogMinCap*2
	if b.Len() != expectedLen {
		t.Fatalf("expected len %d, got %d", expectedLen, b.Len())
	}

	got := b.Take(expectedLen)
	for i, v := range got {
		expected := float32(backlogMinCap/2 + i)
		if v != expected {
			t.Fatalf("sample %d: expected %f, got %f", i, expected, v)
		}
	}
}

func TestBacklogTakeZero(t *testing.T) {
	b := NewBacklog()
	b.Append(seq(0, 3))

	if got := b.Take(0); got != nil {
		t.Errorf("expected nil for Take(0), got %v", got)
	}
	if b.Len() != 3 {
		t.Errorf("expected len unchanged, got %d", b.Len())
	}
}

func TestBacklogTakeBeyondLenPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for over-length take")
		}
	}()

	b := NewBacklog()
	b.Append(seq(0, 2))
	b.Take(3)
}

func TestBacklogReset(t *testing.T) {
	b := NewBacklog()
	b.Append(seq(0, 100))

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("expected empty backlog after reset, got %d", b.Len())
	}

	// Still usable after reset
	b.Append(seq(0, 5))
	if b.Len() != 5 {
		t.Errorf("expected len 5, got %d", b.Len())
	}
}

func TestBacklogEmptyAppend(t *testing.T) {
	b := NewBacklog()
	b.Append(nil)
	if b.Len() != 0 {
		t.Errorf("expected empty backlog, got %d", b.Len())
	}
}
