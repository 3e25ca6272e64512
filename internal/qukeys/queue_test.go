package qukeys

import (
	"testing"
	"time"

	"github.com/dshills/qukeys/internal/key"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := newQueue(4)
	base := time.Unix(0, 0)

	q.push(key.NewPos(0, 0), base.Add(1*time.Millisecond))
	q.push(key.NewPos(0, 1), base.Add(2*time.Millisecond))
	q.push(key.NewPos(0, 2), base.Add(3*time.Millisecond))

	if q.len() != 3 {
		t.Fatalf("len = %d, want 3", q.len())
	}
	if q.head().pos != key.NewPos(0, 0) {
		t.Errorf("head = %s, want r0c0", q.head().pos)
	}

	q.popFront()
	if q.head().pos != key.NewPos(0, 1) {
		t.Errorf("head after pop = %s, want r0c1", q.head().pos)
	}
	if q.at(1).pos != key.NewPos(0, 2) {
		t.Errorf("at(1) = %s, want r0c2", q.at(1).pos)
	}

	q.popFront()
	q.popFront()
	if q.len() != 0 {
		t.Errorf("len after draining = %d, want 0", q.len())
	}
}

func TestQueueIndex(t *testing.T) {
	q := newQueue(4)
	q.push(key.NewPos(1, 0), time.Time{})
	q.push(key.NewPos(1, 1), time.Time{})

	if got := q.index(key.NewPos(1, 1)); got != 1 {
		t.Errorf("index = %d, want 1", got)
	}
	if got := q.index(key.NewPos(5, 5)); got != notFound {
		t.Errorf("index of absent pos = %d, want notFound", got)
	}
}

func TestQueueFull(t *testing.T) {
	q := newQueue(2)
	if q.full() {
		t.Error("empty queue reported full")
	}
	q.push(key.NewPos(0, 0), time.Time{})
	q.push(key.NewPos(0, 1), time.Time{})
	if !q.full() {
		t.Error("queue at capacity should report full")
	}
}

func TestQueueDeadlinesKept(t *testing.T) {
	q := newQueue(2)
	deadline := time.Unix(42, 0)
	q.push(key.NewPos(0, 0), deadline)
	if !q.head().deadline.Equal(deadline) {
		t.Errorf("deadline = %v, want %v", q.head().deadline, deadline)
	}
}
