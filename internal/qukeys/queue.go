package qukeys

import (
	"time"

	"github.com/dshills/qukeys/internal/key"
)

// entry is one undecided key press awaiting resolution.
type entry struct {
	pos      key.Pos
	deadline time.Time
}

// queue is a fixed-capacity FIFO of undecided presses, ordered by press
// time. Index 0 is always the oldest entry; removal shifts the rest down.
// The shift is O(n), but capacity is single digits.
type queue struct {
	entries []entry
	cap     int
}

func newQueue(capacity int) *queue {
	return &queue{
		entries: make([]entry, 0, capacity),
		cap:     capacity,
	}
}

func (q *queue) len() int {
	return len(q.entries)
}

func (q *queue) full() bool {
	return len(q.entries) == q.cap
}

// head returns the oldest entry. Caller checks len first.
func (q *queue) head() entry {
	return q.entries[0]
}

// at returns the entry at index i.
func (q *queue) at(i int) entry {
	return q.entries[i]
}

// push appends an entry. Caller handles the full case; pushing into a full
// queue is a bug.
func (q *queue) push(pos key.Pos, deadline time.Time) {
	q.entries = append(q.entries, entry{pos: pos, deadline: deadline})
}

// index returns the queue position of pos, or notFound.
func (q *queue) index(pos key.Pos) int {
	for i, e := range q.entries {
		if e.pos == pos {
			return i
		}
	}
	return notFound
}

// popFront removes the oldest entry.
func (q *queue) popFront() {
	copy(q.entries, q.entries[1:])
	q.entries = q.entries[:len(q.entries)-1]
}
