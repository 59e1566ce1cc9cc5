package syncsvc

import (
	"sync"
	"time"

	"github.com/fairwaylink/golf-services/internal/comm"
)

type MutationKind string

const (
	KindScore    MutationKind = "score"
	KindDecision MutationKind = "decision"
	KindAward    MutationKind = "award"
)

// Key identifies one cell of one mutation kind. ScopeID is the round
// participant for scores and the competition for decisions and awards.
// The queue holds at most one intent per key; the coordinator keeps at
// most one write per key in flight.
type Key struct {
	ScopeID    int64
	HoleNumber int
	Kind       MutationKind
}

// Intent is one queued local mutation. A later edit to the same key
// replaces the payload in place and bumps Revision; Seq keeps the original
// creation order so reconnect flushes oldest first.
type Intent struct {
	Key       Key
	Seq       uint64
	Revision  uint64
	CreatedAt time.Time

	Score    *comm.ScoreSubmit
	Decision *comm.DecisionSubmit
	Award    *comm.AwardSubmit
}

// Queue is the offline mutation queue: ordered by creation, coalescing by
// key.
type Queue struct {
	mu      sync.Mutex
	nextSeq uint64
	order   []Key
	byKey   map[Key]*Intent
}

func NewQueue() *Queue {
	return &Queue{byKey: make(map[Key]*Intent)}
}

// Put enqueues an intent. A pending intent for the same key is replaced
// rather than queued twice: the older payload would only be superseded on
// the ledger anyway, so it never goes out.
func (q *Queue) Put(in *Intent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if existing, ok := q.byKey[in.Key]; ok {
		in.Seq = existing.Seq
		in.Revision = existing.Revision + 1
		q.byKey[in.Key] = in
		return
	}

	q.nextSeq++
	in.Seq = q.nextSeq
	q.byKey[in.Key] = in
	q.order = append(q.order, in.Key)
}

// Pending snapshots the queued intents in creation order.
func (q *Queue) Pending() []*Intent {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]*Intent, 0, len(q.order))
	for _, key := range q.order {
		if in, ok := q.byKey[key]; ok {
			out = append(out, in)
		}
	}
	return out
}

// Ack removes the intent for a key, unless a newer revision replaced it
// while the write was in flight; the replacement stays queued.
func (q *Queue) Ack(key Key, revision uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	in, ok := q.byKey[key]
	if !ok || in.Revision != revision {
		return
	}
	delete(q.byKey, key)
	for i, k := range q.order {
		if k == key {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}

// Drop removes an intent unconditionally, for terminal rejections.
func (q *Queue) Drop(key Key) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.byKey[key]; !ok {
		return
	}
	delete(q.byKey, key)
	for i, k := range q.order {
		if k == key {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of queued intents.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.byKey)
}

// Get returns the queued intent for a key, if any.
func (q *Queue) Get(key Key) (*Intent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	in, ok := q.byKey[key]
	return in, ok
}
