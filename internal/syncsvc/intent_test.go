package syncsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylink/golf-services/internal/comm"
)

func scoreIntent(participant int64, hole, strokes int) *Intent {
	return &Intent{
		Key:   Key{ScopeID: participant, HoleNumber: hole, Kind: KindScore},
		Score: &comm.ScoreSubmit{RoundParticipantId: participant, HoleNumber: hole, Strokes: strokes},
	}
}

func TestQueueReplacementKeepsSeq(t *testing.T) {
	q := NewQueue()

	q.Put(scoreIntent(1, 1, 6))
	q.Put(scoreIntent(1, 2, 4))
	q.Put(scoreIntent(1, 1, 5))

	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, 5, pending[0].Score.Strokes)
	assert.Equal(t, uint64(1), pending[0].Seq)
	assert.Equal(t, uint64(1), pending[0].Revision)
	assert.Equal(t, 4, pending[1].Score.Strokes)
}

func TestQueueAckSkipsNewerRevision(t *testing.T) {
	q := NewQueue()
	key := Key{ScopeID: 1, HoleNumber: 1, Kind: KindScore}

	q.Put(scoreIntent(1, 1, 6))
	inflight, _ := q.Get(key)

	// the edit is replaced while its predecessor is in flight
	q.Put(scoreIntent(1, 1, 5))

	q.Ack(key, inflight.Revision)
	assert.Equal(t, 1, q.Len(), "replacement survives the stale ack")

	current, ok := q.Get(key)
	require.True(t, ok)
	assert.Equal(t, 5, current.Score.Strokes)

	q.Ack(key, current.Revision)
	assert.Equal(t, 0, q.Len())
}

func TestQueueDrop(t *testing.T) {
	q := NewQueue()
	key := Key{ScopeID: 1, HoleNumber: 1, Kind: KindScore}

	q.Put(scoreIntent(1, 1, 6))
	q.Drop(key)
	assert.Equal(t, 0, q.Len())

	// dropping an absent key is a no-op
	q.Drop(key)
	assert.Equal(t, 0, q.Len())
}

func TestQueueKindsDoNotCollide(t *testing.T) {
	q := NewQueue()

	q.Put(scoreIntent(1, 1, 6))
	q.Put(&Intent{
		Key:      Key{ScopeID: 1, HoleNumber: 1, Kind: KindDecision},
		Decision: &comm.DecisionSubmit{CompetitionId: 1, HoleNumber: 1},
	})

	assert.Equal(t, 2, q.Len(), "a score and a decision on the same hole queue independently")
}
