package golf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

func entry(id int64, participant int64, hole, strokes int, role string, at time.Time) models.ScoreEntry {
	return models.ScoreEntry{
		ID:                 id,
		RoundID:            1,
		RoundParticipantID: participant,
		HoleNumber:         hole,
		Strokes:            strokes,
		RecordedByRole:     role,
		CreatedAt:          at,
	}
}

func TestSupersedes(t *testing.T) {
	t0 := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)

	tests := []struct {
		name string
		a, b models.ScoreEntry
		want bool
	}{
		{
			name: "later created_at wins regardless of role",
			a:    entry(1, 1, 1, 5, models.RolePlayer, t1),
			b:    entry(2, 1, 1, 4, models.RoleCommissioner, t0),
			want: true,
		},
		{
			name: "same timestamp, marker beats player",
			a:    entry(1, 1, 1, 5, models.RoleMarker, t0),
			b:    entry(2, 1, 1, 4, models.RolePlayer, t0),
			want: true,
		},
		{
			name: "same timestamp, commissioner beats marker",
			a:    entry(1, 1, 1, 5, models.RoleCommissioner, t0),
			b:    entry(2, 1, 1, 4, models.RoleMarker, t0),
			want: true,
		},
		{
			name: "same timestamp and role, higher id wins",
			a:    entry(9, 1, 1, 5, models.RolePlayer, t0),
			b:    entry(3, 1, 1, 4, models.RolePlayer, t0),
			want: true,
		},
		{
			name: "earlier entry never supersedes",
			a:    entry(9, 1, 1, 5, models.RoleCommissioner, t0),
			b:    entry(1, 1, 1, 4, models.RolePlayer, t1),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supersedes(tt.a, tt.b))
			if tt.want {
				assert.False(t, Supersedes(tt.b, tt.a), "ordering must be antisymmetric")
			}
		})
	}
}

func TestReduce(t *testing.T) {
	t0 := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)

	entries := []models.ScoreEntry{
		entry(1, 1, 1, 6, models.RolePlayer, t0),
		entry(2, 1, 1, 5, models.RolePlayer, t0.Add(time.Minute)), // correction
		entry(3, 1, 2, 4, models.RolePlayer, t0),
		entry(4, 2, 1, 3, models.RoleMarker, t0),
	}

	snap := Reduce(entries)

	assert.Len(t, snap, 3)
	assert.Equal(t, 5, snap[Cell{RoundParticipantID: 1, HoleNumber: 1}].Strokes)
	assert.Equal(t, 4, snap[Cell{RoundParticipantID: 1, HoleNumber: 2}].Strokes)
	assert.Equal(t, 3, snap[Cell{RoundParticipantID: 2, HoleNumber: 1}].Strokes)
}

func TestReduceOrderIndependent(t *testing.T) {
	t0 := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)

	entries := []models.ScoreEntry{
		entry(1, 1, 1, 6, models.RolePlayer, t0),
		entry(2, 1, 1, 5, models.RoleMarker, t0), // same second, marker wins
		entry(3, 1, 1, 7, models.RolePlayer, t0.Add(-time.Minute)),
	}
	reversed := []models.ScoreEntry{entries[2], entries[1], entries[0]}

	assert.Equal(t, Reduce(entries), Reduce(reversed))
	assert.Equal(t, 5, Reduce(reversed)[Cell{RoundParticipantID: 1, HoleNumber: 1}].Strokes)
}

func TestReduceOlderEntryNeverChangesCurrentValue(t *testing.T) {
	t0 := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)

	current := []models.ScoreEntry{
		entry(2, 1, 1, 5, models.RolePlayer, t0.Add(time.Hour)),
	}
	before := Reduce(current)

	// a stale offline write arriving late lands in history only
	withStale := append(current, entry(3, 1, 1, 8, models.RoleMarker, t0))
	after := Reduce(withStale)

	assert.Equal(t, before, after)
}

func TestSortHistory(t *testing.T) {
	t0 := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)

	entries := []models.ScoreEntry{
		entry(1, 1, 1, 6, models.RolePlayer, t0),
		entry(2, 1, 1, 5, models.RolePlayer, t0.Add(2*time.Minute)),
		entry(3, 1, 1, 4, models.RoleMarker, t0),
	}

	history := SortHistory(entries)

	assert.Equal(t, int64(2), history[0].ID, "newest first")
	assert.Equal(t, int64(3), history[1].ID, "marker outranks player on equal timestamps")
	assert.Equal(t, int64(1), history[2].ID)

	// head of history matches the reduced current value
	snap := Reduce(entries)
	assert.Equal(t, history[0], snap[Cell{RoundParticipantID: 1, HoleNumber: 1}])
}

func TestHolesCompleted(t *testing.T) {
	t0 := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)

	snap := Reduce([]models.ScoreEntry{
		entry(1, 1, 1, 4, models.RolePlayer, t0),
		entry(2, 1, 2, 5, models.RolePlayer, t0),
		entry(3, 1, 2, 4, models.RolePlayer, t0.Add(time.Minute)), // correction, not a new hole
		entry(4, 2, 1, 3, models.RolePlayer, t0),
	})

	assert.Equal(t, 2, snap.HolesCompleted(1))
	assert.Equal(t, 1, snap.HolesCompleted(2))
	assert.Equal(t, 0, snap.HolesCompleted(3))
}
