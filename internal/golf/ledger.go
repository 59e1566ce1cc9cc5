package golf

import (
	"sort"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// Cell identifies one scorecard slot.
type Cell struct {
	RoundParticipantID int64
	HoleNumber         int
}

// Snapshot maps each scored cell to its winning ledger entry.
type Snapshot map[Cell]models.ScoreEntry

// Supersedes reports whether a should be preferred over b as the current
// value for a cell. Later created_at wins; on an identical timestamp the
// higher role precedence wins (concurrent offline writers can stamp the
// same second); a final id comparison keeps the rule total.
func Supersedes(a, b models.ScoreEntry) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	pa, pb := models.RolePrecedence(a.RecordedByRole), models.RolePrecedence(b.RecordedByRole)
	if pa != pb {
		return pa > pb
	}
	return a.ID > b.ID
}

// Reduce folds raw ledger rows into the current value per cell. The ledger
// is the source of truth, so any snapshot can be rebuilt from rows alone;
// input order does not matter.
func Reduce(entries []models.ScoreEntry) Snapshot {
	snap := make(Snapshot, len(entries))
	for _, e := range entries {
		cell := Cell{RoundParticipantID: e.RoundParticipantID, HoleNumber: e.HoleNumber}
		cur, ok := snap[cell]
		if !ok || Supersedes(e, cur) {
			snap[cell] = e
		}
	}
	return snap
}

// SortHistory orders the entries for one cell newest first, for audit
// display. Same tie-break as Reduce so history head equals current value.
func SortHistory(entries []models.ScoreEntry) []models.ScoreEntry {
	out := make([]models.ScoreEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return Supersedes(out[i], out[j])
	})
	return out
}

// HolesCompleted counts the holes a participant has a current score for.
func (s Snapshot) HolesCompleted(roundParticipantID int64) int {
	n := 0
	for cell := range s {
		if cell.RoundParticipantID == roundParticipantID {
			n++
		}
	}
	return n
}
