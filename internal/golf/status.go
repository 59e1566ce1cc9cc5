package golf

import "github.com/fairwaylink/golf-services/internal/scoresvc/models"

// DeriveRoundStatus maps round facts to a status. Finalization is an
// explicit action recorded on the round; everything else is derived:
// draft until a tee time is confirmed, scheduled once set, open as soon
// as any ledger entry exists for the round.
func DeriveRoundStatus(finalized, hasScores, hasTeeTime bool) models.RoundStatus {
	switch {
	case finalized:
		return models.RoundStatusFinalized
	case hasScores:
		return models.RoundStatusOpen
	case hasTeeTime:
		return models.RoundStatusScheduled
	default:
		return models.RoundStatusDraft
	}
}

// DeriveTournamentStatus projects child round statuses onto the
// tournament: setup while empty or all draft, complete only when every
// round is finalized, underway once any round has opened, else scheduled
// when any round is on the calendar.
func DeriveTournamentStatus(statuses []models.RoundStatus) models.TournamentStatus {
	if len(statuses) == 0 {
		return models.TournamentStatusSetup
	}

	var scheduled, started, finalized int
	for _, s := range statuses {
		switch s {
		case models.RoundStatusScheduled:
			scheduled++
		case models.RoundStatusOpen:
			started++
		case models.RoundStatusFinalized:
			started++
			finalized++
		}
	}

	switch {
	case finalized == len(statuses):
		return models.TournamentStatusComplete
	case started > 0:
		return models.TournamentStatusUnderway
	case scheduled > 0:
		return models.TournamentStatusScheduled
	default:
		return models.TournamentStatusSetup
	}
}
