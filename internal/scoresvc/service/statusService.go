package service

import (
	"context"

	"github.com/fairwaylink/golf-services/internal/golf"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
	"github.com/fairwaylink/golf-services/internal/scoresvc/store"
)

// StatusService re-derives and persists the round and tournament status
// projections. Statuses are never assigned by user actions; every mutation
// that can affect them calls Rederive explicitly.
type StatusService struct {
	ledger      store.ScoreLedger
	rounds      store.Rounds
	tournaments store.Tournaments
}

func NewStatusService(ledger store.ScoreLedger, rounds store.Rounds, tournaments store.Tournaments) *StatusService {
	return &StatusService{ledger: ledger, rounds: rounds, tournaments: tournaments}
}

// Rederive recomputes the round status from its facts, persists it when it
// moved, then reprojects the parent tournament status. Returns both
// statuses.
func (s *StatusService) Rederive(ctx context.Context, round *models.Round) (models.RoundStatus, models.TournamentStatus, error) {
	hasScores, err := s.ledger.HasEntriesForRound(ctx, round.ID)
	if err != nil {
		return "", "", err
	}

	derived := golf.DeriveRoundStatus(round.FinalizedAt.Valid, hasScores, round.TeeTime.Valid)
	if derived != round.Status {
		if err := s.rounds.UpdateStatus(ctx, round.ID, derived); err != nil {
			return "", "", err
		}
		round.Status = derived
	}

	tournamentStatus, err := s.RederiveTournament(ctx, round.TournamentID)
	if err != nil {
		return "", "", err
	}

	return derived, tournamentStatus, nil
}

// RederiveTournament reprojects a tournament status from its child round
// statuses and persists it.
func (s *StatusService) RederiveTournament(ctx context.Context, tournamentID int64) (models.TournamentStatus, error) {
	statuses, err := s.rounds.GetStatusesByTournament(ctx, tournamentID)
	if err != nil {
		return "", err
	}

	status := golf.DeriveTournamentStatus(statuses)
	if err := s.tournaments.UpdateStatus(ctx, tournamentID, status); err != nil {
		return "", err
	}

	return status, nil
}
