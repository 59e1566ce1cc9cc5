package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/fairwaylink/golf-services/internal/golf"
	"github.com/fairwaylink/golf-services/internal/scoresvc/metrics"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
	"github.com/fairwaylink/golf-services/internal/scoresvc/store"
)

const (
	MinStrokes = 1
	MaxStrokes = 20
)

// SubmitScore is a validated score-submission intent.
type SubmitScore struct {
	RoundID            int64
	RoundParticipantID int64
	HoleNumber         int
	Strokes            int
	Role               string
	RecordedByUserID   int64
	SavedOffline       bool
}

// ScoreService owns the ledger rules: input validation, write authority
// and the append-only discipline. Conflicting writes are never blocked;
// they resolve post hoc by the latest-timestamp / role-precedence rule.
type ScoreService struct {
	ledger       store.ScoreLedger
	participants store.Participants
	rounds       store.Rounds
	courses      store.Courses
	tournaments  store.Tournaments
	statuses     *StatusService
}

func NewScoreService(ledger store.ScoreLedger, participants store.Participants,
	rounds store.Rounds, courses store.Courses, tournaments store.Tournaments,
	statuses *StatusService) *ScoreService {
	return &ScoreService{
		ledger:       ledger,
		participants: participants,
		rounds:       rounds,
		courses:      courses,
		tournaments:  tournaments,
		statuses:     statuses,
	}
}

// Submit appends one immutable ledger row. Re-delivery of an already
// acknowledged intent just appends another row; the latest-wins rule makes
// the duplicate benign.
func (s *ScoreService) Submit(ctx context.Context, req SubmitScore) (*models.ScoreEntry, error) {
	if req.Strokes < MinStrokes || req.Strokes > MaxStrokes {
		metrics.ScoreRejections.WithLabelValues("validation").Inc()
		return nil, validationf("strokes %d out of range %d..%d", req.Strokes, MinStrokes, MaxStrokes)
	}
	if models.RolePrecedence(req.Role) == 0 {
		metrics.ScoreRejections.WithLabelValues("validation").Inc()
		return nil, validationf("unknown recorder role %q", req.Role)
	}

	participant, err := s.participants.GetByID(ctx, req.RoundParticipantID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		metrics.ScoreRejections.WithLabelValues("validation").Inc()
		return nil, validationf("unknown round participant %d", req.RoundParticipantID)
	}
	if participant.RoundID != req.RoundID {
		metrics.ScoreRejections.WithLabelValues("validation").Inc()
		return nil, validationf("participant %d does not play round %d", req.RoundParticipantID, req.RoundID)
	}

	round, err := s.rounds.GetRoundByID(ctx, req.RoundID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		metrics.ScoreRejections.WithLabelValues("validation").Inc()
		return nil, validationf("unknown round %d", req.RoundID)
	}
	if round.FinalizedAt.Valid {
		metrics.ScoreRejections.WithLabelValues("round_closed").Inc()
		return nil, &RoundClosedError{RoundID: round.ID}
	}

	holes, err := s.courses.GetHolesByCourseID(ctx, round.CourseID)
	if err != nil {
		return nil, err
	}
	if _, ok := golf.HoleByNumber(holes, req.HoleNumber); !ok {
		metrics.ScoreRejections.WithLabelValues("validation").Inc()
		return nil, validationf("hole %d does not exist on course %d", req.HoleNumber, round.CourseID)
	}

	if err := s.checkWriteAuthority(ctx, round, participant, req.Role, req.RecordedByUserID); err != nil {
		metrics.ScoreRejections.WithLabelValues("authorization").Inc()
		return nil, err
	}

	entry, err := s.ledger.Append(ctx, models.ScoreEntry{
		RoundID:            round.ID,
		RoundParticipantID: participant.ID,
		HoleNumber:         req.HoleNumber,
		Strokes:            req.Strokes,
		RecordedByRole:     req.Role,
		RecordedByUserID:   req.RecordedByUserID,
		SavedOffline:       req.SavedOffline,
	})
	if err != nil {
		return nil, err
	}
	metrics.ScoresAccepted.Inc()

	// the first entry flips the round to open
	if _, _, err := s.statuses.Rederive(ctx, round); err != nil {
		log.Errorf("Error rederiving status after score for round %d: %s", round.ID, err)
	}

	return entry, nil
}

// checkWriteAuthority enforces the role rules: a player writes only their
// own card; a marker must play in the same round; a commissioner must hold
// the tournament.
func (s *ScoreService) checkWriteAuthority(ctx context.Context, round *models.Round, target *models.RoundParticipant, role string, userID int64) error {
	switch role {
	case models.RolePlayer:
		if target.PersonID != userID {
			return &AuthorizationError{Reason: fmt.Sprintf("player %d cannot score for participant %d", userID, target.ID)}
		}
	case models.RoleMarker:
		marker, err := s.participants.GetForUserInRound(ctx, round.ID, userID)
		if err != nil {
			return err
		}
		if marker == nil {
			return &AuthorizationError{Reason: fmt.Sprintf("marker %d is not in round %d", userID, round.ID)}
		}
	case models.RoleCommissioner:
		ok, err := s.tournaments.IsCommissioner(ctx, round.TournamentID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return &AuthorizationError{Reason: fmt.Sprintf("user %d is not a commissioner of tournament %d", userID, round.TournamentID)}
		}
	}
	return nil
}

// CurrentValue returns the winning entry for a cell, or nil when the cell
// is unscored.
func (s *ScoreService) CurrentValue(ctx context.Context, roundParticipantID int64, holeNumber int) (*models.ScoreEntry, error) {
	entries, err := s.ledger.GetHistory(ctx, roundParticipantID, holeNumber)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	head := entries[0]
	return &head, nil
}

// History returns the full cell history newest first, annotated with
// recorder names for audit display.
func (s *ScoreService) History(ctx context.Context, roundParticipantID int64, holeNumber int) ([]HistoryEntry, error) {
	entries, err := s.ledger.GetHistory(ctx, roundParticipantID, holeNumber)
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(entries))
	for _, e := range entries {
		userIDs = append(userIDs, e.RecordedByUserID)
	}
	names, err := s.participants.GetRecorderNames(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	history := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		history = append(history, HistoryEntry{Entry: e, RecorderName: names[e.RecordedByUserID]})
	}

	return history, nil
}

// HistoryEntry annotates a ledger row for audit display.
type HistoryEntry struct {
	Entry        models.ScoreEntry
	RecorderName string
}
