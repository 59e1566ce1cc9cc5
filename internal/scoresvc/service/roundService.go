package service

import (
	"context"
	"fmt"

	"github.com/fairwaylink/golf-services/internal/golf"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
	"github.com/fairwaylink/golf-services/internal/scoresvc/store"
)

// RoundService owns round finalization. Everything else about a round is
// managed by its CRUD surface elsewhere; only the status-bearing action
// lives here.
type RoundService struct {
	rounds       store.Rounds
	participants store.Participants
	courses      store.Courses
	ledger       store.ScoreLedger
	tournaments  store.Tournaments
	statuses     *StatusService
}

func NewRoundService(rounds store.Rounds, participants store.Participants,
	courses store.Courses, ledger store.ScoreLedger, tournaments store.Tournaments,
	statuses *StatusService) *RoundService {
	return &RoundService{
		rounds:       rounds,
		participants: participants,
		courses:      courses,
		ledger:       ledger,
		tournaments:  tournaments,
		statuses:     statuses,
	}
}

// RoundInfo describes a round for a joining client: which tournament it
// belongs to and the card it is played on.
type RoundInfo struct {
	RoundID        int64
	TournamentID   int64
	TournamentName string
	CourseName     string
	Holes          int
}

// JoinInfo resolves the join acknowledgment for a round. Scoring devices
// persist the tournament/round pair from it as their active round.
func (s *RoundService) JoinInfo(ctx context.Context, roundID int64) (*RoundInfo, error) {
	round, err := s.rounds.GetRoundByID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, validationf("unknown round %d", roundID)
	}

	tournament, err := s.tournaments.GetByID(ctx, round.TournamentID)
	if err != nil {
		return nil, err
	}
	course, err := s.courses.GetCourseByID(ctx, round.CourseID)
	if err != nil {
		return nil, err
	}
	holes, err := s.courses.GetHolesByCourseID(ctx, round.CourseID)
	if err != nil {
		return nil, err
	}

	info := &RoundInfo{
		RoundID:      round.ID,
		TournamentID: round.TournamentID,
		Holes:        len(holes),
	}
	if tournament != nil {
		info.TournamentName = tournament.Name
	}
	if course != nil {
		info.CourseName = course.Name
	}
	return info, nil
}

// Finalize closes a round. Rejected with IncompleteRoundError while any
// grouped participant has an unscored hole, unless a commissioner
// overrides. Finalizing an already finalized round is a no-op.
func (s *RoundService) Finalize(ctx context.Context, roundID, byUserID int64, override bool) (*models.Round, models.TournamentStatus, error) {
	round, err := s.rounds.GetRoundByID(ctx, roundID)
	if err != nil {
		return nil, "", err
	}
	if round == nil {
		return nil, "", validationf("unknown round %d", roundID)
	}
	if round.FinalizedAt.Valid {
		status, err := s.statuses.RederiveTournament(ctx, round.TournamentID)
		return round, status, err
	}

	missing, err := s.unscoredCells(ctx, round)
	if err != nil {
		return nil, "", err
	}
	if missing > 0 {
		if !override {
			return nil, "", &IncompleteRoundError{RoundID: round.ID, MissingCells: missing}
		}
		ok, err := s.tournaments.IsCommissioner(ctx, round.TournamentID, byUserID)
		if err != nil {
			return nil, "", err
		}
		if !ok {
			return nil, "", &AuthorizationError{
				Reason: fmt.Sprintf("user %d cannot override finalization of round %d", byUserID, round.ID),
			}
		}
	}

	finalized, err := s.rounds.MarkFinalized(ctx, round.ID)
	if err != nil {
		return nil, "", err
	}
	if finalized == nil {
		// lost the race to another finalizer; reread
		finalized, err = s.rounds.GetRoundByID(ctx, round.ID)
		if err != nil {
			return nil, "", err
		}
	}

	tournamentStatus, err := s.statuses.RederiveTournament(ctx, finalized.TournamentID)
	if err != nil {
		return nil, "", err
	}

	return finalized, tournamentStatus, nil
}

// unscoredCells counts (participant, hole) cells without a current score,
// over participants assigned to a group.
func (s *RoundService) unscoredCells(ctx context.Context, round *models.Round) (int, error) {
	holes, err := s.courses.GetHolesByCourseID(ctx, round.CourseID)
	if err != nil {
		return 0, err
	}
	participants, err := s.participants.GetByRoundID(ctx, round.ID)
	if err != nil {
		return 0, err
	}
	entries, err := s.ledger.GetEntriesForRound(ctx, round.ID)
	if err != nil {
		return 0, err
	}
	snap := golf.Reduce(entries)

	missing := 0
	for _, p := range participants {
		if !p.GroupID.Valid {
			continue
		}
		for _, h := range holes {
			if _, ok := snap[golf.Cell{RoundParticipantID: p.ID, HoleNumber: h.HoleNumber}]; !ok {
				missing++
			}
		}
	}
	return missing, nil
}
