package service

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/fairwaylink/golf-services/internal/scoresvc/metrics"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
	"github.com/fairwaylink/golf-services/internal/scoresvc/store"
)

// CompetitionService records decisions and bonus awards against
// competitions. Decisions share the ledger's append-only latest-wins
// semantics; awards are last-write-wins per hole.
type CompetitionService struct {
	competitions store.Competitions
	decisions    store.Decisions
	awards       store.Awards
	rounds       store.Rounds
	participants store.Participants
}

func NewCompetitionService(competitions store.Competitions, decisions store.Decisions,
	awards store.Awards, rounds store.Rounds, participants store.Participants) *CompetitionService {
	return &CompetitionService{
		competitions: competitions,
		decisions:    decisions,
		awards:       awards,
		rounds:       rounds,
		participants: participants,
	}
}

type RecordDecision struct {
	CompetitionID    int64
	RoundID          int64
	HoleNumber       int
	Payload          json.RawMessage
	RecordedByUserID int64
}

func (s *CompetitionService) RecordDecision(ctx context.Context, req RecordDecision) (*models.GameDecision, error) {
	round, err := s.openRound(ctx, req.RoundID)
	if err != nil {
		return nil, err
	}
	if _, err := s.competition(ctx, req.CompetitionID, round); err != nil {
		return nil, err
	}
	if len(req.Payload) == 0 {
		return nil, validationf("decision payload is empty")
	}

	d, err := s.decisions.Append(ctx, req.CompetitionID, req.RoundID, req.HoleNumber, req.Payload, req.RecordedByUserID)
	if err != nil {
		return nil, err
	}
	metrics.DecisionsRecorded.Inc()
	return d, nil
}

type AwardBonus struct {
	CompetitionID      int64
	RoundID            int64
	HoleNumber         int
	RoundParticipantID int64 // 0 clears the award
	AwardedByUserID    int64
}

func (s *CompetitionService) AwardBonus(ctx context.Context, req AwardBonus) (*models.BonusAward, error) {
	round, err := s.openRound(ctx, req.RoundID)
	if err != nil {
		return nil, err
	}
	comp, err := s.competition(ctx, req.CompetitionID, round)
	if err != nil {
		return nil, err
	}
	if comp.FormatType != models.FormatNearestPin && comp.FormatType != models.FormatLongestDrive {
		return nil, validationf("competition %d is not an award format", comp.ID)
	}

	holder := sql.NullInt64{}
	if req.RoundParticipantID != 0 {
		p, err := s.participants.GetByID(ctx, req.RoundParticipantID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.RoundID != req.RoundID {
			return nil, validationf("participant %d does not play round %d", req.RoundParticipantID, req.RoundID)
		}
		holder = sql.NullInt64{Int64: req.RoundParticipantID, Valid: true}
	}

	award, err := s.awards.Upsert(ctx, req.CompetitionID, req.HoleNumber, holder, req.AwardedByUserID)
	if err != nil {
		return nil, err
	}
	metrics.AwardsRecorded.Inc()
	return award, nil
}

func (s *CompetitionService) openRound(ctx context.Context, roundID int64) (*models.Round, error) {
	round, err := s.rounds.GetRoundByID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, validationf("unknown round %d", roundID)
	}
	if round.FinalizedAt.Valid {
		return nil, &RoundClosedError{RoundID: round.ID}
	}
	return round, nil
}

// competition loads a competition and checks its scope covers the round.
func (s *CompetitionService) competition(ctx context.Context, competitionID int64, round *models.Round) (*models.Competition, error) {
	comp, err := s.competitions.GetByID(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, validationf("unknown competition %d", competitionID)
	}
	inScope := (comp.RoundID.Valid && comp.RoundID.Int64 == round.ID) ||
		(comp.TournamentID.Valid && comp.TournamentID.Int64 == round.TournamentID)
	if !inScope {
		return nil, validationf("competition %d is not scoped to round %d", competitionID, round.ID)
	}
	return comp, nil
}
