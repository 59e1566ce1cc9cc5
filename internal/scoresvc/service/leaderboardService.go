package service

import (
	"context"

	"github.com/fairwaylink/golf-services/internal/golf"
	"github.com/fairwaylink/golf-services/internal/golf/leaderboard"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
	"github.com/fairwaylink/golf-services/internal/scoresvc/store"
)

// CompetitionStandings pairs a competition with its freshly computed
// standings. Nothing here is persisted; the ledger stays the only source
// of truth.
type CompetitionStandings struct {
	Competition *models.Competition
	Standings   []leaderboard.Standing
}

// LeaderboardService recomputes standings on demand from the ledger.
type LeaderboardService struct {
	competitions store.Competitions
	ledger       store.ScoreLedger
	rounds       store.Rounds
	courses      store.Courses
	participants store.Participants
	teams        store.Teams
	awards       store.Awards
	decisions    store.Decisions
}

func NewLeaderboardService(competitions store.Competitions, ledger store.ScoreLedger,
	rounds store.Rounds, courses store.Courses, participants store.Participants,
	teams store.Teams, awards store.Awards, decisions store.Decisions) *LeaderboardService {
	return &LeaderboardService{
		competitions: competitions,
		ledger:       ledger,
		rounds:       rounds,
		courses:      courses,
		participants: participants,
		teams:        teams,
		awards:       awards,
		decisions:    decisions,
	}
}

// ForRound computes standings for every competition scoped to the round.
func (s *LeaderboardService) ForRound(ctx context.Context, roundID int64) ([]CompetitionStandings, error) {
	round, err := s.rounds.GetRoundByID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, validationf("unknown round %d", roundID)
	}

	comps, err := s.competitions.GetByRoundID(ctx, roundID)
	if err != nil {
		return nil, err
	}

	holes, snapshot, participants, err := s.roundInput(ctx, round)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.GetTeamsByTournament(ctx, round.TournamentID)
	if err != nil {
		return nil, err
	}

	return s.compute(ctx, comps, holes, snapshot, participants, teams)
}

// ForTournament computes standings for tournament-scoped competitions over
// all of the tournament's rounds. Holes come from the first round's
// course; multi-course tournaments score each round against its own course
// through the round leaderboards.
func (s *LeaderboardService) ForTournament(ctx context.Context, tournamentID int64) ([]CompetitionStandings, error) {
	comps, err := s.competitions.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	rounds, err := s.rounds.GetRoundsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var holes []models.CourseHole
	snapshot := golf.Snapshot{}
	var participants []leaderboard.Participant
	for i, round := range rounds {
		h, snap, parts, err := s.roundInput(ctx, round)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			holes = h
		}
		for cell, e := range snap {
			snapshot[cell] = e
		}
		participants = append(participants, parts...)
	}
	teams, err := s.teams.GetTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	return s.compute(ctx, comps, holes, snapshot, participants, teams)
}

func (s *LeaderboardService) roundInput(ctx context.Context, round *models.Round) ([]models.CourseHole, golf.Snapshot, []leaderboard.Participant, error) {
	holes, err := s.courses.GetHolesByCourseID(ctx, round.CourseID)
	if err != nil {
		return nil, nil, nil, err
	}

	entries, err := s.ledger.GetEntriesForRound(ctx, round.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	snapshot := golf.Reduce(entries)

	rps, err := s.participants.GetByRoundID(ctx, round.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	teamOf, err := s.teams.GetTeamByParticipant(ctx, round.TournamentID)
	if err != nil {
		return nil, nil, nil, err
	}

	participants := make([]leaderboard.Participant, 0, len(rps))
	for _, rp := range rps {
		participants = append(participants, leaderboard.Participant{
			ID:       rp.ID,
			Name:     rp.Name,
			TeamID:   teamOf[rp.TournamentParticipantID],
			Handicap: rp.EffectiveHandicap(),
		})
	}

	return holes, snapshot, participants, nil
}

func (s *LeaderboardService) compute(ctx context.Context, comps []*models.Competition,
	holes []models.CourseHole, snapshot golf.Snapshot, participants []leaderboard.Participant,
	teams []*models.Team) ([]CompetitionStandings, error) {
	compIDs := make([]int64, 0, len(comps))
	for _, c := range comps {
		compIDs = append(compIDs, c.ID)
	}
	awards, err := s.awards.GetByCompetitionIDs(ctx, compIDs)
	if err != nil {
		return nil, err
	}
	decisions, err := s.decisions.GetByCompetitionIDs(ctx, compIDs)
	if err != nil {
		return nil, err
	}

	teamRows := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		teamRows = append(teamRows, *t)
	}

	results := make([]CompetitionStandings, 0, len(comps))
	for _, comp := range comps {
		standings, err := leaderboard.Compute(leaderboard.Input{
			Competition:  *comp,
			Snapshot:     snapshot,
			Holes:        holes,
			Participants: participants,
			Teams:        teamRows,
			Awards:       awards,
			Decisions:    decisions,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, CompetitionStandings{Competition: comp, Standings: standings})
	}

	return results, nil
}
