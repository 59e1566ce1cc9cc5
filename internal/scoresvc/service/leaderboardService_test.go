package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylink/golf-services/internal/golf"
	"github.com/fairwaylink/golf-services/internal/golf/leaderboard"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

func newLeaderboardFixture() (*scoreFixture, *FakeCompetitions, *LeaderboardService) {
	f := newScoreFixture()
	comps := NewFakeCompetitions()
	teams := &FakeTeams{}
	svc := NewLeaderboardService(comps, f.ledger, f.rounds, f.courses,
		f.participants, teams, &FakeAwards{}, &FakeDecisions{})
	return f, comps, svc
}

func TestForRoundComputesEachCompetition(t *testing.T) {
	f, comps, svc := newLeaderboardFixture()
	ctx := context.Background()

	comps.ByID[1] = &models.Competition{
		ID: 1, RoundID: sql.NullInt64{Int64: 1, Valid: true},
		FormatType: models.FormatStrokePlay, Name: "Gross/Net",
	}
	comps.ByID[2] = &models.Competition{
		ID: 2, RoundID: sql.NullInt64{Int64: 1, Valid: true},
		FormatType: models.FormatStableford, Name: "Points",
	}

	_, err := f.svc.Submit(ctx, submit(1, 1, 3, models.RolePlayer, 100))
	require.NoError(t, err)
	f.ledger.Tick()
	_, err = f.svc.Submit(ctx, submit(2, 1, 5, models.RolePlayer, 200))
	require.NoError(t, err)

	results, err := svc.ForRound(ctx, 1)
	require.NoError(t, err)
	require.Len(t, results, 2)

	strokePlay := results[0]
	assert.Equal(t, models.FormatStrokePlay, strokePlay.Competition.FormatType)
	assert.Equal(t, "Avery", strokePlay.Standings[0].Name)
	assert.Equal(t, 3, strokePlay.Standings[0].Gross)

	stableford := results[1]
	assert.Equal(t, 3, stableford.Standings[0].Points, "birdie scores 3")
}

func TestForRoundTeamStandingsCarryNamesAndColours(t *testing.T) {
	f := newScoreFixture()
	f.participants.ByID[1].TournamentParticipantID = 51
	f.participants.ByID[2].TournamentParticipantID = 52

	comps := NewFakeCompetitions()
	comps.ByID[1] = &models.Competition{
		ID: 1, RoundID: sql.NullInt64{Int64: 1, Valid: true},
		FormatType: models.FormatTeamStroke, Name: "Team Stroke",
	}
	teams := &FakeTeams{
		Teams: []*models.Team{
			{ID: 10, TournamentID: 1, Name: "Red", Position: 0},
			{ID: 20, TournamentID: 1, Name: "Green", Position: 1},
		},
		ByParticipant: map[int64]int64{51: 10, 52: 20},
	}
	svc := NewLeaderboardService(comps, f.ledger, f.rounds, f.courses,
		f.participants, teams, &FakeAwards{}, &FakeDecisions{})

	ctx := context.Background()
	_, err := f.svc.Submit(ctx, submit(1, 1, 4, models.RolePlayer, 100))
	require.NoError(t, err)
	f.ledger.Tick()
	_, err = f.svc.Submit(ctx, submit(2, 1, 5, models.RolePlayer, 200))
	require.NoError(t, err)

	results, err := svc.ForRound(ctx, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Standings, 2)

	byTeam := map[int64]leaderboard.Standing{}
	for _, s := range results[0].Standings {
		byTeam[s.TeamID] = s
	}
	assert.Equal(t, "Red", byTeam[10].Name)
	assert.Equal(t, golf.TeamColour(0), byTeam[10].Colour)
	assert.Equal(t, "Green", byTeam[20].Name)
	assert.Equal(t, golf.TeamColour(1), byTeam[20].Colour)
}

func TestForRoundReflectsCorrections(t *testing.T) {
	f, comps, svc := newLeaderboardFixture()
	ctx := context.Background()

	comps.ByID[1] = &models.Competition{
		ID: 1, RoundID: sql.NullInt64{Int64: 1, Valid: true},
		FormatType: models.FormatStrokePlay,
	}

	_, err := f.svc.Submit(ctx, submit(1, 1, 7, models.RolePlayer, 100))
	require.NoError(t, err)
	f.ledger.Tick()
	_, err = f.svc.Submit(ctx, submit(1, 1, 4, models.RoleMarker, 200))
	require.NoError(t, err)

	results, err := svc.ForRound(ctx, 1)
	require.NoError(t, err)

	var avery int
	for _, s := range results[0].Standings {
		if s.RoundParticipantID == 1 {
			avery = s.Gross
		}
	}
	assert.Equal(t, 4, avery, "standings always recompute from the winning entries")
}

func TestForRoundUnknownRound(t *testing.T) {
	_, _, svc := newLeaderboardFixture()

	_, err := svc.ForRound(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, "validation", ErrorCode(err))
}

func TestForTournamentUnionsRounds(t *testing.T) {
	f, comps, svc := newLeaderboardFixture()
	ctx := context.Background()

	// second round on the same course, same people as new participants
	f.rounds.ByID[2] = &models.Round{ID: 2, TournamentID: 1, CourseID: 7, Status: models.RoundStatusOpen}
	group := sql.NullInt64{Int64: 2, Valid: true}
	f.participants.ByID[3] = &models.RoundParticipant{ID: 3, RoundID: 2, PersonID: 100, GroupID: group, Name: "Avery"}

	comps.ByID[1] = &models.Competition{
		ID: 1, TournamentID: sql.NullInt64{Int64: 1, Valid: true},
		FormatType: models.FormatStrokePlay,
	}

	_, err := f.svc.Submit(ctx, submit(1, 1, 4, models.RolePlayer, 100))
	require.NoError(t, err)
	f.ledger.Tick()
	req := submit(3, 1, 5, models.RolePlayer, 100)
	req.RoundID = 2
	_, err = f.svc.Submit(ctx, req)
	require.NoError(t, err)

	results, err := svc.ForTournament(ctx, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// every round participant appears, scored against the union snapshot
	assert.Len(t, results[0].Standings, 3)
}
