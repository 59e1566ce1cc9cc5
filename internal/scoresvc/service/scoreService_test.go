package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

type scoreFixture struct {
	ledger       *FakeLedger
	participants *FakeParticipants
	rounds       *FakeRounds
	courses      *FakeCourses
	tournaments  *FakeTournaments
	svc          *ScoreService
}

// newScoreFixture seeds round 1 on a nine-hole course in tournament 1,
// with participants 1 (person 100) and 2 (person 200) in group 1.
func newScoreFixture() *scoreFixture {
	f := &scoreFixture{
		ledger:       NewFakeLedger(),
		participants: NewFakeParticipants(),
		rounds:       NewFakeRounds(),
		courses:      NewFakeCourses(),
		tournaments:  NewFakeTournaments(),
	}

	holes := make([]models.CourseHole, 9)
	for i := range holes {
		holes[i] = models.CourseHole{HoleNumber: i + 1, Par: 4, StrokeIndex: i + 1}
	}
	f.courses.Holes[7] = holes

	f.rounds.ByID[1] = &models.Round{
		ID: 1, TournamentID: 1, CourseID: 7, Status: models.RoundStatusScheduled,
		TeeTime: sql.NullTime{Time: time.Now(), Valid: true},
	}

	group := sql.NullInt64{Int64: 1, Valid: true}
	f.participants.ByID[1] = &models.RoundParticipant{ID: 1, RoundID: 1, PersonID: 100, GroupID: group, Name: "Avery"}
	f.participants.ByID[2] = &models.RoundParticipant{ID: 2, RoundID: 1, PersonID: 200, GroupID: group, Name: "Blair"}
	f.participants.Names[100] = "Avery"
	f.participants.Names[200] = "Blair"

	statuses := NewStatusService(f.ledger, f.rounds, f.tournaments)
	f.svc = NewScoreService(f.ledger, f.participants, f.rounds, f.courses, f.tournaments, statuses)
	return f
}

func submit(participant int64, hole, strokes int, role string, user int64) SubmitScore {
	return SubmitScore{
		RoundID:            1,
		RoundParticipantID: participant,
		HoleNumber:         hole,
		Strokes:            strokes,
		Role:               role,
		RecordedByUserID:   user,
	}
}

func TestSubmitAppendsAndOpensRound(t *testing.T) {
	f := newScoreFixture()

	entry, err := f.svc.Submit(context.Background(), submit(1, 3, 5, models.RolePlayer, 100))
	require.NoError(t, err)

	assert.Equal(t, 5, entry.Strokes)
	assert.Equal(t, models.RoundStatusOpen, f.rounds.ByID[1].Status, "first entry opens the round")
	assert.Equal(t, models.TournamentStatusUnderway, f.tournaments.Statuses[1])
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name string
		req  SubmitScore
	}{
		{"strokes below range", submit(1, 3, 0, models.RolePlayer, 100)},
		{"strokes above range", submit(1, 3, 21, models.RolePlayer, 100)},
		{"unknown role", submit(1, 3, 5, "caddie", 100)},
		{"unknown participant", submit(99, 3, 5, models.RolePlayer, 100)},
		{"hole not on course", submit(1, 10, 5, models.RolePlayer, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newScoreFixture()
			_, err := f.svc.Submit(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, "validation", ErrorCode(err))
		})
	}
}

func TestSubmitWriteAuthority(t *testing.T) {
	tests := []struct {
		name     string
		req      SubmitScore
		wantCode string
	}{
		{"player scores own card", submit(1, 1, 4, models.RolePlayer, 100), ""},
		{"player cannot score another card", submit(2, 1, 4, models.RolePlayer, 100), "authorization"},
		{"marker in round scores any card", submit(2, 1, 4, models.RoleMarker, 100), ""},
		{"outsider cannot mark", submit(2, 1, 4, models.RoleMarker, 999), "authorization"},
		{"non-commissioner rejected", submit(1, 1, 4, models.RoleCommissioner, 100), "authorization"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newScoreFixture()
			_, err := f.svc.Submit(context.Background(), tt.req)
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, ErrorCode(err))
			}
		})
	}
}

func TestSubmitCommissionerScoresAnyCard(t *testing.T) {
	f := newScoreFixture()
	f.tournaments.Commissioners[500] = true

	_, err := f.svc.Submit(context.Background(), submit(2, 1, 4, models.RoleCommissioner, 500))
	assert.NoError(t, err)
}

func TestSubmitRejectedAfterFinalization(t *testing.T) {
	f := newScoreFixture()
	f.rounds.ByID[1].FinalizedAt = sql.NullTime{Time: time.Now(), Valid: true}

	_, err := f.svc.Submit(context.Background(), submit(1, 1, 4, models.RolePlayer, 100))
	require.Error(t, err)
	assert.Equal(t, "round_closed", ErrorCode(err))
}

func TestCurrentValueFollowsCorrections(t *testing.T) {
	f := newScoreFixture()
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, submit(1, 4, 6, models.RolePlayer, 100))
	require.NoError(t, err)
	f.ledger.Tick()
	_, err = f.svc.Submit(ctx, submit(1, 4, 5, models.RolePlayer, 100))
	require.NoError(t, err)

	cur, err := f.svc.CurrentValue(ctx, 1, 4)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, 5, cur.Strokes)

	// the older entry stays in history but never becomes current again
	history, err := f.svc.History(ctx, 1, 4)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 5, history[0].Entry.Strokes)
	assert.Equal(t, 6, history[1].Entry.Strokes)
	assert.Equal(t, "Avery", history[0].RecorderName)
}

func TestCurrentValueSameTimestampMarkerWins(t *testing.T) {
	f := newScoreFixture()
	ctx := context.Background()

	// no Tick between the two: both rows share one created_at
	_, err := f.svc.Submit(ctx, submit(1, 4, 6, models.RolePlayer, 100))
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, submit(1, 4, 5, models.RoleMarker, 200))
	require.NoError(t, err)

	cur, err := f.svc.CurrentValue(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, cur.Strokes)
	assert.Equal(t, models.RoleMarker, cur.RecordedByRole)
}

func TestCurrentValueUnscoredCell(t *testing.T) {
	f := newScoreFixture()

	cur, err := f.svc.CurrentValue(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.Nil(t, cur)
}
