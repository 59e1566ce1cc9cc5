package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fairwaylink/golf-services/internal/golf"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// In-memory fakes backing the service tests. FakeLedger implements the
// real append-only semantics so conflict resolution is exercised end to
// end; the rest are lookup maps with optional Func overrides.

type FakeLedger struct {
	entries []models.ScoreEntry
	nextID  int64
	now     time.Time

	AppendErr error
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{now: time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)}
}

// Tick advances the fake clock so successive appends get distinct
// timestamps; skipping it simulates same-second concurrent writes.
func (f *FakeLedger) Tick() {
	f.now = f.now.Add(time.Second)
}

func (f *FakeLedger) Append(ctx context.Context, e models.ScoreEntry) (*models.ScoreEntry, error) {
	if f.AppendErr != nil {
		return nil, f.AppendErr
	}
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = f.now
	f.entries = append(f.entries, e)
	return &e, nil
}

func (f *FakeLedger) GetEntriesForRound(ctx context.Context, roundID int64) ([]models.ScoreEntry, error) {
	var out []models.ScoreEntry
	for _, e := range f.entries {
		if e.RoundID == roundID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *FakeLedger) GetHistory(ctx context.Context, roundParticipantID int64, holeNumber int) ([]models.ScoreEntry, error) {
	var out []models.ScoreEntry
	for _, e := range f.entries {
		if e.RoundParticipantID == roundParticipantID && e.HoleNumber == holeNumber {
			out = append(out, e)
		}
	}
	return golf.SortHistory(out), nil
}

func (f *FakeLedger) HasEntriesForRound(ctx context.Context, roundID int64) (bool, error) {
	for _, e := range f.entries {
		if e.RoundID == roundID {
			return true, nil
		}
	}
	return false, nil
}

type FakeParticipants struct {
	ByID  map[int64]*models.RoundParticipant
	Names map[int64]string
}

func NewFakeParticipants() *FakeParticipants {
	return &FakeParticipants{ByID: map[int64]*models.RoundParticipant{}, Names: map[int64]string{}}
}

func (f *FakeParticipants) GetByID(ctx context.Context, id int64) (*models.RoundParticipant, error) {
	return f.ByID[id], nil
}

func (f *FakeParticipants) GetByRoundID(ctx context.Context, roundID int64) ([]*models.RoundParticipant, error) {
	var out []*models.RoundParticipant
	for id := int64(1); id <= int64(len(f.ByID))+10; id++ {
		p, ok := f.ByID[id]
		if ok && p.RoundID == roundID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *FakeParticipants) GetForUserInRound(ctx context.Context, roundID, personID int64) (*models.RoundParticipant, error) {
	for _, p := range f.ByID {
		if p.RoundID == roundID && p.PersonID == personID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *FakeParticipants) GetRecorderNames(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	out := map[int64]string{}
	for _, id := range userIDs {
		if name, ok := f.Names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type FakeRounds struct {
	ByID map[int64]*models.Round
}

func NewFakeRounds() *FakeRounds {
	return &FakeRounds{ByID: map[int64]*models.Round{}}
}

func (f *FakeRounds) GetRoundByID(ctx context.Context, roundID int64) (*models.Round, error) {
	return f.ByID[roundID], nil
}

func (f *FakeRounds) UpdateStatus(ctx context.Context, roundID int64, status models.RoundStatus) error {
	if r, ok := f.ByID[roundID]; ok {
		r.Status = status
	}
	return nil
}

func (f *FakeRounds) MarkFinalized(ctx context.Context, roundID int64) (*models.Round, error) {
	r, ok := f.ByID[roundID]
	if !ok || r.FinalizedAt.Valid {
		return nil, nil
	}
	r.FinalizedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	r.Status = models.RoundStatusFinalized
	return r, nil
}

func (f *FakeRounds) GetStatusesByTournament(ctx context.Context, tournamentID int64) ([]models.RoundStatus, error) {
	var out []models.RoundStatus
	for id := int64(1); id <= int64(len(f.ByID))+10; id++ {
		if r, ok := f.ByID[id]; ok && r.TournamentID == tournamentID {
			out = append(out, r.Status)
		}
	}
	return out, nil
}

func (f *FakeRounds) GetRoundsByTournament(ctx context.Context, tournamentID int64) ([]*models.Round, error) {
	var out []*models.Round
	for id := int64(1); id <= int64(len(f.ByID))+10; id++ {
		if r, ok := f.ByID[id]; ok && r.TournamentID == tournamentID {
			out = append(out, r)
		}
	}
	return out, nil
}

type FakeCourses struct {
	Holes map[int64][]models.CourseHole
	Names map[int64]string
}

func NewFakeCourses() *FakeCourses {
	return &FakeCourses{Holes: map[int64][]models.CourseHole{}, Names: map[int64]string{}}
}

func (f *FakeCourses) GetCourseByID(ctx context.Context, courseID int64) (*models.Course, error) {
	if _, ok := f.Holes[courseID]; !ok {
		return nil, nil
	}
	return &models.Course{ID: courseID, Name: f.Names[courseID]}, nil
}

func (f *FakeCourses) GetHolesByCourseID(ctx context.Context, courseID int64) ([]models.CourseHole, error) {
	return f.Holes[courseID], nil
}

type FakeTournaments struct {
	Statuses      map[int64]models.TournamentStatus
	Names         map[int64]string
	Commissioners map[int64]bool // keyed by personID
}

func NewFakeTournaments() *FakeTournaments {
	return &FakeTournaments{
		Statuses:      map[int64]models.TournamentStatus{},
		Names:         map[int64]string{},
		Commissioners: map[int64]bool{},
	}
}

func (f *FakeTournaments) GetByID(ctx context.Context, tournamentID int64) (*models.Tournament, error) {
	return &models.Tournament{ID: tournamentID, Name: f.Names[tournamentID], Status: f.Statuses[tournamentID]}, nil
}

func (f *FakeTournaments) UpdateStatus(ctx context.Context, tournamentID int64, status models.TournamentStatus) error {
	f.Statuses[tournamentID] = status
	return nil
}

func (f *FakeTournaments) IsCommissioner(ctx context.Context, tournamentID, personID int64) (bool, error) {
	return f.Commissioners[personID], nil
}

type FakeCompetitions struct {
	ByID map[int64]*models.Competition
}

func NewFakeCompetitions() *FakeCompetitions {
	return &FakeCompetitions{ByID: map[int64]*models.Competition{}}
}

func (f *FakeCompetitions) GetByID(ctx context.Context, id int64) (*models.Competition, error) {
	return f.ByID[id], nil
}

func (f *FakeCompetitions) GetByRoundID(ctx context.Context, roundID int64) ([]*models.Competition, error) {
	var out []*models.Competition
	for id := int64(1); id <= int64(len(f.ByID))+10; id++ {
		if c, ok := f.ByID[id]; ok && c.RoundID.Valid && c.RoundID.Int64 == roundID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *FakeCompetitions) GetByTournamentID(ctx context.Context, tournamentID int64) ([]*models.Competition, error) {
	var out []*models.Competition
	for id := int64(1); id <= int64(len(f.ByID))+10; id++ {
		if c, ok := f.ByID[id]; ok && c.TournamentID.Valid && c.TournamentID.Int64 == tournamentID {
			out = append(out, c)
		}
	}
	return out, nil
}

type FakeAwards struct {
	Rows   []models.BonusAward
	nextID int64
}

func (f *FakeAwards) Upsert(ctx context.Context, competitionID int64, holeNumber int, participantID sql.NullInt64, awardedByUserID int64) (*models.BonusAward, error) {
	f.nextID++
	a := models.BonusAward{
		ID:                 f.nextID,
		CompetitionID:      competitionID,
		HoleNumber:         holeNumber,
		RoundParticipantID: participantID,
		AwardedByUserID:    awardedByUserID,
		AwardedAt:          time.Now().UTC(),
	}
	for i, prev := range f.Rows {
		if prev.CompetitionID == competitionID && prev.HoleNumber == holeNumber {
			f.Rows[i] = a
			return &a, nil
		}
	}
	f.Rows = append(f.Rows, a)
	return &a, nil
}

func (f *FakeAwards) GetByCompetitionIDs(ctx context.Context, competitionIDs []int64) ([]models.BonusAward, error) {
	var out []models.BonusAward
	for _, a := range f.Rows {
		for _, id := range competitionIDs {
			if a.CompetitionID == id {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

type FakeDecisions struct {
	Rows   []models.GameDecision
	nextID int64
}

func (f *FakeDecisions) Append(ctx context.Context, competitionID, roundID int64, holeNumber int, payload json.RawMessage, recordedByUserID int64) (*models.GameDecision, error) {
	f.nextID++
	d := models.GameDecision{
		ID:               f.nextID,
		CompetitionID:    competitionID,
		RoundID:          roundID,
		HoleNumber:       holeNumber,
		Payload:          payload,
		RecordedByUserID: recordedByUserID,
		CreatedAt:        time.Now().UTC(),
	}
	f.Rows = append(f.Rows, d)
	return &d, nil
}

func (f *FakeDecisions) GetByCompetitionIDs(ctx context.Context, competitionIDs []int64) ([]models.GameDecision, error) {
	var out []models.GameDecision
	for _, d := range f.Rows {
		for _, id := range competitionIDs {
			if d.CompetitionID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

type FakeTeams struct {
	Teams         []*models.Team
	ByParticipant map[int64]int64 // tournament participant id -> team id
}

func (f *FakeTeams) GetTeamsByTournament(ctx context.Context, tournamentID int64) ([]*models.Team, error) {
	return f.Teams, nil
}

func (f *FakeTeams) GetTeamByParticipant(ctx context.Context, tournamentID int64) (map[int64]int64, error) {
	if f.ByParticipant == nil {
		return map[int64]int64{}, nil
	}
	return f.ByParticipant, nil
}
