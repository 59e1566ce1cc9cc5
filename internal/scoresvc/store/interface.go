package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// Narrow store interfaces consumed by the service layer, so services test
// against in-memory fakes without a database.

type ScoreLedger interface {
	Append(ctx context.Context, e models.ScoreEntry) (*models.ScoreEntry, error)
	GetEntriesForRound(ctx context.Context, roundID int64) ([]models.ScoreEntry, error)
	GetHistory(ctx context.Context, roundParticipantID int64, holeNumber int) ([]models.ScoreEntry, error)
	HasEntriesForRound(ctx context.Context, roundID int64) (bool, error)
}

type Participants interface {
	GetByID(ctx context.Context, participantID int64) (*models.RoundParticipant, error)
	GetByRoundID(ctx context.Context, roundID int64) ([]*models.RoundParticipant, error)
	GetForUserInRound(ctx context.Context, roundID, personID int64) (*models.RoundParticipant, error)
	GetRecorderNames(ctx context.Context, userIDs []int64) (map[int64]string, error)
}

type Rounds interface {
	GetRoundByID(ctx context.Context, roundID int64) (*models.Round, error)
	UpdateStatus(ctx context.Context, roundID int64, status models.RoundStatus) error
	MarkFinalized(ctx context.Context, roundID int64) (*models.Round, error)
	GetStatusesByTournament(ctx context.Context, tournamentID int64) ([]models.RoundStatus, error)
	GetRoundsByTournament(ctx context.Context, tournamentID int64) ([]*models.Round, error)
}

type Courses interface {
	GetCourseByID(ctx context.Context, courseID int64) (*models.Course, error)
	GetHolesByCourseID(ctx context.Context, courseID int64) ([]models.CourseHole, error)
}

type Tournaments interface {
	GetByID(ctx context.Context, tournamentID int64) (*models.Tournament, error)
	UpdateStatus(ctx context.Context, tournamentID int64, status models.TournamentStatus) error
	IsCommissioner(ctx context.Context, tournamentID, personID int64) (bool, error)
}

type Competitions interface {
	GetByID(ctx context.Context, competitionID int64) (*models.Competition, error)
	GetByRoundID(ctx context.Context, roundID int64) ([]*models.Competition, error)
	GetByTournamentID(ctx context.Context, tournamentID int64) ([]*models.Competition, error)
}

type Awards interface {
	Upsert(ctx context.Context, competitionID int64, holeNumber int, participantID sql.NullInt64, awardedByUserID int64) (*models.BonusAward, error)
	GetByCompetitionIDs(ctx context.Context, competitionIDs []int64) ([]models.BonusAward, error)
}

type Decisions interface {
	Append(ctx context.Context, competitionID, roundID int64, holeNumber int, payload json.RawMessage, recordedByUserID int64) (*models.GameDecision, error)
	GetByCompetitionIDs(ctx context.Context, competitionIDs []int64) ([]models.GameDecision, error)
}

type Teams interface {
	GetTeamsByTournament(ctx context.Context, tournamentID int64) ([]*models.Team, error)
	GetTeamByParticipant(ctx context.Context, tournamentID int64) (map[int64]int64, error)
}
