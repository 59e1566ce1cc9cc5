package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

type TeamStore struct {
	db *pgxpool.Pool
}

func NewTeamStore(db *pgxpool.Pool) *TeamStore {
	return &TeamStore{db: db}
}

// GetTeamsByTournament returns teams ordered by list position. Display
// colour derives from that position, so the order matters.
func (s *TeamStore) GetTeamsByTournament(ctx context.Context, tournamentID int64) ([]*models.Team, error) {
	query := `
		SELECT id, tournament_id, name, position, created_at, updated_at
		FROM teams
		WHERE tournament_id = $1
		ORDER BY position
	`

	rows, err := s.db.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		var t models.Team
		err := rows.Scan(
			&t.ID,
			&t.TournamentID,
			&t.Name,
			&t.Position,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}

	return teams, nil
}

// GetTeamByParticipant maps tournament participant ids to team ids for a
// tournament.
func (s *TeamStore) GetTeamByParticipant(ctx context.Context, tournamentID int64) (map[int64]int64, error) {
	query := `
		SELECT tm.tournament_participant_id, tm.team_id
		FROM team_members tm
		JOIN teams t ON t.id = tm.team_id
		WHERE t.tournament_id = $1
	`

	rows, err := s.db.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	byParticipant := make(map[int64]int64)
	for rows.Next() {
		var participantID, teamID int64
		if err := rows.Scan(&participantID, &teamID); err != nil {
			return nil, err
		}
		byParticipant[participantID] = teamID
	}

	return byParticipant, nil
}
