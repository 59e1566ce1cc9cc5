package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

type ParticipantStore struct {
	db *pgxpool.Pool
}

func NewParticipantStore(db *pgxpool.Pool) *ParticipantStore {
	return &ParticipantStore{db: db}
}

const participantColumns = `
	rp.id, rp.round_id, rp.tournament_participant_id, rp.person_id, rp.group_id,
	tp.name, rp.handicap_snapshot, rp.handicap_override, rp.created_at, rp.updated_at`

func scanParticipant(row pgx.Row) (*models.RoundParticipant, error) {
	p := &models.RoundParticipant{}
	err := row.Scan(
		&p.ID,
		&p.RoundID,
		&p.TournamentParticipantID,
		&p.PersonID,
		&p.GroupID,
		&p.Name,
		&p.HandicapSnapshot,
		&p.HandicapOverride,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ParticipantStore) GetByID(ctx context.Context, participantID int64) (*models.RoundParticipant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM round_participants rp
		JOIN tournament_participants tp ON tp.id = rp.tournament_participant_id
		WHERE rp.id = $1
	`

	p, err := scanParticipant(s.db.QueryRow(ctx, query, participantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Participant not found
		}
		return nil, fmt.Errorf("failed to get round participant by ID: %w", err)
	}

	return p, nil
}

func (s *ParticipantStore) GetByRoundID(ctx context.Context, roundID int64) ([]*models.RoundParticipant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM round_participants rp
		JOIN tournament_participants tp ON tp.id = rp.tournament_participant_id
		WHERE rp.round_id = $1
		ORDER BY rp.id
	`

	rows, err := s.db.Query(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants for round %d: %w", roundID, err)
	}
	defer rows.Close()

	var participants []*models.RoundParticipant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	return participants, nil
}

// GetForUserInRound finds the participant a person plays as in a round,
// used by the write-authority check for markers.
func (s *ParticipantStore) GetForUserInRound(ctx context.Context, roundID, personID int64) (*models.RoundParticipant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM round_participants rp
		JOIN tournament_participants tp ON tp.id = rp.tournament_participant_id
		WHERE rp.round_id = $1 AND rp.person_id = $2
	`

	p, err := scanParticipant(s.db.QueryRow(ctx, query, roundID, personID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant for user %d in round %d: %w", personID, roundID, err)
	}

	return p, nil
}

// GetRecorderNames maps user ids to display names for history annotation.
func (s *ParticipantStore) GetRecorderNames(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	if len(userIDs) == 0 {
		return map[int64]string{}, nil
	}

	rows, err := s.db.Query(ctx,
		`SELECT person_id, name FROM tournament_participants WHERE person_id = ANY($1)`, userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get recorder names: %w", err)
	}
	defer rows.Close()

	names := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}

	return names, nil
}
