package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// DecisionStore is append-only like the score ledger; the latest decision
// per (competition, hole) is the one that scores.
type DecisionStore struct {
	db *pgxpool.Pool
}

func NewDecisionStore(db *pgxpool.Pool) *DecisionStore {
	return &DecisionStore{db: db}
}

func (s *DecisionStore) Append(ctx context.Context, competitionID, roundID int64, holeNumber int, payload json.RawMessage, recordedByUserID int64) (*models.GameDecision, error) {
	query := `
		INSERT INTO game_decisions (competition_id, round_id, hole_number, payload, recorded_by_user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, competition_id, round_id, hole_number, payload, recorded_by_user_id, created_at
	`

	d := &models.GameDecision{}
	err := s.db.QueryRow(ctx, query, competitionID, roundID, holeNumber, payload, recordedByUserID).Scan(
		&d.ID,
		&d.CompetitionID,
		&d.RoundID,
		&d.HoleNumber,
		&d.Payload,
		&d.RecordedByUserID,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append game decision: %w", err)
	}

	return d, nil
}

func (s *DecisionStore) GetByCompetitionIDs(ctx context.Context, competitionIDs []int64) ([]models.GameDecision, error) {
	if len(competitionIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, competition_id, round_id, hole_number, payload, recorded_by_user_id, created_at
		FROM game_decisions
		WHERE competition_id = ANY($1)
	`

	rows, err := s.db.Query(ctx, query, competitionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get game decisions: %w", err)
	}
	defer rows.Close()

	var decisions []models.GameDecision
	for rows.Next() {
		var d models.GameDecision
		err := rows.Scan(
			&d.ID,
			&d.CompetitionID,
			&d.RoundID,
			&d.HoleNumber,
			&d.Payload,
			&d.RecordedByUserID,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}

	return decisions, nil
}
