package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

type AwardStore struct {
	db *pgxpool.Pool
}

func NewAwardStore(db *pgxpool.Pool) *AwardStore {
	return &AwardStore{db: db}
}

// Upsert records the award holder for a competition hole. Unlike the
// ledger this is last-write-wins: a newer award replaces the previous
// holder for the same (competition, hole).
func (s *AwardStore) Upsert(ctx context.Context, competitionID int64, holeNumber int, participantID sql.NullInt64, awardedByUserID int64) (*models.BonusAward, error) {
	query := `
		INSERT INTO bonus_awards (competition_id, hole_number, round_participant_id, awarded_by_user_id, awarded_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (competition_id, hole_number) DO UPDATE
		SET round_participant_id = EXCLUDED.round_participant_id,
			awarded_by_user_id = EXCLUDED.awarded_by_user_id,
			awarded_at = EXCLUDED.awarded_at
		RETURNING id, competition_id, hole_number, round_participant_id, awarded_by_user_id, awarded_at
	`

	award := &models.BonusAward{}
	err := s.db.QueryRow(ctx, query, competitionID, holeNumber, participantID, awardedByUserID).Scan(
		&award.ID,
		&award.CompetitionID,
		&award.HoleNumber,
		&award.RoundParticipantID,
		&award.AwardedByUserID,
		&award.AwardedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert bonus award: %w", err)
	}

	return award, nil
}

func (s *AwardStore) GetByCompetitionIDs(ctx context.Context, competitionIDs []int64) ([]models.BonusAward, error) {
	if len(competitionIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, competition_id, hole_number, round_participant_id, awarded_by_user_id, awarded_at
		FROM bonus_awards
		WHERE competition_id = ANY($1)
	`

	rows, err := s.db.Query(ctx, query, competitionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get bonus awards: %w", err)
	}
	defer rows.Close()

	var awards []models.BonusAward
	for rows.Next() {
		var a models.BonusAward
		err := rows.Scan(
			&a.ID,
			&a.CompetitionID,
			&a.HoleNumber,
			&a.RoundParticipantID,
			&a.AwardedByUserID,
			&a.AwardedAt,
		)
		if err != nil {
			return nil, err
		}
		awards = append(awards, a)
	}

	return awards, nil
}
