package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// ScoreStore is the append-only ledger. Rows are never updated or deleted;
// a correction is a new row that supersedes older ones by created_at.
type ScoreStore struct {
	db *pgxpool.Pool
}

func NewScoreStore(db *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{db: db}
}

// Append inserts one immutable ledger row. created_at is assigned by the
// server clock so device clocks never define global order.
func (s *ScoreStore) Append(ctx context.Context, e models.ScoreEntry) (*models.ScoreEntry, error) {
	query := `
		INSERT INTO score_entries
			(round_id, round_participant_id, hole_number, strokes, recorded_by_role, recorded_by_user_id, saved_offline)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, round_id, round_participant_id, hole_number, strokes, recorded_by_role, recorded_by_user_id, saved_offline, created_at
	`

	entry := &models.ScoreEntry{}
	err := s.db.QueryRow(ctx, query,
		e.RoundID, e.RoundParticipantID, e.HoleNumber, e.Strokes,
		e.RecordedByRole, e.RecordedByUserID, e.SavedOffline,
	).Scan(
		&entry.ID,
		&entry.RoundID,
		&entry.RoundParticipantID,
		&entry.HoleNumber,
		&entry.Strokes,
		&entry.RecordedByRole,
		&entry.RecordedByUserID,
		&entry.SavedOffline,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append score entry: %w", err)
	}

	return entry, nil
}

// GetEntriesForRound returns every ledger row for a round, the full
// recomputation input for snapshots and leaderboards.
func (s *ScoreStore) GetEntriesForRound(ctx context.Context, roundID int64) ([]models.ScoreEntry, error) {
	query := `
		SELECT id, round_id, round_participant_id, hole_number, strokes, recorded_by_role, recorded_by_user_id, saved_offline, created_at
		FROM score_entries
		WHERE round_id = $1
	`

	rows, err := s.db.Query(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for round %d: %w", roundID, err)
	}
	defer rows.Close()

	var entries []models.ScoreEntry
	for rows.Next() {
		var e models.ScoreEntry
		err := rows.Scan(
			&e.ID,
			&e.RoundID,
			&e.RoundParticipantID,
			&e.HoleNumber,
			&e.Strokes,
			&e.RecordedByRole,
			&e.RecordedByUserID,
			&e.SavedOffline,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// GetHistory returns all entries for one cell, newest first. Ties on
// created_at order by role precedence then id, matching the current-value
// rule.
func (s *ScoreStore) GetHistory(ctx context.Context, roundParticipantID int64, holeNumber int) ([]models.ScoreEntry, error) {
	query := `
		SELECT id, round_id, round_participant_id, hole_number, strokes, recorded_by_role, recorded_by_user_id, saved_offline, created_at
		FROM score_entries
		WHERE round_participant_id = $1 AND hole_number = $2
		ORDER BY created_at DESC,
			CASE recorded_by_role
				WHEN 'commissioner' THEN 3
				WHEN 'marker' THEN 2
				WHEN 'player' THEN 1
				ELSE 0
			END DESC,
			id DESC
	`

	rows, err := s.db.Query(ctx, query, roundParticipantID, holeNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get score history: %w", err)
	}
	defer rows.Close()

	var entries []models.ScoreEntry
	for rows.Next() {
		var e models.ScoreEntry
		err := rows.Scan(
			&e.ID,
			&e.RoundID,
			&e.RoundParticipantID,
			&e.HoleNumber,
			&e.Strokes,
			&e.RecordedByRole,
			&e.RecordedByUserID,
			&e.SavedOffline,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// HasEntriesForRound reports whether any score has been recorded for the
// round, the input that flips a round to open.
func (s *ScoreStore) HasEntriesForRound(ctx context.Context, roundID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM score_entries WHERE round_id = $1)`, roundID,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check entries for round %d: %w", roundID, err)
	}
	return exists, nil
}
