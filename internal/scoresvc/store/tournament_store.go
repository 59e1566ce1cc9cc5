package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

type TournamentStore struct {
	db *pgxpool.Pool
}

func NewTournamentStore(db *pgxpool.Pool) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) GetByID(ctx context.Context, tournamentID int64) (*models.Tournament, error) {
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM tournaments
		WHERE id = $1
	`

	t := &models.Tournament{}
	err := s.db.QueryRow(ctx, query, tournamentID).Scan(
		&t.ID,
		&t.Name,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Tournament not found
		}
		return nil, fmt.Errorf("failed to get tournament by ID: %w", err)
	}

	return t, nil
}

// UpdateStatus persists the derived tournament status projection.
func (s *TournamentStore) UpdateStatus(ctx context.Context, tournamentID int64, status models.TournamentStatus) error {
	_, err := s.db.Exec(ctx,
		`UPDATE tournaments SET status = $2, updated_at = now() WHERE id = $1`,
		tournamentID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update tournament %d status: %w", tournamentID, err)
	}
	return nil
}

// IsCommissioner reports whether a person is a commissioner of the
// tournament.
func (s *TournamentStore) IsCommissioner(ctx context.Context, tournamentID, personID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM tournament_commissioners
			WHERE tournament_id = $1 AND person_id = $2
		)`, tournamentID, personID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check commissioner: %w", err)
	}
	return exists, nil
}
