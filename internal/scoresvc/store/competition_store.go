package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

type CompetitionStore struct {
	db *pgxpool.Pool
}

func NewCompetitionStore(db *pgxpool.Pool) *CompetitionStore {
	return &CompetitionStore{db: db}
}

func scanCompetitions(rows pgx.Rows) ([]*models.Competition, error) {
	var comps []*models.Competition
	for rows.Next() {
		var c models.Competition
		err := rows.Scan(
			&c.ID,
			&c.RoundID,
			&c.TournamentID,
			&c.FormatType,
			&c.Name,
			&c.Config,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		comps = append(comps, &c)
	}
	return comps, nil
}

func (s *CompetitionStore) GetByID(ctx context.Context, competitionID int64) (*models.Competition, error) {
	query := `
		SELECT id, round_id, tournament_id, format_type, name, config, created_at, updated_at
		FROM competitions
		WHERE id = $1
	`

	c := &models.Competition{}
	err := s.db.QueryRow(ctx, query, competitionID).Scan(
		&c.ID,
		&c.RoundID,
		&c.TournamentID,
		&c.FormatType,
		&c.Name,
		&c.Config,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Competition not found
		}
		return nil, fmt.Errorf("failed to get competition by ID: %w", err)
	}

	return c, nil
}

func (s *CompetitionStore) GetByRoundID(ctx context.Context, roundID int64) ([]*models.Competition, error) {
	query := `
		SELECT id, round_id, tournament_id, format_type, name, config, created_at, updated_at
		FROM competitions
		WHERE round_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to get competitions for round %d: %w", roundID, err)
	}
	defer rows.Close()

	return scanCompetitions(rows)
}

func (s *CompetitionStore) GetByTournamentID(ctx context.Context, tournamentID int64) ([]*models.Competition, error) {
	query := `
		SELECT id, round_id, tournament_id, format_type, name, config, created_at, updated_at
		FROM competitions
		WHERE tournament_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get competitions for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	return scanCompetitions(rows)
}
