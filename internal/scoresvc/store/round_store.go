package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

type RoundStore struct {
	db *pgxpool.Pool
}

func NewRoundStore(db *pgxpool.Pool) *RoundStore {
	return &RoundStore{db: db}
}

func (s *RoundStore) GetRoundByID(ctx context.Context, roundID int64) (*models.Round, error) {
	query := `
		SELECT id, tournament_id, course_id, status, tee_time, finalized_at, created_at, updated_at
		FROM rounds
		WHERE id = $1
	`

	round := &models.Round{}
	err := s.db.QueryRow(ctx, query, roundID).Scan(
		&round.ID,
		&round.TournamentID,
		&round.CourseID,
		&round.Status,
		&round.TeeTime,
		&round.FinalizedAt,
		&round.CreatedAt,
		&round.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Round not found
		}
		return nil, fmt.Errorf("failed to get round by ID: %w", err)
	}

	return round, nil
}

// UpdateStatus persists the derived status projection for a round.
func (s *RoundStore) UpdateStatus(ctx context.Context, roundID int64, status models.RoundStatus) error {
	_, err := s.db.Exec(ctx,
		`UPDATE rounds SET status = $2, updated_at = now() WHERE id = $1`,
		roundID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update round %d status: %w", roundID, err)
	}
	return nil
}

// MarkFinalized stamps finalized_at once. The CTE guards against a double
// finalize racing in from two commissioners.
func (s *RoundStore) MarkFinalized(ctx context.Context, roundID int64) (*models.Round, error) {
	query := `
		UPDATE rounds
		SET finalized_at = now(), status = 'finalized', updated_at = now()
		WHERE id = $1 AND finalized_at IS NULL
		RETURNING id, tournament_id, course_id, status, tee_time, finalized_at, created_at, updated_at
	`

	round := &models.Round{}
	err := s.db.QueryRow(ctx, query, roundID).Scan(
		&round.ID,
		&round.TournamentID,
		&round.CourseID,
		&round.Status,
		&round.TeeTime,
		&round.FinalizedAt,
		&round.CreatedAt,
		&round.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // already finalized (or missing)
		}
		return nil, fmt.Errorf("failed to finalize round %d: %w", roundID, err)
	}

	return round, nil
}

// GetStatusesByTournament returns every child round status, the input of
// the tournament status projection.
func (s *RoundStore) GetStatusesByTournament(ctx context.Context, tournamentID int64) ([]models.RoundStatus, error) {
	rows, err := s.db.Query(ctx,
		`SELECT status FROM rounds WHERE tournament_id = $1 ORDER BY id`, tournamentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get round statuses for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var statuses []models.RoundStatus
	for rows.Next() {
		var st models.RoundStatus
		if err := rows.Scan(&st); err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}

	return statuses, nil
}

// GetRoundsByTournament lists the tournament's rounds ordered by id.
func (s *RoundStore) GetRoundsByTournament(ctx context.Context, tournamentID int64) ([]*models.Round, error) {
	query := `
		SELECT id, tournament_id, course_id, status, tee_time, finalized_at, created_at, updated_at
		FROM rounds
		WHERE tournament_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rounds for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var rounds []*models.Round
	for rows.Next() {
		var r models.Round
		err := rows.Scan(
			&r.ID,
			&r.TournamentID,
			&r.CourseID,
			&r.Status,
			&r.TeeTime,
			&r.FinalizedAt,
			&r.CreatedAt,
			&r.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, &r)
	}

	return rounds, nil
}
