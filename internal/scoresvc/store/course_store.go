package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

type CourseStore struct {
	db *pgxpool.Pool
}

func NewCourseStore(db *pgxpool.Pool) *CourseStore {
	return &CourseStore{db: db}
}

func (s *CourseStore) GetCourseByID(ctx context.Context, courseID int64) (*models.Course, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	course := &models.Course{}
	err := s.db.QueryRow(ctx, query, courseID).Scan(
		&course.ID,
		&course.Name,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Course not found
		}
		return nil, fmt.Errorf("failed to get course by ID: %w", err)
	}

	return course, nil
}

// GetHolesByCourseID returns the course holes ordered by hole number.
func (s *CourseStore) GetHolesByCourseID(ctx context.Context, courseID int64) ([]models.CourseHole, error) {
	query := `
		SELECT id, course_id, hole_number, par, stroke_index, yardage
		FROM course_holes
		WHERE course_id = $1
		ORDER BY hole_number
	`

	rows, err := s.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holes for course %d: %w", courseID, err)
	}
	defer rows.Close()

	var holes []models.CourseHole
	for rows.Next() {
		var h models.CourseHole
		err := rows.Scan(
			&h.ID,
			&h.CourseID,
			&h.HoleNumber,
			&h.Par,
			&h.StrokeIndex,
			&h.Yardage,
		)
		if err != nil {
			return nil, err
		}
		holes = append(holes, h)
	}

	return holes, nil
}
