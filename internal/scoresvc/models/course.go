package models

import (
	"database/sql"
	"time"
)

type Course struct {
	ID        int64     `json:"id"`   // Primary key
	Name      string    `json:"name"` // Course display name
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CourseHole struct {
	ID          int64         `json:"id"`           // Primary key
	CourseID    int64         `json:"course_id"`    // FK to courses(id)
	HoleNumber  int           `json:"hole_number"`  // 1..18, unique per course
	Par         int           `json:"par"`          // 3..6
	StrokeIndex int           `json:"stroke_index"` // 1..18, permutation per course; 1 = hardest
	Yardage     sql.NullInt64 `json:"yardage"`
}
