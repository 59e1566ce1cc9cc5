package models

import (
	"database/sql"
	"time"
)

type RoundStatus string

const (
	RoundStatusDraft     RoundStatus = "draft"
	RoundStatusScheduled RoundStatus = "scheduled"
	RoundStatusOpen      RoundStatus = "open"
	RoundStatusFinalized RoundStatus = "finalized"
)

type Round struct {
	ID           int64        `json:"id"`            // Primary key
	TournamentID int64        `json:"tournament_id"` // FK to tournaments(id)
	CourseID     int64        `json:"course_id"`     // FK to courses(id)
	Status       RoundStatus  `json:"status"`        // derived, persisted projection
	TeeTime      sql.NullTime `json:"tee_time"`
	FinalizedAt  sql.NullTime `json:"finalized_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type RoundGroup struct {
	ID          int64          `json:"id"`           // Primary key
	RoundID     int64          `json:"round_id"`     // FK to rounds(id)
	GroupNumber int            `json:"group_number"` // ordering within the round
	Name        sql.NullString `json:"name"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
