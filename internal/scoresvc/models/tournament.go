package models

import "time"

// Tournament status is a derived projection over the child round statuses.
// It is recomputed and persisted whenever a round status changes, never set
// directly by a user action.
type TournamentStatus string

const (
	TournamentStatusSetup     TournamentStatus = "setup"
	TournamentStatusScheduled TournamentStatus = "scheduled"
	TournamentStatusUnderway  TournamentStatus = "underway"
	TournamentStatusComplete  TournamentStatus = "complete"
)

type Tournament struct {
	ID        int64            `json:"id"`   // Primary key
	Name      string           `json:"name"` // Tournament display name
	Status    TournamentStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type TournamentParticipant struct {
	ID           int64     `json:"id"`            // Primary key
	TournamentID int64     `json:"tournament_id"` // FK to tournaments(id)
	PersonID     int64     `json:"person_id"`     // FK to persons(id)
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
