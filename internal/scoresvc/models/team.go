package models

import "time"

type Team struct {
	ID           int64     `json:"id"`            // Primary key
	TournamentID int64     `json:"tournament_id"` // FK to tournaments(id)
	Name         string    `json:"name"`
	Position     int       `json:"position"` // order within the tournament team list
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TeamMember struct {
	ID                      int64 `json:"id"`      // Primary key
	TeamID                  int64 `json:"team_id"` // FK to teams(id)
	TournamentParticipantID int64 `json:"tournament_participant_id"`
	Position                int   `json:"position"` // order within the team
}
