package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Competition formats. Score-derived formats compute standings from the
// ledger; bonus formats from awards; decision formats from game decisions.
const (
	FormatStrokePlay   = "stroke_play"
	FormatStableford   = "stableford"
	FormatTeamStroke   = "team_stroke"
	FormatNearestPin   = "nearest_pin"
	FormatLongestDrive = "longest_drive"
	FormatWolf         = "wolf"
)

type Competition struct {
	ID           int64           `json:"id"`            // Primary key
	RoundID      sql.NullInt64   `json:"round_id"`      // scope: exactly one of round_id / tournament_id is set
	TournamentID sql.NullInt64   `json:"tournament_id"` //
	FormatType   string          `json:"format_type"`
	Name         string          `json:"name"`
	Config       json.RawMessage `json:"config"` // format-specific payload, decoded per format
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BonusAward holds the current winner of an award competition hole.
// Unlike ledger rows it is overwritable: last write per
// (competition_id, hole_number) wins.
type BonusAward struct {
	ID                 int64         `json:"id"`             // Primary key
	CompetitionID      int64         `json:"competition_id"` // FK to competitions(id)
	HoleNumber         int           `json:"hole_number"`
	RoundParticipantID sql.NullInt64 `json:"round_participant_id"` // null clears the award
	AwardedByUserID    int64         `json:"awarded_by_user_id"`
	AwardedAt          time.Time     `json:"awarded_at"`
}

// GameDecision is an append-only decision row for decision-based formats
// (e.g. the wolf picking a partner). Same latest-wins-by-created_at
// semantics as score entries.
type GameDecision struct {
	ID               int64           `json:"id"`             // Primary key
	CompetitionID    int64           `json:"competition_id"` // FK to competitions(id)
	RoundID          int64           `json:"round_id"`       // FK to rounds(id)
	HoleNumber       int             `json:"hole_number"`
	Payload          json.RawMessage `json:"payload"` // format-specific decision body
	RecordedByUserID int64           `json:"recorded_by_user_id"`
	CreatedAt        time.Time       `json:"created_at"` // server-assigned
}
