package models

import "time"

// Recorder roles, by write authority. Precedence breaks ties between ledger
// entries that share an identical created_at.
const (
	RolePlayer       = "player"
	RoleMarker       = "marker"
	RoleCommissioner = "commissioner"
)

// RolePrecedence returns the fixed conflict ordering
// commissioner > marker > player. Unknown roles rank below player.
func RolePrecedence(role string) int {
	switch role {
	case RoleCommissioner:
		return 3
	case RoleMarker:
		return 2
	case RolePlayer:
		return 1
	default:
		return 0
	}
}

// ScoreEntry is one immutable row of the score ledger. Corrections are new
// rows superseding older ones by created_at; nothing is updated or deleted.
type ScoreEntry struct {
	ID                 int64     `json:"id"`                   // Primary key
	RoundID            int64     `json:"round_id"`             // FK to rounds(id), denormalized for per-round reads
	RoundParticipantID int64     `json:"round_participant_id"` // FK to round_participants(id)
	HoleNumber         int       `json:"hole_number"`          // 1..18
	Strokes            int       `json:"strokes"`              // 1..20
	RecordedByRole     string    `json:"recorded_by_role"`     // player | marker | commissioner
	RecordedByUserID   int64     `json:"recorded_by_user_id"`
	SavedOffline       bool      `json:"saved_offline"` // client meta, audit only
	CreatedAt          time.Time `json:"created_at"`    // server-assigned
}
