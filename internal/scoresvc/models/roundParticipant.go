package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type RoundParticipant struct {
	ID                      int64               `json:"id"`                        // Primary key
	RoundID                 int64               `json:"round_id"`                  // FK to rounds(id)
	TournamentParticipantID int64               `json:"tournament_participant_id"` // FK to tournament_participants(id)
	PersonID                int64               `json:"person_id"`                 // denormalized from the tournament participant
	GroupID                 sql.NullInt64       `json:"group_id"`                  // FK to round_groups(id); a participant is in 0 or 1 group
	Name                    string              `json:"name"`
	HandicapSnapshot        decimal.Decimal     `json:"handicap_snapshot"` // captured at join time
	HandicapOverride        decimal.NullDecimal `json:"handicap_override"` // round-specific, optional
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
}

// EffectiveHandicap is the round override when present, else the
// tournament-join-time snapshot.
func (p *RoundParticipant) EffectiveHandicap() decimal.Decimal {
	if p.HandicapOverride.Valid {
		return p.HandicapOverride.Decimal
	}
	return p.HandicapSnapshot
}
