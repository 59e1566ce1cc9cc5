package golf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

func TestDeriveRoundStatus(t *testing.T) {
	tests := []struct {
		name       string
		finalized  bool
		hasScores  bool
		hasTeeTime bool
		want       models.RoundStatus
	}{
		{"nothing set", false, false, false, models.RoundStatusDraft},
		{"tee time only", false, false, true, models.RoundStatusScheduled},
		{"scores open the round", false, true, false, models.RoundStatusOpen},
		{"scores trump tee time", false, true, true, models.RoundStatusOpen},
		{"finalized trumps everything", true, true, true, models.RoundStatusFinalized},
		{"finalized without scores", true, false, false, models.RoundStatusFinalized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRoundStatus(tt.finalized, tt.hasScores, tt.hasTeeTime))
		})
	}
}

func TestDeriveTournamentStatus(t *testing.T) {
	draft := models.RoundStatusDraft
	scheduled := models.RoundStatusScheduled
	open := models.RoundStatusOpen
	finalized := models.RoundStatusFinalized

	tests := []struct {
		name     string
		statuses []models.RoundStatus
		want     models.TournamentStatus
	}{
		{"no rounds", nil, models.TournamentStatusSetup},
		{"all draft", []models.RoundStatus{draft, draft}, models.TournamentStatusSetup},
		{"one scheduled", []models.RoundStatus{draft, scheduled}, models.TournamentStatusScheduled},
		{"one open", []models.RoundStatus{scheduled, open}, models.TournamentStatusUnderway},
		{"mixed finalized and draft", []models.RoundStatus{finalized, draft}, models.TournamentStatusUnderway},
		{"all finalized", []models.RoundStatus{finalized, finalized}, models.TournamentStatusComplete},
		{"single finalized round", []models.RoundStatus{finalized}, models.TournamentStatusComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTournamentStatus(tt.statuses))
		})
	}
}
