// Package leaderboard computes competition standings from a ledger
// snapshot. Each format registers a Strategy keyed by its format type, so
// new formats plug in without touching the dispatch core. Standings are
// always recomputed from the ledger; nothing here is authoritative state.
package leaderboard

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fairwaylink/golf-services/internal/golf"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// Participant carries what the strategies need to score one player.
type Participant struct {
	ID       int64           `json:"round_participant_id"`
	Name     string          `json:"name"`
	TeamID   int64           `json:"team_id,omitempty"` // 0 = no team
	Handicap decimal.Decimal `json:"handicap"`          // effective handicap for the round
}

// Standing is one leaderboard row. Score-derived formats fill the totals;
// bonus formats only set Awarded.
type Standing struct {
	RoundParticipantID int64  `json:"round_participant_id,omitempty"`
	TeamID             int64  `json:"team_id,omitempty"`
	Name               string `json:"name"`
	Colour             string `json:"colour,omitempty"` // team display colour, derived from list position
	Gross              int    `json:"gross"`
	Net                int    `json:"net"`
	Points             int    `json:"points"`
	Thru               int    `json:"thru"`
	Rank               int    `json:"rank"`
	Awarded            bool   `json:"awarded,omitempty"`
}

// Input bundles the full recomputation state for one competition.
type Input struct {
	Competition  models.Competition
	Snapshot     golf.Snapshot
	Holes        []models.CourseHole
	Participants []Participant
	Teams        []models.Team
	Awards       []models.BonusAward
	Decisions    []models.GameDecision
}

// Strategy scores one competition format. Implementations must be pure:
// same input, same standings.
type Strategy interface {
	Compute(in Input) ([]Standing, error)
}

var registry = map[string]Strategy{}

// Register binds a strategy to a format type. Later registrations replace
// earlier ones.
func Register(formatType string, s Strategy) {
	registry[formatType] = s
}

func init() {
	Register(models.FormatStrokePlay, StrokePlay{})
	Register(models.FormatStableford, Stableford{})
	Register(models.FormatTeamStroke, TeamStroke{})
	Register(models.FormatNearestPin, Bonus{})
	Register(models.FormatLongestDrive, Bonus{})
	Register(models.FormatWolf, Wolf{})
}

// Compute dispatches to the registered strategy for the competition's
// format. Unknown formats fall back to stroke play, the default format.
func Compute(in Input) ([]Standing, error) {
	s, ok := registry[in.Competition.FormatType]
	if !ok {
		s = StrokePlay{}
	}
	standings, err := s.Compute(in)
	if err != nil {
		return nil, fmt.Errorf("compute %s standings: %w", in.Competition.FormatType, err)
	}
	return standings, nil
}

// netStrokes is strokes less handicap strokes received on the hole.
func netStrokes(strokes int, p Participant, hole models.CourseHole, holesInRound int) int {
	return strokes - golf.StrokesReceived(p.Handicap, hole.StrokeIndex, holesInRound)
}

// rankAscending assigns dense ranks by a lower-is-better total, leaving
// the slice order untouched.
func rankAscending(standings []Standing, total func(Standing) int) {
	for i := range standings {
		rank := 1
		for j := range standings {
			if standings[j].Thru > 0 && total(standings[j]) < total(standings[i]) {
				rank++
			}
		}
		if standings[i].Thru == 0 {
			rank = 0 // not yet on the board
		}
		standings[i].Rank = rank
	}
}

// sortStable orders by the given less, falling back to participant then
// team id so the order is deterministic under ties.
func sortStable(standings []Standing, less func(a, b Standing) bool) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		if a.RoundParticipantID != b.RoundParticipantID {
			return a.RoundParticipantID < b.RoundParticipantID
		}
		return a.TeamID < b.TeamID
	})
}
