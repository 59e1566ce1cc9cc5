package leaderboard

import (
	"encoding/json"
	"fmt"
)

// BonusConfig is the nearest_pin / longest_drive variant of the
// competition config union.
type BonusConfig struct {
	HoleNumber int `json:"hole_number"`
}

// Bonus covers award-based competitions. Standing is not score-derived:
// the current BonusAward holder for the configured hole ranks 1, everyone
// else is unranked. Awards are last-write-wins per hole, so only the most
// recent one counts.
type Bonus struct{}

func (Bonus) Compute(in Input) ([]Standing, error) {
	var cfg BonusConfig
	if len(in.Competition.Config) > 0 {
		if err := json.Unmarshal(in.Competition.Config, &cfg); err != nil {
			return nil, err
		}
	}
	if cfg.HoleNumber == 0 {
		return nil, fmt.Errorf("bonus competition %d has no hole_number configured", in.Competition.ID)
	}

	var holder int64
	var latest int64 = -1
	var latestAt int64
	for _, a := range in.Awards {
		if a.CompetitionID != in.Competition.ID || a.HoleNumber != cfg.HoleNumber {
			continue
		}
		at := a.AwardedAt.UnixNano()
		if at > latestAt || (at == latestAt && a.ID > latest) {
			latest, latestAt = a.ID, at
			if a.RoundParticipantID.Valid {
				holder = a.RoundParticipantID.Int64
			} else {
				holder = 0 // award cleared
			}
		}
	}

	standings := make([]Standing, 0, len(in.Participants))
	for _, p := range in.Participants {
		row := Standing{RoundParticipantID: p.ID, Name: p.Name, TeamID: p.TeamID}
		if p.ID == holder {
			row.Awarded = true
			row.Rank = 1
		}
		standings = append(standings, row)
	}
	sortStable(standings, func(a, b Standing) bool { return a.Awarded && !b.Awarded })
	return standings, nil
}
