package leaderboard

import (
	"encoding/json"

	"github.com/fairwaylink/golf-services/internal/golf"
)

// StrokePlayConfig is the stroke_play variant of the competition config
// union.
type StrokePlayConfig struct {
	// CountBack breaks net ties hole by hole, hardest hole (lowest stroke
	// index) first. When off, ties stay in participant-id order.
	CountBack bool `json:"count_back"`
}

// StrokePlay is the default format: net total ascending over scored holes.
type StrokePlay struct{}

func (StrokePlay) Compute(in Input) ([]Standing, error) {
	var cfg StrokePlayConfig
	if len(in.Competition.Config) > 0 {
		if err := json.Unmarshal(in.Competition.Config, &cfg); err != nil {
			return nil, err
		}
	}

	holesInRound := len(in.Holes)
	standings := make([]Standing, 0, len(in.Participants))
	for _, p := range in.Participants {
		row := Standing{RoundParticipantID: p.ID, Name: p.Name, TeamID: p.TeamID}
		for _, h := range in.Holes {
			e, ok := in.Snapshot[golf.Cell{RoundParticipantID: p.ID, HoleNumber: h.HoleNumber}]
			if !ok {
				continue
			}
			row.Gross += e.Strokes
			row.Net += netStrokes(e.Strokes, p, h, holesInRound)
			row.Thru++
		}
		standings = append(standings, row)
	}

	byID := participantIndex(in.Participants)
	sortStable(standings, func(a, b Standing) bool {
		if (a.Thru == 0) != (b.Thru == 0) {
			return b.Thru == 0 // unscored rows sink
		}
		if a.Net != b.Net {
			return a.Net < b.Net
		}
		if cfg.CountBack {
			return countBackLess(in, byID[a.RoundParticipantID], byID[b.RoundParticipantID])
		}
		return false
	})
	rankAscending(standings, func(s Standing) int { return s.Net })
	return standings, nil
}

func participantIndex(ps []Participant) map[int64]Participant {
	m := make(map[int64]Participant, len(ps))
	for _, p := range ps {
		m[p.ID] = p
	}
	return m
}

// countBackLess walks the holes from stroke index 1 upward and decides on
// the first hole where the per-hole net scores differ. A missing score
// loses the comparison on that hole.
func countBackLess(in Input, a, b Participant) bool {
	holesInRound := len(in.Holes)
	const unscored = 1 << 10

	byIndex := make(map[int]int, holesInRound) // stroke index -> slice pos
	for i, h := range in.Holes {
		byIndex[h.StrokeIndex] = i
	}

	for si := 1; si <= holesInRound; si++ {
		pos, ok := byIndex[si]
		if !ok {
			continue
		}
		h := in.Holes[pos]

		na, nb := unscored, unscored
		if e, ok := in.Snapshot[golf.Cell{RoundParticipantID: a.ID, HoleNumber: h.HoleNumber}]; ok {
			na = netStrokes(e.Strokes, a, h, holesInRound)
		}
		if e, ok := in.Snapshot[golf.Cell{RoundParticipantID: b.ID, HoleNumber: h.HoleNumber}]; ok {
			nb = netStrokes(e.Strokes, b, h, holesInRound)
		}
		if na != nb {
			return na < nb
		}
	}
	return false
}
