package leaderboard

import "github.com/fairwaylink/golf-services/internal/golf"

// Stableford awards per-hole points against net par:
// points = max(0, 2 - (strokes - (par + strokes received))).
// Net par scores 2, so a blow-up hole bottoms out at 0 instead of sinking
// the card. Ranking is descending by total points.
type Stableford struct{}

func (Stableford) Compute(in Input) ([]Standing, error) {
	holesInRound := len(in.Holes)
	standings := make([]Standing, 0, len(in.Participants))
	for _, p := range in.Participants {
		row := Standing{RoundParticipantID: p.ID, Name: p.Name, TeamID: p.TeamID}
		for _, h := range in.Holes {
			e, ok := in.Snapshot[golf.Cell{RoundParticipantID: p.ID, HoleNumber: h.HoleNumber}]
			if !ok {
				continue
			}
			netPar := h.Par + golf.StrokesReceived(p.Handicap, h.StrokeIndex, holesInRound)
			points := 2 - (e.Strokes - netPar)
			if points < 0 {
				points = 0
			}
			row.Gross += e.Strokes
			row.Points += points
			row.Thru++
		}
		standings = append(standings, row)
	}

	sortStable(standings, func(a, b Standing) bool {
		if (a.Thru == 0) != (b.Thru == 0) {
			return b.Thru == 0
		}
		return a.Points > b.Points
	})
	for i := range standings {
		rank := 1
		for j := range standings {
			if standings[j].Thru > 0 && standings[j].Points > standings[i].Points {
				rank++
			}
		}
		if standings[i].Thru == 0 {
			rank = 0
		}
		standings[i].Rank = rank
	}
	return standings, nil
}
