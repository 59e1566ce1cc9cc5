package leaderboard

import (
	"encoding/json"

	"github.com/fairwaylink/golf-services/internal/golf"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// WolfDecision is the structured payload of a wolf game decision: the wolf
// for the hole and an optional partner. No partner means the wolf plays
// the hole alone.
type WolfDecision struct {
	WolfParticipantID    int64 `json:"wolf_participant_id"`
	PartnerParticipantID int64 `json:"partner_participant_id,omitempty"`
}

// Wolf scores the decision-based wolf format. Per hole, the latest
// recorded decision splits the group into the wolf side and the opponents;
// each side counts its best member net score. The winning side takes 2
// points per member, a winning lone wolf takes 4, and a tied hole scores
// nothing. Standings rank descending by points.
type Wolf struct{}

func (Wolf) Compute(in Input) ([]Standing, error) {
	holesInRound := len(in.Holes)
	points := make(map[int64]int, len(in.Participants))

	for _, h := range in.Holes {
		d, ok := latestDecision(in.Decisions, in.Competition.ID, h.HoleNumber)
		if !ok {
			continue
		}
		var dec WolfDecision
		if err := json.Unmarshal(d.Payload, &dec); err != nil {
			return nil, err
		}

		var wolfSide, opponents []Participant
		for _, p := range in.Participants {
			if p.ID == dec.WolfParticipantID || p.ID == dec.PartnerParticipantID {
				wolfSide = append(wolfSide, p)
			} else {
				opponents = append(opponents, p)
			}
		}

		wolfBest, wolfOK := bestNet(in, wolfSide, h, holesInRound)
		oppBest, oppOK := bestNet(in, opponents, h, holesInRound)
		if !wolfOK || !oppOK {
			continue // hole not scored on both sides yet
		}

		loneWolf := dec.PartnerParticipantID == 0
		switch {
		case wolfBest < oppBest:
			award := 2
			if loneWolf {
				award = 4
			}
			for _, p := range wolfSide {
				points[p.ID] += award
			}
		case oppBest < wolfBest:
			for _, p := range opponents {
				points[p.ID] += 2
			}
		}
	}

	standings := make([]Standing, 0, len(in.Participants))
	for _, p := range in.Participants {
		row := Standing{
			RoundParticipantID: p.ID,
			Name:               p.Name,
			TeamID:             p.TeamID,
			Points:             points[p.ID],
			Thru:               in.Snapshot.HolesCompleted(p.ID),
		}
		standings = append(standings, row)
	}
	sortStable(standings, func(a, b Standing) bool { return a.Points > b.Points })
	for i := range standings {
		rank := 1
		for j := range standings {
			if standings[j].Points > standings[i].Points {
				rank++
			}
		}
		standings[i].Rank = rank
	}
	return standings, nil
}

// latestDecision picks the current decision for a hole: greatest
// created_at, entry id as the deterministic tie-break. Older decisions
// stay in the ledger but no longer score.
func latestDecision(decisions []models.GameDecision, competitionID int64, holeNumber int) (models.GameDecision, bool) {
	var cur models.GameDecision
	found := false
	for _, d := range decisions {
		if d.CompetitionID != competitionID || d.HoleNumber != holeNumber {
			continue
		}
		if !found || d.CreatedAt.After(cur.CreatedAt) ||
			(d.CreatedAt.Equal(cur.CreatedAt) && d.ID > cur.ID) {
			cur = d
			found = true
		}
	}
	return cur, found
}

func bestNet(in Input, side []Participant, h models.CourseHole, holesInRound int) (int, bool) {
	best, ok := 0, false
	for _, p := range side {
		e, scored := in.Snapshot[golf.Cell{RoundParticipantID: p.ID, HoleNumber: h.HoleNumber}]
		if !scored {
			continue
		}
		n := netStrokes(e.Strokes, p, h, holesInRound)
		if !ok || n < best {
			best, ok = n, true
		}
	}
	return best, ok
}
