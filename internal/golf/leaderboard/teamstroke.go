package leaderboard

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fairwaylink/golf-services/internal/golf"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// TeamStrokeConfig is the team_stroke variant of the competition config
// union.
type TeamStrokeConfig struct {
	Method string `json:"method"` // "sum" (default) or "best_n"
	BestN  int    `json:"best_n"` // counting scores per hole when best_n
}

// TeamStroke aggregates member net scores per hole into a team total,
// ranking ascending. A hole counts for the team once at least one member
// (or BestN members) has a current score on it.
type TeamStroke struct{}

func (TeamStroke) Compute(in Input) ([]Standing, error) {
	cfg := TeamStrokeConfig{Method: "sum"}
	if len(in.Competition.Config) > 0 {
		if err := json.Unmarshal(in.Competition.Config, &cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Method == "best_n" && cfg.BestN < 1 {
		return nil, fmt.Errorf("team_stroke best_n config requires best_n >= 1")
	}

	holesInRound := len(in.Holes)
	members := map[int64][]Participant{}
	for _, p := range in.Participants {
		if p.TeamID != 0 {
			members[p.TeamID] = append(members[p.TeamID], p)
		}
	}

	teamIDs := make([]int64, 0, len(members))
	for id := range members {
		teamIDs = append(teamIDs, id)
	}
	sort.Slice(teamIDs, func(i, j int) bool { return teamIDs[i] < teamIDs[j] })

	teams := map[int64]models.Team{}
	for _, t := range in.Teams {
		teams[t.ID] = t
	}

	standings := make([]Standing, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		row := Standing{TeamID: teamID}
		if t, ok := teams[teamID]; ok {
			row.Name = t.Name
			row.Colour = golf.TeamColour(t.Position)
		}
		for _, h := range in.Holes {
			var nets []int
			var gross int
			for _, p := range members[teamID] {
				e, ok := in.Snapshot[golf.Cell{RoundParticipantID: p.ID, HoleNumber: h.HoleNumber}]
				if !ok {
					continue
				}
				nets = append(nets, netStrokes(e.Strokes, p, h, holesInRound))
				gross += e.Strokes
			}
			if len(nets) == 0 {
				continue
			}
			sort.Ints(nets)
			counting := nets
			if cfg.Method == "best_n" && len(nets) > cfg.BestN {
				counting = nets[:cfg.BestN]
			}
			for _, n := range counting {
				row.Net += n
			}
			row.Gross += gross
			row.Thru++
		}
		standings = append(standings, row)
	}

	sortStable(standings, func(a, b Standing) bool {
		if (a.Thru == 0) != (b.Thru == 0) {
			return b.Thru == 0
		}
		return a.Net < b.Net
	})
	rankAscending(standings, func(s Standing) int { return s.Net })
	return standings, nil
}
