package syncsvc

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fairwaylink/golf-services/internal/comm"
	"github.com/fairwaylink/golf-services/internal/golf/leaderboard"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// SimulatorConfig describes the group a simulated scoring device walks.
type SimulatorConfig struct {
	RoundID      int64
	MarkerUserID int64
	Participants []int64       // round participant ids in the device's group
	Holes        int
	Pace         time.Duration // wait between holes
	Seed         int64         // 0 seeds from the clock

	// Side games the device also records when set: a wolf decision before
	// every hole, and a nearest-the-pin award judged on BonusHole.
	WolfCompetitionID  int64
	BonusCompetitionID int64
	BonusHole          int
}

// Simulator plays a round the way a scoring device does: one group, hole
// by hole, with the occasional correction to the previous hole. Every
// edit goes through the coordinator, so scores queue while the link is
// down and replay once it returns.
type Simulator struct {
	coordinator *Coordinator
	cfg         SimulatorConfig
	rng         *rand.Rand
}

func NewSimulator(coordinator *Coordinator, cfg SimulatorConfig) *Simulator {
	if cfg.Holes <= 0 {
		cfg.Holes = 18
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		coordinator: coordinator,
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Run walks the card once, pacing between holes. It returns once every
// hole is scored and delivered, or when the context ends.
func (s *Simulator) Run(ctx context.Context) error {
	for hole := 1; hole <= s.cfg.Holes; hole++ {
		s.playHole(hole)
		s.flush(ctx)

		if hole == s.cfg.Holes {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.Pace):
		}
	}

	log.Infof("scorecard complete for round %d: %d holes, %d players",
		s.cfg.RoundID, s.cfg.Holes, len(s.cfg.Participants))
	s.flush(ctx)
	return nil
}

// playHole records a score for each player in the group. Now and then the
// marker corrects the previous hole, which exercises the per-cell
// coalescing when the link is down.
func (s *Simulator) playHole(hole int) {
	if len(s.cfg.Participants) == 0 {
		return
	}

	if s.cfg.WolfCompetitionID != 0 {
		s.recordWolfDecision(hole)
	}

	for _, pid := range s.cfg.Participants {
		s.submit(pid, hole)
	}
	if hole > 1 && s.rng.Intn(4) == 0 {
		pid := s.cfg.Participants[s.rng.Intn(len(s.cfg.Participants))]
		s.submit(pid, hole-1)
	}

	if s.cfg.BonusCompetitionID != 0 && hole == s.cfg.BonusHole {
		s.coordinator.AwardBonus(comm.AwardSubmit{
			CompetitionId:      s.cfg.BonusCompetitionID,
			RoundId:            s.cfg.RoundID,
			HoleNumber:         hole,
			RoundParticipantId: s.cfg.Participants[s.rng.Intn(len(s.cfg.Participants))],
			AwardedByUserId:    s.cfg.MarkerUserID,
		})
	}
}

// recordWolfDecision picks the hole's wolf in rotation and flips a coin
// between taking a partner and going alone.
func (s *Simulator) recordWolfDecision(hole int) {
	group := s.cfg.Participants
	dec := leaderboard.WolfDecision{
		WolfParticipantID: group[(hole-1)%len(group)],
	}
	if len(group) > 1 && s.rng.Intn(2) == 0 {
		partner := group[s.rng.Intn(len(group))]
		if partner != dec.WolfParticipantID {
			dec.PartnerParticipantID = partner
		}
	}

	payload, err := json.Marshal(dec)
	if err != nil {
		log.Errorf("Error encoding wolf decision: %v", err)
		return
	}
	s.coordinator.RecordDecision(comm.DecisionSubmit{
		CompetitionId:    s.cfg.WolfCompetitionID,
		RoundId:          s.cfg.RoundID,
		HoleNumber:       hole,
		Payload:          payload,
		RecordedByUserId: s.cfg.MarkerUserID,
	})
}

func (s *Simulator) submit(participantID int64, hole int) {
	s.coordinator.SubmitScore(comm.ScoreSubmit{
		RoundId:            s.cfg.RoundID,
		RoundParticipantId: participantID,
		HoleNumber:         hole,
		Strokes:            3 + s.rng.Intn(5),
		RecordedByRole:     models.RoleMarker,
		RecordedByUserId:   s.cfg.MarkerUserID,
	})
}

// flush pushes the queue when the link is up. A transient failure leaves
// the intents queued; the link loop flushes again after reconnecting.
func (s *Simulator) flush(ctx context.Context) {
	if !s.coordinator.Online() {
		return
	}
	if err := s.coordinator.Flush(ctx); err != nil {
		log.Errorf("Error flushing scorecard for round %d: %v", s.cfg.RoundID, err)
	}
}
