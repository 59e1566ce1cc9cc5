package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/fairwaylink/golf-services/internal/comm"
	"github.com/fairwaylink/golf-services/internal/scoresvc/metrics"
	"github.com/fairwaylink/golf-services/internal/scoresvc/service"
)

// Topic names between the services. socketsvc publishes client intents to
// score.service; scoresvc publishes responses and round events to
// socket.service.
const (
	TopicInbound  = "score.service"
	TopicOutbound = "socket.service"
)

type Broker struct {
	Conn               *nats.Conn
	ScoreService       *service.ScoreService
	RoundService       *service.RoundService
	CompetitionService *service.CompetitionService
	LeaderboardService *service.LeaderboardService
}

func NewBroker(nc *nats.Conn, scoreService *service.ScoreService,
	roundService *service.RoundService, competitionService *service.CompetitionService,
	leaderboardService *service.LeaderboardService) *Broker {
	return &Broker{
		Conn:               nc,
		ScoreService:       scoreService,
		RoundService:       roundService,
		CompetitionService: competitionService,
		LeaderboardService: leaderboardService,
	}
}

// handleMessage handles intents coming from the socket service.
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	err := json.Unmarshal(msgNat.Data, &msg)
	if err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	switch msg.Type {
	case comm.TypeJoinRound:
		var request comm.JoinRound
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding join-round: %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		info, err := b.RoundService.JoinInfo(ctx, request.RoundId)
		if err != nil {
			log.Errorf("Error [RoundService.JoinInfo]: %s", err)
			b.PublishError(err, msg.SocketId)
			return
		}

		b.PublishResponse(comm.TypeJoinedRound, comm.JoinedRound{
			RoundId:        info.RoundID,
			TournamentId:   info.TournamentID,
			TournamentName: info.TournamentName,
			CourseName:     info.CourseName,
			Holes:          info.Holes,
		}, msg.SocketId)

	case comm.TypeSubmitScore:
		var request comm.ScoreSubmit
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding submit-score: %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		entry, err := b.ScoreService.Submit(ctx, service.SubmitScore{
			RoundID:            request.RoundId,
			RoundParticipantID: request.RoundParticipantId,
			HoleNumber:         request.HoleNumber,
			Strokes:            request.Strokes,
			Role:               request.RecordedByRole,
			RecordedByUserID:   request.RecordedByUserId,
			SavedOffline:       request.ClientMeta.SavedOffline,
		})
		if err != nil {
			log.Errorf("Error [ScoreService.Submit]: %s", err)
			b.PublishError(err, msg.SocketId)
			return
		}

		// the acknowledgment to the writer and the round broadcast are
		// the same event; the writer matches it by cell
		b.PublishRoundEvent(comm.TypeScoreEntryEvent, entry, entry.RoundID)

	case comm.TypeRecordDecision:
		var request comm.DecisionSubmit
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding record-decision: %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		decision, err := b.CompetitionService.RecordDecision(ctx, service.RecordDecision{
			CompetitionID:    request.CompetitionId,
			RoundID:          request.RoundId,
			HoleNumber:       request.HoleNumber,
			Payload:          request.Payload,
			RecordedByUserID: request.RecordedByUserId,
		})
		if err != nil {
			log.Errorf("Error [CompetitionService.RecordDecision]: %s", err)
			b.PublishError(err, msg.SocketId)
			return
		}

		b.PublishRoundEvent(comm.TypeDecisionEvent, decision, decision.RoundID)

	case comm.TypeAwardBonus:
		var request comm.AwardSubmit
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding award-bonus: %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		award, err := b.CompetitionService.AwardBonus(ctx, service.AwardBonus{
			CompetitionID:      request.CompetitionId,
			RoundID:            request.RoundId,
			HoleNumber:         request.HoleNumber,
			RoundParticipantID: request.RoundParticipantId,
			AwardedByUserID:    request.AwardedByUserId,
		})
		if err != nil {
			log.Errorf("Error [CompetitionService.AwardBonus]: %s", err)
			b.PublishError(err, msg.SocketId)
			return
		}

		b.PublishRoundEvent(comm.TypeBonusAwardEvent, award, request.RoundId)

	case comm.TypeGetLeaderboard:
		var request comm.LeaderboardRequest
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding get-leaderboard: %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var results []service.CompetitionStandings
		var err error
		if request.RoundId != 0 {
			results, err = b.LeaderboardService.ForRound(ctx, request.RoundId)
		} else {
			results, err = b.LeaderboardService.ForTournament(ctx, request.TournamentId)
		}
		if err != nil {
			log.Errorf("Error [LeaderboardService]: %s", err)
			b.PublishError(err, msg.SocketId)
			return
		}

		boards := make([]comm.LeaderboardData, 0, len(results))
		for _, r := range results {
			boards = append(boards, comm.LeaderboardData{
				CompetitionId: r.Competition.ID,
				FormatType:    r.Competition.FormatType,
				Name:          r.Competition.Name,
				Standings:     r.Standings,
			})
		}
		b.PublishResponse(comm.TypeLeaderboardData, boards, msg.SocketId)

	case comm.TypeGetHistory:
		var request comm.HistoryRequest
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding get-score-history: %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		history, err := b.ScoreService.History(ctx, request.RoundParticipantId, request.HoleNumber)
		if err != nil {
			log.Errorf("Error [ScoreService.History]: %s", err)
			b.PublishError(err, msg.SocketId)
			return
		}

		entries := make([]comm.HistoryEntry, 0, len(history))
		for _, h := range history {
			entries = append(entries, comm.HistoryEntry{Entry: h.Entry, RecorderName: h.RecorderName})
		}
		b.PublishResponse(comm.TypeHistoryData, entries, msg.SocketId)

	default:
		log.Error("Unknown message")
		return
	}
}

// PublishResponse sends a direct reply addressed to one socket.
func (b *Broker) PublishResponse(msgType string, payload any, socketId string) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("[%s] unable to marshal payload: %s", msgType, err)
		return
	}

	msg := &comm.WSMessage{
		Type:     msgType,
		Data:     data,
		SocketId: socketId,
	}

	out, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	b.Publish(TopicOutbound, out)
}

// PublishRoundEvent broadcasts a creation event to every socket joined to
// the round.
func (b *Broker) PublishRoundEvent(msgType string, payload any, roundId int64) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("[%s] unable to marshal payload: %s", msgType, err)
		return
	}

	msg := &comm.WSMessage{
		Type:    msgType,
		Data:    data,
		RoundId: roundId,
	}

	out, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	metrics.RealtimeEvents.WithLabelValues(msgType).Inc()
	b.Publish(TopicOutbound, out)
}

// PublishError maps a domain error to its wire code. Storage errors go out
// as a generic internal failure; the detail stays in the service log.
func (b *Broker) PublishError(err error, socketId string) {
	b.PublishResponse(comm.TypeErrorResponse, comm.ErrorData{
		Code:    service.ErrorCode(err),
		Message: service.ClientMessage(err),
	}, socketId)
}

// PublishRoundFinalized announces a finalization to the round channel so
// sync layers can invalidate their local active-round caches.
func (b *Broker) PublishRoundFinalized(f comm.RoundFinalized) {
	b.PublishRoundEvent(comm.TypeRoundFinalized, f, f.RoundId)
}

// SubscribeSocketService consumes intents relayed by the socket service.
func (b *Broker) SubscribeSocketService(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// QueueSubscribeSocketService is the scale-out variant: instances in the
// same queue group split the intent stream.
func (b *Broker) QueueSubscribeSocketService(topic, queueGroup string) (*nats.Subscription, error) {
	sub, err := b.Conn.QueueSubscribe(topic, queueGroup, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// Publish sends a message for the socket service to consume.
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}
