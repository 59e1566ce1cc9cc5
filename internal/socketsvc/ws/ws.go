package ws

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/fairwaylink/golf-services/internal/comm"
	"github.com/fairwaylink/golf-services/internal/socketsvc/broker"
)

type Ws struct {
	connMap sync.Map // to keep track of socket connection with socketId
	roomMap sync.Map // to keep track of roundId (room) with socketId
	Broker  *broker.Broker
}

func NewWs() *Ws {
	return &Ws{}
}

// SocketMessage handles a message from a web client. Round-scoped intents
// relay to the score service; join-round is handled at the edge.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case comm.TypeJoinRound:
		s.handleJoinRound(socketId, message)
	case comm.TypeSubmitScore, comm.TypeRecordDecision, comm.TypeAwardBonus,
		comm.TypeGetLeaderboard, comm.TypeGetHistory:
		s.relayToScoreService(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

// handleJoinRound subscribes the socket to the round's realtime channel.
// A socket follows one round at a time; joining again moves it. The ack
// comes back from the score service with the tournament and course
// attached, so membership is stored here but never acknowledged here.
func (s *Ws) handleJoinRound(socketId string, msg *comm.WSMessage) {
	var payload comm.JoinRound
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: invalid join-round payload %s", err)
		return
	}

	if payload.RoundId == 0 {
		log.Error("Invalid join-round payload: missing round id")
		return
	}

	s.StoreRoom(socketId, strconv.FormatInt(payload.RoundId, 10))
	log.Infof("socket %s joined round %d", socketId, payload.RoundId)

	s.relayToScoreService(socketId, msg)
}

// relayToScoreService stamps the socket id and forwards the intent over
// NATS. The score service replies on the outbound topic.
func (s *Ws) relayToScoreService(socketId string, msg *comm.WSMessage) {
	msg.SocketId = socketId

	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage for NATS: %v", err)
		return
	}

	topic := "score.service"
	if err := s.Broker.Publish(topic, bytes); err != nil {
		log.Errorf("Failed to publish to NATS topic %s: %v", topic, err)
		return
	}

	log.Debugf("relayed %s from socket %s to topic %s", msg.Type, socketId, topic)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) StoreRoom(socketId string, roundId string) {
	s.roomMap.Store(socketId, roundId)
}

func (s *Ws) GetRoom(socketId string) (string, bool) {
	room, ok := s.roomMap.Load(socketId)
	if !ok {
		return "", false
	}
	return room.(string), true
}

// GetRoomSockets lists every socket joined to a round.
func (s *Ws) GetRoomSockets(roundId string) ([]string, bool) {
	var sockets []string
	found := false

	s.roomMap.Range(func(key, value interface{}) bool {
		if value.(string) == roundId {
			sockets = append(sockets, key.(string))
			found = true
		}
		return true // continue iterating
	})

	return sockets, found
}

// HandleDisconnect drops the socket from both maps once its read loop
// ends.
func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.roomMap.Delete(socketId)
}
