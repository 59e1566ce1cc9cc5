package broker

import (
	"encoding/json"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/fairwaylink/golf-services/internal/comm"
)

type Broker struct {
	Conn           *nats.Conn
	GetConnection  func(string) (*websocket.Conn, bool)
	GetRoomSockets func(string) ([]string, bool)
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool), fncGetRoomSockets func(string) ([]string, bool)) *Broker {
	return &Broker{
		Conn:           conn,
		GetConnection:  fncGetConnection,
		GetRoomSockets: fncGetRoomSockets,
	}
}

// Subscribe consumes messages from the score service.
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// Publish relays a client intent to the score service.
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// handleMessages receives messages from the score service. Direct
// responses go to one socket; round events fan out to every socket joined
// to the round.
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	err := json.Unmarshal(msgNats.Data, &message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case comm.TypeLeaderboardData, comm.TypeHistoryData, comm.TypeJoinedRound, comm.TypeErrorResponse:
		b.SendToSocket(message)
	case comm.TypeScoreEntryEvent, comm.TypeDecisionEvent, comm.TypeBonusAwardEvent, comm.TypeRoundFinalized:
		b.broadcastToRound(message)
	default:
		log.Error("Unknown message")
		return
	}
}

// SendToSocket writes a message to one web client.
func (b *Broker) SendToSocket(m *comm.WSMessage) {
	socketId := m.SocketId
	if conn, ok := b.GetConnection(socketId); ok {
		if err := conn.WriteJSON(m); err != nil {
			log.Println(err)
		}
	}
}

// broadcastToRound fans a creation event out to the round room. No
// acknowledgment is expected from subscribers.
func (b *Broker) broadcastToRound(m *comm.WSMessage) {
	if m.RoundId == 0 {
		log.Warnf("round event %s without round id", m.Type)
		return
	}

	sockets, ok := b.GetRoomSockets(strconv.FormatInt(m.RoundId, 10))
	if !ok {
		return // nobody watching this round
	}

	for _, socketId := range sockets {
		if conn, ok := b.GetConnection(socketId); ok {
			if err := conn.WriteJSON(m); err != nil {
				log.Println(err)
			}
		}
	}
}
