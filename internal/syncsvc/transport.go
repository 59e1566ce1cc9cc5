package syncsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/fairwaylink/golf-services/internal/comm"
)

// SocketTransport delivers intents over the socket service's websocket.
// A write failure means the link is down, so every send error is
// transient; domain rejections come back asynchronously as error-response
// messages on the read side.
type SocketTransport struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewSocketTransport() *SocketTransport {
	return &SocketTransport{}
}

// SetConn swaps in a fresh connection after a reconnect. A nil conn marks
// the link down.
func (t *SocketTransport) SetConn(conn *websocket.Conn) {
	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()
}

func (t *SocketTransport) SubmitScore(ctx context.Context, sub comm.ScoreSubmit) error {
	return t.send(comm.TypeSubmitScore, sub)
}

func (t *SocketTransport) RecordDecision(ctx context.Context, sub comm.DecisionSubmit) error {
	return t.send(comm.TypeRecordDecision, sub)
}

func (t *SocketTransport) AwardBonus(ctx context.Context, sub comm.AwardSubmit) error {
	return t.send(comm.TypeAwardBonus, sub)
}

// JoinRound subscribes the socket to a round's realtime channel.
func (t *SocketTransport) JoinRound(roundID, userID int64) error {
	return t.send(comm.TypeJoinRound, comm.JoinRound{RoundId: roundID, UserId: userID})
}

func (t *SocketTransport) send(msgType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", msgType, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return fmt.Errorf("%w: socket not connected", ErrTransient)
	}
	if err := t.conn.WriteJSON(comm.WSMessage{Type: msgType, Data: data}); err != nil {
		return errors.Join(ErrTransient, err)
	}
	return nil
}
