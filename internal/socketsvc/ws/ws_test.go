package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomMembership(t *testing.T) {
	s := NewWs()

	s.StoreRoom("sock-a", "12")
	s.StoreRoom("sock-b", "12")
	s.StoreRoom("sock-c", "34")

	sockets, ok := s.GetRoomSockets("12")
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{"sock-a", "sock-b"}, sockets)

	_, ok = s.GetRoomSockets("99")
	assert.False(t, ok)
}

func TestJoiningAgainMovesSocket(t *testing.T) {
	s := NewWs()

	s.StoreRoom("sock-a", "12")
	s.StoreRoom("sock-a", "34")

	room, ok := s.GetRoom("sock-a")
	assert.True(t, ok)
	assert.Equal(t, "34", room)

	sockets, ok := s.GetRoomSockets("12")
	assert.False(t, ok)
	assert.Empty(t, sockets)
}

func TestHandleDisconnect(t *testing.T) {
	s := NewWs()

	s.StoreRoom("sock-a", "12")
	s.HandleDisconnect("sock-a")

	_, ok := s.GetRoom("sock-a")
	assert.False(t, ok)
	_, ok = s.GetConnection("sock-a")
	assert.False(t, ok)
}
