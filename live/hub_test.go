package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()
	go h.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-h.Done()
	})
	return h
}

func dialAdmin(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := &Client{Hub: h, Conn: conn, Send: make(chan []byte, 16), Room: AdminRoom}
		h.Register <- client
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRegistrationsChangedReachesAdminClients(t *testing.T) {
	h := startHub(t)
	conn := dialAdmin(t, h)
	require.Eventually(t, func() bool { return h.ClientCount(AdminRoom) == 1 }, time.Second, 5*time.Millisecond)

	h.RegistrationsChanged("deleted", "reg-1")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string        `json:"type"`
		Payload ChangePayload `json:"payload"`
		RoomID  string        `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, EventRegistrationsChanged, msg.Type)
	assert.Equal(t, ChangePayload{Action: "deleted", RegistrationID: "reg-1"}, msg.Payload)
	assert.Equal(t, AdminRoom, msg.RoomID)
}

func TestClientLeavesRoomOnDisconnect(t *testing.T) {
	h := startHub(t)
	conn := dialAdmin(t, h)
	require.Eventually(t, func() bool { return h.ClientCount(AdminRoom) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return h.ClientCount(AdminRoom) == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestBroadcastToEmptyRoomIsNoop(t *testing.T) {
	h := startHub(t)
	assert.NotPanics(t, func() { h.RegistrationsChanged("status_updated", "x") })
}
