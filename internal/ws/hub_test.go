package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"listings-console/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)

	h := NewHandler(hub, nil, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_PublishReachesClients(t *testing.T) {
	hub, srv := startHub(t)
	a, b := dial(t, srv), dial(t, srv)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(usecase.Event{
		Type: usecase.EventListingStatusChanged,
		Data: usecase.ListingStatusChanged{ID: 7},
	})

	for _, conn := range []*websocket.Conn{a, b} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)

		var got struct {
			Type string         `json:"type"`
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "listing_status_changed", got.Type)
		assert.EqualValues(t, 7, got.Data["id"])
	}
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	_ = conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RegisterAfterStopClosesClient(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()
	select {
	case <-hub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	for i := 0; i < 50; i++ {
		client := &Client{hub: hub, send: make(chan []byte, 1)}
		hub.Register(client)
		select {
		case _, open := <-client.send:
			require.False(t, open)
		default:
			t.Fatal("late client was queued instead of closed")
		}
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_NilIsSafe(t *testing.T) {
	var hub *Hub
	hub.Publish(usecase.Event{Type: usecase.EventTagsChanged})
	hub.Broadcast([]byte("x"))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHandler_CheckOrigin(t *testing.T) {
	h := NewHandler(NewHub(nil), []string{"http://console.local"}, nil)
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)

	req.Header.Set("Origin", "http://console.local")
	assert.True(t, h.upgrader.CheckOrigin(req))
	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, h.upgrader.CheckOrigin(req))
}
