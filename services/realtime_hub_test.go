package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// Broadcasts and keepalive pings can fire at the same time; both must go
// through the client's serialized writer.
func TestBroadcastAndPingsShareOneWriter(t *testing.T) {
	hub := NewRealtimeHub()
	upgrader := websocket.Upgrader{}
	registered := make(chan *WSClient, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cl := &WSClient{UserID: 1, Conn: conn}
		hub.Register(cl)
		registered <- cl
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	cl := <-registered

	const writers, perWriter = 4, 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Broadcast(1, map[string]any{"kind": "alert.created"})
				_ = cl.Send(websocket.PingMessage, nil)
			}
		}()
	}

	// Pings are absorbed by the default handler, so only the broadcast
	// frames surface here.
	deadline := time.Now().Add(5 * time.Second)
	for got := 0; got < writers*perWriter; got++ {
		require.NoError(t, conn.SetReadDeadline(deadline))
		_, _, err := conn.ReadMessage()
		require.NoError(t, err)
	}
	wg.Wait()
	hub.Unregister(cl)
}
