package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocketURL(t *testing.T) {
	cases := []struct {
		base, path, want string
		wantErr          bool
	}{
		{base: "http://localhost:8000", path: "/ws/events", want: "ws://localhost:8000/ws/events"},
		{base: "https://drive.example.com/api/", path: "ws/events", want: "wss://drive.example.com/api/ws/events"},
		{base: "ws://host", path: "/events", want: "ws://host/events"},
		{base: "ftp://host", path: "/ws/events", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.base, func(t *testing.T) {
			got, err := websocketURL(tc.base, tc.path)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWebsocketRelayPublishesFilesChanged(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var authOK atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		authOK.Store(ok && user == "alice" && pass == "secret")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_ = conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"heartbeat"}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"files_changed"}`))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	bus := NewBusNotifier(testLogger)
	defer bus.Close()

	var signals atomic.Int32
	unsubscribe, err := bus.Subscribe(func() { signals.Add(1) })
	require.NoError(t, err)
	defer unsubscribe()

	relay, err := NewWebsocketRelay(srv.URL, "/ws/events", Credentials{Username: "alice", Password: "secret"}, bus, testLogger)
	require.NoError(t, err)
	relay.reconnectWait = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(done)
	}()

	// One resync on connect plus the files_changed frame.
	require.Eventually(t, func() bool { return signals.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, authOK.Load())

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop after cancel")
	}
}

func TestWebsocketRelayStopsWhileReconnecting(t *testing.T) {
	bus := NewBusNotifier(testLogger)
	defer bus.Close()

	relay, err := NewWebsocketRelay("http://127.0.0.1:1", "/ws/events", Credentials{}, bus, testLogger)
	require.NoError(t, err)
	relay.reconnectWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop after cancel")
	}
}
