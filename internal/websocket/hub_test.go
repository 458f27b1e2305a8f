package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"mycloud-drive/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub
}

func connect(t *testing.T, hub *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, buffer)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.ClientCount(userID) > 0 }, time.Second, 5*time.Millisecond)
	return c
}

func TestNotifyReachesEverySocketOfTheUser(t *testing.T) {
	hub := startHub(t)
	alice, bob := uuid.New(), uuid.New()

	first := connect(t, hub, alice, 4)
	second := connect(t, hub, alice, 4)
	other := connect(t, hub, bob, 4)
	require.Equal(t, 2, hub.ClientCount(alice))

	hub.NotifyFilesChanged(alice)

	for _, c := range []*Client{first, second} {
		select {
		case msg := <-c.Send:
			assert.JSONEq(t, `{"type":"files_changed"}`, string(msg))
		default:
			t.Fatal("expected a frame")
		}
	}
	assert.Empty(t, other.Send)
}

func TestEachNotificationIsItsOwnMessage(t *testing.T) {
	hub := startHub(t)
	alice := uuid.New()
	c := connect(t, hub, alice, 4)

	hub.NotifyFilesChanged(alice)
	hub.NotifyFilesChanged(alice)

	require.Len(t, c.Send, 2)
	for i := 0; i < 2; i++ {
		var f frame
		require.NoError(t, json.Unmarshal(<-c.Send, &f))
		assert.Equal(t, eventFilesChanged, f.Type)
	}
}

func TestFullBufferDropsWithoutBlocking(t *testing.T) {
	hub := startHub(t)
	alice := uuid.New()
	c := connect(t, hub, alice, 1)

	done := make(chan struct{})
	go func() {
		hub.NotifyFilesChanged(alice)
		hub.NotifyFilesChanged(alice)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notify blocked on a full client")
	}
	assert.Len(t, c.Send, 1)
	assert.Equal(t, 1, hub.ClientCount(alice))
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	alice := uuid.New()
	c := connect(t, hub, alice, 1)

	hub.unregister <- c
	require.Eventually(t, func() bool { return hub.ClientCount(alice) == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)
}

func TestClusterMessages(t *testing.T) {
	hub := startHub(t)
	alice := uuid.New()
	c := connect(t, hub, alice, 4)
	msg := json.RawMessage(`{"type":"files_changed"}`)

	own, _ := json.Marshal(clusterMessage{Origin: hub.instanceID, TargetUserID: alice.String(), Message: msg})
	hub.handleClusterMessage(own)
	assert.Empty(t, c.Send, "own publications are already delivered locally")

	foreign, _ := json.Marshal(clusterMessage{Origin: "other-instance", TargetUserID: alice.String(), Message: msg})
	hub.handleClusterMessage(foreign)
	require.Len(t, c.Send, 1)
	assert.JSONEq(t, string(msg), string(<-c.Send))

	hub.handleClusterMessage([]byte("garbage"))
	badUser, _ := json.Marshal(clusterMessage{Origin: "other-instance", TargetUserID: "nope", Message: msg})
	hub.handleClusterMessage(badUser)
	assert.Empty(t, c.Send)
}

func TestRunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
}
