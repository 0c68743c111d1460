package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubNotifiesOnlyRoomMembers(t *testing.T) {
	hub := NewHub(nil, 4)
	a1, a2, b := hub.Register(), hub.Register(), hub.Register()
	require.True(t, hub.Join(a1, "a@x.com"))
	require.True(t, hub.Join(a2, "a@x.com"))
	require.True(t, hub.Join(b, "b@x.com"))

	assert.Equal(t, 2, hub.Notify("a@x.com"))

	for _, c := range []*Client{a1, a2} {
		select {
		case ev := <-c.Events():
			assert.Equal(t, "task-updated-a@x.com", ev.Event)
		default:
			t.Fatalf("client %s missed the notification", c.ID)
		}
		assert.Empty(t, c.Events())
	}
	assert.Empty(t, b.Events())
}

func TestHubNotifyEmptyRoomIsDropped(t *testing.T) {
	hub := NewHub(nil, 1)
	assert.Equal(t, 0, hub.Notify("nobody@x.com"))
}

func TestHubJoinMovesClientAndLeaveCleansUp(t *testing.T) {
	hub := NewHub(nil, 1)
	c := hub.Register()
	hub.Join(c, "a@x.com")
	hub.Join(c, "b@x.com")
	assert.Equal(t, 0, hub.Members("a@x.com"))
	assert.Equal(t, 1, hub.Members("b@x.com"))

	hub.Leave(c)
	hub.Leave(c)
	assert.Equal(t, 0, hub.Members("b@x.com"))
	assert.False(t, hub.Join(c, "b@x.com"))
	assert.Equal(t, 0, hub.Notify("b@x.com"))
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil, 1)
	c := hub.Register()
	hub.Join(c, "a@x.com")

	assert.Equal(t, 1, hub.Notify("a@x.com"))
	assert.Equal(t, 0, hub.Notify("a@x.com"))
	assert.Len(t, c.Events(), 1)
}

func TestHubConcurrentAccess(t *testing.T) {
	hub := NewHub(nil, 64)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := hub.Register()
			hub.Join(c, "a@x.com")
			hub.Leave(c)
		}()
		go func() {
			defer wg.Done()
			hub.Notify("a@x.com")
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, hub.Members("a@x.com"))
}

func TestServeJoinAndReceive(t *testing.T) {
	hub := NewHub(nil, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		Serve(r.Context(), conn, hub, "a@x.com", nil)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	require.NoError(t, wsjson.Write(ctx, conn, ClientMessage{Type: MessageJoinRoom, Room: "b@x.com"}))
	var ev Event
	require.NoError(t, wsjson.Read(ctx, conn, &ev))
	assert.Equal(t, EventError, ev.Event)
	assert.Equal(t, 0, hub.Members("b@x.com"))

	require.NoError(t, wsjson.Write(ctx, conn, ClientMessage{Type: MessageJoinRoom, Room: "a@x.com"}))
	var joined Event
	require.NoError(t, wsjson.Read(ctx, conn, &joined))
	assert.Equal(t, Event{Event: EventJoined, Room: "a@x.com"}, joined)

	assert.Equal(t, 1, hub.Notify("a@x.com"))
	var updated Event
	require.NoError(t, wsjson.Read(ctx, conn, &updated))
	assert.Equal(t, TaskUpdatedEvent("a@x.com"), updated)
}
