package realtime

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"
)

// MessageJoinRoom is the only message a client sends.
const MessageJoinRoom = "join-room"

// ClientMessage is a client to server frame.
type ClientMessage struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

const writeTimeout = 5 * time.Second

// Serve pumps one authenticated WebSocket connection until it closes.
// The connection may only join the room named after its own identity.
func Serve(ctx context.Context, conn *websocket.Conn, hub *Hub, identity string, logger *logrus.Logger) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := hub.Register()
	defer hub.Leave(client)

	readErr := make(chan error, 1)
	go func() {
		for {
			var msg ClientMessage
			if err := wsjson.Read(ctx, conn, &msg); err != nil {
				readErr <- err
				return
			}
			if reply := handleMessage(hub, client, identity, msg); reply != nil {
				if err := write(ctx, conn, *reply); err != nil {
					readErr <- err
					return
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case err := <-readErr:
			if logger != nil && websocket.CloseStatus(err) == -1 {
				logger.WithError(err).WithField("client_id", client.ID).Debug("websocket read ended")
			}
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case ev := <-client.Events():
			if err := write(ctx, conn, ev); err != nil {
				_ = conn.Close(websocket.StatusNormalClosure, "write_failed")
				return
			}
		}
	}
}

func handleMessage(hub *Hub, client *Client, identity string, msg ClientMessage) *Event {
	switch msg.Type {
	case MessageJoinRoom:
		if msg.Room == "" || msg.Room != identity {
			return &Event{Event: EventError, Message: "cannot join another user's room"}
		}
		hub.Join(client, msg.Room)
		return &Event{Event: EventJoined, Room: msg.Room}
	default:
		return &Event{Event: EventError, Message: "unknown message type"}
	}
}

func write(ctx context.Context, conn *websocket.Conn, ev Event) error {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(wctx, conn, ev)
}
