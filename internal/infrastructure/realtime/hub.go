package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Event is a server to client message. Task notifications carry only the event name;
// clients are expected to re-fetch.
type Event struct {
	Event   string `json:"event"`
	Room    string `json:"room,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	EventJoined = "joined"
	EventError  = "error"
)

// TaskUpdatedEvent is the signal sent to a room after any task mutation of its owner.
func TaskUpdatedEvent(room string) Event {
	return Event{Event: "task-updated-" + room}
}

// Client is one live connection registered with the hub.
type Client struct {
	ID   string
	send chan Event
	done chan struct{}
	once sync.Once
	room string // guarded by Hub.mu
}

// Events yields the notifications queued for this client.
func (c *Client) Events() <-chan Event { return c.send }

// Done is closed once the client has left the hub.
func (c *Client) Done() <-chan struct{} { return c.done }

// Hub groups live connections into rooms keyed by user email.
// Notify is best-effort: a slow client whose buffer is full misses the signal.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	clients map[*Client]struct{}
	buffer  int
	logger  *logrus.Logger
}

func NewHub(logger *logrus.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		rooms:   make(map[string]map[*Client]struct{}),
		clients: make(map[*Client]struct{}),
		buffer:  buffer,
		logger:  logger,
	}
}

// Register adds a connection that has not joined any room yet.
func (h *Hub) Register() *Client {
	c := &Client{
		ID:   uuid.NewString(),
		send: make(chan Event, h.buffer),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

// Join places c in room, moving it out of any room it joined before.
func (h *Hub) Join(c *Client, room string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	h.removeFromRoomLocked(c)
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.room = room
	if h.logger != nil {
		h.logger.WithFields(logrus.Fields{"client_id": c.ID, "room": room}).Debug("client joined room")
	}
	return true
}

// Leave unregisters c and drops its room membership. Safe to call more than once.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	h.removeFromRoomLocked(c)
	delete(h.clients, c)
	h.mu.Unlock()
	c.once.Do(func() { close(c.done) })
}

// Notify sends the task-updated signal to every member of room and returns
// how many clients accepted it. Membership is snapshotted at call time.
func (h *Hub) Notify(room string) int {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	ev := TaskUpdatedEvent(room)
	delivered := 0
	for _, c := range members {
		select {
		case <-c.done:
		case c.send <- ev:
			delivered++
		default:
			if h.logger != nil {
				h.logger.WithFields(logrus.Fields{"client_id": c.ID, "room": room}).Warn("client buffer full, notification dropped")
			}
		}
	}
	return delivered
}

// Members reports how many connections are in room.
func (h *Hub) Members(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) removeFromRoomLocked(c *Client) {
	if c.room == "" {
		return
	}
	if members, ok := h.rooms[c.room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, c.room)
		}
	}
	c.room = ""
}
