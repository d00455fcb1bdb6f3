package websockets

import (
	"freshfold/internal/models"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	STATUS_UNAUTHENTICATED = iota
	STATUS_AUTHENTICATED
	STATUS_CLOSED
)

// seenEventLimit bounds the per-client dedup window. Events past the window
// can in principle be delivered twice; consumers treat delivery as
// at-least-once regardless.
const seenEventLimit = 256

type Client struct {
	ID         string
	UserID     uuid.UUID
	Role       models.Role
	Connection *websocket.Conn
	Manager    *Manager
	Status     int

	subscriptions map[string]bool
	subMutex      sync.RWMutex

	seenEvents []string
	seenMutex  sync.Mutex

	send      chan Message
	done      chan struct{}
	closeOnce sync.Once
}

// shutdown signals every goroutine holding this client to stop. The send
// channel itself is never closed; senders select on done instead, so a late
// retry delivery cannot hit a closed channel.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// trySend queues a message unless the client is shutting down or its send
// buffer is full.
func (c *Client) trySend(message Message) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// markEventSeen records an event id and reports whether it was new. Duplicate
// deliveries happen when an event arrives both from the local publish path and
// the pub/sub listener.
func (c *Client) markEventSeen(eventID string) bool {
	c.seenMutex.Lock()
	defer c.seenMutex.Unlock()

	for _, seen := range c.seenEvents {
		if seen == eventID {
			return false
		}
	}

	c.seenEvents = append(c.seenEvents, eventID)
	if len(c.seenEvents) > seenEventLimit {
		c.seenEvents = c.seenEvents[len(c.seenEvents)-seenEventLimit:]
	}
	return true
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			client.shutdown()
			m.unregisterClient(client)
		}
	}
}

func (m *Manager) registerClient(client *Client) {
	log := m.log.Function("registerClient")

	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	m.hub.clients[client.ID] = client

	log.Info("Client registered", "clientID", client.ID, "status", client.Status)
}

func (m *Manager) unregisterClient(client *Client) {
	log := m.log.Function("unregisterClient")

	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	delete(m.hub.clients, client.ID)

	log.Info(
		"Client unregistered",
		"clientID", client.ID,
		"userID", client.UserID,
	)
}

// deliver pushes a message to one client, retrying briefly before dropping the
// connection of a consumer that cannot keep up.
func (m *Manager) deliver(client *Client, message Message) bool {
	log := m.log.Function("deliver")

	select {
	case client.send <- message:
		return true
	case <-client.done:
		return false
	default:
		go func(c *Client, msg Message) {
			select {
			case c.send <- msg:
				log.Info("Message sent after retry", "clientID", c.ID)
			case <-c.done:
			case <-time.After(5 * time.Second):
				_ = log.Error("Client too slow, disconnecting", "clientID", c.ID)
				m.hub.unregister <- c
			}
		}(client, message)
		return false
	}
}

// fanOut sends an event message to every authenticated client for which the
// filter returns true, deduplicating by event id per client.
func (m *Manager) fanOut(eventID string, message Message, filter func(*Client) bool) {
	log := m.log.Function("fanOut")

	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()

	sentCount := 0
	for _, client := range m.hub.clients {
		if client.Status != STATUS_AUTHENTICATED {
			continue
		}
		if !filter(client) {
			continue
		}
		if !client.markEventSeen(eventID) {
			continue
		}
		if m.deliver(client, message) {
			sentCount++
		}
	}

	if sentCount > 0 {
		log.Debug("Fan-out complete", "eventID", eventID, "sentTo", sentCount)
	}
}

func (m *Manager) SendMessageToUser(userID uuid.UUID, message Message) {
	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()

	for _, client := range m.hub.clients {
		if client.Status == STATUS_AUTHENTICATED && client.UserID == userID {
			m.deliver(client, message)
		}
	}
}
