package websockets

import (
	"freshfold/internal/events"
	"freshfold/internal/models"
	"testing"
	"time"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMarkEventSeen(t *testing.T) {
	client := &Client{subscriptions: make(map[string]bool)}

	assert.True(t, client.markEventSeen("evt-1"))
	assert.False(t, client.markEventSeen("evt-1"))
	assert.True(t, client.markEventSeen("evt-2"))
}

func TestMarkEventSeenWindowEviction(t *testing.T) {
	client := &Client{subscriptions: make(map[string]bool)}

	assert.True(t, client.markEventSeen("first"))
	for i := 0; i < seenEventLimit; i++ {
		client.markEventSeen(uuid.New().String())
	}

	// "first" fell out of the window, so it reads as new again
	assert.True(t, client.markEventSeen("first"))
}

func TestClientShutdownIdempotent(t *testing.T) {
	client := &Client{
		subscriptions: make(map[string]bool),
		send:          make(chan Message, 1),
		done:          make(chan struct{}),
	}

	client.shutdown()
	client.shutdown()

	select {
	case <-client.done:
	default:
		t.Fatal("done channel should be closed after shutdown")
	}
}

func TestTrySendDropsAfterShutdown(t *testing.T) {
	client := &Client{
		subscriptions: make(map[string]bool),
		send:          make(chan Message, 2),
		done:          make(chan struct{}),
	}

	assert.True(t, client.trySend(Message{Type: MESSAGE_TYPE_PONG}))

	client.shutdown()

	assert.False(t, client.trySend(Message{Type: MESSAGE_TYPE_PONG}))
	assert.Len(t, client.send, 1)
}

// A delivery racing an unregister must drop the message rather than panic,
// even when the client's buffer is already full.
func TestDeliverDropsForDepartedClient(t *testing.T) {
	m := &Manager{
		log: logger.New("websocketsTest"),
		hub: &Hub{unregister: make(chan *Client, 1), clients: make(map[string]*Client)},
	}
	client := &Client{
		ID:            "slow-client",
		subscriptions: make(map[string]bool),
		send:          make(chan Message, 1),
		done:          make(chan struct{}),
	}

	client.send <- Message{Type: MESSAGE_TYPE_EVENT}
	client.shutdown()

	assert.False(t, m.deliver(client, Message{Type: MESSAGE_TYPE_EVENT}))
}

func TestSubscriptionTracking(t *testing.T) {
	client := &Client{subscriptions: make(map[string]bool)}

	assert.False(t, client.isSubscribed(RESOURCE_ORDERS))

	client.subMutex.Lock()
	client.subscriptions[RESOURCE_ORDERS] = true
	client.subMutex.Unlock()

	assert.True(t, client.isSubscribed(RESOURCE_ORDERS))
	assert.False(t, client.isSubscribed(RESOURCE_INBOX))
}

func TestCanSubscribeInbox(t *testing.T) {
	m := &Manager{}

	tests := []struct {
		role    models.Role
		allowed bool
	}{
		{models.RoleCustomer, false},
		{models.RoleStaff, true},
		{models.RoleAdmin, true},
	}

	for _, tt := range tests {
		client := &Client{Role: tt.role, subscriptions: make(map[string]bool)}
		allowed, err := m.canSubscribe(client, RESOURCE_INBOX)
		assert.NoError(t, err)
		assert.Equal(t, tt.allowed, allowed, "role %s", tt.role)
	}
}

func TestCanSubscribeStaffOrderResource(t *testing.T) {
	m := &Manager{}
	client := &Client{Role: models.RoleStaff, subscriptions: make(map[string]bool)}

	allowed, err := m.canSubscribe(client, RESOURCE_ORDER_PREFIX+uuid.New().String())
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanSubscribeRejectsMalformedOrderID(t *testing.T) {
	m := &Manager{}
	client := &Client{Role: models.RoleCustomer, subscriptions: make(map[string]bool)}

	allowed, err := m.canSubscribe(client, RESOURCE_ORDER_PREFIX+"not-a-uuid")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanSubscribeUnknownResource(t *testing.T) {
	m := &Manager{}
	client := &Client{Role: models.RoleAdmin, subscriptions: make(map[string]bool)}

	allowed, err := m.canSubscribe(client, "everything")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestEventMessageCarriesRequestID(t *testing.T) {
	requestID := uuid.New()
	event := events.Event{
		ID:        "evt-42",
		Type:      events.ORDER_UPDATED,
		RequestID: &requestID,
		Data:      map[string]any{"status": "in_progress"},
		Timestamp: time.Now(),
	}

	message := eventMessage(event)

	assert.Equal(t, "evt-42", message.ID)
	assert.Equal(t, MESSAGE_TYPE_EVENT, message.Type)
	assert.Equal(t, string(events.ORDER_UPDATED), message.Action)
	assert.Equal(t, requestID.String(), message.Data["requestId"])
	assert.Equal(t, "in_progress", message.Data["status"])
}
