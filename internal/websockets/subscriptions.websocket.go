package websockets

import (
	"context"
	"freshfold/internal/authz"
	"freshfold/internal/events"
	"freshfold/internal/models"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RESOURCE_ORDERS       = "orders"
	RESOURCE_INBOX        = "inbox"
	RESOURCE_ORDER_PREFIX = "order:"
)

func (c *Client) handleSubscribe(message Message) {
	log := c.Manager.log.Function("handleSubscribe")

	resource, ok := message.Data["resource"].(string)
	if !ok || resource == "" {
		c.sendError("subscribe requires a resource")
		return
	}

	allowed, err := c.Manager.canSubscribe(c, resource)
	if err != nil {
		log.Er("subscription check failed", err, "clientID", c.ID, "resource", resource)
		c.sendError("subscription check failed")
		return
	}
	if !allowed {
		log.Warn("Subscription denied", "clientID", c.ID, "resource", resource, "role", c.Role)
		c.sendError("not allowed to subscribe to " + resource)
		return
	}

	c.subMutex.Lock()
	c.subscriptions[resource] = true
	c.subMutex.Unlock()

	log.Info("Client subscribed", "clientID", c.ID, "resource", resource)

	c.trySend(Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_SUBSCRIBED,
		Resource:  resource,
		Timestamp: time.Now(),
	})
}

func (c *Client) handleUnsubscribe(message Message) {
	resource, ok := message.Data["resource"].(string)
	if !ok || resource == "" {
		c.sendError("unsubscribe requires a resource")
		return
	}

	c.subMutex.Lock()
	delete(c.subscriptions, resource)
	c.subMutex.Unlock()

	c.trySend(Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_UNSUBSCRIBED,
		Resource:  resource,
		Timestamp: time.Now(),
	})
}

func (c *Client) isSubscribed(resource string) bool {
	c.subMutex.RLock()
	defer c.subMutex.RUnlock()
	return c.subscriptions[resource]
}

func (c *Client) sendError(reason string) {
	c.trySend(Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_ERROR,
		Data:      map[string]any{"reason": reason},
		Timestamp: time.Now(),
	})
}

// canSubscribe applies the authorization policy to a subscription target.
// Customers may follow the shared list resources but only their own order
// conversations; staff and admins may follow any order.
func (m *Manager) canSubscribe(c *Client, resource string) (bool, error) {
	switch {
	case resource == RESOURCE_ORDERS:
		return true, nil

	case resource == RESOURCE_INBOX:
		return authz.Allows(c.Role, authz.ResourceAdminMessages), nil

	case strings.HasPrefix(resource, RESOURCE_ORDER_PREFIX):
		requestID, err := uuid.Parse(strings.TrimPrefix(resource, RESOURCE_ORDER_PREFIX))
		if err != nil {
			return false, nil
		}
		if c.Role.IsStaff() {
			return true, nil
		}
		return m.ownsRequest(c.UserID, requestID)

	default:
		return false, nil
	}
}

func (m *Manager) ownsRequest(userID, requestID uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int64
	err := m.db.SQL.WithContext(ctx).
		Model(&models.CleaningRequest{}).
		Where("id = ? AND user_id = ?", requestID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *Manager) subscribeToOrderEvents() {
	log := m.log.Function("subscribeToOrderEvents")
	log.Info("Starting order events subscription")

	err := m.eventBus.Subscribe(events.ORDERS_CHANNEL, func(event events.Event) error {
		message := eventMessage(event)

		m.fanOut(event.ID, message, func(c *Client) bool {
			if event.RequestID != nil &&
				c.isSubscribed(RESOURCE_ORDER_PREFIX+event.RequestID.String()) {
				return true
			}
			if !c.isSubscribed(RESOURCE_ORDERS) {
				return false
			}
			if c.Role.IsStaff() {
				return true
			}
			return event.UserID != nil && *event.UserID == c.UserID
		})
		return nil
	})
	if err != nil {
		log.Er("Failed to subscribe to order events", err)
	}
}

func (m *Manager) subscribeToMessageEvents() {
	log := m.log.Function("subscribeToMessageEvents")
	log.Info("Starting message events subscription")

	err := m.eventBus.Subscribe(events.MESSAGES_CHANNEL, func(event events.Event) error {
		message := eventMessage(event)

		m.fanOut(event.ID, message, func(c *Client) bool {
			if event.RequestID != nil &&
				c.isSubscribed(RESOURCE_ORDER_PREFIX+event.RequestID.String()) {
				return true
			}
			return c.isSubscribed(RESOURCE_INBOX) &&
				authz.Allows(c.Role, authz.ResourceAdminMessages)
		})
		return nil
	})
	if err != nil {
		log.Er("Failed to subscribe to message events", err)
	}
}

func eventMessage(event events.Event) Message {
	data := event.Data
	if data == nil {
		data = map[string]any{}
	}
	if event.RequestID != nil {
		data["requestId"] = event.RequestID.String()
	}

	return Message{
		ID:        event.ID,
		Type:      MESSAGE_TYPE_EVENT,
		Action:    string(event.Type),
		Data:      data,
		Timestamp: event.Timestamp,
	}
}
