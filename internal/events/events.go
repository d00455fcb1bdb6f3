package events

import (
	"context"
	"encoding/json"
	"freshfold/config"
	"freshfold/internal/timeline"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

type Channel string

func (c Channel) String() string {
	return string(c)
}

const (
	ORDERS_CHANNEL   Channel = "orders"
	MESSAGES_CHANNEL Channel = "messages"
)

type EventType string

const (
	ORDER_CREATED   EventType = "order.created"
	ORDER_UPDATED   EventType = "order.updated"
	HISTORY_CREATED EventType = "history.created"
	MESSAGE_CREATED EventType = "message.created"
)

// Event is a row-change notification fanned out over valkey pub/sub so every
// server instance can forward it to its connected websocket clients. There is
// no delivery guarantee and no replay; clients re-fetch on reconnect.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Channel   Channel        `json:"channel"`
	RequestID *uuid.UUID     `json:"requestId,omitempty"`
	UserID    *uuid.UUID     `json:"userId,omitempty"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

type EventHandler func(event Event) error

// EVENT_DEDUP_WINDOW bounds the per-bus memory of recently handled event ids.
const EVENT_DEDUP_WINDOW = 512

// eventRef adapts an event id to the timeline's Entry interface.
type eventRef struct {
	id uuid.UUID
}

func (r eventRef) EntryID() uuid.UUID { return r.id }

type EventBus struct {
	client   valkey.Client
	logger   logger.Logger
	config   config.Config
	handlers map[Channel][]EventHandler
	handled  *timeline.Timeline[eventRef]
	mutex    sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(client valkey.Client, config config.Config) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	return &EventBus{
		client:   client,
		logger:   logger.New("EventBus"),
		config:   config,
		handlers: make(map[Channel][]EventHandler),
		handled:  timeline.NewWindow[eventRef](EVENT_DEDUP_WINDOW),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// markHandled records an event id and reports whether it was seen before.
// A publish on this instance notifies local handlers directly and is then
// redelivered by the valkey subscription; the second arrival must be dropped.
func (eb *EventBus) markHandled(eventID string) (firstDelivery bool) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		// Not one of ours; deliver rather than silently drop.
		return true
	}

	return eb.handled.Append(eventRef{id: id})
}

func (eb *EventBus) Publish(channel Channel, event Event) error {
	log := eb.logger.Function("Publish")

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Channel == "" {
		event.Channel = channel
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "eventID", event.ID)
	}

	ctx, cancel := context.WithTimeout(eb.ctx, 5*time.Second)
	defer cancel()

	err = eb.client.Do(ctx, eb.client.B().Publish().Channel(channel.String()).Message(string(eventData)).Build()).
		Error()
	if err != nil {
		return log.Err(
			"failed to publish event to valkey",
			err,
			"channel", channel,
			"eventID", event.ID,
		)
	}

	log.Debug("Event published", "channel", channel, "eventID", event.ID, "eventType", event.Type)

	// Notify local handlers immediately; the pub/sub loopback copy is
	// deduplicated by id when it arrives.
	if eb.markHandled(event.ID) {
		eb.notifyLocalHandlers(channel, event)
	}

	return nil
}

func (eb *EventBus) Subscribe(channel Channel, handler EventHandler) error {
	log := eb.logger.Function("Subscribe")

	eb.mutex.Lock()
	eb.handlers[channel] = append(eb.handlers[channel], handler)
	eb.mutex.Unlock()

	log.Info("Handler subscribed to channel", "channel", channel)

	go eb.listenToChannel(channel)

	return nil
}

func (eb *EventBus) notifyLocalHandlers(channel Channel, event Event) {
	log := eb.logger.Function("notifyLocalHandlers")

	eb.mutex.RLock()
	handlers, exists := eb.handlers[channel]
	eb.mutex.RUnlock()

	if !exists || len(handlers) == 0 {
		return
	}

	for i, handler := range handlers {
		go func(h EventHandler, handlerIndex int) {
			if err := h(event); err != nil {
				log.Er(
					"handler failed",
					err,
					"channel", channel,
					"eventID", event.ID,
					"handlerIndex", handlerIndex,
				)
			}
		}(handler, i)
	}
}

func (eb *EventBus) listenToChannel(channel Channel) {
	log := eb.logger.Function("listenToChannel")

	ctx, cancel := context.WithCancel(eb.ctx)
	defer cancel()

	log.Info("Starting to listen to channel", "channel", channel)

	err := eb.client.Receive(
		ctx,
		eb.client.B().Subscribe().Channel(channel.String()).Build(),
		func(msg valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to unmarshal event", err, "channel", channel, "message", msg.Message)
				return
			}

			if !eb.markHandled(event.ID) {
				log.Debug("Dropping already handled event", "channel", channel, "eventID", event.ID)
				return
			}

			eb.notifyLocalHandlers(channel, event)
		},
	)
	if err != nil {
		log.Er("failed to listen to channel", err, "channel", channel)
	}
}

func (eb *EventBus) Close() error {
	log := eb.logger.Function("Close")

	eb.cancel()

	log.Info("EventBus closed")
	return nil
}

// PublishOrderEvent notifies viewers of an order row change. The owning user
// id rides along so the fan-out can reach the customer's views as well as the
// staff list views.
func (eb *EventBus) PublishOrderEvent(
	eventType EventType,
	requestID uuid.UUID,
	userID uuid.UUID,
	data map[string]any,
) error {
	return eb.Publish(ORDERS_CHANNEL, Event{
		Type:      eventType,
		RequestID: &requestID,
		UserID:    &userID,
		Data:      data,
	})
}

// PublishMessageCreated notifies conversation viewers of a new message row.
func (eb *EventBus) PublishMessageCreated(
	requestID uuid.UUID,
	userID uuid.UUID,
	data map[string]any,
) error {
	return eb.Publish(MESSAGES_CHANNEL, Event{
		Type:      MESSAGE_CREATED,
		RequestID: &requestID,
		UserID:    &userID,
		Data:      data,
	})
}
