// Package realtime relays committed-row events to connected clients. The hub
// observes the shared redis channel that storage publishes into after each
// commit; it holds no state of its own beyond who is connected, so any
// horizontally replicated instance serves its own websocket population.
package realtime

import (
	"encoding/json"

	"careline/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EventSource is the subscription half of the storage service.
type EventSource interface {
	SubscribeEvents() *redis.PubSub
}

// Hub routes events to clients keyed by participant id. A single goroutine
// owns the Clients map; all mutation goes through the channels.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	// EventCh carries decoded events from the redis listener into the run
	// loop.
	EventCh chan models.Event

	Source EventSource
}

// NewHub creates a hub over the given event source.
func NewHub(src EventSource) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		EventCh:      make(chan models.Event),
		Source:       src,
	}
}

// Run is the hub's main dispatcher. It must run in its own goroutine.
func (h *Hub) Run() {
	h.startEventListener()

	for {
		select {
		case client := <-h.RegisterCh:
			// A reconnect replaces the stale connection for that user.
			if old, ok := h.Clients[client.GetUserID()]; ok {
				old.Close()
			}
			h.Clients[client.GetUserID()] = client
			log.Debug().Str("user_id", client.GetUserID()).Msg("realtime client registered")

		case client := <-h.UnregisterCh:
			if current, ok := h.Clients[client.GetUserID()]; ok && current == client {
				delete(h.Clients, client.GetUserID())
				client.Close()
			}

		case ev := <-h.EventCh:
			client, ok := h.Clients[ev.RecipientID]
			if !ok {
				continue
			}
			select {
			case client.GetSendChannel() <- ev:
			default:
				// Slow consumer: drop the connection rather than the hub.
				delete(h.Clients, ev.RecipientID)
				client.Close()
				log.Warn().Str("user_id", ev.RecipientID).Msg("dropped slow realtime client")
			}
		}
	}
}

// startEventListener subscribes to the shared redis channel and feeds
// decoded events into the run loop.
func (h *Hub) startEventListener() {
	if h.Source == nil {
		return
	}

	go func() {
		pubsub := h.Source.SubscribeEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Error().Err(err).Msg("failed to decode realtime event")
				continue
			}
			h.EventCh <- ev
		}
	}()
}
