package storage

import (
	"encoding/json"
	"time"

	"careline/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// EventsChannel is the redis pub/sub channel committed-row events go through.
// Every API server instance subscribes and relays to its own websocket
// clients, so fan-out works across horizontally replicated instances.
const EventsChannel = "realtime:events"

// PublishEvent publishes a committed-row event for one participant. Callers
// invoke it only after the producing transaction has committed. A nil redis
// client (offline tooling) makes this a no-op.
func (s *Service) PublishEvent(ev models.Event) error {
	if s.Redis == nil {
		return nil
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return s.Redis.Publish(s.Ctx, EventsChannel, payload).Err()
}

// SubscribeEvents subscribes to the shared event channel. The realtime hub
// owns the returned subscription.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, EventsChannel)
}
