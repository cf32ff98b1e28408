package realtime_test

import (
	"testing"
	"time"

	"careline/backend/internal/models"
	"careline/backend/internal/realtime"

	"github.com/stretchr/testify/assert"
)

func TestHub_RegisterUnregister(t *testing.T) {
	hub := realtime.NewHub(nil)
	go hub.Run()

	clientA := newMockClient("user_A", 1)

	hub.RegisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, hub.Clients, "user_A")

	hub.UnregisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, hub.Clients, "user_A")
	assert.True(t, clientA.isClosed())
}

func TestHub_ReconnectReplacesStaleConnection(t *testing.T) {
	hub := realtime.NewHub(nil)
	go hub.Run()

	stale := newMockClient("user_A", 1)
	fresh := newMockClient("user_A", 1)

	hub.RegisterCh <- stale
	hub.RegisterCh <- fresh
	time.Sleep(100 * time.Millisecond)

	assert.True(t, stale.isClosed())
	assert.False(t, fresh.isClosed())

	// Unregister старого з'єднання не повинен зачепити нове.
	hub.UnregisterCh <- stale
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, hub.Clients, "user_A")
}

func TestHub_RoutesEventByRecipient(t *testing.T) {
	hub := realtime.NewHub(nil)
	go hub.Run()

	clientA := newMockClient("user_A", 1)
	clientB := newMockClient("user_B", 1)
	hub.RegisterCh <- clientA
	hub.RegisterCh <- clientB
	time.Sleep(100 * time.Millisecond)

	hub.EventCh <- models.Event{
		Type:        models.EventMessageSent,
		RecipientID: "user_B",
	}
	time.Sleep(100 * time.Millisecond)

	select {
	case ev := <-clientB.RecvChannel:
		assert.Equal(t, models.EventMessageSent, ev.Type)
	default:
		t.Error("user_B did not receive event")
	}

	select {
	case <-clientA.RecvChannel:
		t.Error("user_A received event addressed to user_B")
	default:
	}
}

func TestHub_EventForOfflineRecipientIsDropped(t *testing.T) {
	hub := realtime.NewHub(nil)
	go hub.Run()

	hub.EventCh <- models.Event{Type: models.EventMessageSent, RecipientID: "nobody"}
	time.Sleep(100 * time.Millisecond)

	assert.Empty(t, hub.Clients)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := realtime.NewHub(nil)
	go hub.Run()

	// Буфер на одну подію; друга не влазить.
	slow := newMockClient("user_A", 1)
	hub.RegisterCh <- slow
	time.Sleep(100 * time.Millisecond)

	hub.EventCh <- models.Event{Type: models.EventMessageSent, RecipientID: "user_A"}
	hub.EventCh <- models.Event{Type: models.EventMessageSent, RecipientID: "user_A"}
	time.Sleep(100 * time.Millisecond)

	assert.NotContains(t, hub.Clients, "user_A")
	assert.True(t, slow.isClosed())
}
