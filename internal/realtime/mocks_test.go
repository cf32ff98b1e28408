package realtime_test

import (
	"sync"

	"careline/backend/internal/models"
)

type mockClient struct {
	UserID      string
	RecvChannel chan models.Event

	mu     sync.Mutex
	closed bool
}

func newMockClient(userID string, buffer int) *mockClient {
	return &mockClient{
		UserID:      userID,
		RecvChannel: make(chan models.Event, buffer),
	}
}

func (c *mockClient) GetUserID() string { return c.UserID }

func (c *mockClient) GetSendChannel() chan<- models.Event { return c.RecvChannel }

func (c *mockClient) Run() {}

func (c *mockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *mockClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
