package realtime

import "careline/backend/internal/models"

// Client is the interface for one subscribed connection. It abstracts the
// underlying transport so the hub can manage different client types
// uniformly.
type Client interface {
	// GetUserID returns the participant this connection is subscribed for.
	GetUserID() string

	// GetSendChannel returns the channel the hub delivers events through.
	// It is a send-only channel from the hub's side.
	GetSendChannel() chan<- models.Event

	// Run starts the client's pumps handling the underlying connection.
	Run()
	// Close gracefully shuts down the client and its channels.
	Close()
}
