package ports

import "context"

// EventPublisher sends a JSON-encoded payload to a message bus topic.
// Publish returns once the broker acknowledged the message.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}
