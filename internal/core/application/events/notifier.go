package events

import (
	"context"
	"log/slog"

	"delivery-service/internal/core/ports"
	"delivery-service/internal/metrics"
)

// Notifier publishes delivery events. Publishing happens after the state change
// was committed; a failed publish is logged and counted but never reported to
// the caller, so it cannot undo the write.
type Notifier struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewNotifier(publisher ports.EventPublisher, logger *slog.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		logger:    logger.With("component", "notifier"),
	}
}

// DeliveryCompleted announces that the order reached the client.
func (n *Notifier) DeliveryCompleted(ctx context.Context, orderID int64) {
	n.publish(ctx, TopicOrderStatusUpdate, StatusChanged{OrderID: orderID, Status: "delivered"})
}

// CancelOutcome announces the result of a cancellation. A non-empty
// responseTopic receives a CancelResponse instead of the default topic.
func (n *Notifier) CancelOutcome(ctx context.Context, orderID int64, outcome CancelOutcome, responseTopic string) {
	if responseTopic != "" {
		n.publish(ctx, responseTopic, CancelResponse{
			OrderID: orderID,
			Status:  outcome.ResponseStatus(),
			Event:   outcome.Topic(),
		})
		return
	}
	n.publish(ctx, outcome.Topic(), OrderRef{OrderID: orderID})
}

func (n *Notifier) DeliveryNotFound(ctx context.Context, orderID int64) {
	n.publish(ctx, TopicDeliveryNotFound, OrderRef{OrderID: orderID})
}

func (n *Notifier) UpdateRejected(ctx context.Context, orderID int64, requested, current string) {
	n.publish(ctx, TopicUpdateRejected, UpdateRejected{
		OrderID:       orderID,
		Status:        requested,
		CurrentStatus: current,
	})
}

// RequestKeyRefresh asks the auth service to broadcast its key again.
func (n *Notifier) RequestKeyRefresh(ctx context.Context) {
	n.publish(ctx, TopicClientRefreshPubKey, RefreshKeysRequest{Action: "refresh_keys"})
}

func (n *Notifier) publish(ctx context.Context, topic string, payload any) {
	err := n.publisher.Publish(ctx, topic, payload)
	metrics.RecordPublish(topic, err)
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to publish event", "topic", topic, "error", err)
		return
	}
	n.logger.DebugContext(ctx, "event published", "topic", topic)
}
