package nsq

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/metrics"
	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/tracing"

	gonsq "github.com/nsqio/go-nsq"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TopicCreate       = "delivery.create"
	TopicUpdateStatus = "delivery.update_status"
	TopicStart        = "delivery.start"
	TopicCancel       = "delivery.cancel"
	TopicPublicKey    = "public_key"
)

type (
	CreateHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDeliveryCommand) (*delivery.Delivery, error)
	}

	ChangeStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeDeliveryStatusCommand) (commands.StatusChange, error)
	}

	CancelHandler interface {
		Handle(ctx context.Context, cmd commands.CancelDeliveryCommand) (commands.CancelResult, error)
	}

	PublicKeyRefresher interface {
		Handle(ctx context.Context, cmd commands.RefreshPublicKeyCommand) error
	}

	// RejectionNotifier reports status updates that could not be applied.
	RejectionNotifier interface {
		DeliveryNotFound(ctx context.Context, orderID int64)
		UpdateRejected(ctx context.Context, orderID int64, requested, current string)
	}
)

// Handlers turns bus messages into commands.
//
// Ack policy: a nil return finishes the message, an error requeues it. Bad
// payloads and business rejections are finished after logging; only
// infrastructure failures are requeued.
type Handlers struct {
	create    CreateHandler
	status    ChangeStatusHandler
	cancel    CancelHandler
	refresher PublicKeyRefresher
	notifier  RejectionNotifier
	logger    *slog.Logger
}

func NewHandlers(
	create CreateHandler,
	status ChangeStatusHandler,
	cancel CancelHandler,
	refresher PublicKeyRefresher,
	notifier RejectionNotifier,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		create:    create,
		status:    status,
		cancel:    cancel,
		refresher: refresher,
		notifier:  notifier,
		logger:    logger.With("component", "nsq_handlers"),
	}
}

func (h *Handlers) HandleCreate(m *gonsq.Message) error {
	var msg createDeliveryMessage
	ctx, done, ok := h.begin(TopicCreate, m, &msg)
	if !ok {
		return nil
	}
	defer done()

	addr, err := delivery.NewAddress(msg.City, msg.Street, msg.Zip)
	if err != nil {
		return h.invalid(ctx, TopicCreate, err)
	}
	cmd, err := commands.NewCreateDeliveryCommand(msg.OrderID, msg.ClientID, addr)
	if err != nil {
		return h.invalid(ctx, TopicCreate, err)
	}

	_, err = h.create.Handle(ctx, cmd)
	switch {
	case err == nil:
		h.logger.InfoContext(ctx, "Delivery created", "order_id", msg.OrderID)
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		h.logger.InfoContext(ctx, "Delivery already exists, ignoring duplicate", "order_id", msg.OrderID)
	default:
		return h.requeue(ctx, TopicCreate, err)
	}

	metrics.RecordConsumed(TopicCreate, "ok")
	return nil
}

func (h *Handlers) HandleUpdateStatus(m *gonsq.Message) error {
	var msg updateStatusMessage
	ctx, done, ok := h.begin(TopicUpdateStatus, m, &msg)
	if !ok {
		return nil
	}
	defer done()

	return h.changeStatus(ctx, TopicUpdateStatus, msg.OrderID, delivery.Status(msg.Status))
}

func (h *Handlers) HandleStart(m *gonsq.Message) error {
	var msg orderMessage
	ctx, done, ok := h.begin(TopicStart, m, &msg)
	if !ok {
		return nil
	}
	defer done()

	return h.changeStatus(ctx, TopicStart, msg.OrderID, delivery.Packaged)
}

func (h *Handlers) changeStatus(ctx context.Context, topic string, orderID int64, status delivery.Status) error {
	cmd, err := commands.NewChangeDeliveryStatusCommand(orderID, status)
	if err != nil {
		return h.invalid(ctx, topic, err)
	}

	change, err := h.status.Handle(ctx, cmd)
	switch {
	case err == nil:
		h.logger.InfoContext(ctx, "Delivery status updated",
			"order_id", orderID, "from", change.Previous, "to", change.Current, "changed", change.Changed)
	case errors.Is(err, errs.ErrObjectNotFound):
		h.logger.WarnContext(ctx, "Status update for unknown delivery", "order_id", orderID)
		h.notifier.DeliveryNotFound(ctx, orderID)
	case errors.Is(err, errs.ErrInvalidTransition):
		h.logger.WarnContext(ctx, "Status update rejected", "order_id", orderID, "error", err)
		h.notifier.UpdateRejected(ctx, orderID, status.String(), change.Current.String())
	default:
		return h.requeue(ctx, topic, err)
	}

	metrics.RecordConsumed(topic, "ok")
	return nil
}

func (h *Handlers) HandleCancel(m *gonsq.Message) error {
	var msg cancelDeliveryMessage
	ctx, done, ok := h.begin(TopicCancel, m, &msg)
	if !ok {
		return nil
	}
	defer done()

	cmd, err := commands.NewCancelDeliveryCommand(msg.OrderID, msg.ResponseTopic)
	if err != nil {
		return h.invalid(ctx, TopicCancel, err)
	}

	result, err := h.cancel.Handle(ctx, cmd)
	if err != nil {
		return h.requeue(ctx, TopicCancel, err)
	}

	h.logger.InfoContext(ctx, "Cancellation handled",
		"order_id", msg.OrderID, "outcome", result.Outcome.Topic(), "changed", result.Changed)
	metrics.RecordConsumed(TopicCancel, "ok")
	return nil
}

// HandlePublicKey never requeues: the next announcement triggers a new fetch
// and the cached key stays valid meanwhile.
func (h *Handlers) HandlePublicKey(m *gonsq.Message) error {
	var msg publicKeyMessage
	ctx, done, ok := h.begin(TopicPublicKey, m, &msg)
	if !ok {
		return nil
	}
	defer done()

	cmd, err := commands.NewRefreshPublicKeyCommand(msg.PublicKey)
	if err != nil {
		return h.invalid(ctx, TopicPublicKey, err)
	}

	if err = h.refresher.Handle(ctx, cmd); err != nil {
		h.logger.ErrorContext(ctx, "Public key refresh failed, keeping cached key", "error", err)
		metrics.RecordConsumed(TopicPublicKey, "failed")
		return nil
	}

	h.logger.InfoContext(ctx, "Public key refreshed")
	metrics.RecordConsumed(TopicPublicKey, "ok")
	return nil
}

type validatable interface {
	Validate() error
}

// begin decodes and validates the body into msg. It returns ok=false when the
// message must be dropped.
func (h *Handlers) begin(topic string, m *gonsq.Message, msg validatable) (context.Context, func(), bool) {
	ctx, span := tracing.StartSpan(context.Background(), "nsq.consume",
		attribute.String("messaging.source", topic),
		attribute.Int("messaging.attempt", int(m.Attempts)),
	)

	if err := json.Unmarshal(m.Body, msg); err != nil {
		_ = h.invalid(ctx, topic, err)
		span.End()
		return ctx, nil, false
	}
	if err := msg.Validate(); err != nil {
		_ = h.invalid(ctx, topic, err)
		span.End()
		return ctx, nil, false
	}

	return ctx, func() { span.End() }, true
}

func (h *Handlers) invalid(ctx context.Context, topic string, err error) error {
	tracing.SetSpanError(ctx, err)
	h.logger.WarnContext(ctx, "Dropping invalid message", "topic", topic, "error", err)
	metrics.RecordConsumed(topic, "invalid")
	return nil
}

func (h *Handlers) requeue(ctx context.Context, topic string, err error) error {
	tracing.SetSpanError(ctx, err)
	h.logger.ErrorContext(ctx, "Message processing failed, requeueing", "topic", topic, "error", err)
	metrics.RecordConsumed(topic, "requeue")
	return err
}
