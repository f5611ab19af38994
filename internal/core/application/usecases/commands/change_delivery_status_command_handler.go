package commands

import (
	"context"
	"errors"

	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/metrics"
	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/tracing"
)

// StatusChange describes the effect of a status command. On a rejected
// transition Current still holds the persisted status.
type StatusChange struct {
	Previous delivery.Status
	Current  delivery.Status
	Changed  bool
}

// ChangeDeliveryStatusCommandHandler applies external status updates.
//
// After a committed change:
//   - reaching packaged starts the delivery process
//   - reaching delivered publishes the completion event
type ChangeDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   Notifier
	process    ProcessStarter
}

func NewChangeDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier Notifier,
	process ProcessStarter,
) ChangeDeliveryStatusCommandHandler {
	return ChangeDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		process:    process,
	}
}

func (h *ChangeDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeDeliveryStatusCommand,
) (StatusChange, error) {
	if err := cmd.Validate(); err != nil {
		return StatusChange{}, err
	}

	ctx, span := tracing.StartSpan(ctx, "delivery.change_status", tracing.OrderID(cmd.OrderID()))
	defer span.End()

	var previous delivery.Status
	d, changed, err := mutateDelivery(ctx, h.uowFactory, cmd.OrderID(), func(d *delivery.Delivery) (bool, error) {
		previous = d.Status()
		return d.ChangeStatus(cmd.Status(), delivery.TriggerExternal)
	})
	if err != nil {
		tracing.SetSpanError(ctx, err)
		if errors.Is(err, errs.ErrInvalidTransition) {
			metrics.RecordRejectedTransition("change_status")
		}
		return StatusChange{Previous: previous, Current: previous}, err
	}

	result := StatusChange{Previous: previous, Current: d.Status(), Changed: changed}
	if changed {
		afterStatusChange(ctx, h.notifier, h.process, d.OrderID(), previous, d.Status(), delivery.TriggerExternal)
	}

	return result, nil
}

// afterStatusChange runs the side effects of a committed external transition.
func afterStatusChange(
	ctx context.Context,
	notifier Notifier,
	process ProcessStarter,
	orderID int64,
	from, to delivery.Status,
	trigger delivery.Trigger,
) {
	metrics.RecordTransition(from.String(), to.String(), trigger.String())

	switch to {
	case delivery.Packaged, delivery.Delivering:
		process.Start(orderID, to)
	case delivery.Delivered:
		notifier.DeliveryCompleted(ctx, orderID)
	default:
	}
}
