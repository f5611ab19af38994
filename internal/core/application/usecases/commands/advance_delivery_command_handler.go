package commands

import (
	"context"
	"errors"
	"fmt"

	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/metrics"
	"delivery-service/internal/tracing"
)

// ErrDeliveryProcessAborted is returned when the delivery left the expected
// status, for example because it was cancelled meanwhile.
var ErrDeliveryProcessAborted = errors.New("delivery process aborted")

// AdvanceDeliveryCommandHandler performs one delivery process step.
//
// Step outcomes:
//   - delivery in From: moved to To
//   - delivery already in To: no-op, the step counts as done
//   - delivery missing or in any other status: ErrDeliveryProcessAborted
//     (or *errs.ObjectNotFoundError), nothing is written
//
// Reaching delivered publishes the completion event exactly once.
type AdvanceDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   Notifier
}

func NewAdvanceDeliveryCommandHandler(uowFactory DeliveryUoWFactory, notifier Notifier) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h *AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	ctx, span := tracing.StartSpan(ctx, "delivery.advance", tracing.OrderID(cmd.OrderID()))
	defer span.End()

	_, changed, err := mutateDelivery(ctx, h.uowFactory, cmd.OrderID(), func(d *delivery.Delivery) (bool, error) {
		switch d.Status() {
		case cmd.To():
			return false, nil
		case cmd.From():
			return d.ChangeStatus(cmd.To(), delivery.TriggerProcess)
		default:
			return false, fmt.Errorf("%w: order %d is %s, expected %s", ErrDeliveryProcessAborted, d.OrderID(), d.Status(), cmd.From())
		}
	})
	if err != nil {
		tracing.SetSpanError(ctx, err)
		return false, err
	}

	if changed {
		metrics.RecordTransition(cmd.From().String(), cmd.To().String(), delivery.TriggerProcess.String())
		if cmd.To() == delivery.Delivered {
			h.notifier.DeliveryCompleted(ctx, cmd.OrderID())
		}
	}

	return changed, nil
}
