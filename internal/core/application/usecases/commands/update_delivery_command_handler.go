package commands

import (
	"context"

	"delivery-service/internal/core/application/events"
	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/metrics"
	"delivery-service/internal/tracing"
)

// UpdateDeliveryCommandHandler applies a partial update. The address is
// applied before the status, both in one transaction. A status of cancelled
// goes through the cancellation rules; any other status is an external
// transition. Cancelling an already cancelled delivery succeeds and announces
// the cancellation again.
type UpdateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   Notifier
	process    ProcessStarter
}

func NewUpdateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier Notifier,
	process ProcessStarter,
) UpdateDeliveryCommandHandler {
	return UpdateDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		process:    process,
	}
}

func (h *UpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "delivery.update", tracing.OrderID(cmd.OrderID()))
	defer span.End()

	var previous delivery.Status
	d, _, err := mutateDelivery(ctx, h.uowFactory, cmd.OrderID(), func(d *delivery.Delivery) (bool, error) {
		previous = d.Status()
		changed := false

		if addr, ok := cmd.Address(); ok {
			addressChanged, err := d.SetAddress(addr)
			if err != nil {
				return false, err
			}
			changed = addressChanged
		}

		if status, ok := cmd.Status(); ok {
			var statusChanged bool
			var err error
			if status == delivery.Cancelled {
				statusChanged, err = d.Cancel()
			} else {
				statusChanged, err = d.ChangeStatus(status, delivery.TriggerExternal)
			}
			if err != nil {
				return false, err
			}
			changed = changed || statusChanged
		}

		return changed, nil
	})
	if err != nil {
		tracing.SetSpanError(ctx, err)
		return nil, err
	}

	if status, ok := cmd.Status(); ok && status == delivery.Cancelled {
		if previous != delivery.Cancelled {
			metrics.RecordTransition(previous.String(), delivery.Cancelled.String(), delivery.TriggerExternal.String())
		}
		h.notifier.CancelOutcome(ctx, d.OrderID(), events.CancelOutcomeCancelled, "")
		return d, nil
	}

	if previous == d.Status() {
		return d, nil
	}
	afterStatusChange(ctx, h.notifier, h.process, d.OrderID(), previous, d.Status(), delivery.TriggerExternal)

	return d, nil
}
