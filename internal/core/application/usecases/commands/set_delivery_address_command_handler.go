package commands

import (
	"context"

	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/metrics"
	"delivery-service/internal/tracing"
)

// SetDeliveryAddressCommandHandler stores the address of a pending or packaged
// delivery. A pending delivery is packaged in the same transaction. Once the
// delivery is packaged the delivery process is started; a process that is
// already running for the order is left alone.
type SetDeliveryAddressCommandHandler struct {
	uowFactory DeliveryUoWFactory
	process    ProcessStarter
}

func NewSetDeliveryAddressCommandHandler(
	uowFactory DeliveryUoWFactory,
	process ProcessStarter,
) SetDeliveryAddressCommandHandler {
	return SetDeliveryAddressCommandHandler{
		uowFactory: uowFactory,
		process:    process,
	}
}

func (h *SetDeliveryAddressCommandHandler) Handle(
	ctx context.Context,
	cmd SetDeliveryAddressCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "delivery.set_address", tracing.OrderID(cmd.OrderID()))
	defer span.End()

	var previous delivery.Status
	d, _, err := mutateDelivery(ctx, h.uowFactory, cmd.OrderID(), func(d *delivery.Delivery) (bool, error) {
		previous = d.Status()

		addressChanged, err := d.SetAddress(cmd.Address())
		if err != nil {
			return false, err
		}

		statusChanged, err := d.ChangeStatus(delivery.Packaged, delivery.TriggerExternal)
		if err != nil {
			return false, err
		}

		return addressChanged || statusChanged, nil
	})
	if err != nil {
		tracing.SetSpanError(ctx, err)
		return nil, err
	}

	if previous != d.Status() {
		metrics.RecordTransition(previous.String(), d.Status().String(), delivery.TriggerExternal.String())
	}
	h.process.Start(d.OrderID(), delivery.Packaged)

	return d, nil
}
