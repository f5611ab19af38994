package commands

import (
	"errors"

	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/pkg/guard"
)

var ErrChangeDeliveryStatusCommandIsNotConstructed = errors.New(
	"ChangeDeliveryStatusCommand must be created via NewChangeDeliveryStatusCommand constructor",
)

// ChangeDeliveryStatusCommand is an explicit status update from outside the
// service. It may skip forward over intermediate statuses.
type ChangeDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	status  delivery.Status

	guard guard.ConstructorGuard
}

func NewChangeDeliveryStatusCommand(orderID int64, status delivery.Status) (ChangeDeliveryStatusCommand, error) {
	cmd := ChangeDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateOrderID(orderID),
		status.Validate(),
	); err != nil {
		return ChangeDeliveryStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.status = status
	return cmd, nil
}

func (c ChangeDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDeliveryStatusCommandIsNotConstructed)
}

func (c ChangeDeliveryStatusCommand) OrderID() int64 {
	return c.orderID
}

func (c ChangeDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}
