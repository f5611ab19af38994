package commands

import (
	"errors"

	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/pkg/guard"
)

var ErrUpdateDeliveryCommandIsNotConstructed = errors.New(
	"UpdateDeliveryCommand must be created via NewUpdateDeliveryCommand constructor",
)

// UpdateDeliveryCommand is a partial update from the HTTP API. Nil fields are left unchanged.
type UpdateDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	address *delivery.Address
	status  *delivery.Status

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryCommand(
	orderID int64,
	address *delivery.Address,
	status *delivery.Status,
) (UpdateDeliveryCommand, error) {
	var errList []error
	errList = append(errList, validateOrderID(orderID))
	if address != nil {
		errList = append(errList, address.Validate())
	}
	if status != nil {
		errList = append(errList, status.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateDeliveryCommand{}, err
	}

	return UpdateDeliveryCommand{
		orderID: orderID,
		address: address,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryCommandIsNotConstructed)
}

func (c UpdateDeliveryCommand) OrderID() int64 {
	return c.orderID
}

func (c UpdateDeliveryCommand) Address() (delivery.Address, bool) {
	if c.address == nil {
		return delivery.Address{}, false
	}
	return *c.address, true
}

func (c UpdateDeliveryCommand) Status() (delivery.Status, bool) {
	if c.status == nil {
		return "", false
	}
	return *c.status, true
}
