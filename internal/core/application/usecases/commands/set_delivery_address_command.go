package commands

import (
	"errors"

	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/pkg/guard"
)

var ErrSetDeliveryAddressCommandIsNotConstructed = errors.New(
	"SetDeliveryAddressCommand must be created via NewSetDeliveryAddressCommand constructor",
)

// SetDeliveryAddressCommand supplies the destination of an order and hands
// the delivery over to the delivery process.
type SetDeliveryAddressCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	address delivery.Address

	guard guard.ConstructorGuard
}

func NewSetDeliveryAddressCommand(orderID int64, address delivery.Address) (SetDeliveryAddressCommand, error) {
	var addressErr error
	if err := address.Validate(); err != nil {
		addressErr = errs.NewValueIsRequiredErrorWithCause("address", err)
	}

	if err := errors.Join(validateOrderID(orderID), addressErr); err != nil {
		return SetDeliveryAddressCommand{}, err
	}

	return SetDeliveryAddressCommand{
		orderID: orderID,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetDeliveryAddressCommand) Validate() error {
	return c.guard.Validate(ErrSetDeliveryAddressCommandIsNotConstructed)
}

func (c SetDeliveryAddressCommand) OrderID() int64 {
	return c.orderID
}

func (c SetDeliveryAddressCommand) Address() delivery.Address {
	return c.address
}
