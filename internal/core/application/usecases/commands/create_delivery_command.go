package commands

import (
	"errors"
	"fmt"

	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand registers a delivery for a freshly placed order.
//
// Example:
//
//	addr, _ := delivery.NewAddress("Springfield", "742 Evergreen Terrace", "49007")
//	cmd, err := NewCreateDeliveryCommand(101, 7, addr)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//	d, err := handler.Handle(ctx, cmd)
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID  int64
	clientID int64
	address  delivery.Address

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand validates identifiers. The address may be the zero Address.
func NewCreateDeliveryCommand(orderID, clientID int64, address delivery.Address) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) OrderID() int64 {
	return c.orderID
}

func (c CreateDeliveryCommand) ClientID() int64 {
	return c.clientID
}

func (c CreateDeliveryCommand) Address() delivery.Address {
	return c.address
}

func (c *CreateDeliveryCommand) setOrderID(orderID int64) error {
	if err := validateOrderID(orderID); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateDeliveryCommand) setClientID(clientID int64) error {
	if clientID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("client_id", fmt.Errorf("%d must be positive", clientID))
	}

	c.clientID = clientID
	return nil
}

func validateOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d must be positive", orderID))
	}
	return nil
}
