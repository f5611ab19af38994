package commands

import (
	"errors"
	"fmt"

	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand is one step of the delivery process: move the
// delivery from one status to the next.
type AdvanceDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	from    delivery.Status
	to      delivery.Status

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryCommand takes the target from the forward path. Terminal
// statuses have no next step and are rejected.
func NewAdvanceDeliveryCommand(orderID int64, from delivery.Status) (AdvanceDeliveryCommand, error) {
	if err := errors.Join(validateOrderID(orderID), from.Validate()); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	to, ok := from.Next()
	if !ok {
		return AdvanceDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"from",
			fmt.Errorf("%s has no next status", from),
		)
	}

	return AdvanceDeliveryCommand{
		orderID: orderID,
		from:    from,
		to:      to,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

func (c AdvanceDeliveryCommand) OrderID() int64 {
	return c.orderID
}

func (c AdvanceDeliveryCommand) From() delivery.Status {
	return c.from
}

func (c AdvanceDeliveryCommand) To() delivery.Status {
	return c.to
}
