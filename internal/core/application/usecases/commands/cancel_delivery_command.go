package commands

import (
	"errors"
	"strings"

	"delivery-service/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand asks to abort a delivery. When ResponseTopic is set the
// outcome is published there as a saga reply instead of the default topics.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID       int64
	responseTopic string

	guard guard.ConstructorGuard
}

func NewCancelDeliveryCommand(orderID int64, responseTopic string) (CancelDeliveryCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return CancelDeliveryCommand{
		orderID:       orderID,
		responseTopic: strings.TrimSpace(responseTopic),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

func (c CancelDeliveryCommand) OrderID() int64 {
	return c.orderID
}

func (c CancelDeliveryCommand) ResponseTopic() string {
	return c.responseTopic
}
