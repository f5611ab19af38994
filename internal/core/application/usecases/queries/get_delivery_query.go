package queries

import (
	"errors"
	"fmt"

	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

type GetDeliveryQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewGetDeliveryQuery(orderID int64) (GetDeliveryQuery, error) {
	if orderID <= 0 {
		return GetDeliveryQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"order_id",
			fmt.Errorf("%d must be positive", orderID),
		)
	}

	return GetDeliveryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

func (q GetDeliveryQuery) OrderID() int64 {
	return q.orderID
}
