package commands

import (
	"context"

	"delivery-service/internal/core/domain/model/delivery"
)

// mutateDelivery loads the delivery under a row lock, applies fn and persists
// the result when fn reports a change. The delivery is returned even when fn
// fails so callers can report its current state.
func mutateDelivery(
	ctx context.Context,
	uowFactory DeliveryUoWFactory,
	orderID int64,
	fn func(d *delivery.Delivery) (bool, error),
) (*delivery.Delivery, bool, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	d, err := repo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	changed, err := fn(d)
	if err != nil {
		return d, false, err
	}
	if !changed {
		return d, false, nil
	}

	if err = repo.Update(ctx, d); err != nil {
		return d, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return d, false, err
	}

	return d, true, nil
}
