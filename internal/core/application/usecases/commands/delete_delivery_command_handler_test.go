package commands_test

import (
	"testing"

	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	d := restoredDelivery(t, 101, delivery.Pending)
	f := newFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("DeliveryRepository").Return(f.repo).Once(),
		f.repo.On("Delete", ctx, int64(101)).Return(d, nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, _ := commands.NewDeleteDeliveryCommand(101)
	h := commands.NewDeleteDeliveryCommandHandler(f.factory)
	deleted, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(101), deleted.OrderID())
	f.assert(t)
}

func TestDeleteDeliveryCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("DeliveryRepository").Return(f.repo).Once(),
		f.repo.On("Delete", ctx, int64(404)).Return(nil, errs.NewObjectNotFoundError("order_id", "404")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, _ := commands.NewDeleteDeliveryCommand(404)
	h := commands.NewDeleteDeliveryCommandHandler(f.factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assert(t)
}

func TestNewDeleteDeliveryCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewDeleteDeliveryCommand(-3)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
