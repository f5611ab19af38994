package commands_test

import (
	"errors"
	"testing"

	"delivery-service/internal/core/application/events"
	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func expectLockedLoad(f fixture, orderID int64, d *delivery.Delivery, err error) {
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("DeliveryRepository").Return(f.repo).Once()
	if d == nil {
		f.repo.On("GetForUpdate", mock.Anything, orderID).Return(nil, err).Once()
	} else {
		f.repo.On("GetForUpdate", mock.Anything, orderID).Return(d, err).Once()
	}
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
}

func TestCancelDeliveryCommandHandler_Handle(t *testing.T) {
	t.Run("pending delivery is cancelled", func(t *testing.T) {
		d := restoredDelivery(t, 101, delivery.Pending)
		f := newFixture()
		expectLockedLoad(f, 101, d, nil)
		f.repo.On("Update", mock.Anything, d).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()
		notifier := new(MockNotifier)
		notifier.On("CancelOutcome", mock.Anything, int64(101), events.CancelOutcomeCancelled, "").Once()

		cmd, _ := commands.NewCancelDeliveryCommand(101, "")
		h := commands.NewCancelDeliveryCommandHandler(f.factory, notifier)
		result, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.CancelResult{Outcome: events.CancelOutcomeCancelled, Changed: true}, result)
		assert.Equal(t, delivery.Cancelled, d.Status())
		f.assert(t)
		notifier.AssertExpectations(t)
	})

	t.Run("already cancelled is acknowledged again", func(t *testing.T) {
		d := restoredDelivery(t, 101, delivery.Cancelled)
		f := newFixture()
		expectLockedLoad(f, 101, d, nil)
		notifier := new(MockNotifier)
		notifier.On("CancelOutcome", mock.Anything, int64(101), events.CancelOutcomeCancelled, "").Once()

		cmd, _ := commands.NewCancelDeliveryCommand(101, "")
		h := commands.NewCancelDeliveryCommandHandler(f.factory, notifier)
		result, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.False(t, result.Changed)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		notifier.AssertExpectations(t)
	})

	t.Run("delivered delivery is rejected", func(t *testing.T) {
		d := restoredDelivery(t, 101, delivery.Delivered)
		f := newFixture()
		expectLockedLoad(f, 101, d, nil)
		notifier := new(MockNotifier)
		notifier.On("CancelOutcome", mock.Anything, int64(101), events.CancelOutcomeRejected, "").Once()

		cmd, _ := commands.NewCancelDeliveryCommand(101, "")
		h := commands.NewCancelDeliveryCommandHandler(f.factory, notifier)
		result, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, events.CancelOutcomeRejected, result.Outcome)
		assert.Equal(t, delivery.Delivered, d.Status())
		notifier.AssertExpectations(t)
	})

	t.Run("missing delivery answers the saga reply topic", func(t *testing.T) {
		f := newFixture()
		expectLockedLoad(f, 404, nil, errs.NewObjectNotFoundError("order_id", "404"))
		notifier := new(MockNotifier)
		notifier.On("CancelOutcome", mock.Anything, int64(404), events.CancelOutcomeNotFound, "order.saga.reply").Once()

		cmd, _ := commands.NewCancelDeliveryCommand(404, " order.saga.reply ")
		h := commands.NewCancelDeliveryCommandHandler(f.factory, notifier)
		result, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, events.CancelOutcomeNotFound, result.Outcome)
		notifier.AssertExpectations(t)
	})

	t.Run("infrastructure failure is returned without notification", func(t *testing.T) {
		f := newFixture()
		expectLockedLoad(f, 101, nil, errors.New("connection reset"))
		notifier := new(MockNotifier)

		cmd, _ := commands.NewCancelDeliveryCommand(101, "")
		h := commands.NewCancelDeliveryCommandHandler(f.factory, notifier)
		_, err := h.Handle(t.Context(), cmd)

		require.Error(t, err)
		notifier.AssertNotCalled(t, "CancelOutcome", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
