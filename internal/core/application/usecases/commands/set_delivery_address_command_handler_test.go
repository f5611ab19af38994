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

func newAddress(t *testing.T) delivery.Address {
	t.Helper()
	addr, err := delivery.NewAddress("Shelbyville", "1 Main St", "49008")
	require.NoError(t, err)
	return addr
}

func TestNewSetDeliveryAddressCommand_RequiresAddress(t *testing.T) {
	_, err := commands.NewSetDeliveryAddressCommand(101, delivery.Address{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestSetDeliveryAddressCommandHandler_Handle(t *testing.T) {
	t.Run("pending delivery is packaged and handed to the process", func(t *testing.T) {
		d := restoredDelivery(t, 101, delivery.Pending)
		f := newFixture()
		expectLockedLoad(f, 101, d, nil)
		f.repo.On("Update", mock.Anything, d).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()
		process := new(MockProcessStarter)
		process.On("Start", int64(101), delivery.Packaged).Return(true).Once()

		cmd, _ := commands.NewSetDeliveryAddressCommand(101, newAddress(t))
		h := commands.NewSetDeliveryAddressCommandHandler(f.factory, process)
		got, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.Packaged, got.Status())
		assert.Equal(t, "Shelbyville", got.Address().City())
		f.assert(t)
		process.AssertExpectations(t)
	})

	t.Run("delivering delivery keeps its address", func(t *testing.T) {
		d := restoredDelivery(t, 101, delivery.Delivering)
		f := newFixture()
		expectLockedLoad(f, 101, d, nil)
		process := new(MockProcessStarter)

		cmd, _ := commands.NewSetDeliveryAddressCommand(101, newAddress(t))
		h := commands.NewSetDeliveryAddressCommandHandler(f.factory, process)
		_, err := h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, delivery.ErrAddressIsLocked)
		assert.Equal(t, "Springfield", d.Address().City())
		process.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
		f.assert(t)
	})
}
