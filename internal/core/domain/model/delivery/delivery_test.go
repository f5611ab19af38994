package delivery_test

import (
	"testing"
	"time"

	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAddress(t *testing.T) delivery.Address {
	t.Helper()
	addr, err := delivery.NewAddress("Springfield", "742 Evergreen Terrace", "49007")
	require.NoError(t, err)
	return addr
}

func restore(t *testing.T, status delivery.Status) (*delivery.Delivery, time.Time) {
	t.Helper()
	updated := time.Now().UTC().Add(-time.Hour)
	d, err := delivery.RestoreDelivery(101, 7, mustAddress(t), status, updated, updated)
	require.NoError(t, err)
	return d, updated
}

func TestNewDelivery(t *testing.T) {
	t.Run("creates pending delivery", func(t *testing.T) {
		addr := mustAddress(t)

		d, err := delivery.NewDelivery(101, 7, addr)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, int64(101), d.OrderID())
		assert.Equal(t, int64(7), d.ClientID())
		assert.Equal(t, delivery.Pending, d.Status())
		assert.True(t, d.Address().Equal(addr))
		assert.Equal(t, d.CreationDate(), d.UpdateDate())
	})

	t.Run("accepts missing address", func(t *testing.T) {
		d, err := delivery.NewDelivery(102, 7, delivery.Address{})

		require.NoError(t, err)
		assert.True(t, d.Address().IsEmpty())
	})

	t.Run("rejects non-positive identifiers", func(t *testing.T) {
		_, err := delivery.NewDelivery(0, -1, delivery.Address{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "order_id")
		assert.Contains(t, err.Error(), "client_id")
	})
}

func TestRestoreDelivery_RejectsUnknownStatus(t *testing.T) {
	_, err := delivery.RestoreDelivery(101, 7, delivery.Address{}, delivery.Status("lost"), time.Now(), time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestDelivery_Validate_ZeroValue(t *testing.T) {
	var d delivery.Delivery
	require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)

	var nilDelivery *delivery.Delivery
	require.ErrorIs(t, nilDelivery.Validate(), delivery.ErrDeliveryIsNotConstructed)
}

func TestDelivery_ChangeStatus(t *testing.T) {
	t.Run("applies allowed transition and refreshes update date", func(t *testing.T) {
		d, updated := restore(t, delivery.Pending)

		changed, err := d.ChangeStatus(delivery.Packaged, delivery.TriggerExternal)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, delivery.Packaged, d.Status())
		assert.True(t, d.UpdateDate().After(updated))
	})

	t.Run("same status leaves record untouched", func(t *testing.T) {
		d, updated := restore(t, delivery.Packaged)

		changed, err := d.ChangeStatus(delivery.Packaged, delivery.TriggerExternal)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, updated, d.UpdateDate())
	})

	t.Run("illegal edge leaves status unchanged", func(t *testing.T) {
		d, updated := restore(t, delivery.Delivered)

		changed, err := d.ChangeStatus(delivery.Delivering, delivery.TriggerExternal)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.False(t, changed)
		assert.Equal(t, delivery.Delivered, d.Status())
		assert.Equal(t, updated, d.UpdateDate())
	})
}

func TestDelivery_Cancel(t *testing.T) {
	t.Run("cancels packaged delivery", func(t *testing.T) {
		d, _ := restore(t, delivery.Packaged)

		changed, err := d.Cancel()

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, delivery.Cancelled, d.Status())
	})

	t.Run("second cancel is acknowledged without a change", func(t *testing.T) {
		d, _ := restore(t, delivery.Pending)

		first, err := d.Cancel()
		require.NoError(t, err)
		updated := d.UpdateDate()

		second, err := d.Cancel()

		require.NoError(t, err)
		assert.True(t, first)
		assert.False(t, second)
		assert.Equal(t, updated, d.UpdateDate())
	})

	t.Run("delivered cannot be cancelled", func(t *testing.T) {
		d, _ := restore(t, delivery.Delivered)

		_, err := d.Cancel()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, delivery.Delivered, d.Status())
	})
}

func TestDelivery_SetAddress(t *testing.T) {
	newAddr, err := delivery.NewAddress("Shelbyville", "1 Main St", "49008")
	require.NoError(t, err)

	t.Run("updates address while packaged", func(t *testing.T) {
		d, _ := restore(t, delivery.Packaged)

		changed, err := d.SetAddress(newAddr)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "Shelbyville", d.Address().City())
	})

	t.Run("same address is a no-op", func(t *testing.T) {
		d, updated := restore(t, delivery.Pending)

		changed, err := d.SetAddress(mustAddress(t))

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, updated, d.UpdateDate())
	})

	t.Run("rejects change after delivery started", func(t *testing.T) {
		d, _ := restore(t, delivery.Delivering)

		_, err := d.SetAddress(newAddr)

		require.ErrorIs(t, err, delivery.ErrAddressIsLocked)
	})

	t.Run("rejects empty address", func(t *testing.T) {
		d, _ := restore(t, delivery.Pending)

		_, err := d.SetAddress(delivery.Address{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewAddress(t *testing.T) {
	addr, err := delivery.NewAddress(" Springfield ", "742 Evergreen Terrace", "49007")
	require.NoError(t, err)
	assert.Equal(t, "Springfield", addr.City())
	assert.False(t, addr.IsEmpty())

	_, err = delivery.NewAddress("", " ", "49007")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "city")
	assert.Contains(t, err.Error(), "street")
	assert.NotContains(t, err.Error(), "zip")
}
