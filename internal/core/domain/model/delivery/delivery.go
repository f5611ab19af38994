package delivery

import (
	"errors"
	"fmt"
	"time"

	"delivery-service/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery was not created
	// through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrAddressIsLocked is returned when the address changes after the delivery has started.
	ErrAddressIsLocked = errors.New("address can only change while pending or packaged")
)

// Delivery is the aggregate root tracking how one order reaches its client.
// It is identified by the order ID and owns the lifecycle status.
//
// Invariants:
//   - orderID and clientID are positive and never change
//   - status only moves along the edges defined by Status
//   - every applied change refreshes updateDate; a no-op leaves it alone
type Delivery struct {
	orderID  int64
	clientID int64
	address  Address
	status   Status

	creationDate time.Time
	updateDate   time.Time

	isConstructed bool
}

// NewDelivery creates a pending delivery. The address may be the zero Address.
//
// Example:
//
//	addr, _ := delivery.NewAddress("Springfield", "742 Evergreen Terrace", "49007")
//	d, err := delivery.NewDelivery(101, 7, addr)
//	if err != nil {
//	    return err
//	}
//	d.Status() // pending
func NewDelivery(orderID, clientID int64, address Address) (*Delivery, error) {
	now := time.Now().UTC()
	d := &Delivery{
		status:        Pending,
		address:       address,
		creationDate:  now,
		updateDate:    now,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setOrderID(orderID),
		d.setClientID(clientID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery rebuilds a delivery from persisted state without applying
// lifecycle rules.
func RestoreDelivery(
	orderID, clientID int64,
	address Address,
	status Status,
	creationDate, updateDate time.Time,
) (*Delivery, error) {
	d := &Delivery{
		address:       address,
		creationDate:  creationDate,
		updateDate:    updateDate,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setOrderID(orderID),
		d.setClientID(clientID),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	d.status = status

	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) OrderID() int64          { return d.orderID }
func (d *Delivery) ClientID() int64         { return d.clientID }
func (d *Delivery) Address() Address        { return d.address }
func (d *Delivery) Status() Status          { return d.status }
func (d *Delivery) CreationDate() time.Time { return d.creationDate }
func (d *Delivery) UpdateDate() time.Time   { return d.updateDate }

// ChangeStatus moves the delivery to target following Status.TransitionTo.
// changed is false when the delivery already was in target.
func (d *Delivery) ChangeStatus(target Status, trigger Trigger) (bool, error) {
	next, err := d.status.TransitionTo(target, trigger)
	if err != nil {
		return false, err
	}
	if next == d.status {
		return false, nil
	}

	d.status = next
	d.touch()
	return true, nil
}

// Cancel moves the delivery to Cancelled. Cancelling a cancelled delivery
// succeeds with changed == false.
func (d *Delivery) Cancel() (bool, error) {
	next, err := d.status.Cancel()
	if err != nil {
		return false, err
	}
	if next == d.status {
		return false, nil
	}

	d.status = next
	d.touch()
	return true, nil
}

// SetAddress replaces the destination while the delivery has not left the warehouse.
func (d *Delivery) SetAddress(address Address) (bool, error) {
	if err := address.Validate(); err != nil {
		return false, errs.NewValueIsRequiredErrorWithCause("address", err)
	}
	if d.status != Pending && d.status != Packaged {
		return false, fmt.Errorf("%w: status is %s", ErrAddressIsLocked, d.status)
	}
	if d.address.Equal(address) {
		return false, nil
	}

	d.address = address
	d.touch()
	return true, nil
}

func (d *Delivery) touch() {
	d.updateDate = time.Now().UTC()
}

func (d *Delivery) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d must be positive", orderID))
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setClientID(clientID int64) error {
	if clientID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("client_id", fmt.Errorf("%d must be positive", clientID))
	}
	d.clientID = clientID
	return nil
}
