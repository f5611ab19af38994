// Package queries contains read operations over deliveries. Single lookups
// read straight from the database into read models; pages come from the
// repository.
package queries

import (
	"time"

	"delivery-service/internal/core/domain/model/delivery"
)

// DeliveryView is the read model returned to API clients.
type DeliveryView struct {
	OrderID      int64
	ClientID     int64
	City         string
	Street       string
	Zip          string
	Status       delivery.Status
	CreationDate time.Time
	UpdateDate   time.Time
}

type deliveryRow struct {
	OrderID      int64
	ClientID     int64
	City         string
	Street       string
	Zip          string
	Status       string
	CreationDate time.Time
	UpdateDate   time.Time
}

func (r deliveryRow) view() DeliveryView {
	return DeliveryView{
		OrderID:      r.OrderID,
		ClientID:     r.ClientID,
		City:         r.City,
		Street:       r.Street,
		Zip:          r.Zip,
		Status:       delivery.Status(r.Status),
		CreationDate: r.CreationDate.UTC(),
		UpdateDate:   r.UpdateDate.UTC(),
	}
}

func viewOf(d *delivery.Delivery) DeliveryView {
	addr := d.Address()
	return DeliveryView{
		OrderID:      d.OrderID(),
		ClientID:     d.ClientID(),
		City:         addr.City(),
		Street:       addr.Street(),
		Zip:          addr.Zip(),
		Status:       d.Status(),
		CreationDate: d.CreationDate().UTC(),
		UpdateDate:   d.UpdateDate().UTC(),
	}
}

const selectDeliveries = `
	SELECT
		order_id,
		client_id,
		city,
		street,
		zip,
		status,
		creation_date,
		update_date
	FROM deliveries`
