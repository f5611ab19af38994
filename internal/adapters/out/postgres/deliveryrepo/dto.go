package deliveryrepo

import (
	"time"

	"delivery-service/internal/core/domain/model/delivery"
)

type DeliveryDTO struct {
	OrderID      int64     `gorm:"primaryKey;autoIncrement:false"`
	ClientID     int64     `gorm:"not null;index"`
	City         string    `gorm:"size:255"`
	Street       string    `gorm:"size:255"`
	Zip          string    `gorm:"size:32"`
	Status       string    `gorm:"size:16;not null;index"`
	CreationDate time.Time `gorm:"not null"`
	UpdateDate   time.Time `gorm:"not null;index"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	addr := d.Address()
	return DeliveryDTO{
		OrderID:      d.OrderID(),
		ClientID:     d.ClientID(),
		City:         addr.City(),
		Street:       addr.Street(),
		Zip:          addr.Zip(),
		Status:       d.Status().String(),
		CreationDate: d.CreationDate(),
		UpdateDate:   d.UpdateDate(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	var addr delivery.Address
	if dto.City != "" || dto.Street != "" || dto.Zip != "" {
		var err error
		addr, err = delivery.NewAddress(dto.City, dto.Street, dto.Zip)
		if err != nil {
			return nil, err
		}
	}

	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		dto.OrderID,
		dto.ClientID,
		addr,
		status,
		dto.CreationDate.UTC(),
		dto.UpdateDate.UTC(),
	)
}
