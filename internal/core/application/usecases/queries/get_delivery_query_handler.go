package queries

import (
	"context"
	"strconv"

	"delivery-service/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError when no delivery exists for the order.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryView{}, err
	}

	var rows []deliveryRow
	err := h.db.WithContext(ctx).
		Raw(selectDeliveries+` WHERE order_id = ?`, query.OrderID()).
		Scan(&rows).Error
	if err != nil {
		return DeliveryView{}, err
	}

	if len(rows) == 0 {
		return DeliveryView{}, errs.NewObjectNotFoundError("order_id", strconv.FormatInt(query.OrderID(), 10))
	}

	return rows[0].view(), nil
}
