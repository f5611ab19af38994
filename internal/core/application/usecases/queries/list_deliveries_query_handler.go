package queries

import (
	"context"

	"delivery-service/internal/core/domain/model/delivery"
)

// DeliveryLister pages through stored deliveries ordered by order ID.
type DeliveryLister interface {
	List(ctx context.Context, skip, limit int) ([]*delivery.Delivery, error)
}

type ListDeliveriesQueryHandler struct {
	lister DeliveryLister
}

func NewListDeliveriesQueryHandler(lister DeliveryLister) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{lister: lister}
}

// Handle returns an empty, non-nil slice when the page is past the end.
func (h ListDeliveriesQueryHandler) Handle(ctx context.Context, query ListDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries, err := h.lister.List(ctx, query.Skip(), query.Limit())
	if err != nil {
		return nil, err
	}

	views := make([]DeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		views = append(views, viewOf(d))
	}

	return views, nil
}
