// Package events defines the outbound message contracts of the delivery service
// and the Notifier that publishes them.
package events

const (
	TopicOrderStatusUpdate   = "order.status.update"
	TopicDeliveryCancelled   = "delivery.cancelled"
	TopicCancelRejected      = "delivery.cancel_rejected"
	TopicDeliveryNotFound    = "delivery.not_found"
	TopicUpdateRejected      = "delivery.update_rejected"
	TopicClientRefreshPubKey = "client.refresh_public_key"
)

// StatusChanged tells the order service about a delivery status.
type StatusChanged struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

type OrderRef struct {
	OrderID int64 `json:"order_id"`
}

type UpdateRejected struct {
	OrderID       int64  `json:"order_id"`
	Status        string `json:"status"`
	CurrentStatus string `json:"current_status"`
}

// CancelResponse answers a cancellation that named its own response topic.
type CancelResponse struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
	Event   string `json:"event"`
}

type RefreshKeysRequest struct {
	Action string `json:"action"`
}

// CancelOutcome is the result of a cancellation request.
type CancelOutcome int

const (
	CancelOutcomeCancelled CancelOutcome = iota + 1
	CancelOutcomeRejected
	CancelOutcomeNotFound
)

// Topic is the default topic announcing the outcome.
func (o CancelOutcome) Topic() string {
	switch o {
	case CancelOutcomeCancelled:
		return TopicDeliveryCancelled
	case CancelOutcomeRejected:
		return TopicCancelRejected
	default:
		return TopicDeliveryNotFound
	}
}

// ResponseStatus is the status field of a CancelResponse.
func (o CancelOutcome) ResponseStatus() string {
	switch o {
	case CancelOutcomeCancelled:
		return "OK"
	case CancelOutcomeRejected:
		return "FAIL"
	default:
		return "NOT_FOUND"
	}
}
