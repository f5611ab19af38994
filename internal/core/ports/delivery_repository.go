// Package ports defines the contracts between the delivery core and its adapters:
// persistence, the message bus, the public key cache and service discovery.
package ports

import (
	"context"
	"time"

	"delivery-service/internal/core/domain/model/delivery"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// Missing records are reported as *errs.ObjectNotFoundError.
type DeliveryRepository interface {
	// Add persists a new delivery.
	// Returns *errs.ObjectAlreadyExistsError when the order ID is taken.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists status, address and update date of an existing delivery.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by order ID.
	Get(ctx context.Context, orderID int64) (*delivery.Delivery, error)

	// GetForUpdate retrieves a delivery by order ID and locks the row until the
	// surrounding transaction ends. Concurrent read-modify-write cycles on the
	// same order are serialized by this lock.
	GetForUpdate(ctx context.Context, orderID int64) (*delivery.Delivery, error)

	// Delete removes a delivery and returns its last state.
	Delete(ctx context.Context, orderID int64) (*delivery.Delivery, error)

	// List returns deliveries ordered by order ID.
	List(ctx context.Context, skip, limit int) ([]*delivery.Delivery, error)

	// ListInProgress returns packaged and delivering deliveries that have not
	// changed since olderThan.
	ListInProgress(ctx context.Context, olderThan time.Time) ([]*delivery.Delivery, error)
}
