// Package commands contains business operations that modify delivery state.
// Every command follows the same pattern: constructor validation, a unit of
// work around the read-modify-write, commit, and only then side effects such
// as events or starting the delivery process.
package commands

import (
	"context"

	"delivery-service/internal/core/application/events"
	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// DeliveryUoW manages transactions for delivery operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.DeliveryRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// Notifier publishes the events produced by commands.
	Notifier interface {
		DeliveryCompleted(ctx context.Context, orderID int64)
		CancelOutcome(ctx context.Context, orderID int64, outcome events.CancelOutcome, responseTopic string)
	}

	// ProcessStarter launches the timed delivery process for a packaged or
	// delivering order. Start returns false when a process for the order is
	// already running.
	ProcessStarter interface {
		Start(orderID int64, from delivery.Status) bool
	}
)
