package ports

import (
	"context"
)

// UnitOfWork wraps one database transaction around a delivery
// read-modify-write. Callers defer Rollback right after Begin and ignore its
// error once Commit has run.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// DeliveryRepository is bound to the open transaction, or to the plain
	// connection when Begin was not called.
	DeliveryRepository() DeliveryRepository
}
