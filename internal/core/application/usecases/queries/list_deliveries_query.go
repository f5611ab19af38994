package queries

import (
	"errors"

	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/pkg/guard"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery pages through deliveries ordered by order ID.
type ListDeliveriesQuery struct {
	skip  int
	limit int

	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery requires skip >= 0 and limit in [1, MaxLimit].
func NewListDeliveriesQuery(skip, limit int) (ListDeliveriesQuery, error) {
	var err error
	if skip < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("skip", skip, 0, "unbounded"))
	}
	if limit < 1 || limit > MaxLimit {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit))
	}
	if err != nil {
		return ListDeliveriesQuery{}, err
	}

	return ListDeliveriesQuery{
		skip:  skip,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

func (q ListDeliveriesQuery) Skip() int {
	return q.skip
}

func (q ListDeliveriesQuery) Limit() int {
	return q.limit
}
