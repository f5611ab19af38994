package commands

import (
	"context"
	"errors"

	"delivery-service/internal/core/application/events"
	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/metrics"
	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/tracing"
)

// CancelResult is the outcome of a cancellation. Changed is false when the
// delivery was already cancelled and the request was only acknowledged.
type CancelResult struct {
	Outcome events.CancelOutcome
	Changed bool
}

// CancelDeliveryCommandHandler cancels pending and packaged deliveries.
//
// Outcomes, each announced through the Notifier:
//   - missing delivery: CancelOutcomeNotFound
//   - delivering or delivered: CancelOutcomeRejected, status unchanged
//   - pending, packaged or already cancelled: CancelOutcomeCancelled
//
// A cancel never interrupts a running delivery process; its next step finds
// the delivery cancelled and stops.
type CancelDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   Notifier
}

func NewCancelDeliveryCommandHandler(uowFactory DeliveryUoWFactory, notifier Notifier) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle returns an error only for infrastructure failures; business outcomes
// are reported in CancelResult.
func (h *CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) (CancelResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelResult{}, err
	}

	ctx, span := tracing.StartSpan(ctx, "delivery.cancel", tracing.OrderID(cmd.OrderID()))
	defer span.End()

	var previous delivery.Status
	_, changed, err := mutateDelivery(ctx, h.uowFactory, cmd.OrderID(), func(d *delivery.Delivery) (bool, error) {
		previous = d.Status()
		return d.Cancel()
	})

	var result CancelResult
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		result = CancelResult{Outcome: events.CancelOutcomeNotFound}
	case errors.Is(err, errs.ErrInvalidTransition):
		metrics.RecordRejectedTransition("cancel")
		result = CancelResult{Outcome: events.CancelOutcomeRejected}
	case err != nil:
		tracing.SetSpanError(ctx, err)
		return CancelResult{}, err
	default:
		result = CancelResult{Outcome: events.CancelOutcomeCancelled, Changed: changed}
	}

	if result.Changed {
		metrics.RecordTransition(previous.String(), delivery.Cancelled.String(), delivery.TriggerExternal.String())
	}
	h.notifier.CancelOutcome(ctx, cmd.OrderID(), result.Outcome, cmd.ResponseTopic())

	return result, nil
}
