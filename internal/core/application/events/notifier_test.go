package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"delivery-service/internal/core/application/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, topic string, payload any) error {
	args := m.Called(ctx, topic, payload)
	return args.Error(0)
}

func newNotifier(p *MockPublisher) *events.Notifier {
	return events.NewNotifier(p, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNotifier_DeliveryCompleted(t *testing.T) {
	ctx := t.Context()
	p := new(MockPublisher)
	p.On("Publish", ctx, "order.status.update", events.StatusChanged{OrderID: 101, Status: "delivered"}).
		Return(nil).Once()

	newNotifier(p).DeliveryCompleted(ctx, 101)

	p.AssertExpectations(t)
}

func TestNotifier_CancelOutcome(t *testing.T) {
	testCases := []struct {
		name          string
		outcome       events.CancelOutcome
		responseTopic string
		topic         string
		payload       any
	}{
		{"cancelled", events.CancelOutcomeCancelled, "", "delivery.cancelled", events.OrderRef{OrderID: 5}},
		{"rejected", events.CancelOutcomeRejected, "", "delivery.cancel_rejected", events.OrderRef{OrderID: 5}},
		{"not found", events.CancelOutcomeNotFound, "", "delivery.not_found", events.OrderRef{OrderID: 5}},
		{
			"saga response", events.CancelOutcomeRejected, "order.saga.reply",
			"order.saga.reply", events.CancelResponse{OrderID: 5, Status: "FAIL", Event: "delivery.cancel_rejected"},
		},
		{
			"saga not found", events.CancelOutcomeNotFound, "order.saga.reply",
			"order.saga.reply", events.CancelResponse{OrderID: 5, Status: "NOT_FOUND", Event: "delivery.not_found"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			p := new(MockPublisher)
			p.On("Publish", ctx, tc.topic, tc.payload).Return(nil).Once()

			newNotifier(p).CancelOutcome(ctx, 5, tc.outcome, tc.responseTopic)

			p.AssertExpectations(t)
		})
	}
}

func TestNotifier_PublishErrorIsSwallowed(t *testing.T) {
	ctx := t.Context()
	p := new(MockPublisher)
	p.On("Publish", ctx, "client.refresh_public_key", events.RefreshKeysRequest{Action: "refresh_keys"}).
		Return(errors.New("nsqd unreachable")).Once()

	assert.NotPanics(t, func() { newNotifier(p).RequestKeyRefresh(ctx) })
	p.AssertExpectations(t)
}

func TestCancelOutcome_ResponseStatus(t *testing.T) {
	assert.Equal(t, "OK", events.CancelOutcomeCancelled.ResponseStatus())
	assert.Equal(t, "FAIL", events.CancelOutcomeRejected.ResponseStatus())
	assert.Equal(t, "NOT_FOUND", events.CancelOutcomeNotFound.ResponseStatus())
}
