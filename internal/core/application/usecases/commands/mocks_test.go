package commands_test

import (
	"context"
	"testing"
	"time"

	"delivery-service/internal/core/application/events"
	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) Delete(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) List(ctx context.Context, skip, limit int) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) ListInProgress(ctx context.Context, olderThan time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) DeliveryCompleted(ctx context.Context, orderID int64) {
	m.Called(ctx, orderID)
}

func (m *MockNotifier) CancelOutcome(
	ctx context.Context,
	orderID int64,
	outcome events.CancelOutcome,
	responseTopic string,
) {
	m.Called(ctx, orderID, outcome, responseTopic)
}

type MockProcessStarter struct{ mock.Mock }

func (m *MockProcessStarter) Start(orderID int64, from delivery.Status) bool {
	args := m.Called(orderID, from)
	return args.Bool(0)
}

// fixture wires a unit of work factory that hands out one mocked unit of work.
type fixture struct {
	repo    *MockDeliveryRepository
	uow     *MockDeliveryUoW
	factory *MockDeliveryUoWFactory
}

func newFixture() fixture {
	f := fixture{
		repo:    new(MockDeliveryRepository),
		uow:     new(MockDeliveryUoW),
		factory: new(MockDeliveryUoWFactory),
	}
	f.factory.On("Create").Return(f.uow).Once()
	return f
}

func (f fixture) assert(t *testing.T) {
	t.Helper()
	f.repo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func restoredDelivery(t *testing.T, orderID int64, status delivery.Status) *delivery.Delivery {
	t.Helper()
	addr, err := delivery.NewAddress("Springfield", "742 Evergreen Terrace", "49007")
	require.NoError(t, err)
	at := time.Now().UTC().Add(-time.Minute)
	d, err := delivery.RestoreDelivery(orderID, 7, addr, status, at, at)
	require.NoError(t, err)
	return d
}
