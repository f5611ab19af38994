package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"delivery-service/internal/adapters/out/postgres"
	"delivery-service/internal/adapters/out/postgres/dbtest"
	"delivery-service/internal/adapters/out/postgres/deliveryrepo"
	"delivery-service/internal/core/application/events"
	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type step struct {
	orderID int64
	from    delivery.Status
}

type recordingAdvancer struct {
	mu    sync.Mutex
	steps []step
	block chan struct{}
	err   error
}

func (a *recordingAdvancer) Handle(_ context.Context, cmd commands.AdvanceDeliveryCommand) (bool, error) {
	if a.block != nil {
		<-a.block
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.steps = append(a.steps, step{orderID: cmd.OrderID(), from: cmd.From()})
	return a.err == nil, a.err
}

func (a *recordingAdvancer) recorded() []step {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]step(nil), a.steps...)
}

func TestDeliveryProcess_RunsAllSteps(t *testing.T) {
	advancer := &recordingAdvancer{}
	p := jobs.NewDeliveryProcess(advancer, 0, 0, discardLogger())

	require.True(t, p.Start(101, delivery.Packaged))

	require.Eventually(t, func() bool { return !p.Running(101) }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []step{
		{orderID: 101, from: delivery.Packaged},
		{orderID: 101, from: delivery.Delivering},
	}, advancer.recorded())
}

func TestDeliveryProcess_StartFromDelivering(t *testing.T) {
	advancer := &recordingAdvancer{}
	p := jobs.NewDeliveryProcess(advancer, 0, 0, discardLogger())

	require.True(t, p.Start(7, delivery.Delivering))

	require.Eventually(t, func() bool { return !p.Running(7) }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []step{{orderID: 7, from: delivery.Delivering}}, advancer.recorded())
}

func TestDeliveryProcess_RejectsDuplicateStart(t *testing.T) {
	advancer := &recordingAdvancer{block: make(chan struct{})}
	p := jobs.NewDeliveryProcess(advancer, 0, 0, discardLogger())

	require.True(t, p.Start(101, delivery.Packaged))
	assert.False(t, p.Start(101, delivery.Packaged))
	assert.True(t, p.Start(102, delivery.Packaged))

	close(advancer.block)
	require.Eventually(t, func() bool { return !p.Running(101) && !p.Running(102) }, time.Second, 5*time.Millisecond)
	assert.True(t, p.Start(101, delivery.Delivering))
}

func TestDeliveryProcess_RejectsNonProgressStatuses(t *testing.T) {
	p := jobs.NewDeliveryProcess(&recordingAdvancer{}, 0, 0, discardLogger())

	assert.False(t, p.Start(1, delivery.Pending))
	assert.False(t, p.Start(1, delivery.Delivered))
	assert.False(t, p.Start(1, delivery.Cancelled))
}

func TestDeliveryProcess_AbortStopsProcess(t *testing.T) {
	advancer := &recordingAdvancer{err: commands.ErrDeliveryProcessAborted}
	p := jobs.NewDeliveryProcess(advancer, 0, 0, discardLogger())

	require.True(t, p.Start(101, delivery.Packaged))

	require.Eventually(t, func() bool { return !p.Running(101) }, time.Second, 5*time.Millisecond)
	assert.Len(t, advancer.recorded(), 1)
}

func TestDeliveryProcess_StopAbandonsTimers(t *testing.T) {
	advancer := &recordingAdvancer{}
	p := jobs.NewDeliveryProcess(advancer, time.Hour, time.Hour, discardLogger())
	require.True(t, p.Start(101, delivery.Packaged))

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	require.NoError(t, p.Stop(ctx))

	assert.Empty(t, advancer.recorded())
	assert.False(t, p.Running(101))
	assert.False(t, p.Start(102, delivery.Packaged))
}

type countingNotifier struct {
	mu        sync.Mutex
	completed []int64
}

func (n *countingNotifier) DeliveryCompleted(_ context.Context, orderID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, orderID)
}

func (n *countingNotifier) CancelOutcome(context.Context, int64, events.CancelOutcome, string) {}

func (n *countingNotifier) completions() []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int64(nil), n.completed...)
}

type uowFactory struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (f uowFactory) Create() commands.DeliveryUoW {
	return f.factory.Create()
}

func TestDeliveryProcess_DrivesStoredDeliveryToDelivered(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := deliveryrepo.NewGormDeliveryRepository(db)

	addr, err := delivery.NewAddress("Springfield", "742 Evergreen Terrace", "49007")
	require.NoError(t, err)
	d, err := delivery.NewDelivery(101, 7, addr)
	require.NoError(t, err)
	_, err = d.ChangeStatus(delivery.Packaged, delivery.TriggerExternal)
	require.NoError(t, err)
	require.NoError(t, repo.Add(t.Context(), d))

	notifier := &countingNotifier{}
	handler := commands.NewAdvanceDeliveryCommandHandler(uowFactory{postgres.NewGormUnitOfWorkFactory(db)}, notifier)
	p := jobs.NewDeliveryProcess(&handler, 0, 0, discardLogger())

	require.True(t, p.Start(101, delivery.Packaged))
	require.Eventually(t, func() bool { return !p.Running(101) }, 2*time.Second, 5*time.Millisecond)

	stored, err := repo.Get(t.Context(), 101)
	require.NoError(t, err)
	assert.Equal(t, delivery.Delivered, stored.Status())
	assert.Equal(t, []int64{101}, notifier.completions())
}

func TestDeliveryProcess_DoesNotResurrectCancelledDelivery(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := deliveryrepo.NewGormDeliveryRepository(db)

	addr, err := delivery.NewAddress("Springfield", "742 Evergreen Terrace", "49007")
	require.NoError(t, err)
	d, err := delivery.NewDelivery(101, 7, addr)
	require.NoError(t, err)
	_, err = d.Cancel()
	require.NoError(t, err)
	require.NoError(t, repo.Add(t.Context(), d))

	notifier := &countingNotifier{}
	handler := commands.NewAdvanceDeliveryCommandHandler(uowFactory{postgres.NewGormUnitOfWorkFactory(db)}, notifier)
	p := jobs.NewDeliveryProcess(&handler, 0, 0, discardLogger())

	require.True(t, p.Start(101, delivery.Packaged))
	require.Eventually(t, func() bool { return !p.Running(101) }, 2*time.Second, 5*time.Millisecond)

	stored, err := repo.Get(t.Context(), 101)
	require.NoError(t, err)
	assert.Equal(t, delivery.Cancelled, stored.Status())
	assert.Empty(t, notifier.completions())
}
