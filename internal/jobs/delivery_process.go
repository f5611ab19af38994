package jobs

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/metrics"
	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/tracing"
)

const (
	DefaultMinDelay = 5 * time.Second
	DefaultMaxDelay = 10 * time.Second
)

// Advancer runs a single delivery process step.
type Advancer interface {
	Handle(ctx context.Context, cmd commands.AdvanceDeliveryCommand) (bool, error)
}

// DeliveryProcess drives packaged deliveries to delivered on timers.
// At most one process runs per order within this instance.
type DeliveryProcess struct {
	advancer Advancer
	minDelay time.Duration
	maxDelay time.Duration
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running map[int64]struct{}
	stopped bool
}

// NewDeliveryProcess swaps the delays when given in the wrong order.
// Equal delays give a fixed wait between steps.
func NewDeliveryProcess(advancer Advancer, minDelay, maxDelay time.Duration, logger *slog.Logger) *DeliveryProcess {
	if maxDelay < minDelay {
		minDelay, maxDelay = maxDelay, minDelay
	}
	if minDelay < 0 {
		minDelay = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &DeliveryProcess{
		advancer: advancer,
		minDelay: minDelay,
		maxDelay: maxDelay,
		logger:   logger.With("component", "delivery_process"),
		ctx:      ctx,
		cancel:   cancel,
		running:  make(map[int64]struct{}),
	}
}

// Start launches the process for orderID beginning at from and returns
// immediately. It returns false when the order already has a running process,
// when from is not packaged or delivering, or after Stop.
func (p *DeliveryProcess) Start(orderID int64, from delivery.Status) bool {
	if !from.IsInProgress() {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return false
	}
	if _, ok := p.running[orderID]; ok {
		return false
	}
	p.running[orderID] = struct{}{}

	p.wg.Add(1)
	go p.run(orderID, from)

	return true
}

// Running reports whether a process for orderID is in flight.
func (p *DeliveryProcess) Running(orderID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.running[orderID]
	return ok
}

// Stop abandons pending timers and waits for steps already writing to the
// store. Processes cut short here are picked up by the resume job, if enabled.
func (p *DeliveryProcess) Stop(ctx context.Context) error {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.InfoContext(ctx, "Delivery process stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *DeliveryProcess) run(orderID int64, from delivery.Status) {
	started := time.Now()
	metrics.ProcessStarted()
	logger := p.logger.With("order_id", orderID)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Delivery process panicked", "panic", r)
		}

		p.mu.Lock()
		delete(p.running, orderID)
		p.mu.Unlock()

		metrics.ProcessFinished(time.Since(started))
		p.wg.Done()
	}()

	status := from
	for {
		next, ok := status.Next()
		if !ok {
			return
		}

		if !p.wait() {
			logger.Info("Delivery process interrupted by shutdown", "status", status)
			return
		}

		if err := p.step(orderID, status); err != nil {
			switch {
			case errors.Is(err, commands.ErrDeliveryProcessAborted), errors.Is(err, errs.ErrObjectNotFound):
				logger.Info("Delivery process aborted", "reason", err)
			default:
				logger.Error("Delivery process step failed", "from", status, "to", next, "error", err)
			}
			return
		}

		status = next
	}
}

// step runs detached from shutdown so a started write is never cut in half.
func (p *DeliveryProcess) step(orderID int64, from delivery.Status) error {
	ctx, span := tracing.StartSpan(context.WithoutCancel(p.ctx), "delivery.process.step", tracing.OrderID(orderID))
	defer span.End()

	cmd, err := commands.NewAdvanceDeliveryCommand(orderID, from)
	if err != nil {
		return err
	}

	_, err = p.advancer.Handle(ctx, cmd)
	return err
}

func (p *DeliveryProcess) wait() bool {
	timer := time.NewTimer(p.delay())
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *DeliveryProcess) delay() time.Duration {
	if p.maxDelay <= p.minDelay {
		return p.minDelay
	}
	return p.minDelay + rand.N(p.maxDelay-p.minDelay+1)
}
