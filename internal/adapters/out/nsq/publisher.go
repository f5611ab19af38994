// Package nsq publishes delivery events to nsqd.
package nsq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"delivery-service/internal/pkg/nsqlog"
	"delivery-service/internal/tracing"

	"github.com/cenkalti/backoff/v4"
	gonsq "github.com/nsqio/go-nsq"
	"go.opentelemetry.io/otel/attribute"
)

// Producer is the subset of *nsq.Producer used here.
type Producer interface {
	Publish(topic string, body []byte) error
	Ping() error
	Stop()
}

// Publisher implements ports.EventPublisher on top of an nsqd producer.
type Publisher struct {
	producer Producer
	logger   *slog.Logger
}

// NewPublisher creates a producer for the nsqd TCP address. No connection is
// made until Connect or the first Publish.
func NewPublisher(nsqdAddr string, logger *slog.Logger) (*Publisher, error) {
	producer, err := gonsq.NewProducer(nsqdAddr, gonsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("create nsq producer: %w", err)
	}
	logger = logger.With("component", "nsq_publisher")
	producer.SetLogger(nsqlog.New(logger), gonsq.LogLevelWarning)

	return NewPublisherWithProducer(producer, logger), nil
}

func NewPublisherWithProducer(producer Producer, logger *slog.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger}
}

// Connect pings nsqd until it answers, at most attempts times.
func (p *Publisher) Connect(ctx context.Context, attempts int, delay time.Duration) error {
	attempts = max(attempts, 1)
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(attempts-1)),
		ctx,
	)

	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		return p.producer.Ping()
	}, policy, func(err error, next time.Duration) {
		p.logger.WarnContext(ctx, "nsqd is not ready", "attempt", attempt, "of", attempts, "retry_in", next, "error", err)
	})
	if err != nil {
		return fmt.Errorf("connect to nsqd after %d attempts: %w", attempt, err)
	}

	p.logger.InfoContext(ctx, "connected to nsqd")
	return nil
}

// Publish encodes payload as JSON and waits for nsqd to acknowledge it.
func (p *Publisher) Publish(ctx context.Context, topic string, payload any) error {
	ctx, span := tracing.StartSpan(ctx, "nsq.publish", attribute.String("messaging.destination", topic))
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		tracing.SetSpanError(ctx, err)
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}

	if err = p.producer.Publish(topic, body); err != nil {
		tracing.SetSpanError(ctx, err)
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	return nil
}

// PublishRaw forwards an already encoded body, used for dead letters.
func (p *Publisher) PublishRaw(topic string, body []byte) error {
	if err := p.producer.Publish(topic, body); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) Stop() {
	p.producer.Stop()
}
