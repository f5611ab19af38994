// Package nsq consumes the delivery service's inbound topics from NSQ.
package nsq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"delivery-service/internal/metrics"
	"delivery-service/internal/pkg/nsqlog"

	"github.com/google/uuid"
	gonsq "github.com/nsqio/go-nsq"
)

const DefaultMaxAttempts = 5

// DeadLetterPublisher receives the raw body of messages that exhausted their
// attempts.
type DeadLetterPublisher interface {
	PublishRaw(topic string, body []byte) error
}

type ConsumerConfig struct {
	NsqdTCPAddr       string
	LookupdHTTPAddr   string
	Channel           string
	MaxAttempts       uint16
	MaxInFlight       int
	LogLevel          slog.Level
	DeadLetterEnabled bool
}

// Consumers owns one nsq.Consumer per subscribed topic.
type Consumers struct {
	cfg       ConsumerConfig
	handlers  *Handlers
	dlq       DeadLetterPublisher
	logger    *slog.Logger
	consumers []*gonsq.Consumer
}

func NewConsumers(cfg ConsumerConfig, handlers *Handlers, dlq DeadLetterPublisher, logger *slog.Logger) *Consumers {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = 16
	}
	if cfg.Channel == "" {
		cfg.Channel = "delivery"
	}

	return &Consumers{
		cfg:      cfg,
		handlers: handlers,
		dlq:      dlq,
		logger:   logger.With("component", "nsq_consumers"),
	}
}

// Start subscribes to all inbound topics. The public_key topic uses an
// ephemeral channel per instance so every replica receives each announcement.
func (c *Consumers) Start(ctx context.Context) error {
	subscriptions := []struct {
		topic   string
		channel string
		handle  func(*gonsq.Message) error
	}{
		{TopicCreate, c.cfg.Channel, c.handlers.HandleCreate},
		{TopicUpdateStatus, c.cfg.Channel, c.handlers.HandleUpdateStatus},
		{TopicStart, c.cfg.Channel, c.handlers.HandleStart},
		{TopicCancel, c.cfg.Channel, c.handlers.HandleCancel},
		{TopicPublicKey, FanoutChannel(c.cfg.Channel), c.handlers.HandlePublicKey},
	}

	for _, s := range subscriptions {
		if err := c.subscribe(s.topic, s.channel, s.handle); err != nil {
			c.Stop()
			return err
		}
		c.logger.InfoContext(ctx, "Subscribed", "topic", s.topic, "channel", s.channel)
	}

	return nil
}

func (c *Consumers) subscribe(topic, channel string, handle func(*gonsq.Message) error) error {
	conf := gonsq.NewConfig()
	conf.MaxAttempts = c.cfg.MaxAttempts
	conf.MaxInFlight = c.cfg.MaxInFlight

	consumer, err := gonsq.NewConsumer(topic, channel, conf)
	if err != nil {
		return fmt.Errorf("create consumer for %s: %w", topic, err)
	}
	consumer.SetLogger(nsqlog.New(c.logger), nsqlog.Level(c.cfg.LogLevel))
	consumer.AddConcurrentHandlers(c.wrap(topic, handle), c.cfg.MaxInFlight)

	if c.cfg.LookupdHTTPAddr != "" {
		err = consumer.ConnectToNSQLookupd(c.cfg.LookupdHTTPAddr)
	} else {
		err = consumer.ConnectToNSQD(c.cfg.NsqdTCPAddr)
	}
	if err != nil {
		consumer.Stop()
		return fmt.Errorf("connect consumer for %s: %w", topic, err)
	}

	c.consumers = append(c.consumers, consumer)
	return nil
}

func (c *Consumers) wrap(topic string, handle func(*gonsq.Message) error) gonsq.Handler {
	var dlq DeadLetterPublisher
	if c.cfg.DeadLetterEnabled {
		dlq = c.dlq
	}
	return &deadLetterHandler{topic: topic, handle: handle, dlq: dlq, logger: c.logger}
}

// Stop disconnects every consumer and waits until in-flight handlers return.
func (c *Consumers) Stop() {
	for _, consumer := range c.consumers {
		consumer.Stop()
	}
	for _, consumer := range c.consumers {
		select {
		case <-consumer.StopChan:
		case <-time.After(30 * time.Second):
			c.logger.Warn("Consumer did not stop in time")
		}
	}
	c.consumers = nil
}

// FanoutChannel returns a channel name unique to this process. NSQ deletes
// ephemeral channels once the last client disconnects.
func FanoutChannel(base string) string {
	return fmt.Sprintf("%s-%s#ephemeral", base, uuid.NewString()[:8])
}

// DeadLetterTopic is where messages of topic go after the last attempt.
func DeadLetterTopic(topic string) string {
	return topic + "_dlq"
}

// deadLetterHandler implements nsq.FailedMessageLogger: go-nsq calls
// LogFailedMessage instead of HandleMessage once a message has been
// attempted more than MaxAttempts times.
type deadLetterHandler struct {
	topic  string
	handle func(*gonsq.Message) error
	dlq    DeadLetterPublisher
	logger *slog.Logger
}

func (h *deadLetterHandler) HandleMessage(m *gonsq.Message) error {
	return h.handle(m)
}

func (h *deadLetterHandler) LogFailedMessage(m *gonsq.Message) {
	metrics.RecordConsumed(h.topic, "dlq")
	if h.dlq == nil {
		h.logger.Error("Giving up on message", "topic", h.topic, "attempts", m.Attempts, "body", string(m.Body))
		return
	}

	target := DeadLetterTopic(h.topic)
	if err := h.dlq.PublishRaw(target, m.Body); err != nil {
		h.logger.Error("Dead letter publish failed", "topic", target, "error", err, "body", string(m.Body))
		return
	}
	h.logger.Warn("Message moved to dead letter topic", "topic", target, "attempts", m.Attempts)
}
