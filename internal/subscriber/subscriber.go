package subscriber

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeffleon2/draftea-payment-relay/config"
	"github.com/jeffleon2/draftea-payment-relay/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const dlqPublishTimeout = 10 * time.Second

// Publisher receives messages that exhausted their retries.
type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type KafkaConsumer struct {
	Readers      []MessageReader
	DLQPublisher Publisher
	DLQTopic     string
	RetryConfig  config.RetryConfig
}

func NewMultiTopicConsumer(
	brokers []string,
	topics []string,
	groupID string,
	dlqPublisher Publisher,
	dlqTopic string,
	retryConfig config.RetryConfig,
) *KafkaConsumer {
	readers := make([]MessageReader, len(topics))
	for i, topic := range topics {
		readers[i] = kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		})
	}

	return &KafkaConsumer{
		Readers:      readers,
		DLQPublisher: dlqPublisher,
		DLQTopic:     dlqTopic,
		RetryConfig:  retryConfig.WithDefaults(),
	}
}

// Listen starts one goroutine per reader and returns immediately. Readers stop when ctx is done.
func (c *KafkaConsumer) Listen(ctx context.Context, handler func(ctx context.Context, topic string, value []byte) error) {
	for _, reader := range c.Readers {
		go func(r MessageReader) {
			for {
				msg, err := r.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil || errors.Is(err, context.Canceled) {
						return
					}
					logrus.Errorf("[KafkaConsumer-Listen] read error: %s", err.Error())
					select {
					case <-time.After(c.RetryConfig.BaseDelay):
						continue
					case <-ctx.Done():
						return
					}
				}
				c.processMessage(ctx, msg, handler)
			}
		}(reader)
	}
}

// processMessage retries handler with backoff. Messages that run out of attempts, fail
// permanently, or are interrupted by shutdown go to the DLQ, since their offset is already committed.
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message, handler func(ctx context.Context, topic string, value []byte) error) {
	log := logrus.WithFields(logrus.Fields{"topic": msg.Topic, "key": string(msg.Key), "offset": msg.Offset})

	var err error
	attempts := 0
	for attempts < c.RetryConfig.MaxAttempts {
		attempts++
		err = handler(ctx, msg.Topic, msg.Value)
		if err == nil {
			return
		}

		if errors.Is(err, models.ErrUnprocessableEvent) {
			log.Errorf("[KafkaConsumer-processMessage] unprocessable message, skipping retries: %v", err)
			break
		}
		if attempts == c.RetryConfig.MaxAttempts {
			log.Errorf("[KafkaConsumer-processMessage] handler error, attempt %d/%d: %v", attempts, c.RetryConfig.MaxAttempts, err)
			break
		}

		backoff := c.RetryConfig.Backoff(attempts - 1)
		log.Warnf("[KafkaConsumer-processMessage] handler error, attempt %d/%d: %v. Retrying in %v", attempts, c.RetryConfig.MaxAttempts, err, backoff)
		select {
		case <-time.After(backoff):
			continue
		case <-ctx.Done():
			log.Warn("[KafkaConsumer-processMessage] shutting down before retry")
		}
		break
	}

	c.deadLetter(ctx, msg, attempts, err)
}

func (c *KafkaConsumer) deadLetter(ctx context.Context, msg kafka.Message, attempts int, cause error) {
	log := logrus.WithFields(logrus.Fields{"topic": msg.Topic, "key": string(msg.Key), "offset": msg.Offset})
	if c.DLQPublisher == nil {
		log.Errorf("[KafkaConsumer-deadLetter] no DLQ configured, message dropped after %d attempts", attempts)
		return
	}

	dlqMessage := models.DLQMessage{
		OriginalTopic: msg.Topic,
		Key:           string(msg.Key),
		Value:         string(msg.Value),
		Timestamp:     time.Now().UTC(),
		Attempts:      attempts,
	}
	if cause != nil {
		dlqMessage.Error = cause.Error()
	}

	// The consumer context may already be cancelled; the DLQ write still gets a bounded chance.
	dlqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dlqPublishTimeout)
	defer cancel()
	if err := c.DLQPublisher.Publish(dlqCtx, c.DLQTopic, dlqMessage); err != nil {
		log.Errorf("[KafkaConsumer-deadLetter] failed to send message to DLQ: %v", err)
		return
	}
	log.Infof("[KafkaConsumer-deadLetter] message sent to DLQ %s after %d attempts", c.DLQTopic, attempts)
}

func (c *KafkaConsumer) Close() error {
	var errs []error
	for _, r := range c.Readers {
		if err := r.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing reader: %w", err))
		}
	}
	return errors.Join(errs...)
}
