package subscriber

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jeffleon2/draftea-payment-relay/config"
	"github.com/jeffleon2/draftea-payment-relay/internal/models"
	"github.com/jeffleon2/draftea-payment-relay/internal/notifier/mocks"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func retryConfig(attempts int) config.RetryConfig {
	return config.RetryConfig{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestProcessMessage_SucceedsWithoutDLQ(t *testing.T) {
	mockPublisher := mocks.NewMockPublisher(t)
	consumer := &KafkaConsumer{DLQPublisher: mockPublisher, DLQTopic: "notifications.dlq", RetryConfig: retryConfig(3)}
	calls := 0

	consumer.processMessage(context.Background(), kafka.Message{Topic: "notifications.requested", Value: []byte(`{}`)},
		func(ctx context.Context, topic string, value []byte) error {
			calls++
			if calls < 2 {
				return errors.New("provider down")
			}
			return nil
		})

	assert.Equal(t, 2, calls)
	mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessMessage_ExhaustedGoesToDLQ(t *testing.T) {
	mockPublisher := mocks.NewMockPublisher(t)
	consumer := &KafkaConsumer{DLQPublisher: mockPublisher, DLQTopic: "notifications.dlq", RetryConfig: retryConfig(3)}
	msg := kafka.Message{Topic: "notifications.requested", Key: []byte("k1"), Value: []byte(`{"phone":"9876543210"}`)}
	calls := 0

	mockPublisher.EXPECT().
		Publish(mock.Anything, "notifications.dlq", mock.MatchedBy(func(m models.DLQMessage) bool {
			return m.OriginalTopic == "notifications.requested" &&
				m.Key == "k1" &&
				m.Value == `{"phone":"9876543210"}` &&
				m.Attempts == 3
		})).
		Return(nil).
		Once()

	consumer.processMessage(context.Background(), msg, func(ctx context.Context, topic string, value []byte) error {
		calls++
		return errors.New("provider down")
	})

	assert.Equal(t, 3, calls)
}

func TestProcessMessage_UnprocessableSkipsRetries(t *testing.T) {
	mockPublisher := mocks.NewMockPublisher(t)
	consumer := &KafkaConsumer{DLQPublisher: mockPublisher, DLQTopic: "notifications.dlq", RetryConfig: retryConfig(5)}
	calls := 0

	mockPublisher.EXPECT().
		Publish(mock.Anything, "notifications.dlq", mock.MatchedBy(func(m models.DLQMessage) bool {
			return m.Attempts == 1 && m.Error == "unprocessable event: no phone"
		})).
		Return(nil).
		Once()

	consumer.processMessage(context.Background(), kafka.Message{Topic: "notifications.requested", Value: []byte(`{}`)},
		func(ctx context.Context, topic string, value []byte) error {
			calls++
			return fmt.Errorf("%w: no phone", models.ErrUnprocessableEvent)
		})

	assert.Equal(t, 1, calls)
}

func TestProcessMessage_ShutdownDuringBackoffStillDeadLetters(t *testing.T) {
	mockPublisher := mocks.NewMockPublisher(t)
	consumer := &KafkaConsumer{
		DLQPublisher: mockPublisher,
		DLQTopic:     "notifications.dlq",
		RetryConfig:  config.RetryConfig{MaxAttempts: 5, BaseDelay: time.Minute, MaxDelay: time.Minute},
	}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	mockPublisher.EXPECT().
		Publish(mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), "notifications.dlq",
			mock.MatchedBy(func(m models.DLQMessage) bool { return m.Attempts == 1 && m.Error == "provider down" })).
		Return(nil).
		Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.processMessage(ctx, kafka.Message{Topic: "notifications.requested", Value: []byte(`{}`)},
			func(ctx context.Context, topic string, value []byte) error {
				calls++
				cancel()
				return errors.New("provider down")
			})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("processMessage kept waiting after shutdown")
	}
	assert.Equal(t, 1, calls)
}

type fakeReader struct {
	mu       sync.Mutex
	messages []kafka.Message
	closed   bool
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.messages) > 0 {
		msg := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func TestListen_DispatchesUntilCancelled(t *testing.T) {
	reader := &fakeReader{messages: []kafka.Message{
		{Topic: "notifications.requested", Value: []byte(`1`)},
		{Topic: "notifications.requested", Value: []byte(`2`)},
	}}
	consumer := &KafkaConsumer{Readers: []MessageReader{reader}, RetryConfig: retryConfig(1)}
	received := make(chan string, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer.Listen(ctx, func(ctx context.Context, topic string, value []byte) error {
		received <- string(value)
		return nil
	})

	for _, want := range []string{"1", "2"} {
		select {
		case got := <-received:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatal("message not dispatched")
		}
	}

	cancel()
	require.NoError(t, consumer.Close())
	assert.True(t, reader.closed)
}
