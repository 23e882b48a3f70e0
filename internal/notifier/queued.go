package notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jeffleon2/draftea-payment-relay/internal/metrics"
	"github.com/jeffleon2/draftea-payment-relay/internal/models"
	"github.com/jeffleon2/draftea-payment-relay/internal/requestid"
	"github.com/sirupsen/logrus"
)

// Publisher defines the interface for publishing events to Kafka topics.
type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

// QueuedNotifier publishes a NotificationRequestedEvent instead of calling the provider.
// A consumer of Topic performs the actual send, with retries and a dead letter topic.
type QueuedNotifier struct {
	inflight
	Publisher Publisher
	Topic     string
	Timeout   time.Duration
}

func NewQueuedNotifier(publisher Publisher, topic string, timeout time.Duration) *QueuedNotifier {
	return &QueuedNotifier{Publisher: publisher, Topic: topic, Timeout: timeout}
}

func (n *QueuedNotifier) Notify(ctx context.Context, msg models.NotificationMessage) {
	event := models.NotificationRequestedEvent{
		ID:          uuid.NewString(),
		Phone:       msg.Phone,
		Body:        msg.Body,
		Kind:        msg.Kind,
		OrderID:     msg.OrderID,
		RequestID:   requestid.FromContext(ctx),
		RequestedAt: time.Now().UTC(),
	}

	n.detach(ctx, n.Timeout, func(ctx context.Context) {
		log := logrus.WithFields(logrus.Fields{"event_id": event.ID, "order_id": event.OrderID, "topic": n.Topic})
		if err := n.Publisher.Publish(ctx, n.Topic, event); err != nil {
			metrics.NotificationsTotal.WithLabelValues(msg.Kind, metrics.NotificationQueueFailed).Inc()
			log.Errorf("[QueuedNotifier-Notify] notification not queued: %s", err.Error())
			return
		}
		metrics.NotificationsTotal.WithLabelValues(msg.Kind, metrics.NotificationQueued).Inc()
		log.Debug("[QueuedNotifier-Notify] notification queued")
	})
}
