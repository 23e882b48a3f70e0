package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jeffleon2/draftea-payment-relay/internal/models"
	"github.com/jeffleon2/draftea-payment-relay/internal/notifier"
	"github.com/jeffleon2/draftea-payment-relay/internal/requestid"
	"github.com/sirupsen/logrus"
)

type NotificationSender interface {
	Send(ctx context.Context, msg models.NotificationMessage) ([]byte, error)
}

// NotificationHandler consumes queued notification events and sends them.
type NotificationHandler struct {
	Sender NotificationSender
	Topic  string
}

func NewNotificationHandler(sender NotificationSender, topic string) *NotificationHandler {
	return &NotificationHandler{Sender: sender, Topic: topic}
}

// HandleEvents returns an error for every message that failed. Errors wrapping
// models.ErrUnprocessableEvent are not worth retrying.
func (h *NotificationHandler) HandleEvents(ctx context.Context, topic string, value []byte) error {
	switch topic {
	case h.Topic:
		var event models.NotificationRequestedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			logrus.Errorf("Error parsing notification event %s", err.Error())
			return fmt.Errorf("%w: error parsing notification event: %w", models.ErrUnprocessableEvent, err)
		}
		if event.Phone == "" {
			return fmt.Errorf("%w: notification event %s has no phone", models.ErrUnprocessableEvent, event.ID)
		}
		if event.RequestID != "" {
			ctx = requestid.NewContext(ctx, event.RequestID)
		}
		return notifier.Deliver(ctx, h.Sender, event.Message())
	default:
		logrus.Errorf("topic not allowed %s", topic)
		return fmt.Errorf("topic not allowed %s", topic)
	}
}
