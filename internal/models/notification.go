package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	NotificationKindPaymentLink = "payment_link"
	NotificationKindOrderStatus = "order_status"
)

// NotificationMessage is a text body addressed to a local phone number.
type NotificationMessage struct {
	Phone   string `json:"phone"`
	Body    string `json:"body"`
	Kind    string `json:"kind"`
	OrderID string `json:"order_id,omitempty"`
}

func NewPaymentLinkNotification(phone, orderID, link, expiry string) NotificationMessage {
	return NotificationMessage{
		Phone:   phone,
		Body:    fmt.Sprintf("Your payment link: %s\nExpiry: %s", link, expiry),
		Kind:    NotificationKindPaymentLink,
		OrderID: orderID,
	}
}

func NewOrderStatusNotification(status *OrderStatusResponse) NotificationMessage {
	return NotificationMessage{
		Phone: Text(status.CustomerPhone),
		Body: fmt.Sprintf(
			"Your Payment status: Successful\nAmount Paid: %s\nOrder ID: %s\nCustomer ID: %s\nCustomer Email: %s",
			Text(status.Amount), Text(status.OrderID), Text(status.CustomerID), Text(status.CustomerEmail),
		),
		Kind:    NotificationKindOrderStatus,
		OrderID: Text(status.OrderID),
	}
}

// NotificationRequestedEvent is published when a notification is handed to the queue instead of being sent inline.
type NotificationRequestedEvent struct {
	ID          string    `json:"id"`
	Phone       string    `json:"phone"`
	Body        string    `json:"body"`
	Kind        string    `json:"kind"`
	OrderID     string    `json:"order_id,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

func (e NotificationRequestedEvent) Message() NotificationMessage {
	return NotificationMessage{
		Phone:   e.Phone,
		Body:    e.Body,
		Kind:    e.Kind,
		OrderID: e.OrderID,
	}
}

// ErrUnprocessableEvent marks an event that can never succeed, so consumers skip retries for it.
var ErrUnprocessableEvent = errors.New("unprocessable event")

type DLQMessage struct {
	OriginalTopic string    `json:"original_topic"`
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	Timestamp     time.Time `json:"timestamp"`
	Attempts      int       `json:"attempts"`
	Error         string    `json:"error,omitempty"`
}
