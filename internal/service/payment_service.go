package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jeffleon2/draftea-payment-relay/config"
	"github.com/jeffleon2/draftea-payment-relay/internal/gateway"
	"github.com/jeffleon2/draftea-payment-relay/internal/metrics"
	"github.com/jeffleon2/draftea-payment-relay/internal/models"
	"github.com/sirupsen/logrus"
)

// PaymentGateway is the outbound side of the relay: the payment session and order status APIs.
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, payload *models.PaymentInitiationPayload) (*gateway.Response, error)
	GetOrderStatus(ctx context.Context, orderID, customerID string) (*gateway.Response, error)
}

// Notifier delivers a customer message without blocking the caller.
// Implementations own delivery errors; nothing is reported back.
type Notifier interface {
	Notify(ctx context.Context, msg models.NotificationMessage)
}

// OrderIDGenerator hands out order ids that never repeat within the process.
type OrderIDGenerator interface {
	NewOrderID() string
}

// PaymentService relays payment actions to the gateway and notifies the customer when the gateway answers with a usable link.
type PaymentService struct {
	Gateway  PaymentGateway
	Notifier Notifier
	OrderIDs OrderIDGenerator
	Settings config.Gateway
	Customer config.Customer
}

func NewPaymentService(gw PaymentGateway, notifier Notifier, orderIDs OrderIDGenerator, settings config.Gateway, customer config.Customer) *PaymentService {
	return &PaymentService{
		Gateway:  gw,
		Notifier: notifier,
		OrderIDs: orderIDs,
		Settings: settings,
		Customer: customer,
	}
}

// InitiatePayment opens a payment page session for req.Amount under a fresh order id.
//
// On a 200 answer carrying payment_links.web the customer is sent the link and the gateway body
// is returned untouched. Every other outcome is a *models.RelayError.
func (s *PaymentService) InitiatePayment(ctx context.Context, req *models.PaymentRequest) (*models.RelayResult, error) {
	const action = models.ActionInitiatePayment
	if !req.HasAmount() {
		record(action, metrics.OutcomeBadRequest)
		return nil, models.NewBadRequest(models.MsgAmountRequired)
	}

	payload := s.buildInitiationPayload(req)
	log := logrus.WithFields(logrus.Fields{"action": action, "order_id": payload.OrderID})

	resp, err := s.Gateway.InitiatePayment(ctx, payload)
	if err != nil {
		log.Errorf("[PaymentService-InitiatePayment] gateway call failed: %s", err.Error())
		record(action, metrics.OutcomeTransportError)
		return nil, models.NewTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("[PaymentService-InitiatePayment] gateway rejected the payment")
		record(action, metrics.OutcomeUpstreamError)
		return nil, models.NewUpstreamError(resp.StatusCode, models.MsgInitiatePaymentFailed, resp.Body)
	}

	var session models.InitiationResponse
	if err := json.Unmarshal(resp.Body, &session); err != nil {
		log.Errorf("[PaymentService-InitiatePayment] gateway body is not a session: %s", err.Error())
	}
	link, expiry, ok := session.PaymentURL()
	if !ok {
		record(action, metrics.OutcomeMissingLink)
		return nil, models.NewMissingField(models.MsgPaymentLinkNotFound)
	}

	s.notify(ctx, models.NewPaymentLinkNotification(payload.CustomerPhone, payload.OrderID, link, expiry))
	record(action, metrics.OutcomeRelayed)
	log.Info("[PaymentService-InitiatePayment] payment link issued")

	return &models.RelayResult{StatusCode: http.StatusOK, Body: resp.Body}, nil
}

// GetOrderStatus looks an order up and, when the gateway still lists payment links for it,
// sends the customer a payment confirmation built from the gateway answer.
func (s *PaymentService) GetOrderStatus(ctx context.Context, req *models.PaymentRequest) (*models.RelayResult, error) {
	const action = models.ActionGetOrderStatus
	if !req.HasOrderLookup() {
		record(action, metrics.OutcomeBadRequest)
		return nil, models.NewBadRequest(models.MsgOrderStatusInput)
	}

	orderID, customerID := models.Value(req.OrderID), models.Value(req.CustomerID)
	log := logrus.WithFields(logrus.Fields{"action": action, "order_id": orderID})

	resp, err := s.Gateway.GetOrderStatus(ctx, orderID, customerID)
	if err != nil {
		log.Errorf("[PaymentService-GetOrderStatus] gateway call failed: %s", err.Error())
		record(action, metrics.OutcomeTransportError)
		return nil, models.NewTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("[PaymentService-GetOrderStatus] gateway rejected the lookup")
		record(action, metrics.OutcomeUpstreamError)
		return nil, models.NewUpstreamError(resp.StatusCode, models.MsgOrderStatusFailed, resp.Body)
	}

	var status models.OrderStatusResponse
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		log.Errorf("[PaymentService-GetOrderStatus] gateway body is not an order: %s", err.Error())
	}
	if !status.HasPaymentLinks() {
		record(action, metrics.OutcomeMissingLink)
		return nil, models.NewMissingField(models.MsgOrderStatusLinkMissing)
	}

	s.notify(ctx, models.NewOrderStatusNotification(&status))
	record(action, metrics.OutcomeRelayed)

	return &models.RelayResult{StatusCode: http.StatusOK, Body: resp.Body}, nil
}

func (s *PaymentService) buildInitiationPayload(req *models.PaymentRequest) *models.PaymentInitiationPayload {
	orderID := s.OrderIDs.NewOrderID()

	customerID := models.Value(req.CustomerID)
	if customerID == "" {
		customerID = s.Customer.IDPrefix + uuid.NewString()
	}

	return &models.PaymentInitiationPayload{
		OrderID:             orderID,
		Amount:              req.Amount,
		Currency:            s.Settings.Currency,
		Action:              models.GatewayActionPaymentPage,
		PaymentPageClientID: s.Settings.PaymentPageClientID,
		ReturnURL:           s.Settings.ReturnURL,
		CustomerID:          customerID,
		CustomerEmail:       firstNonEmpty(models.Value(req.CustomerEmail), s.Customer.Email),
		CustomerPhone:       firstNonEmpty(models.Value(req.CustomerPhone), s.Customer.Phone),
		Description:         fmt.Sprintf("Payment for Order #%s", orderID),
		FirstName:           firstNonEmpty(models.Value(req.FirstName), s.Customer.FirstName),
		LastName:            firstNonEmpty(models.Value(req.LastName), s.Customer.LastName),
	}
}

func (s *PaymentService) notify(ctx context.Context, msg models.NotificationMessage) {
	if msg.Phone == "" {
		logrus.WithField("order_id", msg.OrderID).Warn("[PaymentService-notify] no customer phone, notification skipped")
		metrics.NotificationsTotal.WithLabelValues(msg.Kind, metrics.NotificationSkipped).Inc()
		return
	}
	s.Notifier.Notify(ctx, msg)
}

func record(action, outcome string) {
	metrics.RelayActionsTotal.WithLabelValues(action, outcome).Inc()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
