package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/jeffleon2/draftea-payment-relay/internal/metrics"
	"github.com/jeffleon2/draftea-payment-relay/internal/models"
	"github.com/jeffleon2/draftea-payment-relay/internal/requestid"
	"github.com/sirupsen/logrus"
)

type PaymentService interface {
	InitiatePayment(ctx context.Context, req *models.PaymentRequest) (*models.RelayResult, error)
	GetOrderStatus(ctx context.Context, req *models.PaymentRequest) (*models.RelayResult, error)
}

type PaymentHandler struct {
	Service PaymentService
}

func NewPaymentHandler(s PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: s}
}

// Relay dispatches on the body's action field.
// POST /  (any method except OPTIONS, which the CORS middleware answers)
func (h *PaymentHandler) Relay(c *gin.Context) {
	req, err := decodeRequest(c)
	if err != nil {
		metrics.RelayActionsTotal.WithLabelValues(actionLabel(req.Action), metrics.OutcomeBadRequest).Inc()
		respondError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"action":     req.Action,
		"request_id": requestid.FromContext(c.Request.Context()),
	}).Debug("[PaymentHandler-Relay] request received")

	var result *models.RelayResult
	switch req.Action {
	case models.ActionInitiatePayment:
		result, err = h.Service.InitiatePayment(c.Request.Context(), req)
	case models.ActionGetOrderStatus:
		result, err = h.Service.GetOrderStatus(c.Request.Context(), req)
	default:
		metrics.RelayActionsTotal.WithLabelValues("unknown", metrics.OutcomeBadRequest).Inc()
		err = models.NewUnknownAction(req.Action)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(result.StatusCode, "application/json", result.Body)
}

// decodeRequest reads the JSON body. A body that is not a JSON object, or has no action, is reported as a missing action.
func decodeRequest(c *gin.Context) (*models.PaymentRequest, error) {
	var req models.PaymentRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		logrus.Debugf("[PaymentHandler-decodeRequest] unreadable body: %s", err.Error())
		return &models.PaymentRequest{}, models.NewBadRequest(models.MsgActionRequired)
	}

	req.Sanitize()
	if req.Action == "" {
		return &req, models.NewBadRequest(models.MsgActionRequired)
	}
	return &req, nil
}

func actionLabel(action string) string {
	switch action {
	case models.ActionInitiatePayment, models.ActionGetOrderStatus:
		return action
	case "":
		return "none"
	}
	return "unknown"
}

func respondError(c *gin.Context, err error) {
	var relayErr *models.RelayError
	if !errors.As(err, &relayErr) {
		logrus.Errorf("[PaymentHandler-respondError] unexpected error: %s", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if relayErr.Response != nil {
		c.JSON(relayErr.Status, gin.H{"error": relayErr.Message, "response": relayErr.Response})
		return
	}
	c.JSON(relayErr.Status, gin.H{"error": relayErr.Message})
}

// GET /health
func (h *PaymentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
