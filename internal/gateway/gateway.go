package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jeffleon2/draftea-payment-relay/config"
	"github.com/jeffleon2/draftea-payment-relay/internal/metrics"
	"github.com/jeffleon2/draftea-payment-relay/internal/models"
	"github.com/jeffleon2/draftea-payment-relay/internal/tracing"
	"github.com/sirupsen/logrus"
)

const (
	OperationInitiatePayment = "initiate_payment"
	OperationOrderStatus     = "order_status"
)

// Response is an upstream answer kept raw so it can be relayed unchanged.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client talks to the payment gateway session and order status APIs.
type Client struct {
	httpClient *http.Client
	cfg        config.Gateway
}

func NewClient(httpClient *http.Client, cfg config.Gateway) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

// InitiatePayment posts a payment page session request.
func (c *Client) InitiatePayment(ctx context.Context, payload *models.PaymentInitiationPayload) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling payment payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.PaymentURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building payment request: %w", err)
	}
	req.SetBasicAuth(c.cfg.APIKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-merchantid", c.cfg.MerchantID)

	return c.do(req, OperationInitiatePayment)
}

// GetOrderStatus fetches the order identified by orderID on behalf of customerID.
func (c *Client) GetOrderStatus(ctx context.Context, orderID, customerID string) (*Response, error) {
	endpoint := strings.TrimSuffix(c.cfg.OrderStatusURL, "/") + "/" + url.PathEscape(orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error building order status request: %w", err)
	}
	req.Header.Set("version", c.cfg.APIVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-merchantid", c.cfg.MerchantID)
	req.Header.Set("x-customerid", customerID)
	req.SetBasicAuth(c.cfg.APIKey, "")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	return c.do(req, OperationOrderStatus)
}

func (c *Client) do(req *http.Request, operation string) (*Response, error) {
	tracing.Inject(req.Context(), req.Header)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveGateway(operation, 0, time.Since(start))
		logrus.WithField("operation", operation).Errorf("[Gateway-%s] request failed: %s", operation, err.Error())
		return nil, NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.ObserveGateway(operation, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, NewTransportError(fmt.Errorf("reading response body: %w", err))
	}

	logrus.WithFields(logrus.Fields{
		"operation": operation,
		"status":    resp.StatusCode,
	}).Debugf("[Gateway-%s] response received", operation)

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
