package app_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeffleon2/draftea-payment-relay/config"
	"github.com/jeffleon2/draftea-payment-relay/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstream struct {
	mu       sync.Mutex
	status   int
	body     string
	requests []*http.Request
	forms    []url.Values
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	form, _ := url.ParseQuery(string(raw))

	u.mu.Lock()
	u.requests = append(u.requests, r)
	u.forms = append(u.forms, form)
	status, body := u.status, u.body
	u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (u *upstream) calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}

type testEnv struct {
	app     *app.App
	gateway *upstream
	twilio  *upstream
}

func newTestEnv(t *testing.T, gatewayStatus int, gatewayBody string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw := &upstream{status: gatewayStatus, body: gatewayBody}
	gwServer := httptest.NewServer(gw)
	t.Cleanup(gwServer.Close)

	tw := &upstream{status: http.StatusCreated, body: `{"sid":"SM1"}`}
	twServer := httptest.NewServer(tw)
	t.Cleanup(twServer.Close)

	cfg := &config.Config{
		APP: config.APP{PORT: "0", Name: "payment-relay-test", AllowedOrigin: "http://localhost:5173", ShutdownTimeout: time.Second},
		Gateway: config.Gateway{
			APIKey:         "key",
			MerchantID:     "merchant",
			PaymentURL:     gwServer.URL + "/session",
			OrderStatusURL: gwServer.URL + "/orders",
			APIVersion:     "2023-06-30",
			Currency:       "INR",
			Timeout:        2 * time.Second,
		},
		Customer: config.Customer{Phone: "9876543210", Email: "buyer@example.com", IDPrefix: "customer_"},
		Twilio: config.Twilio{
			AccountSID:     "AC123",
			AuthToken:      "token",
			WhatsAppNumber: "whatsapp:+14155238886",
			BaseURL:        twServer.URL,
			ChannelPrefix:  "whatsapp:",
			CountryCode:    "91",
			Timeout:        2 * time.Second,
		},
	}

	a := &app.App{}
	a.Initialize(cfg)
	return &testEnv{app: a, gateway: gw, twilio: tw}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	e.app.Router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	e.app.Close(ctx)
}

func TestApp_Preflight(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)

	w := env.do(http.MethodOptions, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, 0, env.gateway.calls())
}

func TestApp_InitiatePaymentSendsOneNotification(t *testing.T) {
	raw := `{"status":"NEW","payment_links":{"web":"https://pay.example/abc","expiry":"2099-01-01T00:00:00Z"}}`
	env := newTestEnv(t, http.StatusOK, raw)

	w := env.do(http.MethodPost, "/", `{"action":"initiatePayment","amount":"500"}`)
	env.drain(t)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, raw, w.Body.String())
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	require.Equal(t, 1, env.gateway.calls())
	assert.Equal(t, "/session", env.gateway.requests[0].URL.Path)
	assert.Equal(t, "merchant", env.gateway.requests[0].Header.Get("x-merchantid"))

	require.Equal(t, 1, env.twilio.calls())
	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", env.twilio.requests[0].URL.Path)
	assert.Equal(t, "whatsapp:+919876543210", env.twilio.forms[0].Get("To"))
	assert.Contains(t, env.twilio.forms[0].Get("Body"), "https://pay.example/abc")
}

func TestApp_InitiatePaymentWithoutLink(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"status":"NEW"}`)

	w := env.do(http.MethodPost, "/payments", `{"action":"initiatePayment","amount":100}`)
	env.drain(t)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Payment link not found in the response"}`, w.Body.String())
	assert.Equal(t, 0, env.twilio.calls())
}

func TestApp_InitiatePaymentUpstreamRejection(t *testing.T) {
	env := newTestEnv(t, http.StatusPaymentRequired, `{"error_code":"LIMIT"}`)

	w := env.do(http.MethodPost, "/", `{"action":"initiatePayment","amount":100}`)
	env.drain(t)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.JSONEq(t, `{"error":"Failed to initiate payment","response":{"error_code":"LIMIT"}}`, w.Body.String())
	assert.Equal(t, 0, env.twilio.calls())
}

func TestApp_GetOrderStatus(t *testing.T) {
	raw := `{"order_id":"order_1","status":"CHARGED","amount":500,"customer_id":"cust_1","customer_phone":"9876543210","payment_links":{"web":"https://pay.example/abc"}}`
	env := newTestEnv(t, http.StatusOK, raw)

	w := env.do(http.MethodPost, "/", `{"action":"getOrderStatus","order_id":"order_1","customer_id":"cust_1"}`)
	env.drain(t)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, raw, w.Body.String())
	require.Equal(t, 1, env.gateway.calls())
	assert.Equal(t, "/orders/order_1", env.gateway.requests[0].URL.Path)
	assert.Equal(t, "cust_1", env.gateway.requests[0].Header.Get("x-customerid"))
	assert.Equal(t, 1, env.twilio.calls())
}

func TestApp_MissingActionNeverReachesGateway(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)

	w := env.do(http.MethodPost, "/", `{"amount":100}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Action parameter is required"}`, w.Body.String())
	assert.Equal(t, 0, env.gateway.calls())
}

func TestApp_OperationalRoutes(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)

	health := env.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, health.Code)

	metricsResp := env.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, metricsResp.Code)
	assert.Contains(t, metricsResp.Body.String(), "go_goroutines")
}
