package notifier_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jeffleon2/draftea-payment-relay/config"
	"github.com/jeffleon2/draftea-payment-relay/internal/models"
	"github.com/jeffleon2/draftea-payment-relay/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twilioConfig(baseURL string) config.Twilio {
	return config.Twilio{
		AccountSID:     "AC123",
		AuthToken:      "secret",
		WhatsAppNumber: "whatsapp:+14155238886",
		BaseURL:        baseURL,
		ChannelPrefix:  "whatsapp:",
		CountryCode:    "91",
		Timeout:        time.Second,
	}
}

func TestTwilioSender_Destination(t *testing.T) {
	sender := notifier.NewTwilioSender(nil, twilioConfig("https://api.twilio.com"))

	assert.Equal(t, "whatsapp:+919876543210", sender.Destination("9876543210"))
}

func TestTwilioSender_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "whatsapp:+14155238886", r.PostForm.Get("From"))
		assert.Equal(t, "whatsapp:+919876543210", r.PostForm.Get("To"))
		assert.Equal(t, "Your payment link: https://pay.example/x\nExpiry: 2099-01-01", r.PostForm.Get("Body"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
	}))
	defer server.Close()

	sender := notifier.NewTwilioSender(server.Client(), twilioConfig(server.URL+"/"))
	msg := models.NewPaymentLinkNotification("9876543210", "order_1", "https://pay.example/x", "2099-01-01")

	body, err := sender.Send(context.Background(), msg)

	require.NoError(t, err)
	assert.JSONEq(t, `{"sid":"SM1","status":"queued"}`, string(body))
}

func TestTwilioSender_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":20003,"message":"Authenticate"}`))
	}))
	defer server.Close()

	sender := notifier.NewTwilioSender(server.Client(), twilioConfig(server.URL))

	body, err := sender.Send(context.Background(), models.NotificationMessage{Phone: "9876543210", Body: "hi"})

	assert.ErrorIs(t, err, notifier.ErrRejected)
	assert.Contains(t, err.Error(), "401")
	assert.JSONEq(t, `{"code":20003,"message":"Authenticate"}`, string(body))
}

func TestTwilioSender_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	sender := notifier.NewTwilioSender(nil, twilioConfig(baseURL))

	body, err := sender.Send(context.Background(), models.NotificationMessage{Phone: "9876543210", Body: "hi"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, notifier.ErrRejected)
	assert.Nil(t, body)
}
