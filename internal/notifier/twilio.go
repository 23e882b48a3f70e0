package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jeffleon2/draftea-payment-relay/config"
	"github.com/jeffleon2/draftea-payment-relay/internal/models"
)

var ErrRejected = errors.New("notification rejected by provider")

// TwilioSender posts messages to the Twilio Messages API on the WhatsApp channel.
type TwilioSender struct {
	httpClient *http.Client
	cfg        config.Twilio
}

func NewTwilioSender(httpClient *http.Client, cfg config.Twilio) *TwilioSender {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &TwilioSender{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

// Destination turns a local number into the provider address, e.g. "whatsapp:+919876543210".
func (s *TwilioSender) Destination(phone string) string {
	return s.cfg.ChannelPrefix + "+" + s.cfg.CountryCode + phone
}

// Send delivers msg and returns the raw provider answer. A non 2xx answer is returned together with ErrRejected.
func (s *TwilioSender) Send(ctx context.Context, msg models.NotificationMessage) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimSuffix(s.cfg.BaseURL, "/"), url.PathEscape(s.cfg.AccountSID))

	form := url.Values{}
	form.Set("From", s.cfg.WhatsAppNumber)
	form.Set("To", s.Destination(msg.Phone))
	form.Set("Body", msg.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error building notification request: %w", err)
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending notification: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading notification response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(body))
	}
	return body, nil
}
