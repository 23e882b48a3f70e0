package config

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// New loads the .env file when present and parses the environment into a Config.
// The returned Config is read-only for the lifetime of the process.
func New() (*Config, error) {
	var Config Config
	err := godotenv.Load(".env")
	if err != nil {
		logrus.Warn("Error can't get the environment variables by file")
	}
	if err := env.Parse(&Config); err != nil {
		return nil, fmt.Errorf("error initializing config: %w", err)
	}
	return &Config, nil
}

type Config struct {
	APP
	Gateway
	Customer
	Twilio
	Kafka
	Telemetry
}

type APP struct {
	PORT            string        `env:"APP_PORT" envDefault:"8080"`
	Name            string        `env:"APP_NAME" envDefault:"payment-relay"`
	AllowedOrigin   string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"http://localhost:5173"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Gateway holds the credentials and endpoints of the payment provider.
type Gateway struct {
	APIKey              string        `env:"API_KEY,required"`
	MerchantID          string        `env:"MERCHANT_ID,required"`
	PaymentURL          string        `env:"PAYMENT_API_URL,required"`
	OrderStatusURL      string        `env:"ORDER_STATUS_API_URL,required"`
	PaymentPageClientID string        `env:"PAYMENT_PAGE_CLIENT_ID"`
	ReturnURL           string        `env:"RETURN_URL"`
	APIVersion          string        `env:"ORDER_STATUS_API_VERSION" envDefault:"2023-06-30"`
	UserAgent           string        `env:"GATEWAY_USER_AGENT" envDefault:"PostmanRuntime/7.29.2"`
	Currency            string        `env:"PAYMENT_CURRENCY" envDefault:"INR"`
	Timeout             time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"30s"`
}

// Customer holds the identity used when a payment request does not carry its own.
type Customer struct {
	Email     string `env:"CUSTOMER_EMAIL"`
	Phone     string `env:"CUSTOMER_PHONE"`
	FirstName string `env:"CUSTOMER_FIRST_NAME"`
	LastName  string `env:"CUSTOMER_LAST_NAME"`
	IDPrefix  string `env:"CUSTOMER_ID_PREFIX" envDefault:"customer_"`
}

type Twilio struct {
	AccountSID     string        `env:"TWILIO_ACCOUNT_SID"`
	AuthToken      string        `env:"TWILIO_AUTH_TOKEN"`
	WhatsAppNumber string        `env:"TWILIO_WHATSAPP_NUMBER"`
	BaseURL        string        `env:"TWILIO_API_BASE_URL" envDefault:"https://api.twilio.com"`
	ChannelPrefix  string        `env:"NOTIFY_CHANNEL_PREFIX" envDefault:"whatsapp:"`
	CountryCode    string        `env:"NOTIFY_COUNTRY_CODE" envDefault:"91"`
	Timeout        time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"15s"`
}

type Kafka struct {
	Enabled                   bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers                   string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	NotificationConsumerGroup string `env:"KAFKA_NOTIFICATION_GROUP_ID" envDefault:"payment-relay-notifier"`
	NotificationTopic         string `env:"KAFKA_NOTIFICATION_TOPIC" envDefault:"notifications.requested"`
	DLQTopic                  string `env:"KAFKA_DLQ_TOPIC" envDefault:"notifications.dlq"`

	RetryMaxAttempts int           `env:"KAFKA_RETRY_MAX_ATTEMPTS" envDefault:"5"`
	RetryBaseDelay   time.Duration `env:"KAFKA_RETRY_BASE_DELAY" envDefault:"100ms"`
	RetryMaxDelay    time.Duration `env:"KAFKA_RETRY_MAX_DELAY" envDefault:"10s"`
	RetryJitter      bool          `env:"KAFKA_RETRY_JITTER" envDefault:"true"`
}

type Telemetry struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"json"`
	LokiURL      string `env:"LOKI_URL"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
}

func (k Kafka) GetRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: k.RetryMaxAttempts,
		BaseDelay:   k.RetryBaseDelay,
		MaxDelay:    k.RetryMaxDelay,
		Jitter:      k.RetryJitter,
	}
}

// Backoff returns the wait before retry number attempt (0 based): BaseDelay doubled per attempt,
// capped at MaxDelay, then spread by -15%..+15% when Jitter is set.
func (r RetryConfig) Backoff(attempt int) time.Duration {
	delay := time.Duration(math.Pow(2, float64(attempt))) * r.BaseDelay

	if delay > r.MaxDelay {
		delay = r.MaxDelay
	}

	if r.Jitter {
		jitter := time.Duration(rand.Float64() * float64(delay) * 0.3)
		delay = delay + jitter - time.Duration(float64(delay)*0.15)
	}

	return delay
}

// WithDefaults fills unset retry fields with the publisher defaults.
func (r RetryConfig) WithDefaults() RetryConfig {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 5
	}
	if r.BaseDelay == 0 {
		r.BaseDelay = 100 * time.Millisecond
	}
	if r.MaxDelay == 0 {
		r.MaxDelay = 10 * time.Second
	}
	return r
}
