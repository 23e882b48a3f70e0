package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeffleon2/draftea-payment-relay/config"
	"github.com/jeffleon2/draftea-payment-relay/internal/gateway"
	"github.com/jeffleon2/draftea-payment-relay/internal/handlers"
	"github.com/jeffleon2/draftea-payment-relay/internal/metrics"
	"github.com/jeffleon2/draftea-payment-relay/internal/notifier"
	"github.com/jeffleon2/draftea-payment-relay/internal/publisher"
	"github.com/jeffleon2/draftea-payment-relay/internal/requestid"
	"github.com/jeffleon2/draftea-payment-relay/internal/service"
	"github.com/jeffleon2/draftea-payment-relay/internal/subscriber"
	"github.com/jeffleon2/draftea-payment-relay/internal/tracing"
	"github.com/sirupsen/logrus"
)

// drainingNotifier is a notifier whose in-flight sends can be awaited on shutdown.
type drainingNotifier interface {
	service.Notifier
	Wait(ctx context.Context) error
}

type App struct {
	config        *config.Config
	Router        *gin.Engine
	notifier      drainingNotifier
	stopConsumers context.CancelFunc
	closers       []func() error
}

func (a *App) Initialize(cfg *config.Config) {
	a.config = cfg

	gatewayClient := gateway.NewClient(&http.Client{Timeout: cfg.Gateway.Timeout}, cfg.Gateway)
	sender := notifier.NewTwilioSender(&http.Client{Timeout: cfg.Twilio.Timeout}, cfg.Twilio)
	a.notifier = a.initNotifier(sender)

	paymentService := service.NewPaymentService(gatewayClient, a.notifier, service.NewClockOrderIDs(), cfg.Gateway, cfg.Customer)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	a.Router = gin.Default()
	a.Router.Use(
		requestid.Middleware,
		tracing.Middleware(),
		metrics.Middleware,
		CORS(cfg.APP.AllowedOrigin),
	)
	a.RegisterRoutes(paymentHandler)
}

// initNotifier picks direct sends, or the kafka queue plus an in-process consumer when kafka is enabled.
func (a *App) initNotifier(sender *notifier.TwilioSender) drainingNotifier {
	if !a.config.Kafka.Enabled {
		return notifier.NewAsyncNotifier(sender, a.config.Twilio.Timeout)
	}

	retryConfig := a.config.GetRetryConfig()
	topics := []string{a.config.Kafka.NotificationTopic, a.config.Kafka.DLQTopic}
	kafkaPublisher := publisher.NewKafkaPublisher(a.config.Kafka.Brokers, topics, retryConfig)
	a.closers = append(a.closers, kafkaPublisher.Close)

	notificationHandler := handlers.NewNotificationHandler(sender, a.config.Kafka.NotificationTopic)
	a.initSubscribers(notificationHandler, kafkaPublisher, retryConfig)

	publishBudget := kafkaPublisher.RetryConfig.MaxDelay * time.Duration(kafkaPublisher.RetryConfig.MaxAttempts)
	return notifier.NewQueuedNotifier(kafkaPublisher, a.config.Kafka.NotificationTopic, publishBudget)
}

func (a *App) initSubscribers(notificationHandler *handlers.NotificationHandler, dlqPublisher *publisher.KafkaPublisher, retryConfig config.RetryConfig) {
	brokers := strings.Split(a.config.Kafka.Brokers, ",")
	topics := []string{a.config.Kafka.NotificationTopic}
	groupID := a.config.Kafka.NotificationConsumerGroup

	consumer := subscriber.NewMultiTopicConsumer(brokers, topics, groupID, dlqPublisher, a.config.Kafka.DLQTopic, retryConfig)
	a.closers = append(a.closers, consumer.Close)

	ctx, cancel := context.WithCancel(context.Background())
	a.stopConsumers = cancel
	consumer.Listen(ctx, func(ctx context.Context, topic string, value []byte) error {
		logrus.Debugf("[App-initSubscribers] received message topic=%s", topic)
		return notificationHandler.HandleEvents(ctx, topic, value)
	})
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", a.config.APP.PORT),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("[App-Run] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.Close(context.Background())
		return err
	case <-ctx.Done():
	}

	logrus.Info("[App-Run] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.APP.ShutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	a.Close(shutdownCtx)
	return err
}

// Close stops consumers, waits for pending notifications and releases kafka clients.
func (a *App) Close(ctx context.Context) {
	if a.stopConsumers != nil {
		a.stopConsumers()
	}
	if a.notifier != nil {
		if err := a.notifier.Wait(ctx); err != nil {
			logrus.Warnf("[App-Close] pending notifications abandoned: %s", err.Error())
		}
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			logrus.Errorf("[App-Close] %s", err.Error())
		}
	}
	a.closers = nil
}
