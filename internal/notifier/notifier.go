package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/jeffleon2/draftea-payment-relay/internal/metrics"
	"github.com/jeffleon2/draftea-payment-relay/internal/models"
	"github.com/jeffleon2/draftea-payment-relay/internal/requestid"
	"github.com/sirupsen/logrus"
)

// MessageSender hands one message to the messaging provider.
type MessageSender interface {
	Send(ctx context.Context, msg models.NotificationMessage) ([]byte, error)
}

// Deliver sends msg and records the outcome. The error is returned for callers that retry.
func Deliver(ctx context.Context, sender MessageSender, msg models.NotificationMessage) error {
	log := logrus.WithFields(logrus.Fields{
		"order_id":   msg.OrderID,
		"kind":       msg.Kind,
		"request_id": requestid.FromContext(ctx),
	})

	if _, err := sender.Send(ctx, msg); err != nil {
		metrics.NotificationsTotal.WithLabelValues(msg.Kind, metrics.NotificationFailed).Inc()
		log.Errorf("[Notifier-Deliver] notification not delivered: %s", err.Error())
		return err
	}

	metrics.NotificationsTotal.WithLabelValues(msg.Kind, metrics.NotificationSent).Inc()
	log.Info("[Notifier-Deliver] notification delivered")
	return nil
}

// inflight tracks detached goroutines so shutdown can wait for them.
type inflight struct {
	wg sync.WaitGroup
}

// detach runs fn on its own goroutine with a context that survives the request but is bounded by timeout.
func (f *inflight) detach(ctx context.Context, timeout time.Duration, fn func(ctx context.Context)) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		var (
			detached context.Context
			cancel   context.CancelFunc
		)
		if timeout > 0 {
			detached, cancel = context.WithTimeout(context.WithoutCancel(ctx), timeout)
		} else {
			detached, cancel = context.WithCancel(context.WithoutCancel(ctx))
		}
		defer cancel()
		fn(detached)
	}()
}

// Wait blocks until every detached send finished or ctx is done.
func (f *inflight) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AsyncNotifier sends each message straight to the provider from a detached goroutine.
type AsyncNotifier struct {
	inflight
	Sender  MessageSender
	Timeout time.Duration
}

func NewAsyncNotifier(sender MessageSender, timeout time.Duration) *AsyncNotifier {
	return &AsyncNotifier{Sender: sender, Timeout: timeout}
}

func (n *AsyncNotifier) Notify(ctx context.Context, msg models.NotificationMessage) {
	n.detach(ctx, n.Timeout, func(ctx context.Context) {
		_ = Deliver(ctx, n.Sender, msg)
	})
}
