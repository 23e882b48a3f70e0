package notifier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jeffleon2/draftea-payment-relay/internal/models"
	"github.com/jeffleon2/draftea-payment-relay/internal/notifier"
	"github.com/jeffleon2/draftea-payment-relay/internal/notifier/mocks"
	"github.com/jeffleon2/draftea-payment-relay/internal/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, w interface{ Wait(context.Context) error }) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, w.Wait(ctx))
}

func TestDeliver_ReturnsSenderError(t *testing.T) {
	mockSender := mocks.NewMockMessageSender(t)
	msg := models.NotificationMessage{Phone: "9876543210", Body: "hi", Kind: models.NotificationKindPaymentLink}
	sendErr := errors.New("provider down")

	mockSender.EXPECT().Send(mock.Anything, msg).Return(nil, sendErr).Once()

	err := notifier.Deliver(context.Background(), mockSender, msg)

	assert.Equal(t, sendErr, err)
}

func TestAsyncNotifier_SendsOnce(t *testing.T) {
	mockSender := mocks.NewMockMessageSender(t)
	asyncNotifier := notifier.NewAsyncNotifier(mockSender, time.Second)
	msg := models.NewPaymentLinkNotification("9876543210", "order_1", "https://pay.example/x", "2099-01-01")

	mockSender.EXPECT().Send(mock.Anything, msg).Return([]byte(`{"sid":"SM1"}`), nil).Once()

	asyncNotifier.Notify(context.Background(), msg)
	waitFor(t, asyncNotifier)
}

func TestAsyncNotifier_SurvivesRequestCancellation(t *testing.T) {
	mockSender := mocks.NewMockMessageSender(t)
	asyncNotifier := notifier.NewAsyncNotifier(mockSender, time.Second)
	msg := models.NotificationMessage{Phone: "9876543210", Body: "hi"}

	mockSender.EXPECT().
		Send(mock.MatchedBy(func(ctx context.Context) bool {
			_, hasDeadline := ctx.Deadline()
			return ctx.Err() == nil && hasDeadline && requestid.FromContext(ctx) == "req-1"
		}), msg).
		Return(nil, nil).
		Once()

	ctx, cancel := context.WithCancel(requestid.NewContext(context.Background(), "req-1"))
	cancel()
	asyncNotifier.Notify(ctx, msg)
	waitFor(t, asyncNotifier)
}

func TestAsyncNotifier_SendContextIsReleased(t *testing.T) {
	for _, timeout := range []time.Duration{0, time.Minute} {
		mockSender := mocks.NewMockMessageSender(t)
		asyncNotifier := notifier.NewAsyncNotifier(mockSender, timeout)
		msg := models.NewPaymentLinkNotification("9876543210", "order_1", "https://pay.example/x", "2099-01-01")
		var sendCtx context.Context

		mockSender.EXPECT().
			Send(mock.Anything, msg).
			Run(func(ctx context.Context, _ models.NotificationMessage) { sendCtx = ctx }).
			Return([]byte(`{}`), nil).
			Once()

		asyncNotifier.Notify(context.Background(), msg)
		waitFor(t, asyncNotifier)

		require.NotNil(t, sendCtx)
		_, hasDeadline := sendCtx.Deadline()
		assert.Equal(t, timeout > 0, hasDeadline, timeout)
		assert.ErrorIs(t, sendCtx.Err(), context.Canceled, timeout)
	}
}

func TestAsyncNotifier_SwallowsFailures(t *testing.T) {
	mockSender := mocks.NewMockMessageSender(t)
	asyncNotifier := notifier.NewAsyncNotifier(mockSender, time.Second)
	msg := models.NotificationMessage{Phone: "9876543210", Body: "hi"}

	mockSender.EXPECT().Send(mock.Anything, msg).Return(nil, notifier.ErrRejected).Once()

	assert.NotPanics(t, func() { asyncNotifier.Notify(context.Background(), msg) })
	waitFor(t, asyncNotifier)
}

func TestAsyncNotifier_WaitHonoursContext(t *testing.T) {
	mockSender := mocks.NewMockMessageSender(t)
	asyncNotifier := notifier.NewAsyncNotifier(mockSender, 0)
	release := make(chan struct{})
	msg := models.NotificationMessage{Phone: "9876543210", Body: "hi"}

	mockSender.EXPECT().
		Send(mock.Anything, msg).
		Run(func(context.Context, models.NotificationMessage) { <-release }).
		Return(nil, nil).
		Once()

	asyncNotifier.Notify(context.Background(), msg)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, asyncNotifier.Wait(ctx), context.DeadlineExceeded)

	close(release)
	waitFor(t, asyncNotifier)
}

func TestQueuedNotifier_PublishesEvent(t *testing.T) {
	mockPublisher := mocks.NewMockPublisher(t)
	queued := notifier.NewQueuedNotifier(mockPublisher, "notifications.requested", time.Second)
	msg := models.NewPaymentLinkNotification("9876543210", "order_1", "https://pay.example/x", "2099-01-01")

	mockPublisher.EXPECT().
		Publish(mock.Anything, "notifications.requested", mock.MatchedBy(func(evt models.NotificationRequestedEvent) bool {
			return evt.ID != "" &&
				evt.Phone == msg.Phone &&
				evt.Body == msg.Body &&
				evt.Kind == models.NotificationKindPaymentLink &&
				evt.OrderID == "order_1" &&
				evt.RequestID == "req-1" &&
				!evt.RequestedAt.IsZero() &&
				evt.Message() == msg
		})).
		Return(nil).
		Once()

	queued.Notify(requestid.NewContext(context.Background(), "req-1"), msg)
	waitFor(t, queued)
}

func TestQueuedNotifier_SwallowsPublishFailure(t *testing.T) {
	mockPublisher := mocks.NewMockPublisher(t)
	queued := notifier.NewQueuedNotifier(mockPublisher, "notifications.requested", time.Second)

	mockPublisher.EXPECT().
		Publish(mock.Anything, "notifications.requested", mock.AnythingOfType("models.NotificationRequestedEvent")).
		Return(errors.New("kafka unavailable")).
		Once()

	queued.Notify(context.Background(), models.NotificationMessage{Phone: "9876543210", Body: "hi"})
	waitFor(t, queued)
}
