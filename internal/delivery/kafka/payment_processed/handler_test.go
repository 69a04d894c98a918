package payment_processed

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type fakeDispatcher struct {
	called int
	event  *models.PaymentProcessedEvent
}

func (f *fakeDispatcher) PaymentProcessed(_ context.Context, event *models.PaymentProcessedEvent) models.DispatchOutcome {
	f.called++
	f.event = event
	return models.DispatchOutcome{}
}

func TestHandle(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	handler := NewHandler(logger.SetupLogger("local"), dispatcher)

	event := models.PaymentProcessedEvent{
		SchemaVersion:        models.SchemaVersion,
		EventUUID:            uuid.New(),
		PaymentUUID:          uuid.New(),
		Status:               models.PaymentStatusFailed,
		FailureReasonPersian: "خطای بانکی",
		EmailAddress:         "ali@example.com",
	}

	value, err := json.Marshal(event)
	require.NoError(t, err)

	err = handler.Handle(context.Background(), &sarama.ConsumerMessage{
		Topic: "payment.processed",
		Value: value,
	})

	require.NoError(t, err)
	require.Equal(t, 1, dispatcher.called)
	require.Equal(t, models.PaymentStatusFailed, dispatcher.event.Status)
	require.Equal(t, "خطای بانکی", dispatcher.event.FailureReasonPersian)
}

func TestHandle_MalformedMessageDropped(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	handler := NewHandler(logger.SetupLogger("local"), dispatcher)

	err := handler.Handle(context.Background(), &sarama.ConsumerMessage{Value: []byte("{")})

	require.NoError(t, err)
	require.Zero(t, dispatcher.called)
}
