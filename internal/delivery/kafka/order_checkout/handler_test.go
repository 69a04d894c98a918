package order_checkout

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
	called  int
	event   *models.OrderCheckoutEvent
	outcome models.DispatchOutcome
}

func (f *fakeDispatcher) OrderCheckout(_ context.Context, event *models.OrderCheckoutEvent) models.DispatchOutcome {
	f.called++
	f.event = event
	return f.outcome
}

func TestHandle(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	handler := NewHandler(logger.SetupLogger("local"), dispatcher)

	event := models.OrderCheckoutEvent{
		SchemaVersion: models.SchemaVersion,
		EventUUID:     uuid.New(),
		OrderUUID:     uuid.New(),
		FirstName:     "علی",
		EmailAddress:  "ali@example.com",
		TotalPrice:    150000,
	}

	value, err := json.Marshal(event)
	require.NoError(t, err)

	err = handler.Handle(context.Background(), &sarama.ConsumerMessage{
		Topic: "order.checkout",
		Value: value,
	})

	require.NoError(t, err)
	require.Equal(t, 1, dispatcher.called)
	require.Equal(t, event.EventUUID, dispatcher.event.EventUUID)
	require.Equal(t, uint64(150000), dispatcher.event.TotalPrice)
}

func TestHandle_MalformedMessageDropped(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	handler := NewHandler(logger.SetupLogger("local"), dispatcher)

	err := handler.Handle(context.Background(), &sarama.ConsumerMessage{
		Topic: "order.checkout",
		Value: []byte("not json"),
	})

	// nil keeps the offset committable: redelivery cannot fix a poison message.
	require.NoError(t, err)
	require.Zero(t, dispatcher.called)
}

func TestHandle_FailedOutcomeStillCommits(t *testing.T) {
	failed := models.SendFailed("email failed", "smtp down")
	dispatcher := &fakeDispatcher{outcome: models.DispatchOutcome{Email: &failed}}
	handler := NewHandler(logger.SetupLogger("local"), dispatcher)

	value, err := json.Marshal(models.OrderCheckoutEvent{EventUUID: uuid.New()})
	require.NoError(t, err)

	err = handler.Handle(context.Background(), &sarama.ConsumerMessage{Value: value})

	require.NoError(t, err)
	require.Equal(t, 1, dispatcher.called)
}
