package payment_processed

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type paymentDispatcher interface {
	PaymentProcessed(ctx context.Context, event *models.PaymentProcessedEvent) models.DispatchOutcome
}

type Handler struct {
	log        logger.Logger
	dispatcher paymentDispatcher
}

func NewHandler(log logger.Logger, dispatcher paymentDispatcher) *Handler {
	return &Handler{
		log:        log,
		dispatcher: dispatcher,
	}
}

func (h *Handler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	const op = "delivery.kafka.payment_processed.Handle"

	var event models.PaymentProcessedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.log.ErrorContext(ctx, op,
			logger.String("decode error", err.Error()),
			logger.String("topic", msg.Topic),
		)
		return nil
	}

	outcome := h.dispatcher.PaymentProcessed(ctx, &event)
	if outcome.Failed() {
		h.log.WarnContext(ctx, op,
			logger.String("event_uuid", event.UUID()),
			logger.String("payment_uuid", event.PaymentUUID.String()),
			logger.String("result", "one or more channels failed"),
		)
	}

	return nil
}
