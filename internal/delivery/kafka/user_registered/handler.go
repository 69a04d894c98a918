package user_registered

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type userDispatcher interface {
	UserRegistered(ctx context.Context, event *models.UserRegisteredEvent) models.DispatchOutcome
}

type Handler struct {
	log        logger.Logger
	dispatcher userDispatcher
}

func NewHandler(log logger.Logger, dispatcher userDispatcher) *Handler {
	return &Handler{
		log:        log,
		dispatcher: dispatcher,
	}
}

func (h *Handler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	const op = "delivery.kafka.user_registered.Handle"

	var event models.UserRegisteredEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.log.ErrorContext(ctx, op,
			logger.String("decode error", err.Error()),
			logger.String("topic", msg.Topic),
		)
		return nil
	}

	outcome := h.dispatcher.UserRegistered(ctx, &event)
	if outcome.Failed() {
		h.log.WarnContext(ctx, op,
			logger.String("event_uuid", event.UUID()),
			logger.String("username", event.Username),
			logger.String("result", "one or more channels failed"),
		)
	}

	return nil
}
