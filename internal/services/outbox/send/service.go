package send

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/tavakkoli/shop_events_system/internal/config"
	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

const messageSendLimit = 100

type outBoxGetter interface {
	FetchUnprocessedMessages(ctx context.Context, limit int) ([]models.OutBoxMessage, error)
}

type outBoxMarker interface {
	MarkProcessed(ctx context.Context, ids []int) error
}

// Service drains the outbox into Kafka. Sending happens before marking, so a
// crash in between redelivers the batch: consumers must tolerate duplicates.
type Service struct {
	log          logger.Logger
	kafkaConfig  config.KafkaConfig
	producer     sarama.SyncProducer
	outBoxGetter outBoxGetter
	outBoxMarker outBoxMarker
}

func New(
	log logger.Logger,
	kafkaConfig config.KafkaConfig,
	producer sarama.SyncProducer,
	outBoxGetter outBoxGetter,
	outBoxMarker outBoxMarker,
) *Service {
	return &Service{
		log:          log,
		kafkaConfig:  kafkaConfig,
		producer:     producer,
		outBoxGetter: outBoxGetter,
		outBoxMarker: outBoxMarker,
	}
}

func (s *Service) Send(ctx context.Context) error {
	const op = "services.outbox.send.Send"

	messages, err := s.outBoxGetter.FetchUnprocessedMessages(ctx, messageSendLimit)
	if err != nil {
		return fmt.Errorf("%s: fetch unprocessed messages: %w", op, err)
	}

	if len(messages) == 0 {
		s.log.Debug(op, logger.String("result", "outbox empty"))
		return nil
	}

	saramaMessages := make([]*sarama.ProducerMessage, 0, len(messages))
	processedIDs := make([]int, 0, len(messages))

	for _, msg := range messages {
		topic, ok := s.topicFor(models.EventType(msg.EventType))
		if !ok {
			s.log.Warn(op, logger.String("unknown event type", msg.EventType))
			continue
		}

		saramaMessages = append(saramaMessages, &sarama.ProducerMessage{
			Topic: topic,
			Value: sarama.ByteEncoder(msg.Payload),
		})

		processedIDs = append(processedIDs, msg.ID)
	}

	if len(saramaMessages) == 0 {
		return nil
	}

	if err = s.producer.SendMessages(saramaMessages); err != nil {
		return fmt.Errorf("%s: send messages: %w", op, err)
	}

	if err = s.outBoxMarker.MarkProcessed(ctx, processedIDs); err != nil {
		return fmt.Errorf("%s: mark processed: %w", op, err)
	}

	s.log.Info(op, logger.Int("messages sent", len(saramaMessages)))

	return nil
}

func (s *Service) topicFor(eventType models.EventType) (string, bool) {
	switch eventType {
	case models.OrderCheckout, models.OrderCanceled:
		return s.kafkaConfig.CheckoutTopic, true
	default:
		return "", false
	}
}
