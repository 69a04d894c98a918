package consumer

import (
	"context"
	"errors"

	"github.com/IBM/sarama"

	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

// MessageHandler processes one consumed message. Returning an error keeps the
// offset uncommitted so the broker redelivers the message.
type MessageHandler func(ctx context.Context, msg *sarama.ConsumerMessage) error

// Group is a sarama consumer group that routes messages to a handler by
// topic.
type Group struct {
	log      logger.Logger
	group    sarama.ConsumerGroup
	handlers map[string]MessageHandler
	topics   []string
}

func NewGroup(
	log logger.Logger,
	brokers []string,
	groupID string,
	handlers map[string]MessageHandler,
) (*Group, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_1_0_0
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	topics := make([]string, 0, len(handlers))
	for topic := range handlers {
		topics = append(topics, topic)
	}

	return &Group{
		log:      log,
		group:    group,
		handlers: handlers,
		topics:   topics,
	}, nil
}

// Run blocks consuming until ctx is cancelled. Consume returns on every
// rebalance, so it is called in a loop.
func (g *Group) Run(ctx context.Context) error {
	const op = "brokers.kafka.consumer.Run"

	go func() {
		for err := range g.group.Errors() {
			g.log.Error(op, logger.String("consumer group error", err.Error()))
		}
	}()

	for {
		if err := g.group.Consume(ctx, g.topics, g); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return err
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (g *Group) Close() error {
	return g.group.Close()
}

func (g *Group) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (g *Group) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (g *Group) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	const op = "brokers.kafka.consumer.ConsumeClaim"

	handler, ok := g.handlers[claim.Topic()]
	if !ok {
		g.log.Warn(op, logger.String("no handler for topic", claim.Topic()))
		return nil
	}

	for {
		select {
		case msg, open := <-claim.Messages():
			if !open {
				return nil
			}

			if err := handler(session.Context(), msg); err != nil {
				g.log.Error(op,
					logger.String("topic", msg.Topic),
					logger.Int("partition", int(msg.Partition)),
					logger.String("error", err.Error()),
				)
				continue
			}

			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
