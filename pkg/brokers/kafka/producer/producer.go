package producer

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

// Producer drains an event channel into a Kafka topic. Payment processing
// does not depend on the broker acknowledging the event, so the async
// producer is used.
type Producer struct {
	log logger.Logger

	topic      string
	eventsChan chan models.Event
	done       chan struct{}

	producer sarama.AsyncProducer
}

func NewProducer(
	ctx context.Context,
	log logger.Logger,
	topic string,
	eventsChan chan models.Event,
	done chan struct{},
	brokerAddress []string,
) (*Producer, error) {
	producerConfig := sarama.NewConfig()
	producerConfig.Producer.RequiredAcks = sarama.WaitForLocal
	producerConfig.Producer.Compression = sarama.CompressionNone
	producerConfig.Producer.Return.Successes = true
	producerConfig.Producer.Return.Errors = true

	producer, err := sarama.NewAsyncProducer(brokerAddress, producerConfig)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case sendErr, ok := <-producer.Errors():
				if !ok {
					return
				}

				log.Warn("failed to send message", logger.String("error", sendErr.Error()))
			case success, ok := <-producer.Successes():
				if !ok {
					return
				}

				log.Debug("successfully sent message", logger.String("topic", success.Topic))
			case <-ctx.Done():
				return
			}
		}
	}()

	return &Producer{
		log:        log,
		topic:      topic,
		eventsChan: eventsChan,
		done:       done,
		producer:   producer,
	}, nil
}

// ProduceEvents forwards events from the channel to the topic until the
// channel closes or ctx is done.
func (p *Producer) ProduceEvents(ctx context.Context) {
	const op = "brokers.kafka.producer.ProduceEvents"

ProducerLoop:
	for {
		select {
		case event, ok := <-p.eventsChan:
			if !ok {
				break ProducerLoop
			}

			bytes, err := json.Marshal(event)
			if err != nil {
				p.log.Error(op, logger.String("failed to marshal event", err.Error()))
				continue
			}

			p.log.Debug(op,
				logger.String("topic", p.topic),
				logger.String("event_uuid", event.UUID()),
			)

			p.producer.Input() <- &sarama.ProducerMessage{
				Topic: p.topic,
				Key:   sarama.StringEncoder(event.UUID()),
				Value: sarama.ByteEncoder(bytes),
			}
		case <-ctx.Done():
			break ProducerLoop
		}
	}
}

func (p *Producer) Close() error {
	err := p.producer.Close()
	if err != nil {
		return err
	}

	close(p.done)

	return nil
}
