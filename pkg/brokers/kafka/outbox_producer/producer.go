package outbox_producer

import (
	"github.com/IBM/sarama"
)

// NewProducer builds the sync producer used by the outbox drainer: the outbox
// must know a batch reached the broker before marking it processed.
func NewProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(brokers, cfg)
}
